//go:build ignore

// gen_ui_placeholders.go writes flat 9-slice skins for the desktop client:
//
//	go run scripts/gen_ui_placeholders.go
//
// Slice sizes must match internal/gui/theme/textures.go.
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := filepath.Join("assets", "ui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Dusk frame around the whole window.
	genTexture(filepath.Join(dir, "frame.png"), 64, 64, 12,
		color.RGBA{0x2A, 0x3B, 0x3A, 0xFF},
		color.RGBA{0x10, 0x16, 0x1A, 0xFF},
	)

	genTexture(filepath.Join(dir, "panel.png"), 48, 48, 8,
		color.RGBA{0x33, 0x44, 0x48, 0xFF},
		color.RGBA{0x18, 0x21, 0x27, 0xFF},
	)

	// Command line tray, edged in the current accent.
	genTexture(filepath.Join(dir, "input.png"), 24, 24, 6,
		color.RGBA{0x4F, 0xB3, 0xA5, 0xFF},
		color.RGBA{0x0E, 0x13, 0x17, 0xFF},
	)

	log.Printf("placeholder skins written to %s", dir)
}

func genTexture(path string, w, h, slice int, border, centre color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < slice || y < slice || x >= w-slice || y >= h-slice {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, centre)
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	log.Printf("  wrote %s (%dx%d slice=%d)", path, w, h, slice)
}
