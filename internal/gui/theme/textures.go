package theme

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Skin holds the optional nine-slice art. Missing files leave zero values,
// which draw as flat colour.
var Skin skinAssets

type skinAssets struct {
	Frame NineSlice
	Panel NineSlice
	Input NineSlice

	loaded bool
}

const (
	frameSlice = int32(12)
	panelSlice = int32(8)
	inputSlice = int32(6)
)

// InitSkin loads textures from dir. Call once after rl.InitWindow.
func InitSkin(dir string) {
	if Skin.loaded {
		return
	}
	Skin.loaded = true
	Skin.Frame = loadNineSlice(filepath.Join(dir, "frame.png"), frameSlice)
	Skin.Panel = loadNineSlice(filepath.Join(dir, "panel.png"), panelSlice)
	Skin.Input = loadNineSlice(filepath.Join(dir, "input.png"), inputSlice)
}

// UnloadSkin releases GPU textures. Call before rl.CloseWindow.
func UnloadSkin() {
	unloadTex(&Skin.Frame.Tex)
	unloadTex(&Skin.Panel.Tex)
	unloadTex(&Skin.Input.Tex)
	Skin.loaded = false
}

// FrameInset is the area left inside the window frame.
func FrameInset(screenW, screenH int32) rl.Rectangle {
	m := float32(frameSlice)
	return rl.NewRectangle(m, m, float32(screenW)-m*2, float32(screenH)-m*2)
}

func loadNineSlice(path string, border int32) NineSlice {
	ns := NineSlice{Left: border, Right: border, Top: border, Bottom: border}
	if _, err := os.Stat(path); err != nil {
		return ns
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return ns
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	ns.Tex = tex
	return ns
}

func unloadTex(t *rl.Texture2D) {
	if t != nil && t.ID != 0 {
		rl.UnloadTexture(*t)
		*t = rl.Texture2D{}
	}
}
