package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// NineSlice is a 9-patch texture. Border sizes are in source pixels.
type NineSlice struct {
	Tex    rl.Texture2D
	Left   int32
	Right  int32
	Top    int32
	Bottom int32
}

// DrawNineSlice stretches ns over dest. Without a texture it fills flat.
func DrawNineSlice(ns NineSlice, dest rl.Rectangle, tint rl.Color) {
	if ns.Tex.ID == 0 {
		rl.DrawRectangleRec(dest, rl.Fade(tint, 0.35))
		return
	}

	src := [4]float32{0, float32(ns.Left), float32(ns.Tex.Width) - float32(ns.Right), float32(ns.Tex.Width)}
	srcY := [4]float32{0, float32(ns.Top), float32(ns.Tex.Height) - float32(ns.Bottom), float32(ns.Tex.Height)}

	l, r := float32(ns.Left), float32(ns.Right)
	t, b := float32(ns.Top), float32(ns.Bottom)
	if l+r > dest.Width {
		l, r = dest.Width/2, dest.Width/2
	}
	if t+b > dest.Height {
		t, b = dest.Height/2, dest.Height/2
	}
	dst := [4]float32{dest.X, dest.X + l, dest.X + dest.Width - r, dest.X + dest.Width}
	dstY := [4]float32{dest.Y, dest.Y + t, dest.Y + dest.Height - b, dest.Y + dest.Height}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out := rl.NewRectangle(dst[col], dstY[row], dst[col+1]-dst[col], dstY[row+1]-dstY[row])
			if out.Width <= 0 || out.Height <= 0 {
				continue
			}
			in := rl.NewRectangle(src[col], srcY[row], src[col+1]-src[col], srcY[row+1]-srcY[row])
			rl.DrawTexturePro(ns.Tex, in, out, rl.Vector2{}, 0, tint)
		}
	}
}
