package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingXS = float32(6)
	PaddingS  = float32(10)
	PaddingM  = float32(16)
	PaddingL  = float32(22)

	CornerRadius   = float32(0.08)
	CornerSegments = int32(8)

	BorderWidth      = float32(1.2)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(30)
	AccentStripWidth = float32(4)
)

type PanelVariant int

const (
	PanelStandard PanelVariant = iota
	PanelLifted
	PanelMuted
)

type ListItemState int

const (
	ListItemNormal ListItemState = iota
	ListItemSelected
	ListItemDisabled
)

// DrawFrame paints the window border and returns the rectangle content
// should stay inside.
func DrawFrame(screenW, screenH int32) rl.Rectangle {
	outer := rl.NewRectangle(0, 0, float32(screenW), float32(screenH))
	if Skin.Frame.Tex.ID != 0 {
		DrawNineSlice(Skin.Frame, outer, rl.White)
	} else {
		rl.DrawRectangleLinesEx(outer, 3, mix(Border, AccentCurrent, 0.4))
	}
	return FrameInset(screenW, screenH)
}

func DrawPanel(rect rl.Rectangle, variant PanelVariant) {
	fill := Panel
	stroke := Border
	strokeWidth := BorderWidth

	switch variant {
	case PanelLifted:
		fill = PanelRaised
		stroke = mix(Border, AccentCurrent, 0.35)
		strokeWidth = 1.4
	case PanelMuted:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
	}

	if Skin.Panel.Tex.ID != 0 {
		DrawNineSlice(Skin.Panel, rect, fill)
	} else {
		rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	}
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)
}

// DrawInput renders a single-line text field with a caret when focused.
func DrawInput(rect rl.Rectangle, text, placeholder string, focused bool) {
	stroke := Border
	if focused {
		stroke = AccentCurrent
	}
	if Skin.Input.Tex.ID != 0 {
		DrawNineSlice(Skin.Input, rect, PanelRaised)
	} else {
		rl.DrawRectangleRec(rect, PanelRaised)
	}
	rl.DrawRectangleLinesEx(rect, BorderWidth, stroke)

	x := int32(rect.X + PaddingS)
	y := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	if text == "" && !focused {
		drawText(placeholder, x, y, Type.Body, TextMuted)
		return
	}
	drawText(text, x, y, Type.Body, TextPrimary)
	if focused && (int(rl.GetTime()*2)%2 == 0) {
		caretX := x + measureText(text, Type.Body) + 2
		drawText("_", caretX, y, Type.Body, AccentCurrent)
	}
}

func DrawListItem(rect rl.Rectangle, state ListItemState, leftText, rightText string) {
	fill := rl.Fade(PanelRaised, 0.45)
	stroke := rl.Fade(Border, 0.9)
	left := TextPrimary
	right := TextSecondary
	strokeWidth := BorderWidth

	switch state {
	case ListItemSelected:
		fill = PanelRaised
		stroke = AccentCurrent
		strokeWidth = BorderWidthFocus
		right = AccentCurrent
	case ListItemDisabled:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
		left = DisabledText
		right = DisabledText
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)
	if state == ListItemSelected {
		strip := rl.NewRectangle(rect.X+1, rect.Y+2, AccentStripWidth, rect.Height-4)
		if strip.Height > 0 {
			rl.DrawRectangleRec(strip, AccentCurrent)
		}
	}

	textY := int32(rect.Y + (rect.Height-float32(Type.Small))/2)
	if leftText != "" {
		drawText(leftText, int32(rect.X+PaddingS), textY, Type.Small, left)
	}
	if rightText != "" {
		rightW := measureText(rightText, Type.Small)
		drawText(rightText, int32(rect.X+rect.Width-PaddingS-float32(rightW)), textY, Type.Small, right)
	}
}

func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Header, TextPrimary)
	w := measureText(text, Type.Header)
	lineW := int32(float32(w) * 0.6)
	if lineW < 44 {
		lineW = 44
	}
	drawLine(float32(x), float32(y+Type.Header+6), float32(x+lineW), float32(y+Type.Header+6), 2.0, AccentCurrent)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	drawLine(x1, y1, x2, y2, 1.0, rl.Fade(Divider, 0.95))
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Small, TextMuted)
}

// DrawMeter draws a labelled horizontal bar filled to value/max.
func DrawMeter(rect rl.Rectangle, label string, value, max int, fillColor rl.Color) {
	drawText(label, int32(rect.X), int32(rect.Y), Type.Small, TextSecondary)
	track := rl.NewRectangle(rect.X, rect.Y+float32(Type.Small)+3, rect.Width, 8)
	rl.DrawRectangleRec(track, rl.Fade(PanelRaised, 0.9))
	if max > 0 && value > 0 {
		frac := float32(value) / float32(max)
		if frac > 1 {
			frac = 1
		}
		rl.DrawRectangleRec(rl.NewRectangle(track.X+1, track.Y+1, (track.Width-2)*frac, track.Height-2), fillColor)
	}
	rl.DrawRectangleLinesEx(track, 1.0, rl.Fade(Border, 0.95))
}

func drawLine(x1, y1, x2, y2, thickness float32, clr rl.Color) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), thickness, clr)
}

func mix(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
