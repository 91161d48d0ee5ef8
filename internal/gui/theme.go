package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	uitheme "github.com/mcweebus/quietcurrent/internal/gui/theme"
)

type Theme struct {
	Background    rl.Color
	Panel         rl.Color
	PanelRaised   rl.Color
	Border        rl.Color
	Divider       rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	Living        rl.Color
	Warning       rl.Color
	Danger        rl.Color
}

const (
	spaceXS = uitheme.PaddingXS
	spaceS  = uitheme.PaddingS
	spaceM  = uitheme.PaddingM
	spaceL  = uitheme.PaddingL
)

var AppTheme = Theme{
	Background:    uitheme.BG,
	Panel:         uitheme.Panel,
	PanelRaised:   uitheme.PanelRaised,
	Border:        uitheme.Border,
	Divider:       uitheme.Divider,
	TextPrimary:   uitheme.TextPrimary,
	TextSecondary: uitheme.TextSecondary,
	TextMuted:     uitheme.TextMuted,
	Accent:        uitheme.AccentCurrent,
	Living:        uitheme.AccentMoss,
	Warning:       uitheme.WarningAmber,
	Danger:        uitheme.Danger,
}

var (
	colorBG     = AppTheme.Background
	colorText   = AppTheme.TextPrimary
	colorDim    = AppTheme.TextSecondary
	colorMuted  = AppTheme.TextMuted
	colorAccent = AppTheme.Accent
	colorWarn   = AppTheme.Warning
)

// DrawPanel draws a themed panel with an optional underlined title.
func DrawPanel(rect rl.Rectangle, title string, focused bool) {
	variant := uitheme.PanelStandard
	if focused {
		variant = uitheme.PanelLifted
	}
	uitheme.DrawPanel(rect, variant)
	if title != "" {
		uitheme.DrawHeader(title, int32(rect.X+spaceM), int32(rect.Y+spaceS))
	}
}

// panelBody is the area below a panel title.
func panelBody(rect rl.Rectangle) rl.Rectangle {
	top := spaceS + float32(typeScale.Header) + 16
	return rl.NewRectangle(rect.X+spaceM, rect.Y+top, rect.Width-spaceM*2, rect.Height-top-spaceS)
}

func DrawInputField(rect rl.Rectangle, text, placeholder string, focused bool) {
	uitheme.DrawInput(rect, text, placeholder, focused)
}

func DrawHintText(text string, x, y int32) {
	uitheme.DrawHintText(text, x, y)
}

func DrawListItem(rect rl.Rectangle, selected bool, leftText, rightText string) {
	state := uitheme.ListItemNormal
	if selected {
		state = uitheme.ListItemSelected
	}
	uitheme.DrawListItem(rect, state, leftText, rightText)
}

// meterColor goes amber then red as value drops toward zero.
func meterColor(value, warning, danger int) rl.Color {
	switch {
	case value <= danger:
		return AppTheme.Danger
	case value <= warning:
		return AppTheme.Warning
	default:
		return AppTheme.Living
	}
}
