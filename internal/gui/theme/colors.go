package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Dusk palette: slate panels, a teal current and moss for living things.
var (
	BG            = rl.NewColor(0x10, 0x16, 0x1A, 255) // #10161A
	Panel         = rl.NewColor(0x18, 0x21, 0x27, 255) // #182127
	PanelRaised   = rl.NewColor(0x1F, 0x2A, 0x31, 255) // #1F2A31
	Border        = rl.NewColor(0x2C, 0x3B, 0x42, 255) // #2C3B42
	Divider       = rl.NewColor(0x24, 0x30, 0x37, 255) // #243037
	TextPrimary   = rl.NewColor(0xE4, 0xE8, 0xDF, 255) // #E4E8DF
	TextSecondary = rl.NewColor(0xA3, 0xB0, 0xAA, 255) // #A3B0AA
	TextMuted     = rl.NewColor(0x77, 0x84, 0x7F, 255) // #77847F
	AccentCurrent = rl.NewColor(0x4F, 0xB3, 0xA5, 255) // #4FB3A5
	AccentMoss    = rl.NewColor(0x5E, 0x8C, 0x4A, 255) // #5E8C4A
	WarningAmber  = rl.NewColor(0xC9, 0xA0, 0x3C, 255) // #C9A03C
	Danger        = rl.NewColor(0xB5, 0x53, 0x3F, 255) // #B5533F
	DisabledPanel = rl.NewColor(0x13, 0x19, 0x1D, 255)
	DisabledText  = TextMuted
)
