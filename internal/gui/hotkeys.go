package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func ShiftKeyPressed(key int32) bool {
	if shiftDown() && rl.IsKeyPressed(key) {
		return true
	}
	// Accept either key order: Shift then key, or key then Shift.
	if rl.IsKeyDown(key) && (rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyRightShift)) {
		return true
	}
	return false
}

// HotkeysEnabled reports whether single-key shortcuts should fire. Typing a
// command or a settlement name swallows them.
func HotkeysEnabled(uiState *gameUI) bool {
	if uiState == nil {
		return true
	}
	switch uiState.screen {
	case screenNaming:
		return false
	case screenSettlement:
		if strings.TrimSpace(uiState.input) != "" {
			return false
		}
		if len(uiState.choices) > 0 {
			return false
		}
	}
	return true
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}
