package ui

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/play"
	"github.com/mcweebus/quietcurrent/internal/save"
)

func testModel(t *testing.T, fresh bool) (model, *save.FileStore) {
	t.Helper()
	store := save.NewFileStore(filepath.Join(t.TempDir(), "world.json"), 1)
	ctrl := play.New(game.NewSession(game.NewWorld("Mill", game.VariantNetwork, 9), nil), play.Options{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m := newModel(AppConfig{Controller: ctrl, Fresh: fresh, Seed: 9})
	m.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return m, store
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(model), cmd
}

func TestNamingCreatesWorld(t *testing.T) {
	m, store := testModel(t, true)
	if m.screen != screenNaming {
		t.Fatalf("fresh start should ask for a name")
	}
	m, _ = press(m, tea.KeyEnter)
	if m.screen != screenNaming {
		t.Fatalf("blank name accepted")
	}

	m = typeText(t, m, "Low Fen")
	m, _ = press(m, tea.KeyTab)
	if m.variant != game.VariantCrops {
		t.Fatalf("tab should switch the garden, got %s", m.variant)
	}
	m, _ = press(m, tea.KeyEnter)
	if m.screen != screenPlay {
		t.Fatalf("expected play screen")
	}
	w := m.ctrl.Session.World
	if w.Name != "Low Fen" || w.GardenVariant != game.VariantCrops || w.Seed != 9 {
		t.Fatalf("world=%s %s %d", w.Name, w.GardenVariant, w.Seed)
	}
	if _, err := store.Load(); err != nil {
		t.Fatalf("new world not saved: %v", err)
	}
}

func TestSubmitInputAppendsHistory(t *testing.T) {
	m, _ := testModel(t, false)
	m = typeText(t, m, "tend")
	m, _ = press(m, tea.KeyEnter)
	if m.input != "" {
		t.Fatalf("input not cleared")
	}
	joined := strings.Join(m.messages, "\n")
	if !strings.Contains(joined, "[12:00:00] > tend") {
		t.Fatalf("expected echoed command in history:\n%s", joined)
	}
	if m.ctrl.Session.World.ActionCount != 1 {
		t.Fatalf("tend did not act")
	}

	m, _ = press(m, tea.KeyUp)
	if m.input != "tend" {
		t.Fatalf("up should recall the last command, got %q", m.input)
	}
	m, _ = press(m, tea.KeyBackspace)
	if m.input != "ten" {
		t.Fatalf("backspace left %q", m.input)
	}
}

func TestSubmitShowsChoices(t *testing.T) {
	m, _ := testModel(t, false)
	m = typeText(t, m, "wa")
	m, _ = press(m, tea.KeyEnter)
	if len(m.choices) != 2 {
		t.Fatalf("choices=%v", m.choices)
	}
	if !strings.Contains(m.View(), m.choices[0]) {
		t.Fatalf("choices not rendered")
	}
}

func TestQuitCommandEndsProgram(t *testing.T) {
	m, store := testModel(t, false)
	m = typeText(t, m, "quit")
	_, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if _, err := store.Load(); err != nil {
		t.Fatalf("quit did not save: %v", err)
	}
}

func TestMessageHistoryIsCapped(t *testing.T) {
	m, _ := testModel(t, false)
	for i := 0; i < maxMessages+20; i++ {
		m = m.appendMessage("line")
	}
	if len(m.messages) != maxMessages {
		t.Fatalf("messages=%d", len(m.messages))
	}
}

func TestViewShowsStores(t *testing.T) {
	m, _ := testModel(t, false)
	m.ctrl.Session.World.Power = 7
	view := m.View()
	if !strings.Contains(view, "QUIET CURRENT") || !strings.Contains(view, "power 7") {
		t.Fatalf("view missing status:\n%s", view)
	}
}
