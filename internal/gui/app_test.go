package gui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/parser"
	"github.com/mcweebus/quietcurrent/internal/play"
	"github.com/mcweebus/quietcurrent/internal/save"
)

type memStore struct {
	world *game.World
	saves int
}

func (m *memStore) Load() (*game.World, error) {
	if m.world == nil {
		return nil, save.ErrNoSave
	}
	return m.world, nil
}

func (m *memStore) Save(w *game.World) error {
	m.world = w
	m.saves++
	return nil
}

func (m *memStore) Close() error { return nil }

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestUI(t *testing.T, w *game.World, fresh bool) (*gameUI, *memStore) {
	t.Helper()
	store := &memStore{}
	ctrl := play.New(game.NewSession(w, game.NewRand(7)), play.Options{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return testNow },
	})
	ui := newGameUI(AppConfig{Controller: ctrl, Fresh: fresh, Seed: 9})
	ui.now = func() time.Time { return testNow }
	return ui, store
}

func hasMessage(ui *gameUI, want string) bool {
	for _, msg := range ui.messages {
		if strings.Contains(msg, want) {
			return true
		}
	}
	return false
}

func TestFoundSettlementNeedsNameThenSaves(t *testing.T) {
	ui, store := newTestUI(t, game.NewWorld("", game.VariantNetwork, 1), true)
	if ui.screen != screenNaming {
		t.Fatalf("fresh ui should start on naming, got %v", ui.screen)
	}

	ui.nameInput = "   "
	if ui.foundSettlement() {
		t.Fatalf("blank name accepted")
	}
	if ui.status == "" {
		t.Fatalf("expected a status hint for blank name")
	}

	ui.nameInput = "Hollow"
	ui.toggleVariant()
	if !ui.foundSettlement() {
		t.Fatalf("named settlement rejected")
	}
	w := ui.ctrl.Session.World
	if w.Name != "Hollow" || w.GardenVariant != game.VariantCrops || w.Seed != 9 {
		t.Fatalf("world=%q variant=%s seed=%d", w.Name, w.GardenVariant, w.Seed)
	}
	if ui.screen != screenSettlement || store.saves != 1 {
		t.Fatalf("screen=%v saves=%d", ui.screen, store.saves)
	}
}

func TestSubmitInputRecordsOutcome(t *testing.T) {
	ui, store := newTestUI(t, game.NewWorld("Test", game.VariantNetwork, 1), false)
	ui.input = "  tend "
	ui.submitInput()

	if ui.input != "" {
		t.Fatalf("input not cleared: %q", ui.input)
	}
	if !hasMessage(ui, "[12:00:00] > tend") {
		t.Fatalf("missing echoed command in %v", ui.messages)
	}
	if len(ui.recall) != 1 || ui.recall[0] != "tend" {
		t.Fatalf("recall=%v", ui.recall)
	}
	if ui.ctrl.Session.World.ActionCount != 1 || store.saves != 1 {
		t.Fatalf("actions=%d saves=%d", ui.ctrl.Session.World.ActionCount, store.saves)
	}

	ui.input = ""
	ui.submitInput()
	if len(ui.recall) != 1 {
		t.Fatalf("blank input recorded")
	}
}

func TestSubmitQuitStopsLoop(t *testing.T) {
	ui, _ := newTestUI(t, game.NewWorld("Test", game.VariantNetwork, 1), false)
	ui.submit("quit")
	if !ui.quit {
		t.Fatalf("quit command did not stop the loop")
	}
}

func TestCellAtMapsPointsToPlots(t *testing.T) {
	grid := rl.NewRectangle(100, 50, 120, 80)
	tests := []struct {
		x, y float32
		want parser.Cell
		ok   bool
	}{
		{x: 105, y: 55, want: parser.Cell{X: 1, Y: 1}, ok: true},
		{x: 219, y: 129, want: parser.Cell{X: 12, Y: 8}, ok: true},
		{x: 131, y: 72, want: parser.Cell{X: 4, Y: 3}, ok: true},
		{x: 99, y: 55},
		{x: 150, y: 131},
	}
	for _, tc := range tests {
		got, ok := cellAt(grid, 10, rl.NewVector2(tc.x, tc.y))
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("(%v,%v): got %+v %v want %+v %v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
	if _, ok := cellAt(grid, 0, rl.NewVector2(105, 55)); ok {
		t.Fatalf("zero-sized cells should never hit")
	}
}

func TestGardenGridFitsBody(t *testing.T) {
	body := rl.NewRectangle(0, 0, 1000, 500)
	grid, side := gardenGrid(body)
	if side <= 0 {
		t.Fatalf("side=%v", side)
	}
	if grid.Width != side*game.GardenWidth || grid.Height != side*game.GardenHeight {
		t.Fatalf("grid %+v not square-celled at %v", grid, side)
	}
	if grid.Y+grid.Height > body.Y+body.Height || grid.X+grid.Width > body.X+body.Width {
		t.Fatalf("grid %+v spills out of %+v", grid, body)
	}
}

func TestGardenClicksRunSelectedTool(t *testing.T) {
	w := game.NewWorld("Test", game.VariantCrops, 1)
	w.HasGardenBed = true
	w.Seeds = 2
	ui, _ := newTestUI(t, w, false)

	ui.tool = 0
	ui.clickCell(parser.Cell{X: 2, Y: 3})
	ui.processIntentQueue()
	if !hasMessage(ui, "> dig 2 3") || !hasMessage(ui, "you turn the soil over.") {
		t.Fatalf("dig click not run: %v", ui.messages)
	}

	idx := game.Index(4, 4)
	w.Garden[idx].State = game.StateDug
	ui.tool = 1
	ui.clickCell(parser.Cell{X: 5, Y: 5})
	ui.processIntentQueue()
	crop := game.Crops()[0].Key
	if !hasMessage(ui, "> plant 5 5 "+crop) {
		t.Fatalf("plant click not run: %v", ui.messages)
	}
	if w.Seeds != 1 || w.Garden[idx].Crop != crop {
		t.Fatalf("seeds=%d cell=%+v", w.Seeds, w.Garden[idx])
	}
	if _, ok := ui.intents.Dequeue(); ok {
		t.Fatalf("queue not drained")
	}
}

func TestNetworkToolsUseParserAliases(t *testing.T) {
	w := game.NewWorld("Test", game.VariantNetwork, 1)
	w.HasGardenBed = true
	w.Seeds = 1
	ui, _ := newTestUI(t, w, false)
	if ui.tools()[0].Verb != "inoculate" {
		t.Fatalf("network garden should lead with inoculate, got %+v", ui.tools()[0])
	}

	ui.clickCell(parser.Cell{X: 1, Y: 1})
	ui.processIntentQueue()
	if w.Seeds != 0 {
		t.Fatalf("inoculate click did not spend spores: %d", w.Seeds)
	}
}

func TestFlowerClickPlantsSlot(t *testing.T) {
	w := game.NewWorld("Test", game.VariantNetwork, 1)
	w.FlowersUnlocked = true
	ui, _ := newTestUI(t, w, false)

	variety := game.FlowerVarieties()[0].Key
	ui.clickFlowerSlot(4)
	ui.processIntentQueue()
	if !hasMessage(ui, "> flower 5 "+variety) {
		t.Fatalf("flower click not run: %v", ui.messages)
	}
	if w.Flowers[4].Variety != variety {
		t.Fatalf("slot=%+v", w.Flowers[4])
	}
}

func TestFlowerSlotAtFindsCentre(t *testing.T) {
	body := rl.NewRectangle(0, 0, 900, 420)
	centres, _ := flowerCentres(body)
	for want, c := range centres {
		got, ok := flowerSlotAt(body, c)
		if !ok || got != want {
			t.Fatalf("slot %d centre hit %d %v", want, got, ok)
		}
	}
	if _, ok := flowerSlotAt(body, rl.NewVector2(body.X+body.Width-2, body.Y+2)); ok {
		t.Fatalf("corner should miss every slot")
	}
}

func TestIntentQueueDropsWhenFull(t *testing.T) {
	q := newIntentQueue(1)
	q.EnqueueIntent(parser.Intent{Verb: "tend"})
	q.EnqueueIntent(parser.Intent{Verb: "wait"})

	got, ok := q.Dequeue()
	if !ok || got.Verb != "tend" {
		t.Fatalf("got %+v %v", got, ok)
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatalf("saturated queue kept the second intent")
	}

	var nilQueue *intentQueue
	nilQueue.EnqueueIntent(parser.Intent{Verb: "tend"})
	if _, ok := nilQueue.Dequeue(); ok {
		t.Fatalf("nil queue returned an intent")
	}
}

func TestHotkeysDisabledWhileTyping(t *testing.T) {
	ui, _ := newTestUI(t, game.NewWorld("Test", game.VariantNetwork, 1), false)
	if !HotkeysEnabled(ui) {
		t.Fatalf("idle settlement should allow hotkeys")
	}
	ui.input = "te"
	if HotkeysEnabled(ui) {
		t.Fatalf("typing should block hotkeys")
	}
	ui.input = ""
	ui.choices = []string{"1) water 1 1"}
	if HotkeysEnabled(ui) {
		t.Fatalf("pending choice should block hotkeys")
	}
	ui.choices = nil
	ui.screen = screenNaming
	if HotkeysEnabled(ui) {
		t.Fatalf("naming screen should block hotkeys")
	}
	if !HotkeysEnabled(nil) {
		t.Fatalf("nil ui should allow hotkeys")
	}
}

func TestAppendMessageCapsHistory(t *testing.T) {
	ui, _ := newTestUI(t, game.NewWorld("Test", game.VariantNetwork, 1), false)
	ui.messages = nil
	for i := 0; i < maxMessages+15; i++ {
		ui.appendMessage("line")
	}
	ui.appendMessage("   ")
	if len(ui.messages) != maxMessages {
		t.Fatalf("messages=%d want %d", len(ui.messages), maxMessages)
	}
	if ui.messages[0] != "[12:00:00] line" {
		t.Fatalf("unexpected format %q", ui.messages[0])
	}
}

func TestComputeLayoutStacksBands(t *testing.T) {
	inset := rl.NewRectangle(12, 12, 1256, 736)
	l := computeLayout(inset)
	if l.tabs.Y <= l.status.Y+l.status.Height-1 {
		t.Fatalf("tabs overlap status: %+v %+v", l.tabs, l.status)
	}
	if l.body.Y+l.body.Height > l.messages.Y {
		t.Fatalf("body overlaps messages: %+v %+v", l.body, l.messages)
	}
	if l.input.Y+l.input.Height > inset.Y+inset.Height {
		t.Fatalf("input falls outside the frame: %+v", l.input)
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct{ i, size, want int }{
		{0, 4, 0}, {4, 4, 0}, {-1, 4, 3}, {9, 4, 1}, {3, 0, 0},
	}
	for _, tc := range tests {
		if got := wrapIndex(tc.i, tc.size); got != tc.want {
			t.Fatalf("wrapIndex(%d,%d)=%d want %d", tc.i, tc.size, got, tc.want)
		}
	}
}
