package play

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/save"
)

type memStore struct {
	world   *game.World
	saves   int
	loadErr error
}

func (m *memStore) Load() (*game.World, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
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

var testNow = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, sink chronicle.Sink) (*Controller, *memStore) {
	t.Helper()
	w := game.NewWorld("Test", game.VariantCrops, 31)
	store := &memStore{}
	c := New(game.NewSession(w, game.NewRand(31)), Options{
		Store:  store,
		Sink:   sink,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return testNow },
	})
	return c, store
}

func TestSubmitTickedActionSavesAndRecords(t *testing.T) {
	var written []chronicle.Entry
	sink := chronicle.SinkFunc(func(entries ...chronicle.Entry) error {
		written = append(written, entries...)
		return nil
	})
	c, store := newTestController(t, sink)

	out := c.Submit("tend")
	if !out.Ticked || len(out.Lines) == 0 {
		t.Fatalf("tend outcome=%+v", out)
	}
	if store.saves != 1 {
		t.Fatalf("saves=%d want 1", store.saves)
	}
	if len(written) != 1 || written[0].Command != "tend" || written[0].Action != 1 {
		t.Fatalf("chronicle=%+v", written)
	}
	if len(c.History.Entries()) != 1 {
		t.Fatalf("history not recorded")
	}

	out = c.Submit("status")
	if out.Ticked || store.saves != 1 {
		t.Fatalf("status should not tick or save: %+v", out)
	}
}

func TestSubmitSinkFailureKeepsPlaying(t *testing.T) {
	sink := chronicle.SinkFunc(func(...chronicle.Entry) error { return errors.New("disk full") })
	c, store := newTestController(t, sink)
	if out := c.Submit("wait"); !out.Ticked || store.saves != 1 {
		t.Fatalf("outcome=%+v saves=%d", out, store.saves)
	}
}

func TestSubmitClarifyThenPick(t *testing.T) {
	c, _ := newTestController(t, nil)
	out := c.Submit("wa")
	if len(out.Choices) != 2 || !strings.HasPrefix(out.Choices[0], "1) ") {
		t.Fatalf("choices=%v", out.Choices)
	}
	out = c.Submit("2")
	if !out.Ticked {
		t.Fatalf("picking a choice should act: %+v", out)
	}
	if out := c.Submit("2"); out.Ticked {
		t.Fatalf("a stale choice number acted again")
	}
}

func TestSubmitUnknown(t *testing.T) {
	c, _ := newTestController(t, nil)
	out := c.Submit("xyzzy plugh")
	if len(out.Lines) != 1 || !strings.Contains(out.Lines[0], "couldn't map") {
		t.Fatalf("outcome=%+v", out)
	}
	if out := c.Submit("   "); len(out.Lines) != 0 {
		t.Fatalf("blank line produced output")
	}
}

func TestSubmitRemembersLastPlot(t *testing.T) {
	c, _ := newTestController(t, nil)
	c.Session.World.HasGardenBed = true
	c.Session.World.Water = 5

	c.Submit("water 2 3")
	if c.last == nil || c.last.X != 2 || c.last.Y != 3 {
		t.Fatalf("last=%+v", c.last)
	}
	out := c.Submit("water it")
	if !out.Ticked {
		t.Fatalf("pronoun plot not resolved: %+v", out)
	}
}

func TestMetaCommands(t *testing.T) {
	c, store := newTestController(t, nil)
	if out := c.Submit("log"); out.Lines[0] != "nothing has happened yet." {
		t.Fatalf("log=%v", out.Lines)
	}
	c.Submit("tend")
	if out := c.Submit("log"); len(out.Lines) != 1 || !strings.HasPrefix(out.Lines[0], "#1 tend: ") {
		t.Fatalf("log=%v", out.Lines)
	}
	if out := c.Submit("save"); out.Lines[0] != "saved." || store.saves != 2 {
		t.Fatalf("save=%v saves=%d", out.Lines, store.saves)
	}
	if out := c.Submit("backups"); !strings.Contains(out.Lines[0], "no backup") {
		t.Fatalf("backups=%v", out.Lines)
	}
	out := c.Submit("quit")
	if !out.Quit || store.saves != 3 {
		t.Fatalf("quit=%+v saves=%d", out, store.saves)
	}
	if c.Session.World.LastSeen != testNow.Unix() {
		t.Fatalf("last seen not stamped on quit")
	}
}

func TestResumeReportsDecay(t *testing.T) {
	c, _ := newTestController(t, nil)
	w := c.Session.World
	w.Power = 10
	w.LastSeen = testNow.Add(-3 * 24 * time.Hour).Unix()
	lines := c.Resume()
	if len(lines) != 2 || w.DaysFounded != 3 {
		t.Fatalf("lines=%v days=%d", lines, w.DaysFounded)
	}
}

func TestLoadOrCreate(t *testing.T) {
	w, fresh, err := LoadOrCreate(&memStore{}, "New", game.VariantNetwork, 4)
	if err != nil || !fresh || w.Name != "New" {
		t.Fatalf("w=%v fresh=%v err=%v", w, fresh, err)
	}
	existing := game.NewWorld("Kept", game.VariantCrops, 2)
	w, fresh, err = LoadOrCreate(&memStore{world: existing}, "New", game.VariantNetwork, 4)
	if err != nil || fresh || w != existing {
		t.Fatalf("expected stored world")
	}
	diskErr := errors.New("permission denied")
	if _, _, err := LoadOrCreate(&memStore{loadErr: diskErr}, "New", game.VariantNetwork, 4); !errors.Is(err, diskErr) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadOrCreateReplacesUnreadableSave(t *testing.T) {
	records := map[string]string{
		"not json":    `{not json`,
		"wrong type":  `{"power":"five"}`,
		"bad flowers": `{"flowers":[{"age":"x"}]}`,
	}
	for name, raw := range records {
		path := filepath.Join(t.TempDir(), "world.json")
		if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		store := save.NewFileStore(path, 0)
		w, fresh, err := LoadOrCreate(store, "Anew", game.VariantCrops, 6)
		if err != nil || !fresh || w == nil || w.Name != "Anew" {
			t.Fatalf("%s: w=%v fresh=%v err=%v", name, w, fresh, err)
		}
		if err := store.Save(w); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		if _, err := store.Load(); err != nil {
			t.Fatalf("%s: record not replaced: %v", name, err)
		}
	}
}
