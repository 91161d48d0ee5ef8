package save

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/config"
	"github.com/mcweebus/quietcurrent/internal/game"
)

func fixedNow() time.Time {
	return time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestFileStoreMissingSave(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.json"), 2)
	if _, err := s.Load(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "world.json")
	s := NewFileStore(path, 0)
	s.now = fixedNow

	w := game.NewWorld("Ashfield", game.VariantCrops, 12)
	w.Power = 7
	w.Residents = []game.Resident{{Name: "Weft", Mood: 3, Days: 2}}
	if err := s.Save(w); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"format_version": 2`) || !strings.Contains(string(data), "2026-04-02T09:30:00Z") {
		t.Fatalf("envelope missing fields:\n%s", data)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if mustJSON(t, loaded) != mustJSON(t, w) {
		t.Fatalf("round trip changed the world")
	}
}

func TestFileStoreRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	s := NewFileStore(path, 2)
	w := game.NewWorld("Rot", game.VariantNetwork, 3)
	for i := 1; i <= 4; i++ {
		w.Power = i
		if err := s.Save(w); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if got := s.ListBackups(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("backups=%v", got)
	}
	if _, err := os.Stat(s.backupPath(3)); !os.IsNotExist(err) {
		t.Fatalf("third backup should not exist")
	}

	live, _ := s.Load()
	one, err := s.RestoreBackup(1)
	if err != nil {
		t.Fatalf("restore 1: %v", err)
	}
	two, err := s.RestoreBackup(2)
	if err != nil {
		t.Fatalf("restore 2: %v", err)
	}
	if live.Power != 4 || one.Power != 3 || two.Power != 2 {
		t.Fatalf("live=%d one=%d two=%d", live.Power, one.Power, two.Power)
	}
	if _, err := s.RestoreBackup(3); !errors.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
}

func TestLoadAcceptsBareWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"name":"Old","power":3,"panel_state":"cleaned"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewFileStore(path, 0).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w.Name != "Old" || w.Power != 3 || w.PanelState != game.PanelCleaned {
		t.Fatalf("world=%+v", w)
	}
}

func TestLoadRejectsBadRecords(t *testing.T) {
	tests := map[string]string{
		"not json":     `{"name":`,
		"wrong type":   `{"name":"X","power":"lots"}`,
		"bad resident": `{"residents":[{"mood":2}]}`,
		"bad envelope": `{"format_version":2,"world":{"seeds":"none"}}`,
		"bad flower":   `{"flowers":[{"age":"x"}]}`,
	}
	for name, raw := range tests {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := NewFileStore(path, 0).Load(); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestLoadRejectsNewerFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"format_version":9,"world":{}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewFileStore(path, 0).Load()
	if err == nil || !strings.Contains(err.Error(), "newer") {
		t.Fatalf("expected newer-format error, got %v", err)
	}
}

func TestSQLiteStoreKeepsNewestSaves(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "world.db"), 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, err := s.Load(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
	w := game.NewWorld("Rows", game.VariantNetwork, 8)
	for i := 1; i <= 3; i++ {
		w.Scrap = i
		if err := s.Save(w); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	n, err := s.SaveCount()
	if err != nil || n != 2 {
		t.Fatalf("count=%d err=%v", n, err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Scrap != 3 || loaded.Name != "Rows" {
		t.Fatalf("loaded=%+v", loaded)
	}
}

func TestSQLiteChronicle(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "world.db"), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var entries []chronicle.Entry
	for i := 1; i <= 5; i++ {
		entries = append(entries, chronicle.Entry{Seed: 2, Action: i, Command: "tend", Message: "you tend.", Power: i})
	}
	if err := s.AppendChronicle(entries...); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.RecentChronicle(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 || got[0].Action != 3 || got[2].Power != 5 {
		t.Fatalf("recent=%+v", got)
	}
}

func TestOpenPicksBackend(t *testing.T) {
	dir := t.TempDir()
	fileStore, err := Open(config.SaveConfig{Backend: "file", Path: filepath.Join(dir, "a.json")})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := fileStore.(*FileStore); !ok {
		t.Fatalf("got %T", fileStore)
	}
	dbStore, err := Open(config.SaveConfig{Backend: "sqlite", Path: filepath.Join(dir, "a.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer dbStore.Close()
	if _, ok := dbStore.(*SQLiteStore); !ok {
		t.Fatalf("got %T", dbStore)
	}
	if _, err := Open(config.SaveConfig{Backend: "tape"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}
