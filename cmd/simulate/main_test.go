package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/game"
)

func TestNextCommandPriorities(t *testing.T) {
	w := game.NewWorld("Policy", game.VariantCrops, 3)
	s := game.NewSession(w, game.NewRand(3))
	if got := nextCommand(s, 0); got != "tend" {
		t.Fatalf("neglected panel: got %q", got)
	}

	w.PanelState = game.PanelCleaned
	if got := nextCommand(s, 0); got != "explore" {
		t.Fatalf("clean panel without scrap: got %q", got)
	}

	w.PanelState = game.PanelConnected
	w.CondWire = true
	if got := nextCommand(s, 0); got != "fix wire" {
		t.Fatalf("faulty panel: got %q", got)
	}

	w.CondWire = false
	w.Scrap = 4
	w.Seeds = 2
	if got := nextCommand(s, 0); got != "build garden bed" {
		t.Fatalf("affordable bed: got %q", got)
	}

	w.Scrap = 0
	w.Seeds = 1
	w.HasGardenBed = true
	if got := nextCommand(s, 0); got != "dig 1 1" {
		t.Fatalf("empty garden: got %q", got)
	}

	w.Garden[0].State = game.StateDug
	if got := nextCommand(s, 0); got != "plant 1 1 "+game.Crops()[0].Key {
		t.Fatalf("dug plot: got %q", got)
	}
}

func TestNextCommandTradesOnlyWhenAffordable(t *testing.T) {
	w := game.NewWorld("Policy", game.VariantNetwork, 3)
	s := game.NewSession(w, game.NewRand(3))
	s.Visitor = &game.WandererKind{Name: "Drift", Want: game.ResourceSeeds, WantAmount: 1}
	if got := nextCommand(s, 0); got != "decline" {
		t.Fatalf("no seeds: got %q", got)
	}
	w.Seeds = 1
	if got := nextCommand(s, 0); got != "accept" {
		t.Fatalf("seeds on hand: got %q", got)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	var entries []chronicle.Entry
	sink := chronicle.SinkFunc(func(es ...chronicle.Entry) error {
		entries = append(entries, es...)
		return nil
	})
	a, err := simulate(42, game.VariantCrops, 300, sink)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := simulate(42, game.VariantCrops, 300, nil)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a != b {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if a.Actions < 300 || a.ConnectedAt <= 0 {
		t.Fatalf("summary=%+v", a)
	}
	if len(entries) == 0 || entries[0].Seed != 42 {
		t.Fatalf("chronicle entries=%d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Action <= entries[i-1].Action {
			t.Fatalf("actions out of order at %d: %d then %d", i, entries[i-1].Action, entries[i].Action)
		}
	}
}

func TestSummarizeSkipsUnconnectedRuns(t *testing.T) {
	results := []runSummary{
		{ConnectedAt: 10, Power: 4},
		{ConnectedAt: -1, Power: 0},
		{ConnectedAt: 30, Power: 8},
	}
	stats := summarize(results)
	connected := stats[0]
	if connected.Name != "connected_at" || connected.Mean != 20 || connected.Min != 10 || connected.Max != 30 {
		t.Fatalf("connected=%+v", connected)
	}
	power := stats[1]
	if power.Mean != 4 || power.Median != 4 {
		t.Fatalf("power=%+v", power)
	}
	if empty := metric("none", nil, func(r runSummary) int { return r.Power }); empty.Mean != 0 {
		t.Fatalf("empty=%+v", empty)
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := writeSummary(path, []runSummary{{Seed: 42, Variant: "crops", Actions: 10}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "seed,variant,actions") || !strings.HasPrefix(lines[1], "42,crops,10") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}
