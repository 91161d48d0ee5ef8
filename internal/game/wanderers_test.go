package game

import (
	"strings"
	"testing"
)

func TestArrivalChance(t *testing.T) {
	tests := []struct {
		name      string
		beacon    bool
		extended  bool
		residents []string
		want      int
	}{
		{name: "no beacon", residents: []string{"Weft"}, want: 0},
		{name: "beacon only", beacon: true, want: 15},
		{name: "community", beacon: true, residents: []string{"Sable", "Thresh"}, want: 27},
		{name: "extended", beacon: true, extended: true, residents: []string{"Weft"}, want: 23},
		{name: "capped", beacon: true, extended: true, residents: []string{"Sable", "Thresh", "Weft", "Tuck", "Fen", "Drift", "Pale", "Reed"}, want: 45},
	}
	for _, tc := range tests {
		w := testWorld(VariantNetwork)
		w.HasSignalBeacon = tc.beacon
		w.HasExtendedBeacon = tc.extended
		for _, name := range tc.residents {
			AddResident(w, name)
		}
		if got := ArrivalChance(w); got != tc.want {
			t.Fatalf("%s: arrival chance=%d want=%d", tc.name, got, tc.want)
		}
	}
}

func TestCheckArrivalRate(t *testing.T) {
	w := testWorld(VariantNetwork)
	if _, ok := CheckArrival(w, lowRand()); ok {
		t.Fatalf("no beacon should mean no visitors")
	}

	w.HasSignalBeacon = true
	rng := NewRand(21)
	arrivals := 0
	for i := 0; i < 1000; i++ {
		if k, ok := CheckArrival(w, rng); ok {
			arrivals++
			if k.Name == "" {
				t.Fatalf("arrival without a wanderer")
			}
		}
	}
	if arrivals < 100 || arrivals > 200 {
		t.Fatalf("arrivals=%d out of 1000 at 15%%", arrivals)
	}
}

func TestTradeAccept(t *testing.T) {
	w := testWorld(VariantCrops)
	w.Water = 2
	k := WandererKind{Name: "Tuck", Give: ResourceSeeds, GiveAmount: 2, Want: ResourceWater, WantAmount: 1}

	msg := Trade(w, k, true)
	if w.Water != 1 || w.Seeds != 2 {
		t.Fatalf("water=%d seeds=%d after trade", w.Water, w.Seeds)
	}
	if strings.Contains(msg, "name") {
		t.Fatalf("non-fragment wanderer revealed a fragment: %q", msg)
	}
}

func TestTradeDeclineAndShortfall(t *testing.T) {
	w := testWorld(VariantNetwork)
	k, _ := wandererByName("Crest")

	if msg := Trade(w, k, false); msg != "Crest nods and moves on." {
		t.Fatalf("unexpected decline message %q", msg)
	}
	w.Water = 1
	if msg := Trade(w, k, true); msg != "you don't have enough water." {
		t.Fatalf("unexpected shortfall message %q", msg)
	}
	if w.Water != 1 || w.Scrap != 0 {
		t.Fatalf("state changed: water=%d scrap=%d", w.Water, w.Scrap)
	}
}

func TestFragmentTradeRevealsNextFragment(t *testing.T) {
	w := testWorld(VariantNetwork)
	w.AncestralRevealed = 2
	w.Water = 1
	k, _ := wandererByName("Sable")

	msg := Trade(w, k, true)
	if w.AncestralRevealed != 3 || !strings.Contains(msg, "'sol.'") {
		t.Fatalf("expected third fragment, got %d %q", w.AncestralRevealed, msg)
	}

	w.AncestralRevealed = len(ancestralFragments)
	w.Water = 1
	Trade(w, k, true)
	if w.AncestralRevealed != len(ancestralFragments) {
		t.Fatalf("revealed past the last fragment")
	}
}

func TestResolveStay(t *testing.T) {
	w := testWorld(VariantNetwork)
	k, _ := wandererByName("Fen")

	if _, stayed := ResolveStay(w, k, highRand()); stayed {
		t.Fatalf("failed draw should move on")
	}
	msg, stayed := ResolveStay(w, k, lowRand())
	if !stayed || !w.HasResident("Fen") {
		t.Fatalf("expected Fen to stay: %q", msg)
	}
	if !w.FlowersUnlocked {
		t.Fatalf("first stay should unlock the flower bed")
	}

	if _, stayed := ResolveStay(w, k, lowRand()); stayed {
		t.Fatalf("a resident cannot join twice")
	}
}

func TestResolveStayNoRoom(t *testing.T) {
	w := testWorld(VariantNetwork)
	for _, r := range residentKinds[:ResidentCapacity] {
		AddResident(w, r.Name)
	}
	k, _ := wandererByName("Crest")
	if w.HasResident("Crest") {
		t.Fatalf("test setup: Crest already present")
	}
	msg, stayed := ResolveStay(w, k, lowRand())
	if stayed || !strings.Contains(msg, "isn't room") {
		t.Fatalf("expected no room, got %q", msg)
	}
	if len(w.Residents) != ResidentCapacity {
		t.Fatalf("roster=%d", len(w.Residents))
	}
}

func wandererByName(name string) (WandererKind, bool) {
	for _, k := range WandererKinds() {
		if k.Name == name {
			return k, true
		}
	}
	return WandererKind{}, false
}
