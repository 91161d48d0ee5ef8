package game

import "math/rand/v2"

type fixedSource uint64

func (s fixedSource) Uint64() uint64 { return uint64(s) }

// lowRand makes every probability check pass.
func lowRand() *rand.Rand {
	return rand.New(fixedSource(1<<63 | 1))
}

// highRand makes every probability check fail and IntN pick its last option.
func highRand() *rand.Rand {
	return rand.New(fixedSource(^uint64(0)))
}

func testWorld(variant Variant) *World {
	w := NewWorld("Test", variant, 7)
	return w
}

func connectedWorld(variant Variant) *World {
	w := testWorld(variant)
	w.PanelState = PanelConnected
	w.HasGardenBed = true
	RecalcEfficiency(w)
	return w
}

func checkInvariants(t interface{ Fatalf(string, ...any) }, w *World) {
	for _, r := range []Resource{ResourcePower, ResourceScrap, ResourceWater, ResourceSeeds, ResourceMycelium} {
		if w.Amount(r) < 0 {
			t.Fatalf("%s went negative: %d", r, w.Amount(r))
		}
	}
	for i, c := range w.Garden {
		if c.Soil < SoilMin || c.Soil > SoilMax {
			t.Fatalf("cell %d soil out of range: %d", i, c.Soil)
		}
		if c.Moisture < 0 || c.Moisture > MoistureMax {
			t.Fatalf("cell %d moisture out of range: %d", i, c.Moisture)
		}
	}
	if len(w.Residents) > ResidentCapacity {
		t.Fatalf("roster over capacity: %d", len(w.Residents))
	}
	for _, r := range w.Residents {
		if r.Mood < 1 || r.Mood > MoodMax {
			t.Fatalf("resident %s has mood %d", r.Name, r.Mood)
		}
	}
	if w.CompostLevel < 0 || w.CompostLevel > CompostMax {
		t.Fatalf("compost level out of range: %d", w.CompostLevel)
	}
}
