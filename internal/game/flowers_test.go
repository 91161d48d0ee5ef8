package game

import "testing"

func TestPlantFlowerNeedsUnlock(t *testing.T) {
	w := testWorld(VariantNetwork)
	if msg := PlantFlower(w, 0, "clover"); msg != "there is nowhere for flowers yet." {
		t.Fatalf("unexpected message %q", msg)
	}
	w.FlowersUnlocked = true
	if msg := PlantFlower(w, 0, "rose"); msg != "unknown flower." {
		t.Fatalf("unexpected message %q", msg)
	}
	PlantFlower(w, 0, "clover")
	if w.Flowers[0].State != FlowerBudding || w.Flowers[0].Variety != "clover" {
		t.Fatalf("slot=%+v", w.Flowers[0])
	}
	if msg := PlantFlower(w, 0, "clover"); msg != "something is already growing there." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestFlowerLifecycle(t *testing.T) {
	w := testWorld(VariantNetwork)
	w.FlowersUnlocked = true
	PlantFlower(w, 5, "clover")

	ticks := 0
	for w.Flowers[5].State == FlowerBudding {
		TickFlowers(w, highRand())
		ticks++
		if ticks > 200 {
			t.Fatalf("clover never opened")
		}
	}
	if w.Flowers[5].State != FlowerFlowering || ticks != 56 {
		t.Fatalf("state=%s after %d ticks", w.Flowers[5].State, ticks)
	}
	for i := 0; i < 120; i++ {
		TickFlowers(w, highRand())
	}
	if w.Flowers[5].State != FlowerWilting {
		t.Fatalf("expected wilting, got %s", w.Flowers[5].State)
	}
	for i := 0; i < 50; i++ {
		TickFlowers(w, highRand())
	}
	if w.Flowers[5].State != FlowerEmpty || w.Flowers[5].Variety != cropNone {
		t.Fatalf("expected empty slot, got %+v", w.Flowers[5])
	}
}

func TestFlowersSelfSeed(t *testing.T) {
	w := testWorld(VariantNetwork)
	w.FlowersUnlocked = true
	w.Flowers[0] = FlowerSlot{State: FlowerFlowering, Variety: "marigold"}

	TickFlowers(w, lowRand())
	s := SummarizeFlowers(w)
	if s.Flowering != 1 || s.Budding != 1 || s.Planted != 2 {
		t.Fatalf("summary=%+v", s)
	}
}

func TestFlowerNeighbours(t *testing.T) {
	if got := len(FlowerNeighbours(0)); got != 8 {
		t.Fatalf("centre has %d neighbours, want 8", got)
	}
	for slot := 0; slot < FlowerSlots; slot++ {
		for _, n := range FlowerNeighbours(slot) {
			if n == slot {
				t.Fatalf("slot %d lists itself", slot)
			}
		}
	}
	if FlowerNeighbours(FlowerSlots) != nil {
		t.Fatalf("out of range slot should have no neighbours")
	}
}
