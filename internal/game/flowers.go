package game

import (
	"fmt"
	"math/rand/v2"
)

type FlowerState string

const (
	FlowerEmpty     FlowerState = "empty"
	FlowerBudding   FlowerState = "budding"
	FlowerFlowering FlowerState = "flowering"
	FlowerWilting   FlowerState = "wilting"
)

const (
	FlowerSlots    = 13
	flowerMaturity = 100
	wiltRate       = 2
)

type FlowerSlot struct {
	State   FlowerState `json:"state"`
	Variety string      `json:"variety"`
	Age     float64     `json:"age"`
}

type FlowerVariety struct {
	Key         string
	Description string
	Speed       float64
	SeedChance  float64
	BloomLife   float64
}

var flowerVarieties = []FlowerVariety{
	{Key: "marigold", Description: "bright and fast. seeds readily.", Speed: 1.2, SeedChance: 0.04, BloomLife: 180},
	{Key: "lavender", Description: "slow to open. holds a long while.", Speed: 0.6, SeedChance: 0.01, BloomLife: 350},
	{Key: "clover", Description: "low and spreading. volunteers everywhere.", Speed: 1.8, SeedChance: 0.06, BloomLife: 120},
	{Key: "moonflower", Description: "rare. unhurried. blooms in its own time.", Speed: 0.4, SeedChance: 0.005, BloomLife: 500},
}

func FlowerVarieties() []FlowerVariety {
	out := make([]FlowerVariety, len(flowerVarieties))
	copy(out, flowerVarieties)
	return out
}

func FlowerVarietyByKey(key string) (FlowerVariety, bool) {
	for _, v := range flowerVarieties {
		if v.Key == key {
			return v, true
		}
	}
	return FlowerVariety{}, false
}

// FlowerOffsets places each slot as (row, col) around the centre. Columns step
// by two so the rings read round on a character grid.
var FlowerOffsets = [FlowerSlots][2]int{
	{0, 0},
	{-1, 0}, {1, 0}, {0, -2}, {0, 2},
	{-2, 0}, {2, 0}, {0, -4}, {0, 4},
	{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
}

var flowerNeighbourSteps = [8][2]int{{-1, 0}, {1, 0}, {0, -2}, {0, 2}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}}

func FlowerNeighbours(slot int) []int {
	if slot < 0 || slot >= FlowerSlots {
		return nil
	}
	r, c := FlowerOffsets[slot][0], FlowerOffsets[slot][1]
	out := make([]int, 0, len(flowerNeighbourSteps))
	for _, d := range flowerNeighbourSteps {
		for j, off := range FlowerOffsets {
			if off[0] == r+d[0] && off[1] == c+d[1] {
				out = append(out, j)
			}
		}
	}
	return out
}

func emptyFlowerBed() []FlowerSlot {
	bed := make([]FlowerSlot, FlowerSlots)
	for i := range bed {
		bed[i] = FlowerSlot{State: FlowerEmpty, Variety: cropNone}
	}
	return bed
}

func PlantFlower(w *World, slot int, variety string) string {
	if !w.FlowersUnlocked {
		return "there is nowhere for flowers yet."
	}
	if slot < 0 || slot >= len(w.Flowers) {
		return fmt.Sprintf("there is no bed at %d.", slot)
	}
	v, ok := FlowerVarietyByKey(variety)
	if !ok {
		return "unknown flower."
	}
	s := &w.Flowers[slot]
	if s.State != FlowerEmpty {
		return "something is already growing there."
	}
	*s = FlowerSlot{State: FlowerBudding, Variety: v.Key}
	return fmt.Sprintf("you press %s seed into the bed.", v.Key)
}

// TickFlowers advances the bed once. Self-seeding lands after the pass.
func TickFlowers(w *World, rng *rand.Rand) {
	type seeding struct {
		slot    int
		variety string
	}
	var seeds []seeding
	for i := range w.Flowers {
		s := &w.Flowers[i]
		v, _ := FlowerVarietyByKey(s.Variety)
		switch s.State {
		case FlowerBudding:
			s.Age += v.Speed
			if s.Age >= flowerMaturity {
				s.State = FlowerFlowering
				s.Age = 0
			}
		case FlowerFlowering:
			s.Age++
			if chance(rng, v.SeedChance) {
				open := make([]int, 0, 8)
				for _, n := range FlowerNeighbours(i) {
					if w.Flowers[n].State == FlowerEmpty {
						open = append(open, n)
					}
				}
				if len(open) > 0 {
					seeds = append(seeds, seeding{slot: open[rng.IntN(len(open))], variety: s.Variety})
				}
			}
			if s.Age >= v.BloomLife {
				s.State = FlowerWilting
				s.Age = 0
			}
		case FlowerWilting:
			s.Age += wiltRate
			if s.Age >= flowerMaturity {
				*s = FlowerSlot{State: FlowerEmpty, Variety: cropNone}
			}
		}
	}
	for _, sd := range seeds {
		if w.Flowers[sd.slot].State == FlowerEmpty {
			w.Flowers[sd.slot] = FlowerSlot{State: FlowerBudding, Variety: sd.variety}
		}
	}
}

type FlowerSummary struct {
	Planted   int
	Budding   int
	Flowering int
	Wilting   int
	Empty     int
}

func SummarizeFlowers(w *World) FlowerSummary {
	var s FlowerSummary
	for _, f := range w.Flowers {
		switch f.State {
		case FlowerBudding:
			s.Budding++
		case FlowerFlowering:
			s.Flowering++
		case FlowerWilting:
			s.Wilting++
		default:
			s.Empty++
		}
	}
	s.Planted = len(w.Flowers) - s.Empty
	return s
}
