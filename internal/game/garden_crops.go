package game

import (
	"fmt"
	"math/rand/v2"
)

const (
	StateDug      CellState = "dug"
	StatePlanted  CellState = "planted"
	StateGrowing  CellState = "growing"
	StateReady    CellState = "ready"
	StateDepleted CellState = "depleted"
	StateWeedy    CellState = "weedy"
)

const (
	cropRecoverChance = 0.08
	cropWeedChance    = 0.01
)

type CropYield struct {
	Resource Resource
	Min      int
	Max      int
}

type Crop struct {
	Key         string
	Name        string
	Description string
	Yields      []CropYield
	SoilBonus   int
}

var crops = []Crop{
	{
		Key:         "bean",
		Name:        "Bean",
		Description: "climbs anything. leaves the ground richer than it found it.",
		Yields:      []CropYield{{Resource: ResourceSeeds, Min: 2, Max: 3}},
		SoilBonus:   1,
	},
	{
		Key:         "tuber",
		Name:        "Tuber",
		Description: "swollen roots that hold water through the dry weeks.",
		Yields:      []CropYield{{Resource: ResourceWater, Min: 1, Max: 2}, {Resource: ResourceSeeds, Min: 1, Max: 1}},
	},
	{
		Key:         "squash",
		Name:        "Squash",
		Description: "oil-rich seeds that burn slow in the cell heater.",
		Yields:      []CropYield{{Resource: ResourcePower, Min: 1, Max: 1}, {Resource: ResourceSeeds, Min: 1, Max: 2}},
	},
	{
		Key:         "flax",
		Name:        "Flax",
		Description: "fibre for bindings and patches.",
		Yields:      []CropYield{{Resource: ResourceScrap, Min: 1, Max: 2}},
	},
}

func Crops() []Crop {
	out := make([]Crop, len(crops))
	copy(out, crops)
	return out
}

func CropByKey(key string) (Crop, bool) {
	for _, c := range crops {
		if c.Key == key {
			return c, true
		}
	}
	return Crop{}, false
}

// CropRules is the crop farming garden.
type CropRules struct{}

func (CropRules) Variant() Variant { return VariantCrops }

func (CropRules) States() []CellState {
	return []CellState{StateEmpty, StateDug, StatePlanted, StateGrowing, StateReady, StateDepleted, StateWeedy}
}

func (r CropRules) validState(s CellState) bool {
	for _, st := range r.States() {
		if st == s {
			return true
		}
	}
	return false
}

func (CropRules) IsLiving(s CellState) bool {
	return s == StatePlanted || s == StateGrowing || s == StateReady
}

func (CropRules) IsActive(s CellState) bool {
	return s == StateGrowing || s == StateReady
}

func (CropRules) IsWeedy(s CellState) bool { return s == StateWeedy }

func (CropRules) Waterable(s CellState) bool {
	return s == StateDug || s == StatePlanted || s == StateGrowing
}

func (CropRules) exposed(s CellState) bool {
	return s == StateDug || s == StatePlanted || s == StateGrowing || s == StateReady
}

func (CropRules) StateLabel(s CellState) string {
	switch s {
	case StateEmpty:
		return "bare ground"
	case StateDug:
		return "turned earth"
	case StatePlanted:
		return "seeded"
	case StateGrowing:
		return "growing"
	case StateReady:
		return "ready to harvest"
	case StateDepleted:
		return "spent"
	case StateWeedy:
		return "overgrown"
	}
	return string(s)
}

// Sow digs an empty plot.
func (r CropRules) Sow(w *World, idx int) string {
	return r.Dig(w, idx)
}

func (CropRules) Dig(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	switch c.State {
	case StateEmpty:
		c.reset(StateDug)
		return "you turn the soil over."
	case StateWeedy:
		return "clear the weeds first."
	default:
		return "the ground there is already worked."
	}
}

func (CropRules) Plant(w *World, idx int, key string) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	crop, ok := CropByKey(key)
	if !ok {
		return "unknown crop."
	}
	c := &w.Garden[idx]
	if c.State != StateDug {
		return "dig the plot first."
	}
	if w.Seeds < 1 {
		return "no seeds."
	}
	w.Seeds--
	c.State = StatePlanted
	c.Crop = crop.Key
	c.Growth = 0
	return fmt.Sprintf("you press %s seed into the furrow.", crop.Key)
}

func (r CropRules) Water(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	return waterCell(w, idx, r.Waterable(w.Garden[idx].State))
}

// Harvest gathers a ready plot. bonus adds one unit per yield.
func (CropRules) Harvest(w *World, idx int, rng *rand.Rand, bonus bool) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateReady {
		return "nothing there is ready."
	}
	crop, ok := CropByKey(c.Crop)
	if !ok {
		c.reset(StateDepleted)
		return "whatever grew there has rotted."
	}
	parts := ""
	for _, y := range crop.Yields {
		n := between(rng, y.Min, y.Max)
		if bonus {
			n++
		}
		w.Grant(y.Resource, n)
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("+%d %s", n, w.ResourceLabel(y.Resource))
	}
	if crop.SoilBonus > 0 {
		c.addSoil(crop.SoilBonus)
	}
	c.reset(StateDepleted)
	msg := fmt.Sprintf("you harvest the %s. %s.", crop.Key, parts)
	if bonus {
		msg += " the pollinators did good work."
	}
	return msg
}

func (CropRules) Clear(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateWeedy {
		return "there are no weeds there."
	}
	c.reset(StateEmpty)
	return "you pull the weeds up by the roots."
}

// Improve spreads compost on a dug plot.
func (r CropRules) Improve(w *World, idx int) string {
	return r.Compost(w, idx)
}

func (CropRules) Compost(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateDug {
		return "compost goes on dug ground."
	}
	if w.CompostLevel < 1 {
		return "the compost pile is empty."
	}
	w.CompostLevel--
	c.addSoil(1)
	return fmt.Sprintf("you work compost in. soil %d/%d.", c.Soil, SoilMax)
}

func (r CropRules) Tick(w *World, rng *rand.Rand) string {
	flash := ""
	for i := range w.Garden {
		c := &w.Garden[i]
		weatherMoisture(c, w.Weather, r.exposed(c.State), rng)

		switch c.State {
		case StatePlanted, StateGrowing:
			if c.Moisture > 0 {
				c.Growth = min(GrowthMax, c.Growth+c.Soil*4+c.Moisture*2)
				c.State = StateGrowing
				if c.Growth >= GrowthMax {
					c.State = StateReady
					if flash == "" {
						flash = fmt.Sprintf("the %s is ready to harvest.", c.Crop)
					}
				}
			}
		case StateDepleted:
			if chance(rng, cropRecoverChance) {
				c.reset(StateEmpty)
			}
		case StateEmpty, StateDug:
			if chance(rng, cropWeedChance) {
				c.reset(StateWeedy)
			}
		}
	}
	return flash
}

func (r CropRules) Summary(w *World) GardenSummary {
	s := GardenSummary{Total: len(w.Garden)}
	for _, c := range w.Garden {
		switch c.State {
		case StatePlanted, StateGrowing:
			s.Growing++
		case StateReady:
			s.Ready++
		case StateWeedy:
			s.Weedy++
		}
	}
	return s
}
