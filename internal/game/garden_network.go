package game

import (
	"fmt"
	"math/rand/v2"
)

const (
	StateHypha       CellState = "hypha"
	StateNetwork     CellState = "network"
	StateMature      CellState = "mature"
	StateFruiting    CellState = "fruiting"
	StateDecomposing CellState = "decomposing"
	StateCompeting   CellState = "competing"
)

const (
	hyphaLinkAge       = 15
	networkMatureAge   = 50
	fruitingSpan       = 6
	hyphaDryRot        = 0.15
	fruitingChance     = 0.04
	fruitWaterChance   = 0.30
	fruitPowerChance   = 0.10
	decaySoilChance    = 0.15
	decayClearChance   = 0.10
	competingChance    = 0.008
	flowDonorMoisture  = 4
	flowNeedyMoisture  = 1
	extendMyceliumCost = 2
)

// NetworkRules is the mycorrhizal network garden.
type NetworkRules struct{}

func (NetworkRules) Variant() Variant { return VariantNetwork }

func (NetworkRules) States() []CellState {
	return []CellState{StateEmpty, StateHypha, StateNetwork, StateMature, StateFruiting, StateDecomposing, StateCompeting}
}

func (r NetworkRules) validState(s CellState) bool {
	for _, st := range r.States() {
		if st == s {
			return true
		}
	}
	return false
}

func (NetworkRules) IsLiving(s CellState) bool {
	return s == StateHypha || s == StateNetwork || s == StateMature || s == StateFruiting
}

// IsActive covers the connected part of the network.
func (NetworkRules) IsActive(s CellState) bool {
	return s == StateNetwork || s == StateMature || s == StateFruiting
}

func (NetworkRules) IsWeedy(s CellState) bool { return s == StateCompeting }

func (r NetworkRules) Waterable(s CellState) bool { return r.IsLiving(s) }

func (NetworkRules) StateLabel(s CellState) string {
	switch s {
	case StateEmpty:
		return "bare ground"
	case StateHypha:
		return "hypha threads"
	case StateNetwork:
		return "joined network"
	case StateMature:
		return "mature mat"
	case StateFruiting:
		return "fruiting"
	case StateDecomposing:
		return "decomposing"
	case StateCompeting:
		return "competing growth"
	}
	return string(s)
}

// Sow inoculates an empty plot.
func (r NetworkRules) Sow(w *World, idx int) string {
	return r.Inoculate(w, idx)
}

func (NetworkRules) Inoculate(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateEmpty {
		return "the ground there is already taken."
	}
	if w.Seeds < 1 {
		return "no spores."
	}
	w.Seeds--
	c.reset(StateHypha)
	return "you press spores into the soil. threads will come."
}

func (r NetworkRules) Water(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	return waterCell(w, idx, r.Waterable(w.Garden[idx].State))
}

func (NetworkRules) Clear(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateCompeting {
		return "there is nothing competing there."
	}
	c.reset(StateEmpty)
	return "you tear out the competing growth."
}

// Improve enriches an empty plot from the compost pile.
func (r NetworkRules) Improve(w *World, idx int) string {
	return r.Enrich(w, idx)
}

func (NetworkRules) Enrich(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	if !w.HasCompostPile {
		return "you have no compost pile."
	}
	c := &w.Garden[idx]
	if c.State != StateEmpty {
		return "enrich bare ground before anything takes it."
	}
	if w.CompostLevel < 1 {
		return "the compost pile is empty."
	}
	w.CompostLevel--
	c.addSoil(2)
	return fmt.Sprintf("you dig compost in. soil %d/%d.", c.Soil, SoilMax)
}

// Feed spends mycelium to enrich a connected cell.
func (r NetworkRules) Feed(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if !r.IsActive(c.State) {
		return "only the connected network can take food."
	}
	if w.Mycelium < 1 {
		return "you need mycelium."
	}
	w.Mycelium--
	c.addSoil(1)
	return "you fold mycelium back into the mat. the soil deepens."
}

// Extend grows the network into adjacent bare ground.
func (r NetworkRules) Extend(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateEmpty {
		return "the network can only reach into bare ground."
	}
	if countNeighbours(w, idx, r.IsActive) == 0 {
		return "nothing connected borders that ground."
	}
	if w.Mycelium < extendMyceliumCost {
		return fmt.Sprintf("you need %d mycelium.", extendMyceliumCost)
	}
	w.Mycelium -= extendMyceliumCost
	c.reset(StateHypha)
	return "you lay mycelium across the gap. threads reach out."
}

// Suppress turns competing growth into food for the network.
func (NetworkRules) Suppress(w *World, idx int) string {
	if !validIndex(idx) {
		return badCell(idx)
	}
	c := &w.Garden[idx]
	if c.State != StateCompeting {
		return "there is nothing competing there."
	}
	if w.Mycelium < 1 {
		return "you need mycelium."
	}
	w.Mycelium--
	c.reset(StateDecomposing)
	return "the network smothers the competing growth. it starts to break down."
}

func (r NetworkRules) Tick(w *World, rng *rand.Rand) string {
	flash := ""
	for i := range w.Garden {
		c := &w.Garden[i]
		living := r.IsLiving(c.State)

		weatherMoisture(c, w.Weather, living, rng)
		if living {
			c.Age++
		}
		links := countNeighbours(w, i, r.IsLiving)
		prev := c.State

		switch c.State {
		case StateHypha:
			if c.Age >= hyphaLinkAge && links >= 1 && c.Moisture > 0 {
				c.State = StateNetwork
			} else if c.Moisture == 0 && chance(rng, hyphaDryRot) {
				c.reset(StateDecomposing)
			}
		case StateNetwork:
			if links == 0 {
				c.State = StateHypha
			} else if c.Age >= networkMatureAge && links >= 2 && c.Soil >= 2 {
				c.State = StateMature
			}
		case StateMature:
			if c.Moisture >= 3 && c.Soil >= 3 && countNeighbours(w, i, isFruiting) == 0 && chance(rng, fruitingChance) {
				c.State = StateFruiting
				c.FruitAge = 0
				msg := fruit(w, rng)
				if flash == "" {
					flash = msg
				}
			}
		case StateFruiting:
			c.FruitAge++
			if c.FruitAge >= fruitingSpan {
				c.State = StateMature
				c.FruitAge = 0
			}
		case StateDecomposing:
			for _, j := range neighbours(i) {
				n := &w.Garden[j]
				if r.IsLiving(n.State) && chance(rng, decaySoilChance) {
					n.addSoil(1)
				}
			}
			if chance(rng, decayClearChance) {
				c.reset(StateEmpty)
			}
		case StateEmpty:
			if chance(rng, competingChance) {
				c.reset(StateCompeting)
			}
		}

		// Donors are judged on the state they entered the tick with.
		if (prev == StateNetwork || prev == StateMature) && c.Moisture >= flowDonorMoisture {
			for _, j := range neighbours(i) {
				n := &w.Garden[j]
				if r.IsLiving(n.State) && n.Moisture <= flowNeedyMoisture {
					c.addMoisture(-1)
					n.addMoisture(1)
					break
				}
			}
		}
	}
	return flash
}

func isFruiting(s CellState) bool { return s == StateFruiting }

func fruit(w *World, rng *rand.Rand) string {
	w.Mycelium++
	msg := "a flush of fruiting bodies pushes up. +1 mycelium"
	if chance(rng, fruitWaterChance) {
		w.Water++
		msg += ", +1 water"
	}
	if chance(rng, fruitPowerChance) {
		w.Power++
		msg += ", +1 power"
	}
	return msg + "."
}

func (r NetworkRules) Summary(w *World) GardenSummary {
	s := GardenSummary{Total: len(w.Garden)}
	for _, c := range w.Garden {
		switch c.State {
		case StateHypha:
			s.Hypha++
		case StateNetwork:
			s.Connected++
		case StateMature:
			s.Connected++
			s.Mature++
		case StateFruiting:
			s.Connected++
			s.Mature++
			s.Fruiting++
		case StateCompeting:
			s.Competing++
		}
	}
	return s
}
