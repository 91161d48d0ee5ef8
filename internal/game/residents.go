package game

import (
	"fmt"
	"math/rand/v2"
)

// The resident conditions and effects are closed sets: each variant is a struct
// and the unexported marker method keeps other packages from adding more.

// Primary decides whether a resident is content this tick.
type Primary interface {
	Met(w *World, rules Ruleset) bool
	primary()
}

type Always struct{}

type EfficiencyAtLeast struct{ Percent int }

type WaterOrRain struct{ Water int }

type ResidentsAtLeast struct{ N int }

type ActiveCellsAtLeast struct{ N int }

type WaterAtLeast struct{ N int }

func (Always) Met(*World, Ruleset) bool { return true }

func (p EfficiencyAtLeast) Met(w *World, _ Ruleset) bool { return w.PanelEfficiency >= p.Percent }

func (p WaterOrRain) Met(w *World, _ Ruleset) bool {
	return w.Weather == WeatherRainy || w.Water >= p.Water
}

func (p ResidentsAtLeast) Met(w *World, _ Ruleset) bool { return len(w.Residents) >= p.N }

func (p ActiveCellsAtLeast) Met(w *World, rules Ruleset) bool { return ActiveCells(w, rules) >= p.N }

func (p WaterAtLeast) Met(w *World, _ Ruleset) bool { return w.Water >= p.N }

func (Always) primary()             {}
func (EfficiencyAtLeast) primary()  {}
func (WaterOrRain) primary()        {}
func (ResidentsAtLeast) primary()   {}
func (ActiveCellsAtLeast) primary() {}
func (WaterAtLeast) primary()       {}

// Secondary nudges mood by -1, 0 or +1.
type Secondary interface {
	Delta(w *World, rules Ruleset) int
	secondary()
}

type WeatherIs struct{ Weather Weather }

type WeatherNot struct{ Weather Weather }

type EfficiencyBand struct{ Percent int }

type ActiveCellsBonus struct{ N int }

type WeedsLow struct{ Max int }

type ResidentsBonus struct{ N int }

type WaterBand struct{ N int }

func (s WeatherIs) Delta(w *World, _ Ruleset) int {
	if w.Weather == s.Weather {
		return 1
	}
	return 0
}

func (s WeatherNot) Delta(w *World, _ Ruleset) int {
	if w.Weather != s.Weather {
		return 1
	}
	return -1
}

func (s EfficiencyBand) Delta(w *World, _ Ruleset) int {
	if w.PanelEfficiency >= s.Percent {
		return 1
	}
	return -1
}

func (s ActiveCellsBonus) Delta(w *World, rules Ruleset) int {
	if ActiveCells(w, rules) >= s.N {
		return 1
	}
	return 0
}

func (s WeedsLow) Delta(w *World, rules Ruleset) int {
	if WeedyCells(w, rules) <= s.Max {
		return 1
	}
	return -1
}

func (s ResidentsBonus) Delta(w *World, _ Ruleset) int {
	if len(w.Residents) >= s.N {
		return 1
	}
	return 0
}

func (s WaterBand) Delta(w *World, _ Ruleset) int {
	if w.Water >= s.N {
		return 1
	}
	return -1
}

func (WeatherIs) secondary()        {}
func (WeatherNot) secondary()       {}
func (EfficiencyBand) secondary()   {}
func (ActiveCellsBonus) secondary() {}
func (WeedsLow) secondary()         {}
func (ResidentsBonus) secondary()   {}
func (WaterBand) secondary()        {}

// Effect is a resident's passive contribution. roll is the resident's draw for
// this tick; rng serves any further picks.
type Effect interface {
	Apply(w *World, rules Ruleset, rng *rand.Rand, roll float64) string
	effect()
}

type ClearDust struct{ Chance float64 }

type RainWater struct{ Chance float64 }

type ImproveSoil struct{ Chance float64 }

type NudgeWeather struct{ Chance float64 }

type Yield struct {
	Resource Resource
	Chance   float64
	Message  string
}

// Passive effects act elsewhere (arrival odds, connector wear) and never roll.
type Passive struct{}

func (e ClearDust) Apply(w *World, _ Ruleset, _ *rand.Rand, roll float64) string {
	if roll >= e.Chance || !w.CondDust {
		return ""
	}
	w.setCondition(CondDust, false)
	return "the glass looks cleaner than it did."
}

func (e RainWater) Apply(w *World, _ Ruleset, _ *rand.Rand, roll float64) string {
	if roll >= e.Chance || w.Weather != WeatherRainy {
		return ""
	}
	w.Water++
	return "the ground near the rain catcher holds more than usual."
}

func (e ImproveSoil) Apply(w *World, _ Ruleset, rng *rand.Rand, roll float64) string {
	if roll >= e.Chance || len(w.Garden) == 0 {
		return ""
	}
	c := &w.Garden[rng.IntN(len(w.Garden))]
	if c.State != StateEmpty {
		return ""
	}
	c.addSoil(1)
	return "a corner of the garden looks different. the soil there is richer."
}

func (e NudgeWeather) Apply(w *World, _ Ruleset, _ *rand.Rand, roll float64) string {
	if roll < e.Chance && w.WeatherDuration > 2 {
		w.WeatherDuration--
	}
	return ""
}

func (e Yield) Apply(w *World, _ Ruleset, _ *rand.Rand, roll float64) string {
	if roll >= e.Chance {
		return ""
	}
	w.Grant(e.Resource, 1)
	return e.Message
}

func (Passive) Apply(*World, Ruleset, *rand.Rand, float64) string { return "" }

func (ClearDust) effect()    {}
func (RainWater) effect()    {}
func (ImproveSoil) effect()  {}
func (NudgeWeather) effect() {}
func (Yield) effect()        {}
func (Passive) effect()      {}

type ResidentKind struct {
	Name        string
	Description string
	Primary     Primary
	Secondary   Secondary
	Effect      Effect
	Farewell    string
	// CommunityBonus adds to wanderer arrival odds while present.
	CommunityBonus int
	// GuardsConnector halves connector wear while present.
	GuardsConnector bool
}

var residentKinds = []ResidentKind{
	{
		Name:        "Weft",
		Description: "arrived without announcement. the space around the panel feels more settled since.",
		Primary:     EfficiencyAtLeast{Percent: 75},
		Secondary:   WeatherIs{Weather: WeatherSunny},
		Effect:      ClearDust{Chance: 0.30},
		Farewell:    "the panel area feels slightly less certain than it did.",
	},
	{
		Name:        "Tuck",
		Description: "found the rain catcher before you pointed it out. has been near it since.",
		Primary:     WaterOrRain{Water: 3},
		Secondary:   WeatherIs{Weather: WeatherRainy},
		Effect:      RainWater{Chance: 0.20},
		Farewell:    "the rain catcher still works. something is missing from near it.",
	},
	{
		Name:           "Sable",
		Description:    "travels with something that isn't there anymore. still seems to expect it.",
		Primary:        ResidentsAtLeast{N: 2},
		Secondary:      ActiveCellsBonus{N: 2},
		Effect:         Passive{},
		Farewell:       "Sable has gone. no announcement. just the absence.",
		CommunityBonus: 4,
	},
	{
		Name:        "Fen",
		Description: "marks every surface they pass with a small impression. old habit, or so it seems.",
		Primary:     ActiveCellsAtLeast{N: 3},
		Secondary:   WeedsLow{Max: 1},
		Effect:      ImproveSoil{Chance: 0.15},
		Farewell:    "the small marks on the surfaces remain. Fen does not.",
	},
	{
		Name:        "Drift",
		Description: "knows seventeen ways to approach a problem. won't say where that comes from.",
		Primary:     Always{},
		Secondary:   EfficiencyBand{Percent: 50},
		Effect:      NudgeWeather{Chance: 0.25},
		Farewell:    "Drift moved on. this was probably always temporary.",
	},
	{
		Name:            "Pale",
		Description:     "quiet in a way that feels deliberate. takes up very little of anything.",
		Primary:         EfficiencyAtLeast{Percent: 50},
		Secondary:       ResidentsBonus{N: 3},
		Effect:          Passive{},
		Farewell:        "Pale is no longer here. the quiet is a different kind now.",
		GuardsConnector: true,
	},
	{
		Name:           "Thresh",
		Description:    "arrived with more than expected. or less. the accounting is unclear.",
		Primary:        ResidentsAtLeast{N: 2},
		Secondary:      WeatherNot{Weather: WeatherWindy},
		Effect:         Passive{},
		Farewell:       "Thresh left without taking much. or left taking everything. hard to tell.",
		CommunityBonus: 2,
	},
	{
		Name:        "Reed",
		Description: "has strong opinions about where things belong. not always wrong about it.",
		Primary:     ActiveCellsAtLeast{N: 5},
		Secondary:   WaterBand{N: 2},
		Effect:      Yield{Resource: ResourceSeeds, Chance: 0.18, Message: "something near the garden has yielded a little more than expected."},
		Farewell:    "Reed is gone. the garden opinions go with them.",
	},
	{
		Name:        "Lace",
		Description: "arrived during the last rain. hasn't said much about where from.",
		Primary:     WaterAtLeast{N: 2},
		Secondary:   WeatherIs{Weather: WeatherRainy},
		Effect:      Yield{Resource: ResourceMycelium, Chance: 0.18, Message: "pale threads have spread under Lace's step. +1 mycelium."},
		Farewell:    "Lace has gone. the rain, when it comes, feels less like it was expected.",
	},
	{
		Name:        "Crest",
		Description: "carries very little. moves like something that has been moving for a long time.",
		Primary:     Always{},
		Secondary:   EfficiencyBand{Percent: 50},
		Effect:      Yield{Resource: ResourceScrap, Chance: 0.18, Message: "Crest left a small pile of salvage by the panel."},
		Farewell:    "Crest has moved on. that was probably always going to happen.",
	},
}

func ResidentKinds() []ResidentKind {
	out := make([]ResidentKind, len(residentKinds))
	copy(out, residentKinds)
	return out
}

func ResidentKindByName(name string) (ResidentKind, bool) {
	for _, k := range residentKinds {
		if k.Name == name {
			return k, true
		}
	}
	return ResidentKind{}, false
}

var moodLabels = [...]string{"departing", "unsettled", "present", "settled"}

func MoodLabel(mood int) string {
	return moodLabels[clamp(mood, 0, MoodMax)]
}

// AddResident joins a named resident at mood 2.
func AddResident(w *World, name string) bool {
	if len(w.Residents) >= ResidentCapacity || w.HasResident(name) {
		return false
	}
	w.Residents = append(w.Residents, Resident{Name: name, Mood: 2})
	return true
}

func noRoomMessage(name string) string {
	return fmt.Sprintf("%s considers it. there isn't room.", name)
}

// CommunityBonus sums arrival bonuses from present residents.
func CommunityBonus(w *World) int {
	bonus := 0
	for _, r := range w.Residents {
		if k, ok := ResidentKindByName(r.Name); ok {
			bonus += k.CommunityBonus
		}
	}
	return bonus
}

// ConnectorGuarded reports a resident who keeps the connector from wearing.
func ConnectorGuarded(w *World) bool {
	for _, r := range w.Residents {
		if k, ok := ResidentKindByName(r.Name); ok && k.GuardsConnector {
			return true
		}
	}
	return false
}
