package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

const (
	Version = "0.2.0"

	GardenWidth  = 12
	GardenHeight = 8
	GardenSize   = GardenWidth * GardenHeight

	ResidentCapacity = 8
	MoodMax          = 3

	SoilMin     = 1
	SoilMax     = 5
	MoistureMax = 5
	GrowthMax   = 100
	CompostMax  = 5
	StartingHP  = 5

	cropNone = "none"
)

type PanelState string

const (
	PanelNeglected PanelState = "neglected"
	PanelCleaned   PanelState = "cleaned"
	PanelConnected PanelState = "connected"
)

type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
	WeatherWindy  Weather = "windy"
)

var weatherCycle = []Weather{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherWindy}

type Variant string

const (
	VariantCrops   Variant = "crops"
	VariantNetwork Variant = "network"
)

func ParseVariant(raw string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantCrops:
		return VariantCrops, nil
	case VariantNetwork, "":
		return VariantNetwork, nil
	default:
		return "", fmt.Errorf("unknown garden variant: %s", raw)
	}
}

type CellState string

type Cell struct {
	State    CellState `json:"state"`
	Soil     int       `json:"soil"`
	Moisture int       `json:"moisture"`
	Crop     string    `json:"crop"`
	Growth   int       `json:"growth"`
	Age      int       `json:"age"`
	FruitAge int       `json:"fruit_age"`
}

func (c *Cell) addSoil(n int) {
	c.Soil = clamp(c.Soil+n, SoilMin, SoilMax)
}

func (c *Cell) addMoisture(n int) {
	c.Moisture = clamp(c.Moisture+n, 0, MoistureMax)
}

// reset moves the cell to an inactive state and clears its variant fields.
func (c *Cell) reset(state CellState) {
	c.State = state
	c.Crop = cropNone
	c.Growth = 0
	c.Age = 0
	c.FruitAge = 0
}

type Resident struct {
	Name string `json:"name"`
	Mood int    `json:"mood"`
	Days int    `json:"days"`
}

// World is the whole persisted settlement. One session owns it.
type World struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Seed    int64  `json:"seed"`

	PanelState      PanelState `json:"panel_state"`
	PanelEfficiency int        `json:"panel_efficiency"`
	CondDust        bool       `json:"cond_dust"`
	CondWire        bool       `json:"cond_wire"`
	CondDebris      bool       `json:"cond_debris"`
	CondConnector   bool       `json:"cond_connector"`

	Power    int `json:"power"`
	Scrap    int `json:"scrap"`
	Water    int `json:"water"`
	Seeds    int `json:"seeds"`
	Mycelium int `json:"mycelium"`

	TendCount         int `json:"tend_count"`
	GatherCount       int `json:"gather_count"`
	ActionCount       int `json:"action_count"`
	DaysFounded       int `json:"days_founded"`
	AncestralRevealed int `json:"ancestral_revealed"`

	HasJunctionBox        bool `json:"has_junction_box"`
	HasRainCatcher        bool `json:"has_rain_catcher"`
	HasGardenBed          bool `json:"has_garden_bed"`
	HasSignalBeacon       bool `json:"has_signal_beacon"`
	HasCompostPile        bool `json:"has_compost_pile"`
	HasReinforcedMounting bool `json:"has_reinforced_mounting"`
	HasDeepenedCatcher    bool `json:"has_deepened_catcher"`
	HasExtendedBeacon     bool `json:"has_extended_beacon"`
	HasBracedConnector    bool `json:"has_braced_connector"`
	HasTendingFrame       bool `json:"has_tending_frame"`
	CompostLevel          int  `json:"compost_level"`

	Weather         Weather `json:"weather"`
	WeatherDuration int     `json:"weather_duration"`

	Residents []Resident `json:"residents"`

	GardenVariant Variant     `json:"garden_variant"`
	Garden        []Cell      `json:"garden"`
	FrameRules    []FrameTask `json:"frame_rules"`

	FlowersUnlocked bool         `json:"flowers_unlocked"`
	Flowers         []FlowerSlot `json:"flowers"`

	HP       int   `json:"hp"`
	LastSeen int64 `json:"last_seen"`
}

// NewWorld builds a fresh settlement. The soil draw is the only random step.
func NewWorld(name string, variant Variant, seed int64) *World {
	w := defaultWorld()
	w.Name = strings.TrimSpace(name)
	if variant != "" {
		w.GardenVariant = variant
	}
	w.Seed = seed
	rng := NewRand(seed)
	for i := range w.Garden {
		w.Garden[i].Soil = between(rng, 1, 2)
	}
	return w
}

func defaultWorld() *World {
	w := &World{
		Version:         Version,
		PanelState:      PanelNeglected,
		PanelEfficiency: 100,
		Weather:         WeatherSunny,
		WeatherDuration: 8,
		Residents:       []Resident{},
		GardenVariant:   VariantNetwork,
		Garden:          emptyGarden(),
		FrameRules:      []FrameTask{},
		Flowers:         emptyFlowerBed(),
		HP:              StartingHP,
	}
	return w
}

func emptyGarden() []Cell {
	cells := make([]Cell, GardenSize)
	for i := range cells {
		cells[i] = Cell{State: StateEmpty, Soil: SoilMin, Crop: cropNone}
	}
	return cells
}

// DecodeWorld merges a saved record over a fresh default world: missing keys keep
// their defaults and unknown keys are ignored.
func DecodeWorld(data []byte) (*World, error) {
	w := defaultWorld()
	// Residents and the garden are replaced wholesale when present.
	w.Garden = nil
	w.Residents = nil
	w.Flowers = nil
	if err := json.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	w.Normalize()
	return w, nil
}

// Normalize repairs shapes and ranges after a load.
func (w *World) Normalize() {
	if w.Version == "" {
		w.Version = Version
	}
	switch w.PanelState {
	case PanelNeglected, PanelCleaned, PanelConnected:
	default:
		w.PanelState = PanelNeglected
	}
	if _, err := ParseVariant(string(w.GardenVariant)); err != nil || w.GardenVariant == "" {
		w.GardenVariant = VariantNetwork
	}
	validWeather := false
	for _, wt := range weatherCycle {
		if w.Weather == wt {
			validWeather = true
		}
	}
	if !validWeather {
		w.Weather = WeatherSunny
	}
	w.WeatherDuration = max(0, w.WeatherDuration)

	w.Power = max(0, w.Power)
	w.Scrap = max(0, w.Scrap)
	w.Water = max(0, w.Water)
	w.Seeds = max(0, w.Seeds)
	w.Mycelium = max(0, w.Mycelium)
	w.CompostLevel = clamp(w.CompostLevel, 0, CompostMax)
	w.AncestralRevealed = clamp(w.AncestralRevealed, 0, len(ancestralFragments))
	if w.HP <= 0 {
		w.HP = StartingHP
	}

	if len(w.Garden) != GardenSize {
		fresh := emptyGarden()
		copy(fresh, w.Garden)
		w.Garden = fresh
	}
	rules := RulesFor(w.GardenVariant)
	for i := range w.Garden {
		c := &w.Garden[i]
		if !rules.validState(c.State) {
			c.reset(StateEmpty)
		}
		if c.Crop == "" {
			c.Crop = cropNone
		}
		c.Soil = clamp(c.Soil, SoilMin, SoilMax)
		c.Moisture = clamp(c.Moisture, 0, MoistureMax)
		c.Growth = clamp(c.Growth, 0, GrowthMax)
	}

	if w.Residents == nil {
		w.Residents = []Resident{}
	}
	roster := make([]Resident, 0, len(w.Residents))
	seen := map[string]bool{}
	for _, r := range w.Residents {
		if r.Name == "" || seen[r.Name] || len(roster) >= ResidentCapacity {
			continue
		}
		// Unknown kinds would never tick or leave.
		if _, ok := ResidentKindByName(r.Name); !ok {
			continue
		}
		seen[r.Name] = true
		r.Mood = clamp(r.Mood, 0, MoodMax)
		if r.Mood == 0 {
			continue
		}
		roster = append(roster, r)
	}
	w.Residents = roster

	if w.FrameRules == nil {
		w.FrameRules = []FrameTask{}
	}
	if len(w.Flowers) != FlowerSlots {
		fresh := emptyFlowerBed()
		copy(fresh, w.Flowers)
		w.Flowers = fresh
	}
	RecalcEfficiency(w)
}

// SeedLabel names the seed-class resource for the world's garden variant.
func (w *World) SeedLabel() string {
	if w.GardenVariant == VariantCrops {
		return "seeds"
	}
	return "spores"
}

func (w *World) HasResident(name string) bool {
	for _, r := range w.Residents {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (w *World) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", w.Name),
		slog.String("panel", string(w.PanelState)),
		slog.Int("efficiency", w.PanelEfficiency),
		slog.Int("power", w.Power),
		slog.Int("scrap", w.Scrap),
		slog.Int("water", w.Water),
		slog.Int("residents", len(w.Residents)),
		slog.Int("action", w.ActionCount),
	)
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}
