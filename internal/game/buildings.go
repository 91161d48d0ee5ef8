package game

import (
	"fmt"
	"strings"
)

type BuildingKey string

const (
	BuildJunctionBox        BuildingKey = "junction_box"
	BuildRainCatcher        BuildingKey = "rain_catcher"
	BuildGardenBed          BuildingKey = "garden_bed"
	BuildSignalBeacon       BuildingKey = "signal_beacon"
	BuildCompostPile        BuildingKey = "compost_pile"
	BuildReinforcedMounting BuildingKey = "reinforced_mounting"
	BuildDeepenedCatcher    BuildingKey = "deepened_catcher"
	BuildExtendedBeacon     BuildingKey = "extended_beacon"
	BuildBracedConnector    BuildingKey = "braced_connector"
	BuildTendingFrame       BuildingKey = "tending_frame"
)

type Building struct {
	Key         BuildingKey
	Name        string
	Description string
	Cost        Cost
	Requires    BuildingKey
}

var buildings = []Building{
	{Key: BuildJunctionBox, Name: "junction box", Description: "stores power between sessions", Cost: Cost{ResourceScrap: 5}},
	{Key: BuildRainCatcher, Name: "rain catcher", Description: "collects water passively", Cost: Cost{ResourceScrap: 3}},
	{Key: BuildGardenBed, Name: "garden bed", Description: "a place to tend the garden", Cost: Cost{ResourceScrap: 4, ResourceSeeds: 2}},
	{Key: BuildSignalBeacon, Name: "signal beacon", Description: "draws others toward the settlement", Cost: Cost{ResourceScrap: 8, ResourcePower: 10}},
	{Key: BuildCompostPile, Name: "compost pile", Description: "breaks down matter, improves soil", Cost: Cost{ResourceScrap: 4}},
	{Key: BuildReinforcedMounting, Name: "reinforced mounting", Description: "debris settles less at the base", Cost: Cost{ResourceScrap: 3}},
	{Key: BuildDeepenedCatcher, Name: "deepened catcher", Description: "collects water every 3 actions instead of 4", Cost: Cost{ResourceScrap: 4}, Requires: BuildRainCatcher},
	{Key: BuildExtendedBeacon, Name: "extended beacon", Description: "signal carries further", Cost: Cost{ResourceScrap: 5}, Requires: BuildSignalBeacon},
	{Key: BuildBracedConnector, Name: "braced connector", Description: "connector wears more slowly", Cost: Cost{ResourceScrap: 3}},
	{Key: BuildTendingFrame, Name: "tending frame", Description: "tends the garden while you are away", Cost: Cost{ResourceScrap: 8, ResourcePower: 3}, Requires: BuildGardenBed},
}

func Buildings() []Building {
	out := make([]Building, len(buildings))
	copy(out, buildings)
	return out
}

func BuildingByKey(key string) (Building, bool) {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
	for _, b := range buildings {
		if string(b.Key) == key {
			return b, true
		}
	}
	return Building{}, false
}

func (w *World) flag(key BuildingKey) *bool {
	switch key {
	case BuildJunctionBox:
		return &w.HasJunctionBox
	case BuildRainCatcher:
		return &w.HasRainCatcher
	case BuildGardenBed:
		return &w.HasGardenBed
	case BuildSignalBeacon:
		return &w.HasSignalBeacon
	case BuildCompostPile:
		return &w.HasCompostPile
	case BuildReinforcedMounting:
		return &w.HasReinforcedMounting
	case BuildDeepenedCatcher:
		return &w.HasDeepenedCatcher
	case BuildExtendedBeacon:
		return &w.HasExtendedBeacon
	case BuildBracedConnector:
		return &w.HasBracedConnector
	case BuildTendingFrame:
		return &w.HasTendingFrame
	}
	return nil
}

func (w *World) Has(key BuildingKey) bool {
	if f := w.flag(key); f != nil {
		return *f
	}
	return false
}

func (c Cost) Describe(w *World) string {
	parts := make([]string, 0, len(c))
	for _, r := range resourceOrder {
		if n, ok := c[r]; ok {
			parts = append(parts, fmt.Sprintf("%d %s", n, w.ResourceLabel(r)))
		}
	}
	return strings.Join(parts, ", ")
}

// Build constructs a building when the panel is live and the stores cover it.
func Build(w *World, key string) string {
	b, ok := BuildingByKey(key)
	if !ok {
		return "you don't know how to build that."
	}
	if w.PanelState != PanelConnected {
		return "nothing can be built until the panel is connected."
	}
	if w.Has(b.Key) {
		return fmt.Sprintf("the %s is already built.", b.Name)
	}
	if b.Requires != "" && !w.Has(b.Requires) {
		req, _ := BuildingByKey(string(b.Requires))
		return fmt.Sprintf("the %s needs a %s first.", b.Name, req.Name)
	}
	if r, ok := w.canAfford(b.Cost); !ok {
		return fmt.Sprintf("you need %d %s.", b.Cost[r], w.ResourceLabel(r))
	}
	w.pay(b.Cost)
	*w.flag(b.Key) = true
	return fmt.Sprintf("the %s is built. %s.", b.Name, b.Description)
}
