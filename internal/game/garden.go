package game

import (
	"fmt"
	"math/rand/v2"
)

const StateEmpty CellState = "empty"

// Ruleset is one garden behaviour model over the shared grid. The variant is fixed
// when the world is created.
type Ruleset interface {
	Variant() Variant
	// Tick advances every cell once in row-major order. Later cells see earlier
	// cells' updated values.
	Tick(w *World, rng *rand.Rand) string
	Sow(w *World, idx int) string
	Water(w *World, idx int) string
	Clear(w *World, idx int) string
	Improve(w *World, idx int) string
	Summary(w *World) GardenSummary

	IsLiving(s CellState) bool
	IsActive(s CellState) bool
	IsWeedy(s CellState) bool
	Waterable(s CellState) bool
	StateLabel(s CellState) string
	States() []CellState

	validState(s CellState) bool
}

type GardenSummary struct {
	Total     int
	Growing   int
	Ready     int
	Weedy     int
	Hypha     int
	Connected int
	Mature    int
	Fruiting  int
	Competing int
}

func RulesFor(v Variant) Ruleset {
	if v == VariantCrops {
		return CropRules{}
	}
	return NetworkRules{}
}

func Index(x, y int) int {
	return y*GardenWidth + x
}

func Coords(idx int) (int, int) {
	return idx % GardenWidth, idx / GardenWidth
}

func InBounds(x, y int) bool {
	return x >= 0 && x < GardenWidth && y >= 0 && y < GardenHeight
}

func validIndex(idx int) bool {
	return idx >= 0 && idx < GardenSize
}

var orthogonalSteps = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// neighbours returns orthogonal neighbour indices: left, right, up, down.
func neighbours(idx int) []int {
	x, y := Coords(idx)
	out := make([]int, 0, 4)
	for _, d := range orthogonalSteps {
		nx, ny := x+d[0], y+d[1]
		if InBounds(nx, ny) {
			out = append(out, Index(nx, ny))
		}
	}
	return out
}

func countNeighbours(w *World, idx int, match func(CellState) bool) int {
	n := 0
	for _, j := range neighbours(idx) {
		if match(w.Garden[j].State) {
			n++
		}
	}
	return n
}

// ActiveCells counts cells the resident conditions treat as thriving.
func ActiveCells(w *World, rules Ruleset) int {
	n := 0
	for _, c := range w.Garden {
		if rules.IsActive(c.State) {
			n++
		}
	}
	return n
}

func WeedyCells(w *World, rules Ruleset) int {
	n := 0
	for _, c := range w.Garden {
		if rules.IsWeedy(c.State) {
			n++
		}
	}
	return n
}

// weatherMoisture applies one tick of rain or evaporation to a cell.
func weatherMoisture(c *Cell, weather Weather, exposed bool, rng *rand.Rand) {
	if weather == WeatherRainy {
		if exposed && chance(rng, 0.6) {
			c.addMoisture(1)
		}
		return
	}
	if c.Moisture <= 0 {
		return
	}
	if weather == WeatherSunny || weather == WeatherWindy {
		c.addMoisture(-2)
		return
	}
	c.addMoisture(-1)
}

func waterCell(w *World, idx int, waterable bool) string {
	if !waterable {
		return "there's nothing there to water."
	}
	if w.Water < 1 {
		return "you need water."
	}
	w.Water--
	w.Garden[idx].addMoisture(2)
	return "you water the ground. it darkens and drinks."
}

// AddCompost turns one scrap into a unit of compost.
func AddCompost(w *World) string {
	if !w.HasCompostPile {
		return "you have no compost pile."
	}
	if w.CompostLevel >= CompostMax {
		return "the compost pile is full."
	}
	if w.Scrap < 1 {
		return "you need scrap to feed the pile."
	}
	w.Scrap--
	w.CompostLevel++
	return fmt.Sprintf("you work scraps into the pile. compost %d/%d.", w.CompostLevel, CompostMax)
}

func badCell(idx int) string {
	return fmt.Sprintf("there is no plot at %d.", idx)
}
