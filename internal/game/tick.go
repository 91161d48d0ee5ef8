package game

import "math/rand/v2"

const (
	catcherInterval         = 4
	deepenedCatcherInterval = 3
	gardenBedInterval       = 8
)

// TickResult carries the notices one orchestrator pass produced, by step.
type TickResult struct {
	WeatherChanged bool
	Panel          string
	PowerGained    int
	Residents      string
	Catcher        string
	GardenBed      string
}

// Flashes lists the non-empty notices in step order.
func (r TickResult) Flashes() []string {
	out := make([]string, 0, 4)
	for _, msg := range []string{r.Panel, r.Residents, r.Catcher, r.GardenBed} {
		if msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// Tick runs the passive world update that follows every player action.
func Tick(w *World, rules Ruleset, rng *rand.Rand) TickResult {
	var res TickResult
	w.ActionCount++
	res.WeatherChanged = AdvanceWeather(w, rng)
	res.Panel = DegradePanel(w, rng, ConnectorGuarded(w))
	res.PowerGained = GeneratePower(w)
	res.Residents = TickResidents(w, rules, rng)

	if w.HasRainCatcher {
		interval := catcherInterval
		if w.HasDeepenedCatcher {
			interval = deepenedCatcherInterval
		}
		if w.ActionCount%interval == 0 {
			w.Water++
			res.Catcher = "the rain catcher has collected a little water."
		}
	}
	if w.HasGardenBed && w.ActionCount%gardenBedInterval == 0 {
		w.Seeds++
		res.GardenBed = "the garden bed has yielded " + w.SeedLabel() + "."
	}
	return res
}
