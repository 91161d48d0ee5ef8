package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	expeditionSteps     = 6
	encounterChance     = 0.12
	encounterSafeChance = 0.72
	maxEncounterDamage  = 2
)

// Haul is what an expedition carries home.
type Haul struct {
	Scrap  int
	Water  int
	Seeds  int
	Damage int
	Events []string
}

func (h Haul) empty() bool {
	return h.Scrap == 0 && h.Water == 0 && h.Seeds == 0
}

// Expedition walks the ruins beyond the settlement. The world is only touched
// when the expedition ends.
func Expedition(w *World, rng *rand.Rand) (Haul, bool) {
	var h Haul
	hp := w.HP
	for step := 0; step < expeditionSteps; step++ {
		if chance(rng, encounterChance) {
			if chance(rng, encounterSafeChance) {
				h.Events = append(h.Events, "something watches from the ruins, then loses interest.")
				continue
			}
			dmg := between(rng, 1, maxEncounterDamage)
			hp -= dmg
			h.Damage += dmg
			h.Events = append(h.Events, fmt.Sprintf("something lunges out of the dark. -%d hp.", dmg))
			if hp <= 0 {
				return h, false
			}
			continue
		}
		roll := rng.Float64()
		switch {
		case roll < 0.50:
			h.Scrap += between(rng, 1, 3)
		case roll < 0.75:
			h.Water += between(rng, 1, 2)
		default:
			h.Seeds++
		}
	}
	return h, true
}

// ReturnHome banks a surviving expedition's haul.
func ReturnHome(w *World, h Haul) string {
	w.Scrap += h.Scrap
	w.Water += h.Water
	w.Seeds += h.Seeds
	w.GatherCount++
	w.HP = StartingHP
	if h.empty() {
		return "you come back with nothing but sore feet."
	}
	parts := []string{}
	if h.Scrap > 0 {
		parts = append(parts, fmt.Sprintf("+%d scrap", h.Scrap))
	}
	if h.Water > 0 {
		parts = append(parts, fmt.Sprintf("+%d water", h.Water))
	}
	if h.Seeds > 0 {
		parts = append(parts, fmt.Sprintf("+%d %s", h.Seeds, w.SeedLabel()))
	}
	return "you make it back. " + strings.Join(parts, ", ") + "."
}

// Die handles an expedition that did not come back. The haul is lost.
func Die(w *World) string {
	w.Power /= 2
	w.Scrap /= 2
	if w.PanelState == PanelConnected {
		w.PanelState = PanelCleaned
	}
	w.HP = StartingHP
	msg := "you wake at the panel with no memory of the walk back. half your stores are gone and the leads have been pulled."
	if frag, ok := revealFragment(w); ok {
		msg += fmt.Sprintf(" someone has scratched a word into your palm: '%s'.", frag)
	}
	return msg
}
