package game

import (
	"fmt"
	"math/rand/v2"
)

const (
	weatherMinDuration = 6
	weatherMaxDuration = 12
)

// AdvanceWeather counts the current weather down and rolls a new one at zero.
func AdvanceWeather(w *World, rng *rand.Rand) bool {
	w.WeatherDuration--
	if w.WeatherDuration > 0 {
		return false
	}
	w.Weather = weatherCycle[rng.IntN(len(weatherCycle))]
	w.WeatherDuration = between(rng, weatherMinDuration, weatherMaxDuration)
	return true
}

const (
	decaySevereDays   = 14
	decayHeavyDays    = 6
	decayModerateDays = 3
)

// ApplyDecay wears the settlement down for whole days spent away.
func ApplyDecay(w *World, days int) string {
	if days <= 0 {
		return ""
	}
	retain := 4
	if w.HasJunctionBox {
		retain = 2
	}
	switch {
	case days >= decaySevereDays:
		w.Power /= 4
		w.Scrap /= 3
		w.Water = 0
		if w.PanelState == PanelConnected {
			w.PanelState = PanelCleaned
		}
		return fmt.Sprintf("%d days away. the leads have rotted through and the stores are picked over.", days)
	case days >= decayHeavyDays:
		w.Power /= retain
		w.Water /= 2
		return fmt.Sprintf("%d days away. much of the charge has bled off.", days)
	case days >= decayModerateDays:
		w.Power = w.Power * 3 / (retain * 2)
		return fmt.Sprintf("%d days away. the cells have lost some charge.", days)
	default:
		if !w.HasJunctionBox {
			w.Power = max(0, w.Power-1)
		}
		return fmt.Sprintf("%d day(s) away. little has changed.", days)
	}
}
