package game

import (
	"fmt"
	"math/rand/v2"
)

type Condition string

const (
	CondDust      Condition = "dust"
	CondWire      Condition = "wire"
	CondDebris    Condition = "debris"
	CondConnector Condition = "connector"
)

// conditionOrder is both the degradation priority and the maintenance priority.
var conditionOrder = []Condition{CondDust, CondWire, CondDebris, CondConnector}

const (
	tendsToClean   = 3
	connectCost    = 2
	conditionCost  = 1
	efficiencyStep = 25
)

type degradeRule struct {
	cond    Condition
	weather Weather // empty means any weather
	chance  float64
}

var degradeRules = []degradeRule{
	{cond: CondDust, weather: WeatherSunny, chance: 0.08},
	{cond: CondWire, weather: WeatherRainy, chance: 0.10},
	{cond: CondDebris, weather: WeatherWindy, chance: 0.09},
	{cond: CondConnector, chance: 0.02},
}

var conditionLabels = map[Condition]string{
	CondDust:      "dust has settled across the cells",
	CondWire:      "a wire has worked loose in the wet",
	CondDebris:    "wind has thrown debris against the frame",
	CondConnector: "the main connector is corroding",
}

var conditionFixed = map[Condition]string{
	CondDust:      "you brush the dust from the cells.",
	CondWire:      "you re-seat the wire and bind it with scrap.",
	CondDebris:    "you clear the debris and patch the frame.",
	CondConnector: "you scrape the connector clean and re-crimp it.",
}

func (w *World) conditionActive(c Condition) bool {
	switch c {
	case CondDust:
		return w.CondDust
	case CondWire:
		return w.CondWire
	case CondDebris:
		return w.CondDebris
	case CondConnector:
		return w.CondConnector
	}
	return false
}

func (w *World) setCondition(c Condition, on bool) {
	switch c {
	case CondDust:
		w.CondDust = on
	case CondWire:
		w.CondWire = on
	case CondDebris:
		w.CondDebris = on
	case CondConnector:
		w.CondConnector = on
	}
	RecalcEfficiency(w)
}

// ActiveConditions lists outstanding conditions in priority order.
func (w *World) ActiveConditions() []Condition {
	out := make([]Condition, 0, len(conditionOrder))
	for _, c := range conditionOrder {
		if w.conditionActive(c) {
			out = append(out, c)
		}
	}
	return out
}

func ParseCondition(raw string) (Condition, bool) {
	for _, c := range conditionOrder {
		if string(c) == raw {
			return c, true
		}
	}
	return "", false
}

func ConditionLabel(c Condition) string {
	return conditionLabels[c]
}

func RecalcEfficiency(w *World) {
	w.PanelEfficiency = max(0, 100-efficiencyStep*len(w.ActiveConditions()))
}

// Tend advances the panel lifecycle by one step.
func Tend(w *World) string {
	w.TendCount++
	msg := tendPanel(w)
	if reveal := checkTendMilestone(w); reveal != "" {
		msg += " " + reveal
	}
	return msg
}

func tendPanel(w *World) string {
	switch w.PanelState {
	case PanelNeglected:
		if w.TendCount >= tendsToClean {
			w.PanelState = PanelCleaned
			return "the last of the grime comes away. the panel is clean, but nothing is connected."
		}
		return neglectedTendLines[(w.TendCount-1)%len(neglectedTendLines)]
	case PanelCleaned:
		if w.Scrap < connectCost {
			return fmt.Sprintf("you need %d scrap to wire the panel in.", connectCost)
		}
		w.Scrap -= connectCost
		w.PanelState = PanelConnected
		w.Power++
		RecalcEfficiency(w)
		return "you splice the leads. a faint hum. the panel is connected."
	case PanelConnected:
		if active := w.ActiveConditions(); len(active) > 0 {
			return Maintain(w, active[0])
		}
		w.Power++
		return "you angle the panel toward the light. +1 power."
	}
	return "the panel does not respond."
}

var neglectedTendLines = []string{
	"you scrape at years of grime. the glass underneath is cracked but whole.",
	"you work the frame loose from the vines. it might still turn toward the sun.",
}

// Maintain resolves one outstanding condition.
func Maintain(w *World, c Condition) string {
	if w.PanelState != PanelConnected {
		return "the panel is not connected yet."
	}
	if !w.conditionActive(c) {
		return fmt.Sprintf("there is no %s to fix.", c)
	}
	cost := 0
	if c != CondDust {
		cost = conditionCost
	}
	if w.Scrap < cost {
		return fmt.Sprintf("you need %d scrap to fix the %s.", cost, c)
	}
	w.Scrap -= cost
	w.setCondition(c, false)
	return conditionFixed[c]
}

// DegradePanel rolls for at most one new condition. guarded halves connector odds.
func DegradePanel(w *World, rng *rand.Rand, guarded bool) string {
	if w.PanelState != PanelConnected {
		return ""
	}
	for _, rule := range degradeRules {
		if w.conditionActive(rule.cond) {
			continue
		}
		if rule.weather != "" && rule.weather != w.Weather {
			continue
		}
		p := rule.chance
		switch rule.cond {
		case CondConnector:
			if guarded {
				p *= 0.5
			}
			if w.HasBracedConnector {
				p *= 0.5
			}
		case CondDebris:
			if w.HasReinforcedMounting {
				p *= 0.5
			}
		}
		if chance(rng, p) {
			w.setCondition(rule.cond, true)
			return conditionLabels[rule.cond] + "."
		}
	}
	return ""
}

// PowerInterval is the number of actions between passive power units.
func PowerInterval(efficiency int) int {
	switch {
	case efficiency >= 75:
		return 5
	case efficiency >= 50:
		return 7
	case efficiency >= 25:
		return 10
	default:
		return 15
	}
}

// GeneratePower returns the power granted this tick.
func GeneratePower(w *World) int {
	if w.PanelState != PanelConnected {
		return 0
	}
	if w.ActionCount%PowerInterval(w.PanelEfficiency) != 0 {
		return 0
	}
	gained := 1
	if w.HasJunctionBox && w.PanelEfficiency >= 75 {
		gained++
	}
	w.Power += gained
	return gained
}
