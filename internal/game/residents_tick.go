package game

import "math/rand/v2"

const (
	interactionCheckChance = 0.08
	interactionFireChance  = 0.40
)

// Mood applies one tick of the mood rule.
func Mood(mood int, primary bool, secondary int) int {
	if primary {
		bonus := 0
		if secondary > 0 {
			bonus = 1
		}
		return min(MoodMax, mood+1+bonus)
	}
	return max(0, mood-1+min(0, secondary))
}

// TickResidents runs every resident once and returns at most one flash.
func TickResidents(w *World, rules Ruleset, rng *rand.Rand) string {
	if len(w.Residents) == 0 {
		return ""
	}
	flash := ""
	departing := map[string]bool{}
	for i := range w.Residents {
		r := &w.Residents[i]
		kind, ok := ResidentKindByName(r.Name)
		if !ok {
			continue
		}
		r.Days++
		r.Mood = Mood(r.Mood, kind.Primary.Met(w, rules), kind.Secondary.Delta(w, rules))
		if r.Mood == 0 {
			departing[r.Name] = true
			if flash == "" {
				flash = kind.Farewell
			}
			continue
		}
		if msg := kind.Effect.Apply(w, rules, rng, rng.Float64()); msg != "" && flash == "" {
			flash = msg
		}
	}

	if len(departing) > 0 {
		kept := w.Residents[:0]
		for _, r := range w.Residents {
			if !departing[r.Name] {
				kept = append(kept, r)
			}
		}
		w.Residents = kept
	}

	if len(w.Residents) >= 2 && flash == "" && chance(rng, interactionCheckChance) {
		flash = checkInteractions(w, rules, rng)
	}
	return flash
}

// InteractionEffect is the side effect of a resident pairing.
type InteractionEffect interface {
	Apply(w *World, rules Ruleset, rng *rand.Rand)
	interaction()
}

type GainResource struct {
	Resource Resource
	N        int
}

type EnrichLiving struct{}

type ClearAnyCondition struct{}

type MoistenDriest struct{}

type ShortenWeather struct{ N int }

func (e GainResource) Apply(w *World, _ Ruleset, _ *rand.Rand) { w.Grant(e.Resource, e.N) }

func (EnrichLiving) Apply(w *World, rules Ruleset, rng *rand.Rand) {
	living := livingCells(w, rules)
	if len(living) == 0 {
		return
	}
	w.Garden[living[rng.IntN(len(living))]].addSoil(1)
}

func (ClearAnyCondition) Apply(w *World, _ Ruleset, rng *rand.Rand) {
	active := w.ActiveConditions()
	if len(active) == 0 {
		return
	}
	w.setCondition(active[rng.IntN(len(active))], false)
}

func (MoistenDriest) Apply(w *World, rules Ruleset, _ *rand.Rand) {
	living := livingCells(w, rules)
	if len(living) == 0 {
		return
	}
	driest := living[0]
	for _, i := range living[1:] {
		if w.Garden[i].Moisture < w.Garden[driest].Moisture {
			driest = i
		}
	}
	w.Garden[driest].addMoisture(1)
}

func (e ShortenWeather) Apply(w *World, _ Ruleset, _ *rand.Rand) {
	w.WeatherDuration = max(0, w.WeatherDuration-e.N)
}

func (GainResource) interaction()      {}
func (EnrichLiving) interaction()      {}
func (ClearAnyCondition) interaction() {}
func (MoistenDriest) interaction()     {}
func (ShortenWeather) interaction()    {}

type Interaction struct {
	A, B   string
	Line   string
	Effect InteractionEffect
}

var interactions = []Interaction{
	{A: "Tuck", B: "Weft", Line: "something in the corner near the rain catcher looks more settled than usual.", Effect: GainResource{Resource: ResourceWater, N: 1}},
	{A: "Sable", B: "Thresh", Line: "Thresh and Sable occupy different parts of the space. the arrangement seems intentional.", Effect: GainResource{Resource: ResourceMycelium, N: 1}},
	{A: "Fen", B: "Reed", Line: "Fen and Reed seem to disagree about something near the garden. it doesn't appear to matter.", Effect: EnrichLiving{}},
	{A: "Pale", B: "Weft", Line: "the panel has been particularly stable lately. something about the attention it's getting.", Effect: ClearAnyCondition{}},
	{A: "Reed", B: "Tuck", Line: "the moisture around the garden plots is higher than the rain catcher alone would explain.", Effect: MoistenDriest{}},
	{A: "Drift", B: "Sable", Line: "Drift and Sable were in the same area earlier. the space felt briefly different.", Effect: ShortenWeather{N: 2}},
}

func Interactions() []Interaction {
	out := make([]Interaction, len(interactions))
	copy(out, interactions)
	return out
}

func checkInteractions(w *World, rules Ruleset, rng *rand.Rand) string {
	present := make([]Interaction, 0, len(interactions))
	for _, in := range interactions {
		if w.HasResident(in.A) && w.HasResident(in.B) {
			present = append(present, in)
		}
	}
	if len(present) == 0 {
		return ""
	}
	rng.Shuffle(len(present), func(i, j int) { present[i], present[j] = present[j], present[i] })
	for _, in := range present {
		if chance(rng, interactionFireChance) {
			in.Effect.Apply(w, rules, rng)
			return in.Line
		}
	}
	return ""
}

func livingCells(w *World, rules Ruleset) []int {
	out := make([]int, 0, len(w.Garden))
	for i, c := range w.Garden {
		if rules.IsLiving(c.State) {
			out = append(out, i)
		}
	}
	return out
}
