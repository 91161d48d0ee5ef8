package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const secondsPerDay = 86400

// Session owns a world for the length of one sitting.
type Session struct {
	World       *World
	Rules       Ruleset
	Pollinators Pollinators
	Visitor     *WandererKind

	rng *rand.Rand
}

type ActionResult struct {
	Handled bool
	Message string
	Flashes []string
	Ticked  bool
}

type actionKind int

const (
	actionPanel actionKind = iota
	actionGarden
	actionFlowers
)

func NewSession(w *World, rng *rand.Rand) *Session {
	if rng == nil {
		rng = NewRand(w.Seed)
	}
	return &Session{
		World: w,
		Rules: RulesFor(w.GardenVariant),
		rng:   rng,
	}
}

// DaysAway counts whole days between the last session end and now.
func DaysAway(w *World, now time.Time) int {
	if w.LastSeen <= 0 {
		return 0
	}
	elapsed := now.Unix() - w.LastSeen
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / secondsPerDay)
}

// Resume applies absence decay for the time since the world was last closed.
func (s *Session) Resume(now time.Time) string {
	days := DaysAway(s.World, now)
	s.World.LastSeen = now.Unix()
	if days == 0 {
		return ""
	}
	s.World.DaysFounded += days
	return ApplyDecay(s.World, days)
}

func (s *Session) Close(now time.Time) {
	s.World.LastSeen = now.Unix()
}

// advance runs the passive update that follows one player action.
func (s *Session) advance(kind actionKind) []string {
	w := s.World
	flashes := make([]string, 0, 4)
	switch kind {
	case actionGarden:
		if msg := s.Rules.Tick(w, s.rng); msg != "" {
			flashes = append(flashes, msg)
		}
		if w.GardenVariant == VariantCrops {
			s.Pollinators = s.Pollinators.Step(w, s.Rules, s.rng)
		}
	case actionFlowers:
		TickFlowers(w, s.rng)
	}

	flashes = append(flashes, Tick(w, s.Rules, s.rng).Flashes()...)

	if msg := ApplyFrame(w, s.Rules, s.rng); msg != "" {
		flashes = append(flashes, msg)
	}
	if s.Visitor == nil {
		if k, ok := CheckArrival(w, s.rng); ok {
			s.Visitor = &k
			flashes = append(flashes, fmt.Sprintf("someone is approaching. %s. %s", k.Name, k.Offer(w)))
		}
	}
	return flashes
}

func (s *Session) act(kind actionKind, msg string) ActionResult {
	return ActionResult{Handled: true, Message: msg, Flashes: s.advance(kind), Ticked: true}
}

func (s *Session) Tend() ActionResult {
	return s.act(actionPanel, Tend(s.World))
}

func (s *Session) Maintain(c Condition) ActionResult {
	return s.act(actionPanel, Maintain(s.World, c))
}

func (s *Session) Build(key string) ActionResult {
	return s.act(actionPanel, Build(s.World, key))
}

func (s *Session) Wait() ActionResult {
	return s.act(actionPanel, "you sit with the panel a while.")
}

func (s *Session) gardenReady() (string, bool) {
	if !s.World.HasGardenBed {
		return "you need a garden bed before anything will grow here.", false
	}
	return "", true
}

func (s *Session) garden(idx int, fn func(w *World, idx int) string) ActionResult {
	if msg, ok := s.gardenReady(); !ok {
		return ActionResult{Handled: true, Message: msg}
	}
	return s.act(actionGarden, fn(s.World, idx))
}

func (s *Session) Sow(idx int) ActionResult {
	return s.garden(idx, s.Rules.Sow)
}

func (s *Session) Water(idx int) ActionResult {
	return s.garden(idx, s.Rules.Water)
}

func (s *Session) Clear(idx int) ActionResult {
	return s.garden(idx, s.Rules.Clear)
}

func (s *Session) Improve(idx int) ActionResult {
	return s.garden(idx, s.Rules.Improve)
}

func (s *Session) Plant(idx int, crop string) ActionResult {
	rules, ok := s.Rules.(CropRules)
	if !ok {
		return ActionResult{Handled: true, Message: "the network takes spores, not seed. try inoculate."}
	}
	return s.garden(idx, func(w *World, i int) string { return rules.Plant(w, i, crop) })
}

func (s *Session) Harvest(idx int) ActionResult {
	rules, ok := s.Rules.(CropRules)
	if !ok {
		return ActionResult{Handled: true, Message: "the network fruits on its own."}
	}
	return s.garden(idx, func(w *World, i int) string {
		if !validIndex(i) {
			return badCell(i)
		}
		x, y := Coords(i)
		return rules.Harvest(w, i, s.rng, s.Pollinators.Nearby(x, y))
	})
}

func (s *Session) network(idx int, fn func(r NetworkRules, w *World, idx int) string) ActionResult {
	rules, ok := s.Rules.(NetworkRules)
	if !ok {
		return ActionResult{Handled: true, Message: "that only works on a mycelium network."}
	}
	return s.garden(idx, func(w *World, i int) string { return fn(rules, w, i) })
}

func (s *Session) Feed(idx int) ActionResult {
	return s.network(idx, NetworkRules.Feed)
}

func (s *Session) Extend(idx int) ActionResult {
	return s.network(idx, NetworkRules.Extend)
}

func (s *Session) Suppress(idx int) ActionResult {
	return s.network(idx, NetworkRules.Suppress)
}

func (s *Session) AddCompost() ActionResult {
	return s.act(actionPanel, AddCompost(s.World))
}

func (s *Session) ToggleFrame(t FrameTask) ActionResult {
	return ActionResult{Handled: true, Message: ToggleFrameRule(s.World, t)}
}

// Trade settles the waiting visitor's offer and whether they stay.
func (s *Session) Trade(accept bool) ActionResult {
	if s.Visitor == nil {
		return ActionResult{Handled: true, Message: "no one is waiting."}
	}
	k := *s.Visitor
	s.Visitor = nil
	msg := Trade(s.World, k, accept)
	stay, _ := ResolveStay(s.World, k, s.rng)
	return s.act(actionPanel, msg+" "+stay)
}

func (s *Session) Explore() ActionResult {
	haul, survived := Expedition(s.World, s.rng)
	var msg string
	if survived {
		msg = ReturnHome(s.World, haul)
	} else {
		msg = Die(s.World)
	}
	res := s.act(actionPanel, msg)
	res.Flashes = append(haul.Events, res.Flashes...)
	return res
}

func (s *Session) PlantFlower(slot int, variety string) ActionResult {
	return s.act(actionFlowers, PlantFlower(s.World, slot, variety))
}

// TendFlowers lets the bed grow without planting.
func (s *Session) TendFlowers() ActionResult {
	if !s.World.FlowersUnlocked {
		return ActionResult{Handled: true, Message: "there is nowhere for flowers yet."}
	}
	return s.act(actionFlowers, "you sit by the flowers a while.")
}
