package main

import (
	"github.com/mcweebus/quietcurrent/internal/game"
)

// connectScrap is what wiring a cleaned panel costs.
const connectScrap = 2

// buildOrder is the order an unhurried player raises things in.
var buildOrder = []game.BuildingKey{
	game.BuildGardenBed,
	game.BuildRainCatcher,
	game.BuildJunctionBox,
	game.BuildCompostPile,
	game.BuildBracedConnector,
	game.BuildSignalBeacon,
	game.BuildTendingFrame,
	game.BuildDeepenedCatcher,
	game.BuildReinforcedMounting,
	game.BuildExtendedBeacon,
}

// nextCommand is a steady scripted player: keep the panel up, build when
// affordable, work one garden plot at a time, explore when short of scrap.
func nextCommand(s *game.Session, step int) string {
	w := s.World
	if v := s.Visitor; v != nil {
		if w.Amount(v.Want) >= v.WantAmount {
			return "accept"
		}
		return "decline"
	}
	if w.PanelState == game.PanelCleaned && w.Scrap < connectScrap {
		return "explore"
	}
	if w.PanelState != game.PanelConnected {
		return "tend"
	}
	if conds := w.ActiveConditions(); len(conds) > 0 {
		return "fix " + string(conds[0])
	}
	if cmd, ok := nextBuild(w); ok {
		return cmd
	}
	if w.HasGardenBed {
		if cmd, ok := gardenCommand(s); ok {
			return cmd
		}
	}
	if w.HasTendingFrame && len(w.FrameRules) == 0 {
		return "frame water"
	}
	if w.FlowersUnlocked && step%9 == 0 {
		return "flowers"
	}
	if w.Scrap < 4 && step%3 == 0 {
		return "explore"
	}
	return "wait"
}

func nextBuild(w *game.World) (string, bool) {
	for _, key := range buildOrder {
		if w.Has(key) {
			continue
		}
		b, ok := game.BuildingByKey(string(key))
		if !ok {
			continue
		}
		if b.Requires != "" && !w.Has(b.Requires) {
			continue
		}
		affordable := true
		for r, n := range b.Cost {
			if w.Amount(r) < n {
				affordable = false
			}
		}
		if affordable {
			return "build " + b.Name, true
		}
	}
	return "", false
}

// gardenCommand picks the first useful plot action in row-major order.
func gardenCommand(s *game.Session) (string, bool) {
	w := s.World
	rules := s.Rules
	crop := game.Crops()[0].Key
	for idx, c := range w.Garden {
		x, y := game.Coords(idx)
		at := func(verb string) string {
			return verb + " " + itoa(x+1) + " " + itoa(y+1)
		}
		switch {
		case c.State == game.StateReady:
			return at("harvest"), true
		case rules.IsWeedy(c.State):
			return at("clear"), true
		case c.State == game.StateDug && w.Seeds > 0:
			return at("plant") + " " + crop, true
		case rules.Waterable(c.State) && c.Moisture == 0 && w.Water > 0:
			return at("water"), true
		}
	}
	if w.Seeds > 0 {
		for idx, c := range w.Garden {
			if c.State == game.StateEmpty {
				x, y := game.Coords(idx)
				return "dig " + itoa(x+1) + " " + itoa(y+1), true
			}
		}
	}
	return "", false
}
