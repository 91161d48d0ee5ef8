package game

import (
	"fmt"
	"math/rand/v2"
)

type FrameTask string

const (
	FrameHarvest FrameTask = "harvest"
	FrameSow     FrameTask = "sow"
	FrameClear   FrameTask = "clear"
	FrameWater   FrameTask = "water"
)

// framePriority is the order tasks are considered in, whatever order the rules list.
var framePriority = []FrameTask{FrameHarvest, FrameSow, FrameClear, FrameWater}

func ParseFrameTask(raw string) (FrameTask, bool) {
	switch raw {
	case "harvest":
		return FrameHarvest, true
	case "sow", "dig", "inoculate":
		return FrameSow, true
	case "clear", "weed":
		return FrameClear, true
	case "water":
		return FrameWater, true
	}
	return "", false
}

func (w *World) frameEnabled(t FrameTask) bool {
	for _, r := range w.FrameRules {
		if r == t {
			return true
		}
	}
	return false
}

// ToggleFrameRule flips one task on or off.
func ToggleFrameRule(w *World, t FrameTask) string {
	if !w.HasTendingFrame {
		return "you have no tending frame."
	}
	kept := make([]FrameTask, 0, len(w.FrameRules)+1)
	for _, r := range w.FrameRules {
		if r != t {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(w.FrameRules) {
		w.FrameRules = append(kept, t)
		return fmt.Sprintf("the frame will %s.", t)
	}
	w.FrameRules = kept
	return fmt.Sprintf("the frame will no longer %s.", t)
}

// ApplyFrame performs the first eligible action and stops.
func ApplyFrame(w *World, rules Ruleset, rng *rand.Rand) string {
	if !w.HasTendingFrame || len(w.FrameRules) == 0 {
		return ""
	}
	for _, task := range framePriority {
		if !w.frameEnabled(task) {
			continue
		}
		for i := range w.Garden {
			if !frameEligible(w, rules, task, i) {
				continue
			}
			return frameAct(w, rules, rng, task, i)
		}
	}
	return ""
}

func frameEligible(w *World, rules Ruleset, task FrameTask, idx int) bool {
	c := w.Garden[idx]
	switch task {
	case FrameHarvest:
		_, crops := rules.(CropRules)
		return crops && c.State == StateReady
	case FrameSow:
		if c.State != StateEmpty || w.Seeds < 1 {
			return false
		}
		if rules.Variant() == VariantCrops {
			return countNeighbours(w, idx, func(s CellState) bool {
				return s != StateEmpty && !rules.IsWeedy(s)
			}) > 0
		}
		return countNeighbours(w, idx, rules.IsLiving) > 0
	case FrameClear:
		return rules.IsWeedy(c.State)
	case FrameWater:
		return rules.Waterable(c.State) && c.Moisture == 0 && w.Water > 0
	}
	return false
}

func frameAct(w *World, rules Ruleset, rng *rand.Rand, task FrameTask, idx int) string {
	switch task {
	case FrameHarvest:
		if crops, ok := rules.(CropRules); ok {
			crops.Harvest(w, idx, rng, false)
			return "the frame has gathered what was ready."
		}
	case FrameSow:
		rules.Sow(w, idx)
		if rules.Variant() == VariantCrops {
			return "the frame has turned a new plot."
		}
		return "the frame has set spores beside the network."
	case FrameClear:
		rules.Clear(w, idx)
		return "a patch has been cleared. the ground is open again."
	case FrameWater:
		rules.Water(w, idx)
		return "a dry patch has been watered. your stores are a little lower."
	}
	return ""
}
