package game

import (
	"fmt"
	"strings"
)

var ancestralFragments = []string{"ver", "dan", "sol", "ith", "an"}

var tendMilestones = []int{5, 15, 30, 50, 75}

func revealFragment(w *World) (string, bool) {
	if w.AncestralRevealed >= len(ancestralFragments) {
		return "", false
	}
	frag := ancestralFragments[w.AncestralRevealed]
	w.AncestralRevealed++
	return frag, true
}

// checkTendMilestone raises the revealed count to the milestone's position.
// Fragments already found through trades or expeditions are not shown twice.
func checkTendMilestone(w *World) string {
	for i, m := range tendMilestones {
		if w.TendCount != m || w.AncestralRevealed > i {
			continue
		}
		w.AncestralRevealed = i + 1
		return fmt.Sprintf("scratched into the frame, under the grime: '%s'.", ancestralFragments[i])
	}
	return ""
}

// AncestralName joins the fragments revealed so far.
func AncestralName(w *World) string {
	n := clamp(w.AncestralRevealed, 0, len(ancestralFragments))
	return strings.Join(ancestralFragments[:n], "")
}

func AncestralComplete(w *World) bool {
	return w.AncestralRevealed >= len(ancestralFragments)
}
