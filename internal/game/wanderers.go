package game

import (
	"fmt"
	"math/rand/v2"
)

const (
	arrivalBase        = 15
	arrivalPerResident = 3
	arrivalCap         = 45
	extendedBeaconBump = 5
)

type WandererKind struct {
	Name       string
	Give       Resource
	GiveAmount int
	Want       Resource
	WantAmount int
	StayChance float64
	Fragment   bool
}

var wandererKinds = []WandererKind{
	{Name: "Sable", Give: ResourceScrap, GiveAmount: 2, Want: ResourceWater, WantAmount: 1, StayChance: 0.30, Fragment: true},
	{Name: "Drift", Give: ResourceWater, GiveAmount: 3, Want: ResourceSeeds, WantAmount: 1, StayChance: 0.25},
	{Name: "Fen", Give: ResourceMycelium, GiveAmount: 2, Want: ResourceScrap, WantAmount: 1, StayChance: 0.35, Fragment: true},
	{Name: "Lace", Give: ResourceWater, GiveAmount: 2, Want: ResourceScrap, WantAmount: 1, StayChance: 0.20},
	{Name: "Crest", Give: ResourceScrap, GiveAmount: 3, Want: ResourceWater, WantAmount: 2, StayChance: 0.20},
	{Name: "Weft", Give: ResourceScrap, GiveAmount: 2, Want: ResourceSeeds, WantAmount: 2, StayChance: 0.40, Fragment: true},
	{Name: "Tuck", Give: ResourceSeeds, GiveAmount: 2, Want: ResourceWater, WantAmount: 1, StayChance: 0.35},
	{Name: "Pale", Give: ResourceWater, GiveAmount: 1, Want: ResourceScrap, WantAmount: 1, StayChance: 0.30, Fragment: true},
	{Name: "Thresh", Give: ResourceScrap, GiveAmount: 3, Want: ResourceSeeds, WantAmount: 1, StayChance: 0.25},
	{Name: "Reed", Give: ResourceSeeds, GiveAmount: 4, Want: ResourceMycelium, WantAmount: 1, StayChance: 0.30, Fragment: true},
}

// Description borrows the matching resident's description.
func (k WandererKind) Description() string {
	if r, ok := ResidentKindByName(k.Name); ok {
		return r.Description
	}
	return ""
}

func WandererKinds() []WandererKind {
	out := make([]WandererKind, len(wandererKinds))
	copy(out, wandererKinds)
	return out
}

// ArrivalChance is the percent chance a wanderer turns up this check.
func ArrivalChance(w *World) int {
	if !w.HasSignalBeacon {
		return 0
	}
	p := arrivalBase + arrivalPerResident*len(w.Residents) + CommunityBonus(w)
	if w.HasExtendedBeacon {
		p += extendedBeaconBump
	}
	return min(arrivalCap, p)
}

// CheckArrival rolls for a visitor.
func CheckArrival(w *World, rng *rand.Rand) (WandererKind, bool) {
	p := ArrivalChance(w)
	if p <= 0 || rng.IntN(100) >= p {
		return WandererKind{}, false
	}
	return wandererKinds[rng.IntN(len(wandererKinds))], true
}

func (k WandererKind) Offer(w *World) string {
	return fmt.Sprintf("%s offers %d %s for %d %s.", k.Name, k.GiveAmount, w.ResourceLabel(k.Give), k.WantAmount, w.ResourceLabel(k.Want))
}

// Trade settles the wanderer's offer.
func Trade(w *World, k WandererKind, accept bool) string {
	if !accept {
		return fmt.Sprintf("%s nods and moves on.", k.Name)
	}
	if !w.Spend(k.Want, k.WantAmount) {
		return fmt.Sprintf("you don't have enough %s.", w.ResourceLabel(k.Want))
	}
	w.Grant(k.Give, k.GiveAmount)
	msg := "the exchange is brief. both sides seem satisfied."
	if k.Fragment {
		if frag, ok := revealFragment(w); ok {
			msg += " " + fmt.Sprintf("%s pauses before leaving. 'this place has a name,' they say. '%s.'", k.Name, frag)
		}
	}
	return msg
}

// ResolveStay decides whether the wanderer joins the settlement.
func ResolveStay(w *World, k WandererKind, rng *rand.Rand) (string, bool) {
	if !chance(rng, k.StayChance) {
		return fmt.Sprintf("%s moves on before dark.", k.Name), false
	}
	if !AddResident(w, k.Name) {
		return noRoomMessage(k.Name), false
	}
	msg := fmt.Sprintf("%s stays.", k.Name)
	if !w.FlowersUnlocked {
		w.FlowersUnlocked = true
		msg += fmt.Sprintf(" %s brought something with them. there is room for flowers now.", k.Name)
	}
	return msg, true
}
