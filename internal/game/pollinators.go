package game

import "math/rand/v2"

const (
	pollinatorMax         = 3
	pollinatorSpawnChance = 0.15
	pollinatorLeaveChance = 0.10
)

type Pollinator struct {
	X int
	Y int
}

// Pollinators is the ephemeral swarm over a crop garden. It is never saved.
type Pollinators struct {
	Swarm []Pollinator
}

// Step spawns, moves and retires pollinators once.
func (p Pollinators) Step(w *World, rules Ruleset, rng *rand.Rand) Pollinators {
	next := Pollinators{Swarm: make([]Pollinator, 0, pollinatorMax)}
	for _, b := range p.Swarm {
		if chance(rng, pollinatorLeaveChance) {
			continue
		}
		d := orthogonalSteps[rng.IntN(len(orthogonalSteps))]
		nx, ny := b.X+d[0], b.Y+d[1]
		if InBounds(nx, ny) {
			b.X, b.Y = nx, ny
		}
		next.Swarm = append(next.Swarm, b)
	}

	if len(next.Swarm) >= pollinatorMax {
		return next
	}
	active := make([]int, 0, len(w.Garden))
	for i, c := range w.Garden {
		if rules.IsActive(c.State) {
			active = append(active, i)
		}
	}
	if len(active) >= 2 && chance(rng, pollinatorSpawnChance) {
		x, y := Coords(active[rng.IntN(len(active))])
		next.Swarm = append(next.Swarm, Pollinator{X: x, Y: y})
	}
	return next
}

// Nearby reports a pollinator on or next to the cell, diagonals included.
func (p Pollinators) Nearby(x, y int) bool {
	for _, b := range p.Swarm {
		dx, dy := b.X-x, b.Y-y
		if dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 {
			return true
		}
	}
	return false
}

func (p Pollinators) At(x, y int) bool {
	for _, b := range p.Swarm {
		if b.X == x && b.Y == y {
			return true
		}
	}
	return false
}
