package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// NewRand returns the session random source. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seededRNG(seed)
}

// SessionRand returns a source for one sitting of live play. It mixes the world
// seed and progress with the clock so reloading a save starts a new stream.
func SessionRand(w *World, now time.Time) *rand.Rand {
	return rand.New(rand.NewPCG(
		seedWord(w.Seed, "a")^uint64(now.UnixNano()),
		seedWord(int64(w.ActionCount), "b")^uint64(w.LastSeen),
	))
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// chance reports whether a uniform draw lands below p.
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// between draws a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
