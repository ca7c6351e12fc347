package systems

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

// Reproduction thresholds, as fractions of the base maxima.
const (
	ReproFoodFraction   = 0.67
	ReproHealthFraction = 0.33
)

// CanReproduce reports whether food exceeds 67% of max food and health
// exceeds 33% of max health.
func (a *Agent) CanReproduce() bool {
	minFood := float32(a.baseStats.MaxFood) * ReproFoodFraction
	minHealth := float32(a.baseStats.MaxHealth) * ReproHealthFraction
	return float32(a.food) > minFood && float32(a.health) > minHealth
}

// Reproduce returns a mutated offspring placed uniformly inside bounds.
// The child inherits the base stats unchanged, starts full and with no
// active effects. The parent is not modified and pays nothing.
func (a *Agent) Reproduce(rng components.Rand, bounds components.Bounds) *Agent {
	return a.ReproduceWithSpread(rng, bounds, traits.MutationSpread)
}

// ReproduceWithSpread is Reproduce with a configurable mutation spread.
func (a *Agent) ReproduceWithSpread(rng components.Rand, bounds components.Bounds, spread float32) *Agent {
	weights := a.weights.Mutate(rng, spread)
	x, y := bounds.RandomPoint(rng)

	child := New(x, y, a.baseStats, weights, MarkerOffspring)
	child.generation = a.generation + 1
	return child
}
