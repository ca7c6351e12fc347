// Package systems implements agent behavior: steering toward and eating
// pellets, resolving effects, metabolism, movement and reproduction.
package systems

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

// Marker is the display attribute of an agent.
type Marker uint8

const (
	MarkerFounder   Marker = iota // seeded at startup
	MarkerOffspring               // born through reproduction
)

// String returns the marker name.
func (m Marker) String() string {
	if m == MarkerOffspring {
		return "offspring"
	}
	return "founder"
}

// DeathCause records why RunTick last reported an agent dead.
type DeathCause uint8

const (
	CauseNone        DeathCause = iota
	CauseNonFinite              // velocity or speed became NaN/Inf
	CauseExhausted              // health reached zero
	CauseOutOfBounds            // moved outside the world
)

// NumDeathCauses is the number of DeathCause values.
const NumDeathCauses = int(CauseOutOfBounds) + 1

var deathCauseNames = [NumDeathCauses]string{"none", "non_finite", "exhausted", "out_of_bounds"}

// String returns the telemetry name of the cause.
func (c DeathCause) String() string {
	if int(c) < len(deathCauseNames) {
		return deathCauseNames[c]
	}
	return "unknown"
}

// ActiveEffect is an eaten effect still in flight, tagged with the tick it
// was eaten on.
type ActiveEffect struct {
	Effect components.Effect
	Start  uint64

	applied bool // duration effects: the speed change has been made
}

// Agent is a mobile forager. The zero value is not usable; build agents with
// New, NewRandom or Reproduce.
type Agent struct {
	pos components.Position
	vel components.Velocity

	health int32
	food   int32

	baseStats components.Stats
	stats     components.Stats
	weights   traits.Weights
	effects   []ActiveEffect

	marker     Marker
	poisoned   bool
	generation uint32
	cause      DeathCause
}

// New creates an agent at rest with full health and food.
func New(x, y float32, stats components.Stats, weights traits.Weights, marker Marker) *Agent {
	return &Agent{
		pos:       components.Position{X: x, Y: y},
		health:    stats.MaxHealth,
		food:      stats.MaxFood,
		baseStats: stats,
		stats:     stats,
		weights:   weights,
		marker:    marker,
	}
}

// NewRandom creates a founder with weights drawn from the default ranges.
func NewRandom(rng components.Rand, x, y float32, stats components.Stats) *Agent {
	return New(x, y, stats, traits.RandomWeights(rng), MarkerFounder)
}

// Position returns the agent's location.
func (a *Agent) Position() (float32, float32) { return a.pos.X, a.pos.Y }

// Velocity returns the agent's velocity.
func (a *Agent) Velocity() (float32, float32) { return a.vel.X, a.vel.Y }

// Health returns current health.
func (a *Agent) Health() int32 { return a.health }

// Food returns current food.
func (a *Agent) Food() int32 { return a.food }

// BaseStats returns the immutable, heritable stats.
func (a *Agent) BaseStats() components.Stats { return a.baseStats }

// Stats returns the working stats as perturbed by active effects.
func (a *Agent) Stats() components.Stats { return a.stats }

// Weights returns the agent's steering weights.
func (a *Agent) Weights() traits.Weights { return a.weights }

// Marker returns the display marker.
func (a *Agent) Marker() Marker { return a.marker }

// Poisoned reports whether a poison was active during the last tick.
func (a *Agent) Poisoned() bool { return a.poisoned }

// Generation is 0 for founders and parent+1 for offspring.
func (a *Agent) Generation() uint32 { return a.generation }

// DeathCause returns why the last RunTick reported dead, or CauseNone.
func (a *Agent) DeathCause() DeathCause { return a.cause }

// ActiveEffects returns a copy of the in-flight effects in queue order.
func (a *Agent) ActiveEffects() []ActiveEffect {
	out := make([]ActiveEffect, len(a.effects))
	copy(out, a.effects)
	return out
}

// Clone returns a deep copy of the agent.
func (a *Agent) Clone() *Agent {
	c := *a
	c.effects = a.ActiveEffects()
	return &c
}

// QueueEffect puts an effect in flight starting at tick. Nothing is dropped.
func (a *Agent) QueueEffect(e components.Effect, tick uint64) {
	if components.KindOf(e) == components.KindNothing {
		return
	}
	a.effects = append(a.effects, ActiveEffect{Effect: e, Start: tick})
}

// SetVelocity overrides the velocity.
func (a *Agent) SetVelocity(x, y float32) { a.vel = components.Velocity{X: x, Y: y} }

// SetHealth overrides current health.
func (a *Agent) SetHealth(h int32) { a.health = h }

// SetFood overrides current food.
func (a *Agent) SetFood(f int32) { a.food = f }
