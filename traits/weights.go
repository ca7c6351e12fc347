// Package traits defines the heritable characteristics of agents.
package traits

import (
	"log/slog"

	"github.com/pthm-cable/forage/components"
)

// MutationSpread bounds the uniform offset applied to each coefficient at
// reproduction: offsets are drawn from [-MutationSpread, +MutationSpread).
const MutationSpread float32 = 5

// NumWeights is the number of coefficients in Weights.
const NumWeights = 5

// Weights are an agent's steering sensitivities, one per effect category.
// Positive values attract, negative values repel. Immutable once created.
type Weights struct {
	Poison   float32
	Heal     float32
	Feed     float32
	SlowDown float32
	SpeedUp  float32
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Draw returns a uniform sample from the range.
func (r Range) Draw(rng components.Rand) float32 {
	return r.Min + (r.Max-r.Min)*rng.Float32()
}

// Ranges holds the seeding range of each coefficient.
type Ranges struct {
	Poison   Range `yaml:"poison"`
	Heal     Range `yaml:"heal"`
	Feed     Range `yaml:"feed"`
	SlowDown Range `yaml:"slow_down"`
	SpeedUp  Range `yaml:"speed_up"`
}

// DefaultRanges biases founders toward avoiding poison and seeking heals.
func DefaultRanges() Ranges {
	return Ranges{
		Poison:   Range{Min: -10, Max: 5},
		Heal:     Range{Min: -5, Max: 10},
		Feed:     Range{Min: -8, Max: 8},
		SlowDown: Range{Min: -5, Max: 5},
		SpeedUp:  Range{Min: -5, Max: 5},
	}
}

// Random draws each coefficient independently from its range.
func (r Ranges) Random(rng components.Rand) Weights {
	return Weights{
		Poison:   r.Poison.Draw(rng),
		Heal:     r.Heal.Draw(rng),
		Feed:     r.Feed.Draw(rng),
		SlowDown: r.SlowDown.Draw(rng),
		SpeedUp:  r.SpeedUp.Draw(rng),
	}
}

// RandomWeights draws founder weights from DefaultRanges.
func RandomWeights(rng components.Rand) Weights {
	return DefaultRanges().Random(rng)
}

// Mutate returns a copy with every coefficient offset by an independent
// uniform draw from [-spread, +spread). The receiver is not modified.
func (w Weights) Mutate(rng components.Rand, spread float32) Weights {
	offset := func() float32 {
		return rng.Float32()*2*spread - spread
	}
	return Weights{
		Poison:   w.Poison + offset(),
		Heal:     w.Heal + offset(),
		Feed:     w.Feed + offset(),
		SlowDown: w.SlowDown + offset(),
		SpeedUp:  w.SpeedUp + offset(),
	}
}

// For returns the raw coefficient for an effect kind. Nothing maps to zero.
func (w Weights) For(kind components.EffectKind) float32 {
	switch kind {
	case components.KindPoison:
		return w.Poison
	case components.KindHeal:
		return w.Heal
	case components.KindFeed:
		return w.Feed
	case components.KindSlowDown:
		return w.SlowDown
	case components.KindSpeedUp:
		return w.SpeedUp
	default:
		return 0
	}
}

// Slice returns the coefficients in declaration order.
func (w Weights) Slice() [NumWeights]float32 {
	return [NumWeights]float32{w.Poison, w.Heal, w.Feed, w.SlowDown, w.SpeedUp}
}

// Names returns the telemetry names of the coefficients, matching Slice.
func Names() [NumWeights]string {
	return [NumWeights]string{"poison", "heal", "feed", "slow_down", "speed_up"}
}

// LogValue implements slog.LogValuer.
func (w Weights) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("poison", float64(w.Poison)),
		slog.Float64("heal", float64(w.Heal)),
		slog.Float64("feed", float64(w.Feed)),
		slog.Float64("slow_down", float64(w.SlowDown)),
		slog.Float64("speed_up", float64(w.SpeedUp)),
	)
}
