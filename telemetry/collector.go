package telemetry

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/traits"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks uint64

	// Current window tracking
	windowStartTick uint64

	// Event counters for current window
	births         int
	deaths         [systems.NumDeathCauses]int
	eaten          [components.NumEffectKinds]int
	pelletsSpawned int
	lifespanSum    uint64
}

// NewCollector creates a stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: uint64(windowTicks)}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death and the age of the agent in ticks.
func (c *Collector) RecordDeath(cause systems.DeathCause, lifespan uint64) {
	if int(cause) < len(c.deaths) {
		c.deaths[cause]++
	}
	c.lifespanSum += lifespan
}

// RecordEaten records a consumed pellet.
func (c *Collector) RecordEaten(kind components.EffectKind) {
	if int(kind) < len(c.eaten) {
		c.eaten[kind]++
	}
}

// RecordPelletSpawned records a pellet added by the spawner.
func (c *Collector) RecordPelletSpawned() {
	c.pelletsSpawned++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Sample is the population state observed at the end of a window.
type Sample struct {
	Agents   int
	Pellets  int
	Poisoned int

	Health  []float64
	Food    []float64
	Weights [traits.NumWeights][]float64

	GenerationSum uint64
	MaxGeneration uint32
}

// Add appends one agent to the sample.
func (s *Sample) Add(a *systems.Agent) {
	s.Agents++
	if a.Poisoned() {
		s.Poisoned++
	}
	s.Health = append(s.Health, float64(a.Health()))
	s.Food = append(s.Food, float64(a.Food()))
	for i, w := range a.Weights().Slice() {
		s.Weights[i] = append(s.Weights[i], float64(w))
	}
	g := a.Generation()
	s.GenerationSum += uint64(g)
	if g > s.MaxGeneration {
		s.MaxGeneration = g
	}
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, sample Sample) WindowStats {
	health := ComputeDistribution(sample.Health)
	food := ComputeDistribution(sample.Food)

	var weights [traits.NumWeights]Distribution
	for i := range weights {
		weights[i] = ComputeDistribution(sample.Weights[i])
	}

	var deaths int
	for _, n := range c.deaths {
		deaths += n
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Agents:  sample.Agents,
		Pellets: sample.Pellets,

		Births:            c.births,
		Deaths:            deaths,
		DeathsExhausted:   c.deaths[systems.CauseExhausted],
		DeathsOutOfBounds: c.deaths[systems.CauseOutOfBounds],
		DeathsNonFinite:   c.deaths[systems.CauseNonFinite],
		PelletsSpawned:    c.pelletsSpawned,

		EatenPoison:   c.eaten[components.KindPoison],
		EatenHeal:     c.eaten[components.KindHeal],
		EatenFeed:     c.eaten[components.KindFeed],
		EatenSpeedUp:  c.eaten[components.KindSpeedUp],
		EatenSlowDown: c.eaten[components.KindSlowDown],
		EatenNothing:  c.eaten[components.KindNothing],

		HealthMean: health.Mean,
		HealthP10:  health.P10,
		HealthP50:  health.P50,
		HealthP90:  health.P90,
		FoodMean:   food.Mean,
		FoodP10:    food.P10,
		FoodP50:    food.P50,
		FoodP90:    food.P90,

		WeightPoisonMean:   weights[0].Mean,
		WeightPoisonStd:    weights[0].Std,
		WeightHealMean:     weights[1].Mean,
		WeightHealStd:      weights[1].Std,
		WeightFeedMean:     weights[2].Mean,
		WeightFeedStd:      weights[2].Std,
		WeightSlowDownMean: weights[3].Mean,
		WeightSlowDownStd:  weights[3].Std,
		WeightSpeedUpMean:  weights[4].Mean,
		WeightSpeedUpStd:   weights[4].Std,

		MaxGeneration: int(sample.MaxGeneration),
	}
	if deaths > 0 {
		stats.MeanLifespan = float64(c.lifespanSum) / float64(deaths)
	}
	if sample.Agents > 0 {
		stats.PoisonedFrac = float64(sample.Poisoned) / float64(sample.Agents)
		stats.MeanGeneration = float64(sample.GenerationSum) / float64(sample.Agents)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = [systems.NumDeathCauses]int{}
	c.eaten = [components.NumEffectKinds]int{}
	c.pelletsSpawned = 0
	c.lifespanSum = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowTicks
}
