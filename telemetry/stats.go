package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`

	// Population at window end
	Agents  int `csv:"agents"`
	Pellets int `csv:"pellets"`

	// Events during window
	Births            int `csv:"births"`
	Deaths            int `csv:"deaths"`
	DeathsExhausted   int `csv:"deaths_exhausted"`
	DeathsOutOfBounds int `csv:"deaths_out_of_bounds"`
	DeathsNonFinite   int `csv:"deaths_non_finite"`
	PelletsSpawned    int `csv:"pellets_spawned"`

	// Pellets eaten during window, by effect kind
	EatenPoison   int `csv:"eaten_poison"`
	EatenHeal     int `csv:"eaten_heal"`
	EatenFeed     int `csv:"eaten_feed"`
	EatenSpeedUp  int `csv:"eaten_speed_up"`
	EatenSlowDown int `csv:"eaten_slow_down"`
	EatenNothing  int `csv:"eaten_nothing"`

	// Mean age in ticks of agents that died during the window
	MeanLifespan float64 `csv:"mean_lifespan"`

	// Health and food distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`
	FoodMean   float64 `csv:"food_mean"`
	FoodP10    float64 `csv:"food_p10"`
	FoodP50    float64 `csv:"food_p50"`
	FoodP90    float64 `csv:"food_p90"`

	PoisonedFrac float64 `csv:"poisoned_frac"`

	// Steering weight distribution
	WeightPoisonMean   float64 `csv:"w_poison_mean"`
	WeightPoisonStd    float64 `csv:"w_poison_std"`
	WeightHealMean     float64 `csv:"w_heal_mean"`
	WeightHealStd      float64 `csv:"w_heal_std"`
	WeightFeedMean     float64 `csv:"w_feed_mean"`
	WeightFeedStd      float64 `csv:"w_feed_std"`
	WeightSlowDownMean float64 `csv:"w_slow_down_mean"`
	WeightSlowDownStd  float64 `csv:"w_slow_down_std"`
	WeightSpeedUpMean  float64 `csv:"w_speed_up_mean"`
	WeightSpeedUpStd   float64 `csv:"w_speed_up_std"`

	// Lineage
	MeanGeneration float64 `csv:"mean_generation"`
	MaxGeneration  int     `csv:"max_generation"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution returns the population mean, standard deviation and
// percentiles of values. An empty sample yields zeros.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	var d Distribution
	d.Mean, d.Std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("agents", s.Agents),
		slog.Int("pellets", s.Pellets),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("pellets_spawned", s.PelletsSpawned),
		slog.Float64("mean_lifespan", s.MeanLifespan),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("food_mean", s.FoodMean),
		slog.Float64("poisoned_frac", s.PoisonedFrac),
		slog.Int("max_generation", s.MaxGeneration),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"agents", s.Agents,
		"pellets", s.Pellets,
		"births", s.Births,
		"deaths", s.Deaths,
		"deaths_exhausted", s.DeathsExhausted,
		"deaths_out_of_bounds", s.DeathsOutOfBounds,
		"deaths_non_finite", s.DeathsNonFinite,
		"pellets_spawned", s.PelletsSpawned,
		"eaten_poison", s.EatenPoison,
		"eaten_heal", s.EatenHeal,
		"eaten_feed", s.EatenFeed,
		"eaten_speed_up", s.EatenSpeedUp,
		"eaten_slow_down", s.EatenSlowDown,
		"mean_lifespan", s.MeanLifespan,
		"health_mean", s.HealthMean,
		"health_p50", s.HealthP50,
		"food_mean", s.FoodMean,
		"food_p50", s.FoodP50,
		"poisoned_frac", s.PoisonedFrac,
		"w_poison_mean", s.WeightPoisonMean,
		"w_heal_mean", s.WeightHealMean,
		"w_feed_mean", s.WeightFeedMean,
		"w_slow_down_mean", s.WeightSlowDownMean,
		"w_speed_up_mean", s.WeightSpeedUpMean,
		"mean_generation", s.MeanGeneration,
		"max_generation", s.MaxGeneration,
	)
}
