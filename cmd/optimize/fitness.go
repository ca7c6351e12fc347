package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   uint64
	seeds      []int64
	configPath string

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run loads a fresh
// config from configPath (empty = embedded defaults).
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks uint64 // ticks before extinction, or maxTicks
	maxAgents     int
	windowStats   []telemetry.WindowStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; the result is their mean.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := fe.runSimulation(x, s)
			if err != nil {
				results[idx].err = err
				return
			}
			results[idx] = seedResult{
				fitness: computeFitness(r, fe.maxTicks),
				quality: computeQuality(r.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			return 0, r.err
		}
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n, nil
}

// runSimulation executes a single headless run until extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, fmt.Errorf("applying parameters: %w", err)
	}

	result := &runResult{maxAgents: cfg.Population.MaxAgents}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
		if g.AgentCount() == 0 {
			result.survivalTicks = g.Tick()
			return result, nil
		}
	}

	result.survivalTicks = fe.maxTicks
	return result, nil
}

// qualityWarmupWindows is the number of leading windows ignored by scoring.
const qualityWarmupWindows = 2

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survival × occupancy × (1 + 0.2 × quality)) where survival is
// the fraction of maxTicks survived and occupancy is the mean population as
// a fraction of the agent cap.
func computeFitness(r *runResult, maxTicks uint64) float64 {
	if maxTicks == 0 || r.maxAgents == 0 {
		return 0
	}
	survival := float64(r.survivalTicks) / float64(maxTicks)

	counts := populationSeries(r.windowStats)
	if len(counts) == 0 {
		return -survival
	}
	occupancy := stat.Mean(counts, nil) / float64(r.maxAgents)

	return -(survival * occupancy * (1.0 + 0.2*computeQuality(r.windowStats)))
}

// computeQuality scores population stability in [0, 1]: exp(-cv²) of the
// agent count across post-warmup windows.
func computeQuality(windows []telemetry.WindowStats) float64 {
	counts := populationSeries(windows)
	if len(counts) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(counts, nil)
	if mean == 0 {
		return 0
	}
	cv := std / mean
	return math.Exp(-cv * cv)
}

// populationSeries returns post-warmup agent counts.
func populationSeries(windows []telemetry.WindowStats) []float64 {
	if len(windows) <= qualityWarmupWindows {
		return nil
	}
	counts := make([]float64, 0, len(windows)-qualityWarmupWindows)
	for _, w := range windows[qualityWarmupWindows:] {
		counts = append(counts, float64(w.Agents))
	}
	return counts
}
