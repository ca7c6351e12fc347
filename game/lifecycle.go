package game

import (
	"github.com/pthm-cable/forage/systems"
)

// spawnInitialPopulation seeds the world with pellets and founder agents.
func (g *Game) spawnInitialPopulation() {
	cfg := g.cfg
	table := cfg.Derived.EffectTable

	for i := 0; i < cfg.Population.InitialPellets; i++ {
		g.addPellet(table.NewPellet(g.rng, g.bounds))
	}

	for i := 0; i < cfg.Population.InitialAgents; i++ {
		g.spawnFounder()
	}
}

// spawnFounder creates a founder at a uniform random point with weights
// drawn from the configured ranges.
func (g *Game) spawnFounder() {
	cfg := g.cfg
	x, y := g.bounds.RandomPoint(g.rng)
	weights := cfg.Weights.Random(g.rng)
	g.addAgent(systems.New(x, y, cfg.Agent, weights, systems.MarkerFounder), 0)
}
