package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// pelletRef is a pellet snapshot taken at the start of the consumption pass.
type pelletRef struct {
	entity ecs.Entity
	pellet components.Pellet
	eaten  bool
}

// birth is an offspring queued during the agent pass.
type birth struct {
	agent    *systems.Agent
	parentID uint32
}

// deadInfo is an agent queued for removal.
type deadInfo struct {
	entity ecs.Entity
	id     uint32
	cause  systems.DeathCause
}

// simulationStep runs a single tick.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhasePelletSpawn)
	g.spawnPellet()

	g.snapshotPellets()
	g.updateAgents()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.removeEatenPellets()
	g.removeDeadAgents()
	g.spawnBirths()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// spawnPellet adds at most one pellet when under the cap.
// The spawn byte is only drawn while under the cap.
func (g *Game) spawnPellet() {
	cfg := g.cfg
	if g.pelletCount >= cfg.Population.MaxPellets {
		return
	}
	if g.rng.Intn(256) >= cfg.Spawn.PelletChance {
		return
	}
	g.addPellet(cfg.Derived.EffectTable.NewPellet(g.rng, g.bounds))
	g.collector.RecordPelletSpawned()
}

// addPellet creates a pellet entity.
func (g *Game) addPellet(p components.Pellet) ecs.Entity {
	g.pelletCount++
	return g.pelletMapper.NewEntity(&p)
}

// snapshotPellets copies live pellets so consumption can mark them without
// touching the world while the agent query holds it.
func (g *Game) snapshotPellets() {
	g.pelletBuf = g.pelletBuf[:0]
	query := g.pelletFilter.Query()
	for query.Next() {
		g.pelletBuf = append(g.pelletBuf, pelletRef{
			entity: query.Entity(),
			pellet: *query.Get(),
		})
	}
}

// updateAgents runs consumption, the per-tick update and reproduction for
// every agent in query order. Entity changes are deferred until after the
// query.
func (g *Game) updateAgents() {
	cfg := g.cfg
	pop := cfg.Population
	agentCount := g.agentCount

	g.births = g.births[:0]
	g.dead = g.dead[:0]

	query := g.agentFilter.Query()
	for query.Next() {
		agent, org := query.Get()

		g.perfCollector.StartPhase(telemetry.PhaseConsumption)
		x, y := agent.Position()
		if g.bounds.Contains(x, y) {
			g.consume(agent, org.ID)
		}

		g.perfCollector.StartPhase(telemetry.PhaseAgentTick)
		if !agent.RunTick(g.tick, g.bounds) {
			g.dead = append(g.dead, deadInfo{entity: query.Entity(), id: org.ID, cause: agent.DeathCause()})
			continue
		}

		g.perfCollector.StartPhase(telemetry.PhaseReproduction)
		if agentCount >= pop.MaxAgents {
			continue
		}
		if g.rng.Intn(256) >= cfg.Spawn.ReproductionChance && agentCount >= pop.CriticalLow {
			continue
		}
		if !agent.CanReproduce() && agentCount >= pop.ReseedFloor {
			continue
		}

		child := agent.ReproduceWithSpread(g.rng, g.bounds, cfg.Mutation.Spread)
		g.births = append(g.births, birth{agent: child, parentID: org.ID})
		agentCount++

		slog.Debug("offspring",
			"tick", g.tick,
			"parent", org.ID,
			"generation", child.Generation(),
			"weights", child.Weights(),
		)
	}
}

// consume evaluates every still-uneaten pellet against one agent.
// A pellet eaten here is invisible to later agents this tick.
func (g *Game) consume(agent *systems.Agent, id uint32) {
	for i := range g.pelletBuf {
		ref := &g.pelletBuf[i]
		if ref.eaten {
			continue
		}
		if agent.EvalConsumable(ref.pellet, g.tick) {
			continue
		}
		ref.eaten = true
		kind := ref.pellet.Kind()
		g.collector.RecordEaten(kind)
		g.lifetimeTracker.RecordEaten(id, kind)
	}
}

// removeEatenPellets deletes pellets consumed this tick.
func (g *Game) removeEatenPellets() {
	for i := range g.pelletBuf {
		if !g.pelletBuf[i].eaten {
			continue
		}
		g.world.RemoveEntity(g.pelletBuf[i].entity)
		g.pelletCount--
	}
}

// removeDeadAgents deletes agents that died this tick.
func (g *Game) removeDeadAgents() {
	for _, dead := range g.dead {
		g.collector.RecordDeath(dead.cause, g.lifetimeTracker.Age(dead.id, g.tick))
		g.lifetimeTracker.Remove(dead.id)
		g.world.RemoveEntity(dead.entity)
		g.agentCount--

		if g.inspector != nil {
			if sel, ok := g.inspector.Selected(); ok && sel == dead.entity {
				g.inspector.Deselect()
			}
		}
	}
}

// spawnBirths adds the offspring queued during the agent pass.
func (g *Game) spawnBirths() {
	for _, b := range g.births {
		g.addAgent(b.agent, b.parentID)
		g.lifetimeTracker.RecordChild(b.parentID)
		g.collector.RecordBirth()
	}
}

// addAgent creates an agent entity with a fresh ID.
func (g *Game) addAgent(agent *systems.Agent, parentID uint32) ecs.Entity {
	org := components.Organism{
		ID:        g.nextID,
		ParentID:  parentID,
		BirthTick: g.tick,
	}
	g.nextID++
	g.agentCount++

	g.lifetimeTracker.Register(org.ID, org.BirthTick, parentID, agent.Generation())
	return g.agentMapper.NewEntity(agent, &org)
}
