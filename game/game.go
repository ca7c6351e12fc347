// Package game drives the forager world: pellet spawning, agent ticks,
// reproduction, telemetry and (in graphical mode) rendering.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/camera"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/inspector"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
	"github.com/pthm-cable/forage/ui"
)

// Options configures a new game.
type Options struct {
	Seed           int64  // RNG seed (0 = time-based)
	Headless       bool   // skip camera, HUD and inspector
	LogStats       bool   // log window stats via slog
	OutputDir      string // CSV and config output (empty = disabled)
	StepsPerUpdate int    // simulation ticks per Update call

	// Config overrides the global config when set.
	Config *config.Config

	// StatsCallback is called with every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64
	cfg     *config.Config
	bounds  components.Bounds

	// Agents carry their behavioral state plus identity.
	agentMapper *ecs.Map2[systems.Agent, components.Organism]
	agentFilter *ecs.Filter2[systems.Agent, components.Organism]

	// Pellets carry their own position.
	pelletMapper *ecs.Map1[components.Pellet]
	pelletFilter *ecs.Filter1[components.Pellet]

	// Per-tick scratch, reused to avoid allocation
	pelletBuf []pelletRef
	births    []birth
	dead      []deadInfo

	// State
	tick           uint64
	nextID         uint32
	agentCount     int
	pelletCount    int
	paused         bool
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Graphical mode only
	headless     bool
	screenWidth  float32
	screenHeight float32
	camera       *camera.Camera
	hud          *ui.HUD
	controls     *ui.ControlsPanel
	perfPanel    *ui.PerfPanel
	inspector    *inspector.Inspector
	showPerf     bool
}

// NewGameWithOptions creates a new game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(seed)),
		rngSeed:        seed,
		cfg:            cfg,
		bounds:         cfg.Derived.Bounds,
		agentMapper:    ecs.NewMap2[systems.Agent, components.Organism](world),
		agentFilter:    ecs.NewFilter2[systems.Agent, components.Organism](world),
		pelletMapper:   ecs.NewMap1[components.Pellet](world),
		pelletFilter:   ecs.NewFilter1[components.Pellet](world),
		nextID:         1,
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !g.headless {
		g.screenWidth = cfg.Derived.ScreenW32
		g.screenHeight = cfg.Derived.ScreenH32
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.bounds)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 110, 220)
		g.perfPanel = ui.NewPerfPanel(10, 110)
		g.inspector = inspector.NewInspector(int32(g.screenWidth), int32(g.screenHeight))
	}

	g.spawnInitialPopulation()

	return g
}

// Update runs one frame: input handling plus stepsPerUpdate ticks.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step advances the simulation by exactly one tick, regardless of pause state.
func (g *Game) Step() {
	g.simulationStep()
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() uint64 {
	return g.tick
}

// AgentCount returns the number of live agents.
func (g *Game) AgentCount() int {
	return g.agentCount
}

// PelletCount returns the number of pellets in the world.
func (g *Game) PelletCount() int {
	return g.pelletCount
}

// Bounds returns the world rectangle.
func (g *Game) Bounds() components.Bounds {
	return g.bounds
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Agents returns independent snapshots of all agents in query order.
func (g *Game) Agents() []*systems.Agent {
	agents := make([]*systems.Agent, 0, g.agentCount)
	query := g.agentFilter.Query()
	for query.Next() {
		agent, _ := query.Get()
		agents = append(agents, agent.Clone())
	}
	return agents
}

// Pellets returns a copy of all pellets.
func (g *Game) Pellets() []components.Pellet {
	pellets := make([]components.Pellet, 0, g.pelletCount)
	query := g.pelletFilter.Query()
	for query.Next() {
		pellets = append(pellets, *query.Get())
	}
	return pellets
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
