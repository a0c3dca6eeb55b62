// Package game wires the agent behaviors, the interaction resolver and the
// session state into a per-frame simulation loop.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
	"github.com/mossfeld/henyard/telemetry"
)

// MaxFrameDelta caps a single frame's delta so a stalled window cannot
// teleport agents across the yard.
const MaxFrameDelta = 0.1

// Options configures a new game instance.
type Options struct {
	Seed       int64
	Headless   bool
	OutputDir  string
	LogStats   bool
	TimeBudget float64 // seconds; 0 = config value
	Presenter  Presenter
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers and filters per roster
	birdMapper *ecs.Map3[components.Position, components.Velocity, components.Bird]
	birdFilter *ecs.Filter3[components.Position, components.Velocity, components.Bird]
	predMapper *ecs.Map3[components.Position, components.Velocity, components.Predator]
	predFilter *ecs.Filter3[components.Position, components.Velocity, components.Predator]
	cornMapper *ecs.Map2[components.Position, components.CornPile]
	cornFilter *ecs.Filter2[components.Position, components.CornPile]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	birdMap *ecs.Map1[components.Bird]
	predMap *ecs.Map1[components.Predator]

	tune *systems.Tuning
	yard *systems.Yard

	session *Session
	player  Player
	visitor *systems.Visitor

	// Per-frame effect queue and reusable frame context
	fx    systems.Effects
	frame systems.Frame

	// Spawn cadence countdowns
	hawkTimer    float32
	dogTimer     float32
	visitorTimer float32

	// Deferred removals, swept once per frame after the resolver runs
	toRemove []ecs.Entity

	presenter      Presenter
	collector      *telemetry.Collector
	output         *telemetry.OutputManager
	flushedRecords int

	musicMode systems.MusicMode

	paused         bool
	stepsPerUpdate int
	headless       bool
	logStats       bool
	wantRestart    bool
}

// NewGame creates a game with default options and a time-based seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game instance. Config must be initialized
// before calling this.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}

	presenter := opts.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}

	g := &Game{
		world:          ecs.NewWorld(),
		rng:            rand.New(rand.NewSource(seed)),
		tune:           systems.NewTuning(cfg),
		yard:           systems.NewYard(&cfg.Yard),
		presenter:      presenter,
		collector:      telemetry.NewCollector(),
		musicMode:      systems.MusicCalm,
		stepsPerUpdate: 1,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
	}

	g.birdMapper = ecs.NewMap3[components.Position, components.Velocity, components.Bird](g.world)
	g.birdFilter = ecs.NewFilter3[components.Position, components.Velocity, components.Bird](g.world)
	g.predMapper = ecs.NewMap3[components.Position, components.Velocity, components.Predator](g.world)
	g.predFilter = ecs.NewFilter3[components.Position, components.Velocity, components.Predator](g.world)
	g.cornMapper = ecs.NewMap2[components.Position, components.CornPile](g.world)
	g.cornFilter = ecs.NewFilter2[components.Position, components.CornPile](g.world)

	g.posMap = ecs.NewMap1[components.Position](g.world)
	g.birdMap = ecs.NewMap1[components.Bird](g.world)
	g.predMap = ecs.NewMap1[components.Predator](g.world)

	g.session = NewSession(cfg, opts.TimeBudget)
	g.player = NewPlayer(cfg)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err == nil {
			g.output = om
			_ = om.WriteConfig(cfg)
		}
	}

	g.frame = systems.Frame{
		Tune:    g.tune,
		Yard:    g.yard,
		World:   g.world,
		PosMap:  g.posMap,
		BirdMap: g.birdMap,
		FX:      &g.fx,
		RNG:     g.rng,
	}

	g.resetSpawnTimers(cfg)
	g.spawnInitialFlock(cfg)

	return g
}

// Session exposes the session state for rendering and tests.
func (g *Game) Session() *Session {
	return g.session
}

// Player exposes the player state for rendering and tests.
func (g *Game) Player() *Player {
	return &g.player
}

// Visitor returns the current visitor, or nil.
func (g *Game) Visitor() *systems.Visitor {
	return g.visitor
}

// Collector exposes the telemetry collector.
func (g *Game) Collector() *telemetry.Collector {
	return g.collector
}

// Yard exposes the yard geometry.
func (g *Game) Yard() *systems.Yard {
	return g.yard
}

// MusicMode returns the music mode chosen for the current frame.
func (g *Game) MusicMode() systems.MusicMode {
	return g.musicMode
}

// WantRestart reports whether the player asked for a new session from the
// end-of-session panel.
func (g *Game) WantRestart() bool {
	return g.wantRestart
}

// Unload flushes telemetry output.
func (g *Game) Unload() {
	if g.output != nil {
		_ = g.output.Flush()
		g.output.Close()
	}
}
