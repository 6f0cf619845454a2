// Package game owns the demo scene: the fluid solver, the obstacle
// entities the user places, telemetry, and the render loop glue.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/erematorg/brine/components"
	"github.com/erematorg/brine/config"
	"github.com/erematorg/brine/fluid"
	"github.com/erematorg/brine/geom"
	"github.com/erematorg/brine/renderer"
	"github.com/erematorg/brine/telemetry"
	"github.com/erematorg/brine/ui"
)

// BoundaryMargin is the inset of the container walls from the window edge.
const BoundaryMargin = 20

// Options configures game startup behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete demo state.
type Game struct {
	world ecs.World
	rng   *rand.Rand

	obstacleMapper ecs.Map3[components.Position, components.Velocity, components.Shape]
	obstacleFilter *ecs.Filter3[components.Position, components.Velocity, components.Shape]
	posMap         ecs.Map[components.Position]

	solver *fluid.Solver

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	paramsPanel      *ui.ParamsPanel

	paused         bool
	logStats       bool
	headless       bool
	stepsPerUpdate int
	placementKind  components.ObstacleKind
	obstacleCount  int
	dragging       ecs.Entity
	dragActive     bool

	// Scratch buffer rebuilt each tick from the obstacle entities.
	obstacles []fluid.Obstacle

	dt            float32
	width, height float32
}

// NewGameWithOptions creates a game configured by opts.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		world:          ecs.NewWorld(),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: opts.StepsPerUpdate,
		placementKind:  components.KindSolid,
		dt:             cfg.Derived.DT32,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
	}

	g.obstacleMapper = ecs.NewMap3[components.Position, components.Velocity, components.Shape](&g.world)
	g.obstacleFilter = ecs.NewFilter3[components.Position, components.Velocity, components.Shape](&g.world)
	g.posMap = ecs.NewMap[components.Position](&g.world)

	g.solver = fluid.NewSolver(cfg, g.containerBoundary(), g.rng)

	g.collector = telemetry.NewCollector(opts.StatsWindowSec, cfg.Derived.DT32)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.solver.Trace = g.perfCollector

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.particleRenderer = renderer.NewParticleRenderer(float32(cfg.Fluid.ParticleSize))
		g.hud = ui.NewHUD()
		g.paramsPanel = ui.NewParamsPanel(int32(g.width)-280, 100, 260)
	}

	return g
}

// containerBoundary builds the rectangular wall polygon inset from the
// window edges.
func (g *Game) containerBoundary() geom.Polygon {
	m := float32(BoundaryMargin)
	return geom.Polygon{
		{X: m, Y: m},
		{X: g.width - m, Y: m},
		{X: g.width - m, Y: g.height - m},
		{X: m, Y: g.height - m},
	}
}

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep advances the scene by one fixed tick.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseObstacles)
	g.updateObstacles()
	obstacles := g.collectObstacles()

	g.solver.Step(obstacles)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.solver.Stats())
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// reset clears the scene and respawns the fluid from the config spawn rect.
func (g *Game) reset() {
	g.clearObstacles()
	g.dragActive = false
	g.solver = fluid.NewSolver(config.Cfg(), g.containerBoundary(), g.rng)
	g.solver.Trace = g.perfCollector
}

// Tick returns the solver's tick counter.
func (g *Game) Tick() int32 { return g.solver.Tick() }

// Solver exposes the fluid solver for tooling.
func (g *Game) Solver() *fluid.Solver { return g.solver }

// Unload flushes outputs and releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
}
