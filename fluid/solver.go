package fluid

import (
	"fmt"
	"math/rand"

	"github.com/erematorg/brine/config"
	"github.com/erematorg/brine/geom"
)

// Phase names reported to the trace hook during Step.
const (
	PhaseClip      = "clip"
	PhaseGrid      = "grid"
	PhaseNeighbors = "neighbors"
	PhaseDensity   = "density"
	PhaseForces    = "forces"
	PhaseIntegrate = "integrate"
	PhaseBoundary  = "boundary"
	PhasePublish   = "publish"
)

// Tracer receives phase transitions from Step, for perf instrumentation.
type Tracer interface {
	StartPhase(name string)
}

// StepStats holds per-tick counters, reset at the start of every Step.
type StepStats struct {
	ClipPairs    int     // overlapping pairs separated by the clipping pass
	Reflections  int     // particles reflected off the outer boundary
	ZoneEjects   int     // particles snapped out of obstacle interiors
	SurfaceCount int     // particles classified as surface this tick
	MeanSpeed    float32 // mean velocity magnitude after integration
	Settled      bool
}

// params mirrors config.FluidConfig as float32, fixed per solver unless
// changed through SetParam.
type params struct {
	h               float32 // smoothing length
	particleSize    float32
	gravity         geom.Vec2
	restDensity     float32
	stiffness       float32
	minDensity      float32
	viscosity       float32
	surfaceTension  float32
	surfaceBias     float32
	spring          float32
	restDistance    float32
	repulsion       float32
	dt              float32
	bounce          float32
	velocityDamping float32
	maxVelocity     float32
	settleThreshold float32
	neighborRefresh int32
}

// Solver owns the complete fluid state: the particle population, the
// broad-phase grid, the outer boundary, and the settled flag. All mutation
// happens inside Step; there is no other entry point into a tick.
type Solver struct {
	p    params
	rng  *rand.Rand
	grid *Grid

	particles []Particle
	boundary  geom.Polygon

	// published is the position snapshot exposed to the renderer. It is
	// only rewritten while the fluid is not settled.
	published []geom.Vec2
	surface   []bool

	settled bool
	tick    int32
	stats   StepStats

	// Trace, when set, receives phase transitions for perf timing.
	Trace Tracer
}

// NewSolver creates the particle population inside the configured spawn
// rectangle and builds the initial broad-phase grid. Initial velocity is
// the gravity vector, as the particles are assumed to already be falling.
func NewSolver(cfg *config.Config, boundary geom.Polygon, rng *rand.Rand) *Solver {
	f := cfg.Fluid
	s := &Solver{
		p: params{
			h:               float32(f.SmoothingLength),
			particleSize:    float32(f.ParticleSize),
			gravity:         geom.Vec2{X: float32(f.GravityX), Y: float32(f.GravityY)},
			restDensity:     float32(f.RestDensity),
			stiffness:       float32(f.Stiffness),
			minDensity:      float32(f.MinDensity),
			viscosity:       float32(f.Viscosity),
			surfaceTension:  float32(f.SurfaceTension),
			surfaceBias:     float32(f.SurfaceBias),
			spring:          float32(f.SpringConstant),
			restDistance:    float32(f.RestDistance),
			repulsion:       float32(f.Repulsion),
			dt:              float32(f.Timestep),
			bounce:          float32(f.BoundaryBounce),
			velocityDamping: float32(f.VelocityDamping),
			maxVelocity:     float32(f.MaxVelocity),
			settleThreshold: float32(f.SettleThreshold),
			neighborRefresh: int32(f.NeighborRefresh),
		},
		rng:      rng,
		grid:     NewGrid(float32(f.GridCellSize)),
		boundary: boundary,
	}

	// Guard the refresh modulus against configs built by hand rather than
	// through config.Load, which clamps this itself.
	if s.p.neighborRefresh < 1 {
		s.p.neighborRefresh = 1
	}

	s.particles = make([]Particle, f.ParticleCount)
	s.published = make([]geom.Vec2, f.ParticleCount)
	s.surface = make([]bool, f.ParticleCount)
	for i := range s.particles {
		p := &s.particles[i]
		p.Pos = geom.Vec2{
			X: float32(f.SpawnX) + rng.Float32()*float32(f.SpawnWidth),
			Y: float32(f.SpawnY) + rng.Float32()*float32(f.SpawnHeight),
		}
		p.Vel = s.p.gravity
		p.Mass = float32(f.ParticleMass)
		p.Density = s.p.minDensity
		p.Neighbors = make([]int32, 0, MaxNeighbors)
		s.published[i] = p.Pos
	}

	// Seed the grid so the first tick's clipping pass sees real buckets.
	s.grid.Build(s.particles)

	return s
}

// Step advances the simulation by one tick. Phase order is fixed: clipping
// runs against the previous tick's buckets, then the grid is rebuilt from
// current positions before neighbors and forces are computed. A zero
// particle population makes Step a no-op.
func (s *Solver) Step(obstacles []Obstacle) {
	if len(s.particles) == 0 {
		return
	}
	s.stats = StepStats{}

	s.phase(PhaseClip)
	s.resolveClipping()

	s.phase(PhaseGrid)
	s.grid.Build(s.particles)

	s.phase(PhaseNeighbors)
	if s.tick%s.p.neighborRefresh == 0 {
		s.refreshNeighbors()
	}

	s.phase(PhaseDensity)
	s.computeDensityPressure()

	s.phase(PhaseForces)
	s.accumulateForces(obstacles)

	s.phase(PhaseIntegrate)
	s.integrate()

	s.phase(PhaseBoundary)
	s.resolveBoundary(obstacles)

	s.phase(PhasePublish)
	s.publish()

	s.tick++
}

func (s *Solver) phase(name string) {
	if s.Trace != nil {
		s.Trace.StartPhase(name)
	}
}

func (s *Solver) refreshNeighbors() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Neighbors = s.grid.QueryNeighbors(int32(i), s.particles, s.p.h, p.Neighbors[:0])
	}
}

// integrate applies semi-implicit Euler with damping and a per-axis
// velocity clamp, then updates the settled flag from the population's mean
// speed. While settled, velocities decay hard (scaled by damping*dt) so a
// resting fluid stays at rest, but state keeps integrating underneath.
func (s *Solver) integrate() {
	damp := s.p.velocityDamping
	if s.settled {
		damp *= s.p.dt
	}

	var speedSum float32
	for i := range s.particles {
		p := &s.particles[i]
		rho := p.Density
		if rho < s.p.minDensity {
			rho = s.p.minDensity
		}
		p.Vel = p.Vel.Add(p.Force.Scale(s.p.dt / rho))
		p.Vel = p.Vel.Scale(damp)
		p.Vel = p.Vel.Clamp(s.p.maxVelocity)
		p.Pos = p.Pos.Add(p.Vel.Scale(s.p.dt))
		speedSum += p.Vel.Length()
	}

	s.stats.MeanSpeed = speedSum / float32(len(s.particles))
	s.settled = s.stats.MeanSpeed < s.p.settleThreshold
	s.stats.Settled = s.settled
}

// publish copies positions and surface flags into the externally visible
// snapshot, skipped while the fluid is settled.
func (s *Solver) publish() {
	if s.settled {
		return
	}
	for i := range s.particles {
		s.published[i] = s.particles[i].Pos
		s.surface[i] = s.particles[i].Surface
	}
}

// Positions returns the published position snapshot. The slice is owned by
// the solver and must be treated as read-only.
func (s *Solver) Positions() []geom.Vec2 { return s.published }

// SurfaceFlags returns the published surface classification, parallel to
// Positions.
func (s *Solver) SurfaceFlags() []bool { return s.surface }

// Particles exposes live particle state for debug overlays and tests.
func (s *Solver) Particles() []Particle { return s.particles }

// Settled reports whether the fluid has visually stabilized.
func (s *Solver) Settled() bool { return s.settled }

// Stats returns the counters recorded by the most recent Step.
func (s *Solver) Stats() StepStats { return s.stats }

// Tick returns the number of completed steps.
func (s *Solver) Tick() int32 { return s.tick }

// SetBoundary replaces the outer boundary polygon. Any cached settled
// state is invalidated so the fluid re-equilibrates against the new shape.
func (s *Solver) SetBoundary(boundary geom.Polygon) {
	s.boundary = boundary
	s.settled = false
}

// Boundary returns the current outer boundary polygon.
func (s *Solver) Boundary() geom.Polygon { return s.boundary }

// Params returns the live tunables by name.
func (s *Solver) Params() map[string]float32 {
	return map[string]float32{
		"gravity_x":        s.p.gravity.X,
		"gravity_y":        s.p.gravity.Y,
		"stiffness":        s.p.stiffness,
		"rest_density":     s.p.restDensity,
		"viscosity":        s.p.viscosity,
		"surface_tension":  s.p.surfaceTension,
		"spring_constant":  s.p.spring,
		"rest_distance":    s.p.restDistance,
		"repulsion":        s.p.repulsion,
		"boundary_bounce":  s.p.bounce,
		"velocity_damping": s.p.velocityDamping,
	}
}

// SetParam adjusts a live tunable between ticks. Settled state is
// invalidated since the new parameters may disturb the equilibrium.
func (s *Solver) SetParam(name string, v float32) error {
	switch name {
	case "gravity_x":
		s.p.gravity.X = v
	case "gravity_y":
		s.p.gravity.Y = v
	case "stiffness":
		s.p.stiffness = v
	case "rest_density":
		s.p.restDensity = v
	case "viscosity":
		s.p.viscosity = v
	case "surface_tension":
		s.p.surfaceTension = v
	case "spring_constant":
		s.p.spring = v
	case "rest_distance":
		s.p.restDistance = v
	case "repulsion":
		s.p.repulsion = v
	case "boundary_bounce":
		s.p.bounce = v
	case "velocity_damping":
		s.p.velocityDamping = v
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	s.settled = false
	return nil
}
