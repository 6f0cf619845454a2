package fluid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/erematorg/brine/config"
	"github.com/erematorg/brine/geom"
)

// quietFluid turns every force off so individual terms can be enabled per
// test. Pressure is disabled by lifting rest_density out of reach.
func quietFluid(f *config.FluidConfig) {
	f.GravityX = 0
	f.GravityY = 0
	f.RestDensity = 1e9
	f.SpringConstant = 0
	f.Repulsion = 0
	f.SurfaceTension = 0
	f.Viscosity = 0
	f.VelocityDamping = 1
	f.SettleThreshold = 0
	f.NeighborRefresh = 1
}

func newTestSolver(t *testing.T, boundary geom.Polygon, mutate func(*config.FluidConfig)) *Solver {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if mutate != nil {
		mutate(&cfg.Fluid)
	}
	return NewSolver(cfg, boundary, rand.New(rand.NewSource(42)))
}

func TestIsolatedParticleDensity(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		want float32
	}{
		{"below floor clamps", 8, 10},      // kernel(0)*8 = 8 < floor
		{"above floor keeps value", 20, 20}, // kernel(0)*20 = 20
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSolver(t, nil, func(f *config.FluidConfig) {
				quietFluid(f)
				f.ParticleCount = 1
				f.ParticleMass = tt.mass
			})
			s.Step(nil)

			got := s.Particles()[0].Density
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("density = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPressureEquationOfState(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 6
		f.RestDensity = 12 // low enough that a cluster exceeds it
	})

	// Stack the population into a tight cluster.
	for i := range s.particles {
		s.particles[i].Pos = geom.Vec2{X: 100 + float32(i)*2, Y: 100}
	}
	s.grid.Build(s.particles)
	s.refreshNeighbors()
	s.computeDensityPressure()

	for i := range s.particles {
		p := &s.particles[i]
		if p.Density <= 12 && p.Pressure != 0 {
			t.Errorf("particle %d: pressure %f with density %f <= rest", i, p.Pressure, p.Density)
		}
		if p.Density > 12 && p.Pressure <= 0 {
			t.Errorf("particle %d: over-dense but pressure %f", i, p.Pressure)
		}
	}

	// Strictly increasing in density above rest.
	for i := range s.particles {
		for j := range s.particles {
			pi, pj := &s.particles[i], &s.particles[j]
			if pi.Density > pj.Density && pj.Density > 12 && pi.Pressure <= pj.Pressure {
				t.Errorf("pressure not increasing in density: (%f,%f) vs (%f,%f)",
					pi.Density, pi.Pressure, pj.Density, pj.Pressure)
			}
		}
	}
}

func TestVelocityClampBoundsAnyForce(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 3
		f.GravityY = 1e9 // absurd force
	})
	s.Step(nil)

	limit := s.p.maxVelocity
	for i, p := range s.Particles() {
		if p.Vel.X > limit || p.Vel.X < -limit || p.Vel.Y > limit || p.Vel.Y < -limit {
			t.Errorf("particle %d velocity %v escapes clamp %f", i, p.Vel, limit)
		}
	}
}

func TestClippingSeparatesCoincidentPair(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 2
	})

	s.particles[0].Pos = geom.Vec2{X: 100, Y: 100}
	s.particles[1].Pos = geom.Vec2{X: 100, Y: 100}
	s.grid.Build(s.particles)
	s.resolveClipping()

	d := s.particles[1].Pos.Sub(s.particles[0].Pos).Length()
	want := 2 * s.p.particleSize
	if d < want-1e-4 {
		t.Errorf("distance after clipping = %f, want >= %f", d, want)
	}
	if s.stats.ClipPairs == 0 {
		t.Error("clipping pass recorded no separated pairs")
	}
}

func TestSettledGatesPublishedPositions(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 4
		f.SettleThreshold = 1e9 // always below threshold -> settled
	})
	for i := range s.particles {
		s.particles[i].Vel = geom.Vec2{X: 50, Y: 0}
	}
	before := make([]geom.Vec2, len(s.published))
	copy(before, s.published)

	s.Step(nil)

	if !s.Settled() {
		t.Fatal("expected settled flag with an enormous threshold")
	}
	for i := range before {
		if s.published[i] != before[i] {
			t.Errorf("published position %d changed while settled", i)
		}
		if s.particles[i].Pos == before[i] {
			t.Errorf("internal position %d should keep integrating", i)
		}
	}
}

func TestSettledWhenAllVelocitiesZero(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 4
		f.SettleThreshold = 0.5
	})
	s.Step(nil)

	if !s.Settled() {
		t.Error("motionless population should settle")
	}
}

func TestSetBoundaryClearsSettled(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 2
		f.SettleThreshold = 0.5
	})
	s.Step(nil)
	if !s.Settled() {
		t.Fatal("expected settled population")
	}

	s.SetBoundary(geom.Polygon{{X: 0, Y: 0}, {X: 500, Y: 0}, {X: 500, Y: 500}, {X: 0, Y: 500}})
	if s.Settled() {
		t.Error("boundary change should invalidate settled state")
	}
}

func TestZeroParticlesIsNoop(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 0
	})
	s.Step(nil) // must not panic
	if s.Tick() != 0 {
		t.Errorf("tick advanced on empty population: %d", s.Tick())
	}
}

func TestScenarioStillSquare(t *testing.T) {
	// Four particles at the corners of a unit square with every force
	// silenced must not move.
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 4
		f.SmoothingLength = 2
		f.GridCellSize = 2
		f.ParticleSize = 0.1
		f.RestDistance = 1
	})
	corners := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i := range s.particles {
		s.particles[i].Pos = corners[i]
		s.particles[i].Vel = geom.Vec2{}
	}
	s.grid.Build(s.particles)

	s.Step(nil)

	for i, p := range s.Particles() {
		if p.Pos.Sub(corners[i]).Length() > 1e-4 {
			t.Errorf("particle %d moved from %v to %v", i, corners[i], p.Pos)
		}
	}
}

func TestScenarioViscousPairConverges(t *testing.T) {
	// Two particles half a smoothing length apart with opposite
	// velocities: viscosity alone must monotonically close the gap in
	// velocity.
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 2
		f.Viscosity = 8.5
	})
	s.particles[0].Pos = geom.Vec2{X: 100, Y: 100}
	s.particles[1].Pos = geom.Vec2{X: 100 + s.p.h/2, Y: 100}
	s.particles[0].Vel = geom.Vec2{X: 50, Y: 0}
	s.particles[1].Vel = geom.Vec2{X: -50, Y: 0}
	s.grid.Build(s.particles)

	prev := float32(100)
	for tick := 0; tick < 6; tick++ {
		s.Step(nil)
		diff := s.particles[0].Vel.Sub(s.particles[1].Vel).Length()
		if diff >= prev {
			t.Fatalf("tick %d: velocity difference %f did not shrink from %f", tick, diff, prev)
		}
		prev = diff
	}
}

func TestScenarioBoundaryReflection(t *testing.T) {
	boundary := geom.Polygon{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 200}, {X: 0, Y: 200}}
	s := newTestSolver(t, boundary, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
		f.BoundaryBounce = 0.35
	})
	s.particles[0].Pos = geom.Vec2{X: 100, Y: 100}
	s.particles[0].Vel = geom.Vec2{X: 80, Y: 0}

	var reflected bool
	for tick := 0; tick < 200; tick++ {
		s.Step(nil)
		if s.Stats().Reflections > 0 {
			reflected = true
			break
		}
		if got := s.particles[0].Vel.X; math.Abs(float64(got-80)) > 1e-3 {
			t.Fatalf("velocity drifted to %f before any reflection", got)
		}
	}
	if !reflected {
		t.Fatal("particle never reached the boundary")
	}

	p := s.Particles()[0]
	if math.Abs(float64(p.Vel.X+0.35*80)) > 1e-2 {
		t.Errorf("normal velocity after bounce = %f, want %f", p.Vel.X, -0.35*80)
	}
	if math.Abs(float64(p.Pos.X-200)) > 1e-3 {
		t.Errorf("particle not snapped onto the edge: x = %f", p.Pos.X)
	}
}

func TestInfluenceZoneEjectsParticle(t *testing.T) {
	zone := Repeller{Body{
		Shape: geom.Polygon{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}},
		Force: 0, // isolate the containment pass
	}}
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
	})
	s.particles[0].Pos = geom.Vec2{X: 35, Y: 20}
	s.grid.Build(s.particles)

	s.Step([]Obstacle{zone})

	p := s.Particles()[0]
	if zone.WorldShape().Contains(p.Pos) {
		t.Errorf("particle still inside the zone at %v", p.Pos)
	}
	if math.Abs(float64(p.Pos.X-40)) > 1e-3 || math.Abs(float64(p.Pos.Y-20)) > 1e-3 {
		t.Errorf("expected snap to (40,20), got %v", p.Pos)
	}
	if s.Stats().ZoneEjects != 1 {
		t.Errorf("ZoneEjects = %d, want 1", s.Stats().ZoneEjects)
	}
}

func TestObstacleForceVariants(t *testing.T) {
	shape := geom.Polygon{{X: -20, Y: -20}, {X: 20, Y: -20}, {X: 20, Y: 20}, {X: -20, Y: 20}}
	body := Body{Shape: shape, Pos: geom.Vec2{X: 100, Y: 100}, Force: 10}

	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
	})
	p := &s.particles[0]
	p.Pos = geom.Vec2{X: 110, Y: 100} // inside, right of origin

	tests := []struct {
		name  string
		obs   Obstacle
		wantX float32 // sign of the expected X force
	}{
		{"attractor pulls toward origin", Attractor{body}, -10},
		{"repeller pushes away from origin", Repeller{body}, 10},
		{"solid pushes along outward edge normal", Solid{body}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := s.obstacleForce(p, []Obstacle{tt.obs})
			if math.Abs(float64(f.X-tt.wantX)) > 1e-3 {
				t.Errorf("force = %v, want X close to %f", f, tt.wantX)
			}
		})
	}

	t.Run("outside means no force", func(t *testing.T) {
		p.Pos = geom.Vec2{X: 300, Y: 300}
		if f := s.obstacleForce(p, []Obstacle{Repeller{body}}); f != (geom.Vec2{}) {
			t.Errorf("expected zero force outside the polygon, got %v", f)
		}
	})
}

func TestNeighborListsRespectCapAndRadius(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 120
	})
	s.Step(nil)

	for i, p := range s.Particles() {
		if len(p.Neighbors) > MaxNeighbors {
			t.Fatalf("particle %d has %d neighbors", i, len(p.Neighbors))
		}
		for _, j := range p.Neighbors {
			d := s.particles[j].Pos.Sub(p.Pos).Length()
			// Lists are refreshed before positions move this tick, so
			// allow the distance each pair can close in one step.
			if d >= s.p.h+2*s.p.maxVelocity*s.p.dt {
				t.Fatalf("particle %d: neighbor %d at %f beyond smoothing length", i, j, d)
			}
		}
	}
}

func TestSetParam(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
	})

	if err := s.SetParam("viscosity", 3.25); err != nil {
		t.Fatalf("setting viscosity: %v", err)
	}
	if got := s.Params()["viscosity"]; got != 3.25 {
		t.Errorf("viscosity = %f, want 3.25", got)
	}
	if err := s.SetParam("warp_drive", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSolidObstacleEjectsContainedParticle(t *testing.T) {
	solid := Solid{Body{
		Shape: geom.Polygon{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}},
		Force: 0, // isolate the containment pass from the repulsive force
	}}
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
	})
	s.particles[0].Pos = geom.Vec2{X: 35, Y: 20}
	s.grid.Build(s.particles)

	for tick := 0; tick < 10; tick++ {
		s.Step([]Obstacle{solid})
	}

	p := s.Particles()[0]
	if solid.WorldShape().Contains(p.Pos) {
		t.Errorf("particle still inside the solid at %v", p.Pos)
	}
	if math.Abs(float64(p.Pos.X-40)) > 1e-3 || math.Abs(float64(p.Pos.Y-20)) > 1e-3 {
		t.Errorf("expected snap to (40,20), got %v", p.Pos)
	}
}

func TestNeighborRefreshZeroIsClamped(t *testing.T) {
	s := newTestSolver(t, nil, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 4
		f.NeighborRefresh = 0 // bypasses the config loader's clamp
	})

	s.Step(nil)
	if s.Tick() != 1 {
		t.Errorf("tick = %d after one step, want 1", s.Tick())
	}
}

func TestReflectionNormalIgnoresOutsideStart(t *testing.T) {
	boundary := geom.Polygon{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 200}, {X: 0, Y: 200}}
	s := newTestSolver(t, boundary, func(f *config.FluidConfig) {
		quietFluid(f)
		f.ParticleCount = 1
		f.BoundaryBounce = 0.35
	})

	// Already outside the right wall and still heading out, as if a
	// clipping displacement had pushed it through this tick.
	s.particles[0].Pos = geom.Vec2{X: 205, Y: 100}
	s.particles[0].Vel = geom.Vec2{X: 80, Y: 0}
	s.grid.Build(s.particles)

	s.Step(nil)

	p := s.Particles()[0]
	if p.Vel.X >= 0 {
		t.Errorf("reflected velocity X = %f, want inward (negative)", p.Vel.X)
	}
	if math.Abs(float64(p.Vel.X+0.35*80)) > 1e-2 {
		t.Errorf("normal velocity after bounce = %f, want %f", p.Vel.X, -0.35*80)
	}
	if math.Abs(float64(p.Pos.X-200)) > 1e-3 {
		t.Errorf("particle not snapped onto the edge: x = %f", p.Pos.X)
	}
}
