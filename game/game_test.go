package game

import (
	"testing"

	"github.com/erematorg/brine/components"
	"github.com/erematorg/brine/config"
	"github.com/erematorg/brine/fluid"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	config.MustInit("")
	return NewGameWithOptions(Options{
		Seed:           1,
		StatsWindowSec: 5,
		Headless:       true,
		StepsPerUpdate: 1,
	})
}

func TestObstacleLifecycle(t *testing.T) {
	g := newTestGame(t)

	g.spawnObstacle(100, 100, components.KindSolid, components.Velocity{})
	g.spawnObstacle(300, 100, components.KindRepeller, components.Velocity{})
	g.spawnObstacle(500, 100, components.KindAttractor, components.Velocity{})

	obs := g.collectObstacles()
	if len(obs) != 3 {
		t.Fatalf("collected %d obstacles, want 3", len(obs))
	}

	kinds := map[string]int{}
	for _, o := range obs {
		switch o.(type) {
		case fluid.Solid:
			kinds["solid"]++
		case fluid.Repeller:
			kinds["repeller"]++
		case fluid.Attractor:
			kinds["attractor"]++
		}
	}
	for _, k := range []string{"solid", "repeller", "attractor"} {
		if kinds[k] != 1 {
			t.Errorf("kind %s appeared %d times, want 1", k, kinds[k])
		}
	}

	if !g.removeObstacleAt(100, 100) {
		t.Error("expected removal at obstacle center")
	}
	if g.removeObstacleAt(100, 100) {
		t.Error("second removal at same point should find nothing")
	}
	if got := len(g.collectObstacles()); got != 2 {
		t.Errorf("after removal collected %d obstacles, want 2", got)
	}

	g.clearObstacles()
	if got := len(g.collectObstacles()); got != 0 {
		t.Errorf("after clear collected %d obstacles, want 0", got)
	}
	if g.obstacleCount != 0 {
		t.Errorf("obstacle count = %d after clear, want 0", g.obstacleCount)
	}
}

func TestObstacleWorldShapeFollowsPosition(t *testing.T) {
	g := newTestGame(t)
	g.spawnObstacle(200, 150, components.KindSolid, components.Velocity{})

	obs := g.collectObstacles()
	if len(obs) != 1 {
		t.Fatalf("collected %d obstacles, want 1", len(obs))
	}

	c := obs[0].WorldShape().Centroid()
	if absf(c.X-200) > 1e-3 || absf(c.Y-150) > 1e-3 {
		t.Errorf("world shape centroid = (%v, %v), want (200, 150)", c.X, c.Y)
	}
}

func TestMovingObstacleBouncesOffWalls(t *testing.T) {
	g := newTestGame(t)

	// Heading right, already past the right wall inset.
	g.spawnObstacle(g.width-BoundaryMargin+5, 300, components.KindSolid, components.Velocity{X: 50})
	g.updateObstacles()

	query := g.obstacleFilter.Query()
	for query.Next() {
		_, vel, _ := query.Get()
		if vel.X >= 0 {
			t.Errorf("velocity X = %v after wall hit, want negative", vel.X)
		}
	}
}

func TestHeadlessUpdateAdvancesTicks(t *testing.T) {
	g := newTestGame(t)
	g.stepsPerUpdate = 3

	before := g.Tick()
	g.UpdateHeadless()
	if got := g.Tick() - before; got != 3 {
		t.Errorf("advanced %d ticks, want 3", got)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
