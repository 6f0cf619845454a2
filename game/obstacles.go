package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/erematorg/brine/components"
	"github.com/erematorg/brine/fluid"
	"github.com/erematorg/brine/geom"
)

// Default obstacle strengths per kind.
const (
	repellerForce  float32 = 140
	attractorForce float32 = 120
	solidForce     float32 = 90
)

// Default obstacle radii. Influence zones are larger than solid bodies.
const (
	solidRadius float32 = 45
	zoneRadius  float32 = 60
)

// regularPolygon builds an n-gon of the given radius centered on origin.
func regularPolygon(n int, radius float32) geom.Polygon {
	poly := make(geom.Polygon, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = geom.Vec2{
			X: radius * float32(math.Cos(a)),
			Y: radius * float32(math.Sin(a)),
		}
	}
	return poly
}

// spawnObstacle creates an obstacle entity at the given position.
func (g *Game) spawnObstacle(x, y float32, kind components.ObstacleKind, vel components.Velocity) ecs.Entity {
	pos := components.Position{X: x, Y: y}

	shape := components.Shape{Kind: kind}
	switch kind {
	case components.KindSolid:
		shape.Points = regularPolygon(6, solidRadius)
		shape.Force = solidForce
	case components.KindRepeller:
		shape.Points = regularPolygon(8, zoneRadius)
		shape.Force = repellerForce
	case components.KindAttractor:
		shape.Points = regularPolygon(8, zoneRadius)
		shape.Force = attractorForce
	}

	e := g.obstacleMapper.NewEntity(&pos, &vel, &shape)
	g.obstacleCount++
	return e
}

// updateObstacles advances obstacle kinematics. Moving obstacles bounce
// off the container walls.
func (g *Game) updateObstacles() {
	m := float32(BoundaryMargin)

	query := g.obstacleFilter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		if vel.X == 0 && vel.Y == 0 {
			continue
		}

		pos.X += vel.X * g.dt
		pos.Y += vel.Y * g.dt

		if pos.X < m && vel.X < 0 || pos.X > g.width-m && vel.X > 0 {
			vel.X = -vel.X
		}
		if pos.Y < m && vel.Y < 0 || pos.Y > g.height-m && vel.Y > 0 {
			vel.Y = -vel.Y
		}
	}
}

// collectObstacles rebuilds the solver's obstacle slice from the entities.
func (g *Game) collectObstacles() []fluid.Obstacle {
	g.obstacles = g.obstacles[:0]

	query := g.obstacleFilter.Query()
	for query.Next() {
		pos, vel, shape := query.Get()
		body := fluid.Body{
			Shape: shape.Points,
			Pos:   geom.Vec2{X: pos.X, Y: pos.Y},
			Vel:   geom.Vec2{X: vel.X, Y: vel.Y},
			Force: shape.Force,
		}

		switch shape.Kind {
		case components.KindRepeller:
			g.obstacles = append(g.obstacles, fluid.Repeller{Body: body})
		case components.KindAttractor:
			g.obstacles = append(g.obstacles, fluid.Attractor{Body: body})
		case components.KindSolid:
			g.obstacles = append(g.obstacles, fluid.Solid{Body: body})
		}
	}

	return g.obstacles
}

// obstacleAt finds the first obstacle whose polygon contains the given
// point.
func (g *Game) obstacleAt(x, y float32) (ecs.Entity, bool) {
	var target ecs.Entity
	found := false

	p := geom.Vec2{X: x, Y: y}
	query := g.obstacleFilter.Query()
	for query.Next() {
		pos, _, shape := query.Get()
		world := shape.Points.Translated(geom.Vec2{X: pos.X, Y: pos.Y})
		if !found && world.Contains(p) {
			target = query.Entity()
			found = true
		}
	}
	return target, found
}

// removeObstacleAt deletes the obstacle under the given point. Returns
// whether one was removed.
func (g *Game) removeObstacleAt(x, y float32) bool {
	target, found := g.obstacleAt(x, y)
	if found {
		g.world.RemoveEntity(target)
		g.obstacleCount--
	}
	return found
}

// clearObstacles removes every obstacle entity.
func (g *Game) clearObstacles() {
	var all []ecs.Entity
	query := g.obstacleFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.world.RemoveEntity(e)
	}
	g.obstacleCount = 0
}
