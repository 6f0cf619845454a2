package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/erematorg/brine/components"
	"github.com/erematorg/brine/geom"
)

// Obstacle kind colors.
var (
	repellerColor  = rl.Color{R: 220, G: 90, B: 60, A: 120}
	attractorColor = rl.Color{R: 90, G: 200, B: 120, A: 120}
	solidColor     = rl.Color{R: 170, G: 170, B: 170, A: 200}
	boundaryColor  = rl.Color{R: 230, G: 230, B: 240, A: 255}
)

// DrawBoundary outlines the container polygon.
func DrawBoundary(boundary geom.Polygon) {
	if len(boundary) < 2 {
		return
	}
	j := len(boundary) - 1
	for i := 0; i < len(boundary); i++ {
		a, b := boundary[j], boundary[i]
		rl.DrawLine(int32(a.X), int32(a.Y), int32(b.X), int32(b.Y), boundaryColor)
		j = i
	}
}

// DrawObstacle fills an obstacle polygon in its kind's color.
func DrawObstacle(shape geom.Polygon, kind components.ObstacleKind) {
	if len(shape) < 3 {
		return
	}

	c := repellerColor
	switch kind {
	case components.KindAttractor:
		c = attractorColor
	case components.KindSolid:
		c = solidColor
	}

	// Fan triangulation; obstacle shapes are convex.
	for i := 1; i < len(shape)-1; i++ {
		rl.DrawTriangle(
			rl.Vector2{X: shape[0].X, Y: shape[0].Y},
			rl.Vector2{X: shape[i+1].X, Y: shape[i+1].Y},
			rl.Vector2{X: shape[i].X, Y: shape[i].Y},
			c,
		)
	}

	j := len(shape) - 1
	for i := 0; i < len(shape); i++ {
		a, b := shape[j], shape[i]
		rl.DrawLine(int32(a.X), int32(a.Y), int32(b.X), int32(b.Y), rl.White)
		j = i
	}
}
