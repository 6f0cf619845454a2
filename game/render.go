package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/erematorg/brine/geom"
	"github.com/erematorg/brine/renderer"
	"github.com/erematorg/brine/ui"
)

var backgroundColor = rl.Color{R: 12, G: 16, B: 24, A: 255}

// Draw renders the scene and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	renderer.DrawBoundary(g.solver.Boundary())

	query := g.obstacleFilter.Query()
	for query.Next() {
		pos, _, shape := query.Get()
		world := shape.Points.Translated(geom.Vec2{X: pos.X, Y: pos.Y})
		renderer.DrawObstacle(world, shape.Kind)
	}

	g.particleRenderer.Draw(g.solver.Positions(), g.solver.SurfaceFlags())

	stats := g.solver.Stats()
	g.hud.Draw(ui.HUDData{
		Title:         "Brine",
		ParticleCount: len(g.solver.Positions()),
		SurfaceCount:  stats.SurfaceCount,
		ObstacleCount: g.obstacleCount,
		Tick:          uint64(g.solver.Tick()),
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		Settled:       g.solver.Settled(),
		MeanSpeed:     stats.MeanSpeed,
		PlacementKind: g.placementKind.String(),
		ScreenWidth:   int32(g.width),
		ScreenHeight:  int32(g.height),
	})
	g.hud.DrawControls(int32(g.width), int32(g.height),
		"Space: pause | Tab: cycle kind | LMB: place | Shift+LMB: drifting | RMB: remove | C: clear | P: params | <,>: speed")

	action := g.paramsPanel.Draw(g.solver.Params(), func(name string, v float32) {
		// Slider names come from Params, unknown keys cannot happen.
		_ = g.solver.SetParam(name, v)
	})
	switch action {
	case ui.ActionTogglePause:
		g.paused = !g.paused
	case ui.ActionReset:
		g.reset()
	}

	rl.EndDrawing()
}
