package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/erematorg/brine/components"
)

// Drift speed applied when an obstacle is placed with shift held.
const driftSpeed float32 = 30

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Cycle obstacle kind for placement
	if rl.IsKeyPressed(rl.KeyTab) {
		g.placementKind = (g.placementKind + 1) % 3
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paramsPanel.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.clearObstacles()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}

	// Mouse placement. The params panel captures clicks inside it via
	// raygui, so skip placement while it is visible and hovered.
	mouse := rl.GetMousePosition()
	if g.paramsPanel.IsVisible() && mouse.X > g.width-300 {
		return
	}

	// Click on an existing obstacle starts a drag, click on empty space
	// places a new one.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if e, ok := g.obstacleAt(mouse.X, mouse.Y); ok {
			g.dragging = e
			g.dragActive = true
		} else {
			vel := components.Velocity{}
			if rl.IsKeyDown(rl.KeyLeftShift) {
				angle := g.rng.Float32() * 2 * 3.14159265
				vel.X = driftSpeed * cosf(angle)
				vel.Y = driftSpeed * sinf(angle)
			}
			g.spawnObstacle(mouse.X, mouse.Y, g.placementKind, vel)
		}
	}

	if g.dragActive {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) && g.world.Alive(g.dragging) {
			pos := g.posMap.Get(g.dragging)
			pos.X, pos.Y = mouse.X, mouse.Y
		} else {
			g.dragActive = false
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		g.removeObstacleAt(mouse.X, mouse.Y)
	}
}
