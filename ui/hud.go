package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	ParticleCount int
	SurfaceCount  int
	ObstacleCount int
	Tick          uint64
	FPS           int32
	Paused        bool
	Settled       bool
	MeanSpeed     float32
	PlacementKind string
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Surface: %d | Obstacles: %d", data.ParticleCount, data.SurfaceCount, data.ObstacleCount),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Mean speed: %.1f | Placing: %s", data.Tick, data.FPS, data.MeanSpeed, data.PlacementKind),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	switch {
	case data.Paused:
		statusText = "PAUSED"
	case data.Settled:
		statusText = "Settled"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
