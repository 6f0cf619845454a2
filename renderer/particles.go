// Package renderer draws the fluid and scene geometry with raylib.
// It only reads the solver's published snapshot; all simulation state
// stays inside the fluid package.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/erematorg/brine/geom"
)

// ParticleRenderer renders the fluid particle snapshot.
type ParticleRenderer struct {
	Radius float32
}

// NewParticleRenderer creates a particle renderer with the given draw radius.
func NewParticleRenderer(radius float32) *ParticleRenderer {
	return &ParticleRenderer{Radius: radius}
}

// Colors for body and surface particles.
var (
	bodyColor    = rl.Color{R: 40, G: 110, B: 220, A: 230}
	surfaceColor = rl.Color{R: 120, G: 190, B: 255, A: 255}
)

// Draw renders every published particle position. surface is parallel to
// positions and selects the lighter surface tint.
func (r *ParticleRenderer) Draw(positions []geom.Vec2, surface []bool) {
	for i, pos := range positions {
		c := bodyColor
		if i < len(surface) && surface[i] {
			c = surfaceColor
		}
		rl.DrawCircle(int32(pos.X), int32(pos.Y), r.Radius, c)
	}
}
