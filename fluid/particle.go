package fluid

import "github.com/erematorg/brine/geom"

// MaxNeighbors caps each particle's neighbor list. Neighbor queries stop
// once the cap is reached; truncation under clustering is an accepted
// approximation that bounds per-particle cost.
const MaxNeighbors = 8

// Particle is one fluid particle. The population is created once at solver
// init and its size never changes during a run.
type Particle struct {
	Pos   geom.Vec2
	Vel   geom.Vec2
	Force geom.Vec2 // cleared and recomputed every tick

	Density  float32 // clamped to the configured floor
	Pressure float32 // >= 0
	Mass     float32

	// Surface marks particles whose color-field gradient exceeds the
	// configured bias; used by surface tension and exposed for rendering.
	Surface bool

	// Neighbors holds indices into the solver's particle slice. Allocated
	// once with capacity MaxNeighbors and truncated on refresh.
	Neighbors []int32
}
