package fluid

import (
	"math"

	"github.com/erematorg/brine/geom"
)

// Grid is the broad-phase spatial hash. Cells are keyed by their packed
// integer coordinates; bucket slices are truncated rather than reallocated
// on rebuild so steady-state ticks do not allocate.
type Grid struct {
	cellSize float32
	cells    map[uint64][]int32
}

// NewGrid creates a grid with the given cell size.
func NewGrid(cellSize float32) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int32),
	}
}

// packKey folds a signed cell coordinate pair into one map key.
func packKey(cx, cy int32) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

func (g *Grid) cellCoord(v float32) int32 {
	return int32(math.Floor(float64(v / g.cellSize)))
}

// Build clears every bucket and reinserts all particles by cell key.
func (g *Grid) Build(particles []Particle) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i := range particles {
		k := packKey(g.cellCoord(particles[i].Pos.X), g.cellCoord(particles[i].Pos.Y))
		g.cells[k] = append(g.cells[k], int32(i))
	}
}

// QueryNeighbors appends to out the indices of particles within radius of
// particle idx, scanning the 3x3 block of cells around its own cell. The
// scan stops early once out holds MaxNeighbors entries.
func (g *Grid) QueryNeighbors(idx int32, particles []Particle, radius float32, out []int32) []int32 {
	p := &particles[idx]
	cx := g.cellCoord(p.Pos.X)
	cy := g.cellCoord(p.Pos.Y)
	r2 := radius * radius

	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			bucket := g.cells[packKey(cx+dx, cy+dy)]
			for _, j := range bucket {
				if j == idx {
					continue
				}
				d := particles[j].Pos.Sub(p.Pos)
				if d.LengthSq() < r2 {
					out = append(out, j)
					if len(out) >= MaxNeighbors {
						return out
					}
				}
			}
		}
	}
	return out
}

// ForEachBucket calls fn for every non-empty cell bucket.
func (g *Grid) ForEachBucket(fn func(indices []int32)) {
	for _, bucket := range g.cells {
		if len(bucket) > 1 {
			fn(bucket)
		}
	}
}

// Cell returns the cell coordinates a position maps to.
func (g *Grid) Cell(pos geom.Vec2) (int32, int32) {
	return g.cellCoord(pos.X), g.cellCoord(pos.Y)
}
