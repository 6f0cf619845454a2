package fluid

import (
	"math"

	"github.com/erematorg/brine/geom"
)

// resolveClipping separates overlapping particle pairs before the force
// pass. The kernels are singular as r approaches 0, so fully coincident
// particles would otherwise blow the pressure force up; this pass is
// independent of the physical force model.
//
// It runs against the buckets as built on the previous tick (Step rebuilds
// the grid right after), pairing particles only within the same cell.
func (s *Solver) resolveClipping() {
	minDist := 2 * s.p.particleSize
	minDistSq := minDist * minDist

	s.grid.ForEachBucket(func(indices []int32) {
		for a := 0; a < len(indices)-1; a++ {
			for b := a + 1; b < len(indices); b++ {
				pi := &s.particles[indices[a]]
				pj := &s.particles[indices[b]]

				delta := pj.Pos.Sub(pi.Pos)
				d2 := delta.LengthSq()
				if d2 >= minDistSq {
					continue
				}

				d := float32(math.Sqrt(float64(d2)))
				dir := geom.Vec2{X: 1}
				if d >= geom.Epsilon {
					dir = delta.Scale(1 / d)
				}

				half := (minDist - d) / 2
				pi.Pos = pi.Pos.Sub(dir.Scale(half))
				pj.Pos = pj.Pos.Add(dir.Scale(half))
				s.stats.ClipPairs++
			}
		}
	})
}
