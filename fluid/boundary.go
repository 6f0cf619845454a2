package fluid

// resolveBoundary runs the two containment passes.
//
// Pass 1 hard-ejects particles from obstacle interiors: a particle found
// inside any obstacle polygon is snapped to the closest point on that
// polygon's nearest edge, with no velocity change. For influence zones
// this bounds how deep a particle can sit inside the field; for solids it
// is what makes the obstacle hard, since the repulsive force alone is
// finite and can be overrun.
//
// Pass 2 contains the population against the outer boundary: if the
// predicted next position leaves the polygon, the velocity's normal
// component is reflected with bounce damping, a small seeded tangential
// perturbation scaled by the repulsion strength is added, and the particle
// is snapped onto the nearest edge. A boundary with fewer than 2 points
// constrains nothing.
func (s *Solver) resolveBoundary(obstacles []Obstacle) {
	// Interior reference for orienting edge normals. The particle's own
	// position cannot serve: the clipping pass may have already pushed it
	// outside, which would flip the normal.
	interior := s.boundary.Centroid()

	for i := range s.particles {
		p := &s.particles[i]

		for _, obs := range obstacles {
			shape := obs.WorldShape()
			if !shape.Contains(p.Pos) {
				continue
			}
			if hit, ok := shape.ClosestEdge(p.Pos); ok {
				p.Pos = hit.Closest
				s.stats.ZoneEjects++
			}
		}

		if len(s.boundary) < 2 {
			continue
		}

		predicted := p.Pos.Add(p.Vel.Scale(s.p.dt))
		if s.boundary.Contains(predicted) {
			continue
		}

		hit, ok := s.boundary.ClosestEdge(predicted)
		if !ok {
			continue
		}

		// Decompose against the inward edge normal, reflect the normal
		// component, jitter the tangential one so stacked particles don't
		// bounce in lockstep.
		n := hit.Normal(interior)
		vn := p.Vel.Dot(n)
		vt := p.Vel.Sub(n.Scale(vn))

		jitter := (s.rng.Float32() - 0.5) * s.p.repulsion * s.p.dt
		p.Vel = vt.Add(n.Scale(-vn * s.p.bounce)).Add(hit.Tangent().Scale(jitter))
		p.Pos = hit.Closest
		s.stats.Reflections++
	}
}
