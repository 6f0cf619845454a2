package fluid

import "github.com/erematorg/brine/geom"

// computeDensityPressure evaluates local density over each particle's
// neighbor list and derives pressure through the equation of state.
//
// The equation of state is asymmetric: only over-dense regions push back.
// Under-dense regions exert no attractive pressure; cohesion is handled by
// the spring term in accumulateForces instead.
func (s *Solver) computeDensityPressure() {
	for i := range s.particles {
		p := &s.particles[i]

		rho := DensityKernel(0, s.p.h) * p.Mass
		for _, j := range p.Neighbors {
			q := &s.particles[j]
			r := q.Pos.Sub(p.Pos).Length()
			rho += q.Mass * DensityKernel(r, s.p.h)
		}
		if rho < s.p.minDensity {
			rho = s.p.minDensity
		}
		p.Density = rho

		if rho > s.p.restDensity {
			p.Pressure = s.p.stiffness * (rho/s.p.restDensity - 1)
		} else {
			p.Pressure = 0
		}
	}
}

// accumulateForces writes each particle's total force for this tick:
// pressure, viscosity, cohesion spring, short-range repulsion, surface
// tension, gravity, and external-object forces, in that order.
func (s *Solver) accumulateForces(obstacles []Obstacle) {
	s.stats.SurfaceCount = 0

	for i := range s.particles {
		p := &s.particles[i]

		// Gravity is scaled by current density, which gives denser regions
		// a buoyancy-like pull. Retained deliberately; "fixing" it to plain
		// mass-scaled gravity visibly changes how the fluid piles up.
		f := s.p.gravity.Scale(p.Mass * p.Density / s.p.velocityDamping)

		var colorGrad geom.Vec2
		var curvature float32

		for _, j := range p.Neighbors {
			q := &s.particles[j]

			delta := q.Pos.Sub(p.Pos)
			r := delta.Length()
			if r < geom.Epsilon {
				continue // coincident pairs belong to the clipping pass
			}
			dir := delta.Scale(1 / r)

			rhoJ := q.Density
			if rhoJ < s.p.minDensity {
				rhoJ = s.p.minDensity
			}

			// Pressure: symmetric pairwise term. The kernel slope is
			// negative, so positive pressures push the pair apart.
			fp := q.Mass * (p.Pressure + q.Pressure) / (2 * rhoJ) * PressureKernel(r, s.p.h)
			f = f.Add(dir.Scale(fp))

			// Viscosity: diffuse relative velocity between neighbors.
			fv := s.p.viscosity * q.Mass * ViscosityKernel(r, s.p.h) / rhoJ
			f = f.Add(q.Vel.Sub(p.Vel).Scale(fv))

			// Cohesion: spring toward the configured rest distance keeps
			// the fluid from dispersing. Not an SPH term.
			stretch := r - s.p.restDistance
			f = f.Add(dir.Scale(s.p.spring * stretch * s.p.velocityDamping))

			// Repulsion: inverse-overlap push inside the kernel support,
			// preventing re-clustering between clipping passes.
			if r < s.p.h {
				f = f.Sub(dir.Scale(s.p.repulsion * (s.p.h - r) / r))
			}

			// Color field accumulation for surface tension.
			w := DensityKernel(r, s.p.h) * q.Mass / rhoJ
			colorGrad = colorGrad.Add(dir.Scale(w))
			curvature += w
		}

		// Surface tension: particles with a strong color-field gradient sit
		// on the free surface; pull them against the gradient.
		if colorGrad.Length() > s.p.surfaceBias {
			p.Surface = true
			s.stats.SurfaceCount++
			f = f.Sub(colorGrad.Normalized().Scale(s.p.surfaceTension * curvature))
		} else {
			p.Surface = false
		}

		f = f.Add(s.obstacleForce(p, obstacles))

		p.Force = f
	}
}

// obstacleForce sums the forces from every external object whose polygon
// currently contains the particle.
func (s *Solver) obstacleForce(p *Particle, obstacles []Obstacle) geom.Vec2 {
	var f geom.Vec2

	for _, obs := range obstacles {
		shape := obs.WorldShape()
		if !shape.Contains(p.Pos) {
			continue
		}

		b := obs.base()
		velDir := b.Vel.Normalized()

		switch obs.(type) {
		case Attractor:
			dir := b.Pos.Sub(p.Pos).Normalized()
			f = f.Add(dir.Add(velDir).Scale(b.Force))
		case Repeller:
			dir := p.Pos.Sub(b.Pos).Normalized()
			f = f.Add(dir.Add(velDir).Scale(b.Force))
		case Solid:
			hit, ok := shape.ClosestEdge(p.Pos)
			if !ok {
				continue
			}
			// Push outward: the edge normal oriented away from the
			// obstacle's interior.
			n := hit.Normal(shape.Centroid()).Scale(-1)
			f = f.Add(n.Add(velDir).Scale(b.Force))
		}
	}

	return f
}
