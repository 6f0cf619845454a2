package geom

// Polygon is an ordered closed sequence of points (simple, no holes).
// The closing edge from the last point back to the first is implicit.
type Polygon []Vec2

// Translated returns a copy of p with offset added to every point.
func (p Polygon) Translated(offset Vec2) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Add(offset)
	}
	return out
}

// Contains reports whether pt lies inside p using even-odd ray crossing.
// Polygons with fewer than 3 points contain nothing.
func (p Polygon) Contains(pt Vec2) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			t := (pt.Y - a.Y) / (b.Y - a.Y)
			if pt.X < a.X+t*(b.X-a.X) {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// EdgeHit describes the nearest edge of a polygon to a query point.
type EdgeHit struct {
	A, B    Vec2    // edge endpoints
	Closest Vec2    // closest point on the edge
	Dist    float32 // distance from the query point to Closest
}

// ClosestEdge scans every edge of p and returns the one nearest to pt.
// Returns ok=false for polygons with fewer than 2 points.
func (p Polygon) ClosestEdge(pt Vec2) (EdgeHit, bool) {
	if len(p) < 2 {
		return EdgeHit{}, false
	}
	best := EdgeHit{Dist: float32(1e30)}
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[j], p[i]
		c := ClosestPointOnSegment(a, b, pt)
		d := c.Sub(pt).Length()
		if d < best.Dist {
			best = EdgeHit{A: a, B: b, Closest: c, Dist: d}
		}
		j = i
	}
	return best, true
}

// Normal returns the unit normal of the edge, oriented toward ref.
func (e EdgeHit) Normal(ref Vec2) Vec2 {
	n := e.B.Sub(e.A).Perp().Normalized()
	if n.Dot(ref.Sub(e.Closest)) < 0 {
		n = n.Scale(-1)
	}
	return n
}

// Tangent returns the unit direction along the edge.
func (e EdgeHit) Tangent() Vec2 {
	return e.B.Sub(e.A).Normalized()
}

// ClosestPointOnSegment returns the point on segment ab nearest to pt.
func ClosestPointOnSegment(a, b, pt Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < Epsilon*Epsilon {
		return a
	}
	t := pt.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// Centroid returns the arithmetic mean of the polygon's points.
func (p Polygon) Centroid() Vec2 {
	var c Vec2
	if len(p) == 0 {
		return c
	}
	for _, pt := range p {
		c = c.Add(pt)
	}
	return c.Scale(1 / float32(len(p)))
}
