// Package geom provides the 2D vector and polygon primitives used by the solver.
package geom

import "math"

// Epsilon guards divisions and normalizations against degenerate distances.
const Epsilon = 1e-6

// Vec2 is a 2D vector (also used for points).
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float32 { return v.X*v.X + v.Y*v.Y }

// Length returns the length of v.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalized returns v scaled to unit length, or the zero vector when v is
// shorter than Epsilon.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Clamp limits each component of v to [-limit, limit].
func (v Vec2) Clamp(limit float32) Vec2 {
	if v.X > limit {
		v.X = limit
	} else if v.X < -limit {
		v.X = -limit
	}
	if v.Y > limit {
		v.Y = limit
	} else if v.Y < -limit {
		v.Y = -limit
	}
	return v
}
