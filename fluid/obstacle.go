package fluid

import "github.com/erematorg/brine/geom"

// Body holds the fields shared by every obstacle variant: a polygon in
// local space, the obstacle's current position and velocity, and the
// magnitude of the force it exerts on particles inside it.
type Body struct {
	Shape geom.Polygon
	Pos   geom.Vec2
	Vel   geom.Vec2
	Force float32
}

// WorldShape returns the obstacle polygon translated to world space.
func (b Body) WorldShape() geom.Polygon { return b.Shape.Translated(b.Pos) }

func (b Body) base() Body { return b }

// Obstacle is a dynamic external object supplied to the solver each tick.
// The concrete variant decides how particles inside it are treated:
//
//	Repeller  - influence zone pushing particles away from its origin
//	Attractor - influence zone pulling particles toward its origin
//	Solid     - hard obstacle repelling along its nearest-edge normal
//
// All variants additionally hard-eject any particle found inside them
// during boundary resolution, which is what keeps solids impenetrable.
type Obstacle interface {
	WorldShape() geom.Polygon
	base() Body
}

// Repeller pushes contained particles away from its origin.
type Repeller struct{ Body }

// Attractor pulls contained particles toward its origin.
type Attractor struct{ Body }

// Solid repels contained particles along the nearest-edge normal and snaps
// them onto its surface.
type Solid struct{ Body }
