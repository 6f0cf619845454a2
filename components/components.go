// Package components defines the ECS components for demo-scene obstacles.
package components

import "github.com/erematorg/brine/geom"

// Position is an obstacle's world position.
type Position struct {
	X, Y float32
}

// Velocity is an obstacle's velocity in world units per second.
type Velocity struct {
	X, Y float32
}

// ObstacleKind selects how the fluid reacts to an obstacle.
type ObstacleKind uint8

const (
	KindRepeller ObstacleKind = iota
	KindAttractor
	KindSolid
)

// String returns the kind's display name.
func (k ObstacleKind) String() string {
	switch k {
	case KindRepeller:
		return "repeller"
	case KindAttractor:
		return "attractor"
	case KindSolid:
		return "solid"
	}
	return "unknown"
}

// Shape is an obstacle's polygon in local space plus its fluid behavior.
type Shape struct {
	Points geom.Polygon
	Kind   ObstacleKind
	Force  float32
}
