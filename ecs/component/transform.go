package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

// Transform places an entity in the Z-up world. For characters Position is the
// capsule centre.
type Transform struct {
	Position mgl32.Vec3
	Rotation common.Rotator
}

var TransformComponent = NewComponent[Transform]()
