package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

// Camera follows a character's spring arm.
type Camera struct {
	Target   string
	Eye      mgl32.Vec3
	Pivot    mgl32.Vec3
	Rotation common.Rotator
}

var CameraComponent = NewComponent[Camera]()
