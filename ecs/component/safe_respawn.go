package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

// SpawnPoint is where a character returns to after leaving the level.
type SpawnPoint struct {
	Position mgl32.Vec3
	Rotation common.Rotator
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
