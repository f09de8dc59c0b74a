package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/traversal"
)

// CharacterBody is the capsule state integrated by the physics system.
type CharacterBody struct {
	Params config.Body

	Velocity mgl32.Vec3
	Mode     traversal.MovementMode
	// Scripted suspends integration while a scripted move owns the capsule.
	Scripted bool
	// OrientToMovement turns the capsule toward its acceleration. Cleared
	// while the controller owns the facing.
	OrientToMovement bool

	// PendingInput accumulates AddMovementInput calls until the next step.
	PendingInput mgl32.Vec3

	JumpHeld     bool
	JumpHoldTime float32
}

var CharacterBodyComponent = NewComponent[CharacterBody]()
