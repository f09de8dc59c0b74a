package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
)

// Body exposes a character entity's components as a traversal.Body. Writes go
// straight to the components; the physics system integrates them on its next
// update.
type Body struct {
	w *ecs.World
	e ecs.Entity
}

var _ traversal.Body = (*Body)(nil)

func NewBody(w *ecs.World, e ecs.Entity) *Body {
	return &Body{w: w, e: e}
}

func (b *Body) Entity() ecs.Entity {
	return b.e
}

func (b *Body) transform() *component.Transform {
	if t, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind()); ok {
		return t
	}
	return &component.Transform{}
}

func (b *Body) body() *component.CharacterBody {
	if c, ok := ecs.Get(b.w, b.e, component.CharacterBodyComponent.Kind()); ok {
		return c
	}
	return &component.CharacterBody{}
}

func (b *Body) Location() mgl32.Vec3 {
	return b.transform().Position
}

func (b *Body) Rotation() common.Rotator {
	return b.transform().Rotation
}

func (b *Body) SetRotation(r common.Rotator) {
	b.transform().Rotation = r
}

func (b *Body) SweepTo(target mgl32.Vec3) mgl32.Vec3 {
	t := b.transform()
	moved, _ := collision.Sweep(colliderBoxes(b.w), capsuleBox(b.body().Params, t.Position), target.Sub(t.Position))
	t.Position = t.Position.Add(moved)
	return t.Position
}

func (b *Body) SetScriptedMove(active bool) {
	b.body().Scripted = active
}

func (b *Body) Velocity() mgl32.Vec3 {
	return b.body().Velocity
}

func (b *Body) SetVelocity(v mgl32.Vec3) {
	b.body().Velocity = v
}

func (b *Body) AddMovementInput(dir mgl32.Vec3, scale float32) {
	c := b.body()
	c.PendingInput = c.PendingInput.Add(dir.Mul(scale))
}

func (b *Body) MovementMode() traversal.MovementMode {
	return b.body().Mode
}

func (b *Body) SetMovementMode(m traversal.MovementMode) {
	c := b.body()
	c.Mode = m
	if m != traversal.ModeFalling {
		c.JumpHeld = false
	}
}

func (b *Body) IsFalling() bool {
	return b.body().Mode == traversal.ModeFalling
}

func (b *Body) GravityScale() float32 {
	if g, ok := ecs.Get(b.w, b.e, component.GravityScaleComponent.Kind()); ok {
		return g.Scale
	}
	return 1
}

func (b *Body) SetGravityScale(scale float32) {
	if g, ok := ecs.Get(b.w, b.e, component.GravityScaleComponent.Kind()); ok {
		g.Scale = scale
		return
	}
	_ = ecs.Add(b.w, b.e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale})
}

func (b *Body) CapsuleRadius() float32 {
	return b.body().Params.CapsuleRadius
}

func (b *Body) CapsuleHalfHeight() float32 {
	return b.body().Params.CapsuleHalfHeight
}

func (b *Body) MaxJumpHeight() float32 {
	return b.body().Params.MaxJumpHeight()
}

// Jump launches from the ground. Airborne and scripted bodies ignore it.
func (b *Body) Jump() {
	c := b.body()
	if c.Mode != traversal.ModeWalking || c.Scripted {
		return
	}
	c.Velocity[2] = c.Params.JumpZVelocity
	c.Mode = traversal.ModeFalling
	c.JumpHeld = true
	c.JumpHoldTime = 0
}

func (b *Body) StopJumping() {
	b.body().JumpHeld = false
}
