package system

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
)

// PhysicsSystem integrates character capsules against static colliders. The
// capsule is approximated by its bounding box.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float32) {
	if w == nil || dt <= 0 {
		return
	}
	boxes := colliderBoxes(w)

	ecs.ForEach2(w, component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.CharacterBody, transform *component.Transform) {
		scale := float32(1)
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			scale = g.Scale
		}
		step(boxes, body, transform, scale, dt)
	})
}

func capsuleBox(p config.Body, centre mgl32.Vec3) cube.BBox {
	return collision.CentredBox(centre, mgl32.Vec3{p.CapsuleRadius, p.CapsuleRadius, p.CapsuleHalfHeight})
}

func step(boxes []cube.BBox, body *component.CharacterBody, transform *component.Transform, gravityScale, dt float32) {
	input := body.PendingInput
	body.PendingInput = mgl32.Vec3{}
	if body.Scripted {
		return
	}
	p := body.Params
	if l := input.Len(); l > 1 {
		input = input.Mul(1 / l)
	}

	switch body.Mode {
	case traversal.ModeWalking:
		body.Velocity = walkVelocity(p, body.Velocity, input, dt)
	case traversal.ModeFalling:
		body.Velocity = airVelocity(p, body.Velocity, input, dt)
		if body.JumpHeld && body.JumpHoldTime < p.MaxJumpHoldTime {
			body.JumpHoldTime += dt
			body.Velocity[2] = math32.Max(body.Velocity[2], p.JumpZVelocity)
		} else {
			body.Velocity[2] -= p.Gravity * gravityScale * dt
		}
	case traversal.ModeFlying:
	default:
		return
	}

	if body.OrientToMovement && common.HorizontalLen(input) > 0 {
		transform.Rotation = orientToward(transform.Rotation, input, p.RotationRate*dt)
	}

	descending := body.Velocity.Z() <= 0
	moved, blocked := collision.Sweep(boxes, capsuleBox(p, transform.Position), body.Velocity.Mul(dt))
	transform.Position = transform.Position.Add(moved)
	for axis, hit := range blocked {
		if hit {
			body.Velocity[axis] = 0
		}
	}

	switch body.Mode {
	case traversal.ModeFalling:
		if blocked[2] && descending {
			body.Mode = traversal.ModeWalking
			body.JumpHeld = false
		}
	case traversal.ModeWalking:
		if !landed(boxes, p, transform.Position) {
			body.Mode = traversal.ModeFalling
		}
	}
}

// landed reports ground within the probe distance under the capsule.
func landed(boxes []cube.BBox, p config.Body, centre mgl32.Vec3) bool {
	probe := mgl32.Vec3{0, 0, -math32.Max(p.GroundProbeDistance, 0.01)}
	_, blocked := collision.Sweep(boxes, capsuleBox(p, centre), probe)
	return blocked[2]
}

func walkVelocity(p config.Body, v, input mgl32.Vec3, dt float32) mgl32.Vec3 {
	h := common.Horizontal(v)
	if common.HorizontalLen(input) == 0 {
		speed := h.Len()
		if speed == 0 {
			return mgl32.Vec3{}
		}
		h = h.Mul(math32.Max(speed-p.BrakingDeceleration*dt, 0) / speed)
		return mgl32.Vec3{h.X(), h.Y(), 0}
	}

	target := common.Horizontal(input).Mul(p.MaxWalkSpeed)
	diff := target.Sub(h)
	maxStep := p.MaxAcceleration * dt
	if d := diff.Len(); d > maxStep {
		diff = diff.Mul(maxStep / d)
	}
	h = h.Add(diff)
	return mgl32.Vec3{h.X(), h.Y(), 0}
}

func airVelocity(p config.Body, v, input mgl32.Vec3, dt float32) mgl32.Vec3 {
	h := common.Horizontal(v)
	limit := math32.Max(h.Len(), p.MaxWalkSpeed)
	h = h.Add(common.Horizontal(input).Mul(p.MaxAcceleration * p.AirControl * dt))
	if l := h.Len(); l > limit {
		h = h.Mul(limit / l)
	}
	return mgl32.Vec3{h.X(), h.Y(), v.Z()}
}

func orientToward(r common.Rotator, dir mgl32.Vec3, maxDeg float32) common.Rotator {
	want := common.RotationFromVector(common.Horizontal(dir)).Yaw
	delta := common.NormalizeAxis(want - r.Yaw)
	if maxDeg > 0 {
		delta = common.Clamp(delta, -maxDeg, maxDeg)
	}
	r.Yaw = common.NormalizeAxis(r.Yaw + delta)
	return r
}
