package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
)

func runPhysics(w *ecs.World, seconds float32, each func()) {
	ps := NewPhysicsSystem()
	for n := int(seconds / step60); n > 0; n-- {
		if each != nil {
			each()
		}
		ps.Update(w, step60)
	}
}

func TestPhysicsLanding(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(t, w)
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 300}, traversal.ModeFalling)

	runPhysics(w, 1, nil)

	if body.Mode != traversal.ModeWalking {
		t.Fatalf("mode = %v, want walking", body.Mode)
	}
	if !near(tr.Position.Z(), 96, 0.01) {
		t.Fatalf("z = %v, want 96", tr.Position.Z())
	}
	if body.Velocity.Z() != 0 {
		t.Fatalf("vz = %v, want 0", body.Velocity.Z())
	}
}

func TestPhysicsGravityScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
	}{
		{name: "full", scale: 1},
		{name: "wall_run", scale: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, _, body := addBody(t, w, mgl32.Vec3{0, 0, 5000}, traversal.ModeFalling)
			if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: tt.scale}); err != nil {
				t.Fatalf("add gravity scale: %v", err)
			}

			NewPhysicsSystem().Update(w, 0.1)

			want := -body.Params.Gravity * tt.scale * 0.1
			if !near(body.Velocity.Z(), want, 0.01) {
				t.Fatalf("vz = %v, want %v", body.Velocity.Z(), want)
			}
		})
	}
}

func TestPhysicsWalkingOffEdge(t *testing.T) {
	w := ecs.NewWorld()
	addBox(t, w, "platform", mgl32.Vec3{-500, -500, -20}, mgl32.Vec3{0, 500, 0})
	_, tr, body := addBody(t, w, mgl32.Vec3{-100, 0, 96}, traversal.ModeWalking)
	body.Velocity = mgl32.Vec3{600, 0, 0}

	runPhysics(w, 0.5, func() { body.PendingInput = mgl32.Vec3{1, 0, 0} })

	if body.Mode != traversal.ModeFalling {
		t.Fatalf("mode = %v, want falling", body.Mode)
	}
	if tr.Position.Z() >= 96 {
		t.Fatalf("z = %v, expected to drop", tr.Position.Z())
	}
}

func TestPhysicsWallBlocks(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(t, w)
	addBox(t, w, "wall", mgl32.Vec3{100, -500, 0}, mgl32.Vec3{200, 500, 300})
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 96}, traversal.ModeWalking)

	runPhysics(w, 1, func() { body.PendingInput = mgl32.Vec3{1, 0, 0} })

	if !near(tr.Position.X(), 58, 0.01) {
		t.Fatalf("x = %v, want 58", tr.Position.X())
	}
	if body.Mode != traversal.ModeWalking {
		t.Fatalf("mode = %v, want walking", body.Mode)
	}
}

func TestPhysicsWalkAndBrake(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(t, w)
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 96}, traversal.ModeWalking)

	runPhysics(w, 1, func() { body.PendingInput = mgl32.Vec3{0, 1, 0} })
	if !near(body.Velocity.Y(), body.Params.MaxWalkSpeed, 0.01) {
		t.Fatalf("vy = %v, want max walk speed", body.Velocity.Y())
	}

	runPhysics(w, 1, nil)
	if body.Velocity.Len() != 0 {
		t.Fatalf("velocity = %v, want braked to rest", body.Velocity)
	}
	if tr.Position.Y() <= 0 {
		t.Fatalf("y = %v, expected forward travel", tr.Position.Y())
	}
}

func TestPhysicsOrientsToMovement(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(t, w)
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 96}, traversal.ModeWalking)
	body.OrientToMovement = true

	runPhysics(w, 0.5, func() { body.PendingInput = mgl32.Vec3{0, 1, 0} })

	if !near(tr.Rotation.Yaw, 90, 0.01) {
		t.Fatalf("yaw = %v, want 90", tr.Rotation.Yaw)
	}
}

func TestPhysicsSkipsScriptedBodies(t *testing.T) {
	w := ecs.NewWorld()
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 300}, traversal.ModeFalling)
	body.Scripted = true
	body.PendingInput = mgl32.Vec3{1, 0, 0}

	runPhysics(w, 0.5, nil)

	if tr.Position != (mgl32.Vec3{0, 0, 300}) || body.Velocity.Len() != 0 {
		t.Fatalf("scripted body moved: pos=%v vel=%v", tr.Position, body.Velocity)
	}
	if body.PendingInput.Len() != 0 {
		t.Fatalf("pending input not consumed")
	}
}

func TestPhysicsFlyingIgnoresGravity(t *testing.T) {
	w := ecs.NewWorld()
	_, tr, body := addBody(t, w, mgl32.Vec3{0, 0, 300}, traversal.ModeFlying)

	runPhysics(w, 0.5, nil)

	if tr.Position.Z() != 300 {
		t.Fatalf("z = %v, want 300", tr.Position.Z())
	}
	if body.Mode != traversal.ModeFlying {
		t.Fatalf("mode = %v", body.Mode)
	}
}
