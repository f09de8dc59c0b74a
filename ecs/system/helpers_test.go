package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/config"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const step60 = float32(1.0 / 60)

func addBox(t *testing.T, w *ecs.World, name string, lo, hi mgl32.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.StaticColliderComponent.Kind(), &component.StaticCollider{Box: collision.Box(lo, hi), Name: name}); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return e
}

func addFloor(t *testing.T, w *ecs.World) ecs.Entity {
	return addBox(t, w, "floor", mgl32.Vec3{-1000, -1000, -20}, mgl32.Vec3{1000, 1000, 0})
}

// addBody creates a bare physics body with the default tuning.
func addBody(t *testing.T, w *ecs.World, pos mgl32.Vec3, mode traversal.MovementMode) (ecs.Entity, *component.Transform, *component.CharacterBody) {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{Position: pos}
	body := &component.CharacterBody{Params: config.Default().Body, Mode: mode}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.CharacterBodyComponent.Kind(), body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	return e, tr, body
}

type sandbox struct {
	w    *ecs.World
	e    ecs.Entity
	c    *traversal.Controller
	hook *test.Hook
}

// newSandbox installs the full system set and spawns one character.
func newSandbox(t *testing.T, spawn mgl32.Vec3, yaw float32) *sandbox {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	w := ecs.NewWorld()
	Install(w, log)
	e, c, err := SpawnCharacter(w, "hero", config.Default(), component.SpawnPoint{Position: spawn, Rotation: common.YawRotator(yaw)}, log)
	if err != nil {
		t.Fatalf("SpawnCharacter: %v", err)
	}
	return &sandbox{w: w, e: e, c: c, hook: hook}
}

func (s *sandbox) run(seconds float32) {
	for n := int(seconds / step60); n > 0; n-- {
		s.w.Update(step60)
	}
}

func (s *sandbox) input() *component.Input {
	in, _ := ecs.Get(s.w, s.e, component.InputComponent.Kind())
	return in
}

func (s *sandbox) transform() *component.Transform {
	tr, _ := ecs.Get(s.w, s.e, component.TransformComponent.Kind())
	return tr
}

func (s *sandbox) body() *component.CharacterBody {
	b, _ := ecs.Get(s.w, s.e, component.CharacterBodyComponent.Kind())
	return b
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

func messages(hook *test.Hook, level logrus.Level) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
