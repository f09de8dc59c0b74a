package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
)

// Indicators spawns ledge hints as entities. A handle is the entity id, so a
// stale handle simply fails the liveness check.
type Indicators struct {
	w *ecs.World
}

var _ traversal.IndicatorSpawner = (*Indicators)(nil)

func NewIndicators(w *ecs.World) *Indicators {
	return &Indicators{w: w}
}

func (s *Indicators) Spawn(class string, location mgl32.Vec3, rotation common.Rotator) traversal.IndicatorHandle {
	e := ecs.CreateEntity(s.w)
	_ = ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{Position: location, Rotation: rotation})
	_ = ecs.Add(s.w, e, component.IndicatorComponent.Kind(), &component.Indicator{Class: class, Handle: uint64(e)})
	return traversal.IndicatorHandle(e)
}

func (s *Indicators) Reposition(h traversal.IndicatorHandle, location mgl32.Vec3, rotation common.Rotator) {
	t, ok := ecs.Get(s.w, ecs.Entity(h), component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Position = location
	t.Rotation = rotation
}

func (s *Indicators) Destroy(h traversal.IndicatorHandle) {
	e := ecs.Entity(h)
	if !ecs.Has(s.w, e, component.IndicatorComponent.Kind()) {
		return
	}
	ecs.DestroyEntity(s.w, e)
}
