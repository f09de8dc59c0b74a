package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
)

// TTLSystem counts TTL components down by simulated time and destroys
// entities whose time has run out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World, dt float32) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
