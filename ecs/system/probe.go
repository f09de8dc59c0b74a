package system

import (
	"image/color"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/traversal"
	"golang.org/x/image/colornames"
)

const debugLineSeconds = 0.1

var (
	probeHitColor  color.Color = colornames.Limegreen
	probeMissColor color.Color = colornames.Red
)

// Prober answers traversal probes against the static colliders of a world.
// It also implements traversal.DebugDrawer by spawning short-lived lines.
type Prober struct {
	w *ecs.World
	// LineSeconds is how long debug lines stay visible.
	LineSeconds float32
}

func NewProber(w *ecs.World) *Prober {
	return &Prober{w: w, LineSeconds: debugLineSeconds}
}

// colliderBoxes gathers every static collider box in w.
func colliderBoxes(w *ecs.World) []cube.BBox {
	var boxes []cube.BBox
	ecs.ForEach(w, component.StaticColliderComponent.Kind(), func(_ ecs.Entity, c *component.StaticCollider) {
		boxes = append(boxes, c.Box)
	})
	return boxes
}

func (p *Prober) Cast(start, end mgl32.Vec3) (traversal.Hit, bool) {
	if p == nil || p.w == nil {
		return traversal.Hit{}, false
	}
	res, ok := collision.Raycast(colliderBoxes(p.w), start, end)
	if !ok {
		return traversal.Hit{}, false
	}
	return traversal.Hit{Location: res.Location, Normal: res.Normal}, true
}

func (p *Prober) Line(start, end mgl32.Vec3, hit bool) {
	if p == nil || p.w == nil {
		return
	}
	c := probeMissColor
	if hit {
		c = probeHitColor
	}

	e := ecs.CreateEntity(p.w)
	_ = ecs.Add(p.w, e, component.LineRenderComponent.Kind(), &component.LineRender{
		Start: start,
		End:   end,
		Width: 1,
		Color: c,
	})
	_ = ecs.Add(p.w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: p.LineSeconds})
	_ = ecs.Add(p.w, e, component.DebugTagComponent.Kind(), &component.DebugTag{})
}
