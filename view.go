package main

import (
	"image/color"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"golang.org/x/image/colornames"
)

// view is an orthographic projection of two world axes onto a screen panel.
// The vertical screen axis grows upward in world space.
type view struct {
	name   string
	x, y   float32 // panel origin
	w, h   float32
	u, v   int // world axes shown horizontally and vertically
	scale  float32
	centre mgl32.Vec3
}

func (vw *view) project(p mgl32.Vec3) (float32, float32) {
	sx := vw.x + vw.w/2 + (p[vw.u]-vw.centre[vw.u])*vw.scale
	sy := vw.y + vw.h/2 - (p[vw.v]-vw.centre[vw.v])*vw.scale
	return sx, sy
}

func (vw *view) line(dst *ebiten.Image, a, b mgl32.Vec3, width float32, clr color.Color) {
	ax, ay := vw.project(a)
	bx, by := vw.project(b)
	vector.StrokeLine(dst, ax, ay, bx, by, width, clr, true)
}

func (vw *view) box(dst *ebiten.Image, bb cube.BBox, fill, stroke color.Color) {
	x0, y0 := vw.project(bb.Min())
	x1, y1 := vw.project(bb.Max())
	x, y := min(x0, x1), min(y0, y1)
	w, h := max(x0, x1)-x, max(y0, y1)-y
	vector.FillRect(dst, x, y, w, h, fill, false)
	vector.StrokeRect(dst, x, y, w, h, 1, stroke, false)
}

func (vw *view) frame(dst *ebiten.Image) {
	vector.StrokeRect(dst, vw.x, vw.y, vw.w, vw.h, 1, colornames.Dimgray, false)
}

var (
	geometryFill   = color.RGBA{R: 0x40, G: 0x48, B: 0x58, A: 0xa0}
	geometryStroke = color.RGBA{R: 0x90, G: 0xa0, B: 0xb8, A: 0xff}
	bodyColor      = colornames.Orange
	facingColor    = colornames.White
	cameraColor    = colornames.Deepskyblue
	indicatorColor = colornames.Gold
)

// drawWorld renders colliders, debug lines, indicators, the character and its
// camera into one panel.
func (vw *view) drawWorld(dst *ebiten.Image, w *ecs.World, hero ecs.Entity) {
	vw.frame(dst)

	ecs.ForEach(w, component.StaticColliderComponent.Kind(), func(_ ecs.Entity, c *component.StaticCollider) {
		vw.box(dst, c.Box, geometryFill, geometryStroke)
	})

	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, l *component.LineRender) {
		vw.line(dst, l.Start, l.End, l.Width, l.Color)
	})

	ecs.ForEach2(w, component.IndicatorComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Indicator, t *component.Transform) {
		x, y := vw.project(t.Position)
		vector.StrokeCircle(dst, x, y, 6, 2, indicatorColor, true)
		vw.line(dst, t.Position, t.Position.Add(t.Rotation.Forward().Mul(30)), 2, indicatorColor)
	})

	t, ok := ecs.Get(w, hero, component.TransformComponent.Kind())
	if !ok {
		return
	}
	body, _ := ecs.Get(w, hero, component.CharacterBodyComponent.Kind())
	half := mgl32.Vec3{body.Params.CapsuleRadius, body.Params.CapsuleRadius, body.Params.CapsuleHalfHeight}
	if vw.v == 2 {
		vw.box(dst, cube.Box(
			t.Position.X()-half.X(), t.Position.Y()-half.Y(), t.Position.Z()-half.Z(),
			t.Position.X()+half.X(), t.Position.Y()+half.Y(), t.Position.Z()+half.Z(),
		), color.RGBA{R: 0xff, G: 0xa5, A: 0x40}, bodyColor)
	} else {
		x, y := vw.project(t.Position)
		vector.StrokeCircle(dst, x, y, body.Params.CapsuleRadius*vw.scale, 2, bodyColor, true)
	}
	vw.line(dst, t.Position, t.Position.Add(t.Rotation.Forward().Mul(body.Params.CapsuleRadius*1.5)), 2, facingColor)

	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		vw.line(dst, cam.Pivot, cam.Eye, 1, cameraColor)
		x, y := vw.project(cam.Eye)
		vector.StrokeCircle(dst, x, y, 5, 1, cameraColor, true)
	})
}
