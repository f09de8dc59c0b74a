package traversal

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/collision"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/config"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// fakeBody is a kinematic body: it never integrates on its own, so tests
// control location, velocity and mode directly.
type fakeBody struct {
	loc      mgl32.Vec3
	rot      common.Rotator
	vel      mgl32.Vec3
	mode     MovementMode
	gravity  float32
	scripted bool

	radius, halfHeight, maxJump float32

	inputs   []mgl32.Vec3
	jumps    int
	stopJump int
}

func newFakeBody(loc mgl32.Vec3, mode MovementMode) *fakeBody {
	return &fakeBody{
		loc:        loc,
		mode:       mode,
		gravity:    1,
		radius:     42,
		halfHeight: 96,
		maxJump:    150,
	}
}

func (b *fakeBody) Location() mgl32.Vec3 { return b.loc }
func (b *fakeBody) Rotation() common.Rotator { return b.rot }
func (b *fakeBody) SetRotation(r common.Rotator) { b.rot = r }
func (b *fakeBody) SweepTo(t mgl32.Vec3) mgl32.Vec3 { b.loc = t; return t }
func (b *fakeBody) SetScriptedMove(active bool) { b.scripted = active }
func (b *fakeBody) Velocity() mgl32.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl32.Vec3) { b.vel = v }
func (b *fakeBody) MovementMode() MovementMode { return b.mode }
func (b *fakeBody) SetMovementMode(m MovementMode) { b.mode = m }
func (b *fakeBody) IsFalling() bool { return b.mode == ModeFalling }
func (b *fakeBody) GravityScale() float32 { return b.gravity }
func (b *fakeBody) SetGravityScale(s float32) { b.gravity = s }
func (b *fakeBody) CapsuleRadius() float32 { return b.radius }
func (b *fakeBody) CapsuleHalfHeight() float32 { return b.halfHeight }
func (b *fakeBody) MaxJumpHeight() float32 { return b.maxJump }
func (b *fakeBody) Jump() { b.jumps++ }
func (b *fakeBody) StopJumping() { b.stopJump++ }
func (b *fakeBody) AddMovementInput(dir mgl32.Vec3, scale float32) {
	b.inputs = append(b.inputs, dir.Mul(scale))
}

func (b *fakeBody) lastInput() mgl32.Vec3 {
	if len(b.inputs) == 0 {
		return mgl32.Vec3{}
	}
	return b.inputs[len(b.inputs)-1]
}

// boxProber casts against a fixed set of boxes.
type boxProber struct {
	boxes []cube.BBox
	casts int
}

func (p *boxProber) Cast(start, end mgl32.Vec3) (Hit, bool) {
	p.casts++
	res, ok := collision.Raycast(p.boxes, start, end)
	if !ok {
		return Hit{}, false
	}
	return Hit{Location: res.Location, Normal: res.Normal}, true
}

func box(x0, y0, z0, x1, y1, z1 float32) cube.BBox {
	return cube.Box(x0, y0, z0, x1, y1, z1)
}

type play struct {
	name string
	rate float32
}

type fakeAnimator struct {
	montages map[string]config.Montage
	plays    []play
	stopped  []string
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{montages: map[string]config.Montage{
		"climb": {Name: "climb", Duration: 1.2, BlendOutTriggerTime: 0.25},
	}}
}

func (a *fakeAnimator) HasMontage(name string) bool {
	_, ok := a.montages[name]
	return ok
}

func (a *fakeAnimator) Play(name string, rate float32) float32 {
	a.plays = append(a.plays, play{name, rate})
	return a.montages[name].Duration
}

func (a *fakeAnimator) Stop(name string) {
	a.stopped = append(a.stopped, name)
}

func (a *fakeAnimator) BlendOutTriggerTime(name string) float32 {
	return a.montages[name].BlendOutTriggerTime
}

type indicator struct {
	class string
	loc   mgl32.Vec3
	rot   common.Rotator
}

type fakeIndicators struct {
	next  IndicatorHandle
	live  map[IndicatorHandle]indicator
	moves int
}

func newFakeIndicators() *fakeIndicators {
	return &fakeIndicators{live: map[IndicatorHandle]indicator{}}
}

func (f *fakeIndicators) Spawn(class string, loc mgl32.Vec3, rot common.Rotator) IndicatorHandle {
	f.next++
	f.live[f.next] = indicator{class, loc, rot}
	return f.next
}

func (f *fakeIndicators) Reposition(h IndicatorHandle, loc mgl32.Vec3, rot common.Rotator) {
	ind := f.live[h]
	ind.loc, ind.rot = loc, rot
	f.live[h] = ind
	f.moves++
}

func (f *fakeIndicators) Destroy(h IndicatorHandle) {
	delete(f.live, h)
}

type lineRecorder struct {
	hits, misses int
}

func (r *lineRecorder) Line(start, end mgl32.Vec3, hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

type rig struct {
	c      *Controller
	body   *fakeBody
	prober *boxProber
	anim   *fakeAnimator
	ind    *fakeIndicators
	lines  *lineRecorder
	hook   *test.Hook
}

func newRig(t *testing.T, body *fakeBody, boxes ...cube.BBox) *rig {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := &rig{
		body:   body,
		prober: &boxProber{boxes: boxes},
		anim:   newFakeAnimator(),
		ind:    newFakeIndicators(),
		lines:  &lineRecorder{},
		hook:   hook,
	}
	c, err := New(config.Default().Traversal, Deps{
		Body:       r.body,
		Prober:     r.prober,
		Animator:   r.anim,
		Indicators: r.ind,
		Debug:      r.lines,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.c = c
	return r
}

// tick advances the controller and fails on any invariant breach.
func (r *rig) tick(t *testing.T, dt float32, in Input) {
	t.Helper()
	r.c.Tick(dt, in)
	r.checkInvariants(t)
}

func (r *rig) run(t *testing.T, seconds float32, in Input) {
	t.Helper()
	const dt = float32(1) / 60
	for elapsed := float32(0); elapsed < seconds; elapsed += dt {
		r.tick(t, dt, in)
	}
}

func (r *rig) checkInvariants(t *testing.T) {
	t.Helper()
	if err := r.c.State().Validate(); err != nil {
		t.Fatalf("invariant: %v (mode %s)", err, r.c.State().Mode())
	}
	for _, e := range r.hook.AllEntries() {
		if e.Level <= logrus.WarnLevel {
			t.Fatalf("unexpected %s log: %s", e.Level, e.Message)
		}
	}
}

func events(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if ev, ok := e.Data["event"].(string); ok {
			out = append(out, ev)
		}
	}
	return out
}

func vecNear(a, b mgl32.Vec3) bool {
	return common.ApproxEqualVec3(a, b, 0.05)
}
