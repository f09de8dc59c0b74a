package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

const easeExponent = 2

// Repositioner drives the capsule to a target pose over a fixed duration.
// It is either idle or interpolating; a new request replaces the active one.
type Repositioner struct {
	body Body

	active   bool
	from, to mgl32.Vec3
	fromRot  common.Rotator
	toRot    common.Rotator
	elapsed  float32
	duration float32
}

func NewRepositioner(body Body) *Repositioner {
	return &Repositioner{body: body}
}

func (r *Repositioner) Active() bool {
	return r.active
}

func (r *Repositioner) Target() (mgl32.Vec3, common.Rotator, bool) {
	return r.to, r.toRot, r.active
}

// MoveTo starts interpolating from the current pose. A non-positive duration
// snaps immediately.
func (r *Repositioner) MoveTo(location mgl32.Vec3, rotation common.Rotator, duration float32) {
	r.from = r.body.Location()
	r.fromRot = r.body.Rotation()
	r.to = location
	r.toRot = rotation
	r.elapsed = 0
	r.duration = duration
	r.active = true
	r.body.SetScriptedMove(true)
	r.body.SetVelocity(mgl32.Vec3{})

	if duration <= 0 {
		r.finish()
	}
}

// Stop abandons the active move where it is.
func (r *Repositioner) Stop() {
	if !r.active {
		return
	}
	r.active = false
	r.body.SetScriptedMove(false)
}

// Advance steps the active move by dt.
func (r *Repositioner) Advance(dt float32) {
	if !r.active {
		return
	}
	r.elapsed += dt
	if r.elapsed >= r.duration {
		r.finish()
		return
	}

	alpha := common.EaseInOutAlpha(r.elapsed/r.duration, easeExponent)
	r.body.SweepTo(common.LerpVec3(r.from, r.to, alpha))
	r.body.SetRotation(common.LerpRotator(r.fromRot, r.toRot, alpha))
	r.body.SetVelocity(mgl32.Vec3{})
}

func (r *Repositioner) finish() {
	r.body.SweepTo(r.to)
	r.body.SetRotation(r.toRot)
	r.body.SetVelocity(mgl32.Vec3{})
	r.active = false
	r.body.SetScriptedMove(false)
}
