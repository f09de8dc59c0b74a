package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/config"
)

// TargetCameraOffset maps the mode flags to a boom socket offset and arm length.
// The offset is in control space: X forward, Y right, Z up. rightCover is only
// consulted while inCover; an aiming character outside cover uses the right
// shoulder.
func TargetCameraOffset(cfg config.Traversal, aiming, inCover, tallCover, rightCover bool) (mgl32.Vec3, float32) {
	side := float32(1)
	if inCover && !rightCover {
		side = -1
	}
	switch {
	case aiming:
		return mgl32.Vec3{0, side * cfg.CameraAimYOffset, 0}, cfg.CameraBoomAimLength
	case inCover && tallCover:
		return mgl32.Vec3{0, side * cfg.CameraCoverYOffset, 0}, cfg.CameraBoomLength
	default:
		return mgl32.Vec3{}, cfg.CameraBoomLength
	}
}

// CameraRig is a spring arm whose socket offset and length ease toward targets
// derived from the traversal state.
type CameraRig struct {
	cfg config.Traversal

	Offset          mgl32.Vec3
	ArmLength       float32
	TargetOffset    mgl32.Vec3
	TargetArmLength float32
}

func NewCameraRig(cfg config.Traversal) *CameraRig {
	return &CameraRig{
		cfg:             cfg,
		ArmLength:       cfg.CameraBoomLength,
		TargetArmLength: cfg.CameraBoomLength,
	}
}

// Recalculate retargets the rig from s. Safe to call repeatedly.
func (r *CameraRig) Recalculate(s *CharacterState) {
	r.TargetOffset, r.TargetArmLength = TargetCameraOffset(r.cfg, s.Aiming, s.InCover, s.TallCover, s.RightCover)
}

// Update eases the live offset and arm length toward their targets.
func (r *CameraRig) Update(dt float32) {
	r.Offset = common.VInterpTo(r.Offset, r.TargetOffset, dt, r.cfg.CameraOffsetSpeed)
	r.ArmLength = common.FInterpTo(r.ArmLength, r.TargetArmLength, dt, r.cfg.CameraOffsetSpeed)
}

// CameraLocation places the camera behind pivot along control. When prober is
// set, the arm is pulled in front of the first blocking hit.
func (r *CameraRig) CameraLocation(pivot mgl32.Vec3, control common.Rotator, prober Prober) mgl32.Vec3 {
	yaw := common.YawRotator(control.Yaw)
	socket := yaw.Forward().Mul(r.Offset.X()).
		Add(yaw.Right().Mul(r.Offset.Y())).
		Add(common.Up.Mul(r.Offset.Z()))

	origin := pivot.Add(socket)
	desired := origin.Sub(control.Vector().Mul(r.ArmLength))
	if prober == nil {
		return desired
	}

	hit, ok := prober.Cast(origin, desired)
	if !ok {
		return desired
	}
	back := common.SafeNormal(desired.Sub(origin))
	pulled := hit.Location.Sub(back.Mul(r.cfg.CameraProbeMargin))
	if pulled.Sub(origin).Dot(back) < 0 {
		return origin
	}
	return pulled
}
