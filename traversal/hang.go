package traversal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"github.com/sirupsen/logrus"
)

// traceLedge looks for a walkable top ahead of the character with a
// near-vertical face beneath it. It returns the ledge height above the capsule
// centre.
func (c *Controller) traceLedge() (float32, bool) {
	s := &c.state
	loc := c.body.Location()
	fwd := c.body.Rotation().Forward()

	end := loc.Add(fwd.Mul(c.cfg.ClimbForwardDistance)).Add(common.Up.Mul(c.cfg.ClimbUpMinDistance))
	start := end.Add(common.Up.Mul(c.cfg.ClimbUpMaxDistance + c.maxJumpHeight))
	s.UpClimb = c.cast(start, end)
	s.ForwardClimb = ProbeHit{}
	if !s.UpClimb.Hit || s.UpClimb.Normal.Z() < c.cfg.LedgeMinFloorNormalZ {
		return 0, false
	}

	wallStart := mgl32.Vec3{loc.X(), loc.Y(), s.UpClimb.Location.Z() - c.cfg.TraceOffset*2}
	s.ForwardClimb = c.cast(wallStart, wallStart.Add(fwd.Mul(c.cfg.ClimbForwardDistance)))
	if !s.ForwardClimb.Hit || math32.Abs(s.ForwardClimb.Normal.Z()) >= c.cfg.LedgeMaxWallNormalZ {
		return 0, false
	}
	return s.UpClimb.Location.Z() - loc.Z(), true
}

// updateIndicator shows the climb hint for ledges reachable from the ground,
// jump included. It only runs while grounded and out of cover.
func (c *Controller) updateIndicator() {
	s := &c.state
	if c.body.IsFalling() || s.InCover {
		return
	}

	h, ok := c.traceLedge()
	show := !s.Hanging && ok && common.InRange(h, c.cfg.ClimbUpMinDistance, c.cfg.ClimbUpMaxDistance+c.maxJumpHeight)
	if !show {
		c.removeIndicator()
		return
	}

	n := s.ForwardClimb.Normal
	loc := mgl32.Vec3{s.ForwardClimb.Location.X(), s.ForwardClimb.Location.Y(), s.UpClimb.Location.Z()}.
		Sub(n.Mul(c.cfg.TraceOffset))
	rot := common.YawRotator(common.RotationFromVector(n).Yaw)

	if c.indicator == 0 {
		c.indicator = c.indicators.Spawn(c.cfg.IndicatorClass, loc, rot)
		return
	}
	c.indicators.Reposition(c.indicator, loc, rot)
}

func (c *Controller) removeIndicator() {
	if c.indicator == 0 {
		return
	}
	c.indicators.Destroy(c.indicator)
	c.indicator = 0
}

// Indicator returns the live indicator handle, zero when none is shown.
func (c *Controller) Indicator() IndicatorHandle {
	return c.indicator
}

func (c *Controller) tryHang() {
	s := &c.state
	if !c.body.IsFalling() || s.Hanging || s.WallRunning || s.InCover || s.Aiming || c.hangCooldown != 0 {
		return
	}

	h, ok := c.traceLedge()
	if !ok || !common.InRange(h, c.cfg.ClimbUpMinDistance, c.cfg.ClimbUpMaxDistance) {
		return
	}

	n := s.ForwardClimb.Normal
	target := s.ForwardClimb.Location.Add(n.Mul(c.cfg.HangHorizontalOffset))
	target[2] = s.UpClimb.Location.Z() - c.cfg.HangVerticalOffset
	rot := common.YawRotator(common.RotationFromVector(n.Mul(-1)).Yaw)

	s.Hanging = true
	c.body.StopJumping()
	c.body.SetMovementMode(ModeFlying)
	c.body.SetVelocity(mgl32.Vec3{})
	c.anim.Play(c.cfg.ClimbMontage, 0)
	c.mover.MoveTo(target, rot, c.cfg.HangMoveDuration)

	c.transition("hang").WithField("height", h).Debug("traversal: grabbed ledge")
}

// ClimbUp starts the climb montage from a hang. The hang ends when the montage
// starts blending out.
func (c *Controller) ClimbUp() {
	s := &c.state
	if !s.Hanging || s.Climbing {
		return
	}

	length := c.anim.Play(c.cfg.ClimbMontage, 1)
	delay := length - c.anim.BlendOutTriggerTime(c.cfg.ClimbMontage)
	if delay < 0 {
		delay = 0
	}
	s.Climbing = true
	c.climbTimer = c.timers.After(delay, c.finishClimbUp)

	c.transition("climb_up").WithFields(logrus.Fields{"length": length, "delay": delay}).Debug("traversal: climbing")
}

func (c *Controller) finishClimbUp() {
	s := &c.state
	c.climbTimer = 0
	if !s.Climbing {
		return
	}

	rot := c.body.Rotation()
	target := c.body.Location().
		Add(rot.Forward().Mul(c.cfg.ClimbUpFinishForward)).
		Add(common.Up.Mul(c.cfg.ClimbUpFinishHeight))
	c.mover.MoveTo(target, rot, c.cfg.ClimbUpMoveDuration)

	s.Hanging = false
	s.Climbing = false
	c.body.SetMovementMode(ModeWalking)

	c.transition("climb_finished").Debug("traversal: climbed up")
}

// DropDown lets go of the ledge. Ignored while a climb is in flight. Ledges
// are not grabbed again until hang_regrab_delay has passed.
func (c *Controller) DropDown() {
	s := &c.state
	if !s.Hanging || s.Climbing {
		return
	}
	c.mover.Stop()
	c.body.SetMovementMode(ModeFalling)
	c.anim.Stop(c.cfg.ClimbMontage)
	s.Hanging = false
	c.startCooldown(&c.hangCooldown, c.cfg.HangRegrabDelay)

	c.transition("drop").Debug("traversal: dropped from ledge")
}
