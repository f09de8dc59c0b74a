package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"github.com/sirupsen/logrus"
)

// ToggleCover enters or leaves cover. Both directions need the character
// grounded with no scripted move in flight.
func (c *Controller) ToggleCover() {
	if c.body.MovementMode() != ModeWalking || c.mover.Active() {
		return
	}
	if c.state.InCover {
		c.exitCover()
		return
	}
	c.tryEnterCover()
}

// traceForwardCover probes at chest height, then at the capsule centre. tall
// reports which of the two hit.
func (c *Controller) traceForwardCover() (hit ProbeHit, tall bool) {
	loc := c.body.Location()
	reach := c.body.Rotation().Forward().Mul(c.cfg.CoverForwardDistance)

	chest := loc.Add(common.Up.Mul(c.chestHeight()))
	if hit = c.cast(chest, chest.Add(reach)); hit.Hit {
		return hit, true
	}
	return c.cast(loc, loc.Add(reach)), false
}

// traceSideCover looks for the edge of the cover on one side. The ray runs just
// behind the cover face, from the outside toward the forward hit.
func (c *Controller) traceSideCover(forward ProbeHit, right bool) ProbeHit {
	end := forward.Location.Sub(forward.Normal.Mul(c.cfg.TraceOffset))
	start := end.Add(sideOf(forward.Normal, right).Mul(c.cfg.CoverSideDistance))
	return c.cast(start, end)
}

// sideOf rotates a facing a quarter turn toward the requested side, as seen by
// a character looking along -facing.
func sideOf(facing mgl32.Vec3, right bool) mgl32.Vec3 {
	if right {
		return common.RotateYaw(facing, -90)
	}
	return common.RotateYaw(facing, 90)
}

func (c *Controller) chestHeight() float32 {
	return c.body.CapsuleHalfHeight() - c.body.CapsuleRadius()
}

func (c *Controller) tryEnterCover() {
	s := &c.state

	forward, tall := c.traceForwardCover()
	s.ForwardCover = forward
	if !forward.Hit {
		return
	}

	right := common.SignedAngle(c.body.Rotation().Forward(), forward.Normal) > 0

	var side ProbeHit
	if tall {
		side = c.traceSideCover(forward, right)
		if !side.Hit {
			right = !right
			side = c.traceSideCover(forward, right)
		}
		s.SideCover = side
		if !side.Hit {
			return
		}
	}

	if tall {
		s.CoverLocation = side.Location.
			Sub(side.Normal.Mul(c.cfg.CoverSideOffset)).
			Add(forward.Normal.Mul(c.cfg.CoverForwardOffset + c.cfg.TraceOffset)).
			Sub(common.Up.Mul(c.chestHeight()))
	} else {
		s.CoverLocation = forward.Location.Add(forward.Normal.Mul(c.cfg.CoverForwardOffset))
	}
	s.CoverRotation = common.YawRotator(common.RotationFromVector(forward.Normal).Yaw)

	s.InCover = true
	s.Aiming = false
	s.TallCover = tall
	s.RightCover = right
	c.recalculateCamera()
	c.mover.MoveTo(s.CoverLocation, s.CoverRotation, c.cfg.CoverMoveDuration)

	c.transition("cover_enter").WithFields(logrus.Fields{"tall": tall, "right": right}).Debug("traversal: entered cover")
}

func (c *Controller) exitCover() {
	if !c.state.InCover {
		return
	}
	c.state.InCover = false
	c.mover.Stop()
	c.recalculateCamera()
	c.transition("cover_exit").Debug("traversal: left cover")
}

// StartAim raises the weapon. In cover the character pops out: tall cover adds
// a sideways peek before turning to face the cover.
func (c *Controller) StartAim() {
	s := &c.state
	if s.Hanging || s.WallRunning {
		return
	}

	if s.InCover {
		loc := s.CoverLocation
		if s.TallCover {
			loc = loc.Add(sideOf(s.CoverRotation.Forward(), s.RightCover).Mul(c.cfg.CoverAimYOffset))
		}
		rot := s.CoverRotation
		rot.Yaw = common.NormalizeAxis(rot.Yaw + 180)
		c.mover.MoveTo(loc, rot, c.cfg.AimMoveDuration)
	}

	s.Aiming = true
	c.recalculateCamera()
	c.transition("aim_start").Debug("traversal: aim started")
}

// EndAim lowers the weapon, settling back into the cached cover pose if still
// in cover.
func (c *Controller) EndAim() {
	s := &c.state
	if s.InCover {
		c.mover.MoveTo(s.CoverLocation, s.CoverRotation, c.cfg.AimMoveDuration)
	}
	s.Aiming = false
	c.recalculateCamera()
	c.transition("aim_end").Debug("traversal: aim ended")
}
