package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

// Turn adds yaw input in degrees. While aiming, the character's facing is
// dragged along once the control yaw leaves a 90 degree cone around it.
func (c *Controller) Turn(deg float32) {
	c.state.Control.Yaw = common.NormalizeAxis(c.state.Control.Yaw + deg)
	if !c.state.Aiming {
		return
	}

	rot := c.body.Rotation()
	delta := c.state.Control.DeltaYaw(rot)
	if common.InRange(delta, -90, 90) {
		return
	}
	if delta < -90 {
		delta += 90
	} else {
		delta -= 90
	}
	rot.Yaw = common.NormalizeAxis(rot.Yaw + delta)
	c.body.SetRotation(rot)
}

func (c *Controller) TurnAtRate(rate, dt float32) {
	c.Turn(rate * c.cfg.BaseTurnRate * dt)
}

// LookUp adds pitch input in degrees, clamped to the configured range.
func (c *Controller) LookUp(deg float32) {
	c.state.Control.Pitch = common.Clamp(c.state.Control.Pitch+deg, c.cfg.LookPitchMin, c.cfg.LookPitchMax)
}

func (c *Controller) LookUpAtRate(rate, dt float32) {
	c.LookUp(rate * c.cfg.BaseLookUpRate * dt)
}

func (c *Controller) applyLook(in Input, dt float32) {
	if in.Turn != 0 {
		c.Turn(in.Turn)
	}
	if in.TurnRate != 0 {
		c.TurnAtRate(in.TurnRate, dt)
	}
	if in.LookUp != 0 {
		c.LookUp(in.LookUp)
	}
	if in.LookUpRate != 0 {
		c.LookUpAtRate(in.LookUpRate, dt)
	}
}

// moveDirection turns the move axes into a world direction (unit or zero) and
// a magnitude in [0, 1].
func moveDirection(in Input, controlYaw float32) (mgl32.Vec3, float32) {
	local := mgl32.Vec3{common.Clamp(in.MoveForward, -1, 1), common.Clamp(in.MoveRight, -1, 1), 0}
	mag := common.Clamp(local.Len(), 0, 1)
	return common.SafeNormal(common.RotateYaw(local, controlYaw)), mag
}

func (c *Controller) moveCharacter(in Input) {
	s := &c.state
	c.moveDir, c.moveMag = mgl32.Vec3{}, 0
	if s.Hanging || (s.InCover && !s.Aiming) {
		return
	}

	dir, mag := moveDirection(in, s.Control.Yaw)
	if s.Aiming && !c.body.IsFalling() && mag > c.cfg.MaxAimMoveRate {
		mag = c.cfg.MaxAimMoveRate
	}
	c.moveDir, c.moveMag = dir, mag

	if s.WallRunning && c.updateWallRun(dir, mag) {
		return
	}

	if mag > 0 {
		c.body.AddMovementInput(dir, mag)
		if s.InCover && s.Aiming {
			c.exitCover()
		}
	}

	if s.Aiming {
		rot := c.body.Rotation()
		rot.Yaw = s.Control.Yaw
		c.body.SetRotation(rot)
	}
}
