package traversal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

const wallRunJumpAngle = 45

// probeWall casts sideways from the capsule centre and accepts near-vertical
// surfaces only.
func (c *Controller) probeWall(right bool) ProbeHit {
	loc := c.body.Location()
	side := c.body.Rotation().Right()
	if !right {
		side = side.Mul(-1)
	}
	hit := c.cast(loc, loc.Add(side.Mul(c.body.CapsuleRadius()+c.cfg.WallRunSideDistance)))
	if hit.Hit && math32.Abs(hit.Normal.Z()) >= c.cfg.LedgeMaxWallNormalZ {
		hit = ProbeHit{}
	}
	c.state.SideWallRun = hit
	return hit
}

// groundBelow reports ground within the wall-run clearance under the capsule.
func (c *Controller) groundBelow() bool {
	loc := c.body.Location()
	reach := c.body.CapsuleHalfHeight() + c.cfg.WallRunGroundClearance
	return c.cast(loc, loc.Sub(common.Up.Mul(reach))).Hit
}

func (c *Controller) tryStartWallRun() {
	s := &c.state
	if s.WallRunning || s.Hanging || s.InCover || s.Aiming || c.wallRunCooldown != 0 || !c.body.IsFalling() {
		return
	}

	v := c.body.Velocity()
	if common.HorizontalLen(v) < c.cfg.WallRunMinHorizontalSpeed || v.Z() < c.cfg.WallRunMinVerticalVelocity {
		return
	}
	if c.moveMag <= c.cfg.WallRunMinMoveMagnitude || c.groundBelow() {
		return
	}

	for _, right := range [2]bool{true, false} {
		hit := c.probeWall(right)
		if !hit.Hit {
			continue
		}
		if c.moveDir.Dot(common.AlongWall(hit.Normal, right)) <= 0 {
			continue
		}

		v = mgl32.Vec3{v.X(), v.Y(), v.Z() * c.cfg.WallRunVerticalSpeedMultiplier}
		c.body.SetVelocity(v)
		c.body.SetGravityScale(c.cfg.WallRunMinGravityScale)
		s.WallRunning = true
		s.RightWallRun = right
		c.transition("wall_run_start").WithField("right", right).Debug("traversal: wall-run started")
		return
	}
}

// updateWallRun applies this tick's wall-run movement. It returns false when
// the run ended and the input should be applied as normal movement.
func (c *Controller) updateWallRun(dir mgl32.Vec3, mag float32) bool {
	s := &c.state
	right := s.RightWallRun

	hit := c.probeWall(right)
	switch {
	case !hit.Hit:
		c.endWallRun("wall_lost")
		return false
	case !c.body.IsFalling() || c.groundBelow():
		c.endWallRun("grounded")
		return false
	case mag <= c.cfg.WallRunMinMoveMagnitude:
		c.endWallRun("no_input")
		return false
	}

	along := common.AlongWall(hit.Normal, right)
	if dir.Dot(along) <= 0 {
		c.endWallRun("input_off_wall")
		return false
	}
	if common.HorizontalLen(c.body.Velocity()) < c.cfg.WallRunMinHorizontalSpeed {
		c.endWallRun("too_slow")
		return false
	}

	// Steer toward the wall when further than the target offset, away when closer.
	n := common.SafeNormal(common.Horizontal(hit.Normal))
	dist := c.body.Location().Sub(hit.Location).Dot(n)
	correction := common.Clamp((dist-c.cfg.WallRunOffset)/2, -c.cfg.WallRunMaxCorrection, c.cfg.WallRunMaxCorrection)
	if !right {
		correction = -correction
	}
	c.body.AddMovementInput(common.RotateYaw(along, correction), mag)
	return true
}

func (c *Controller) endWallRun(reason string) {
	s := &c.state
	if !s.WallRunning {
		return
	}
	c.body.SetGravityScale(1)
	s.WallRunning = false
	s.RightWallRun = false
	c.transition("wall_run_end").WithField("reason", reason).Debug("traversal: wall-run ended")
}

// wallRunJump launches 45 degrees off the wall, away from it. The wall cannot
// be caught again until wall_run_regrab_delay has passed.
func (c *Controller) wallRunJump() {
	s := &c.state
	right := s.RightWallRun
	along := common.AlongWall(s.SideWallRun.Normal, right)

	angle := float32(wallRunJumpAngle)
	if right {
		angle = -angle
	}
	away := common.RotateYaw(along, angle)
	c.endWallRun("jump")
	c.startCooldown(&c.wallRunCooldown, c.cfg.WallRunRegrabDelay)
	c.body.SetVelocity(away.Mul(c.cfg.WallRunJumpOffSpeed).Add(common.Up.Mul(c.cfg.WallRunJumpUpSpeed)))
}
