package traversal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/config"
	"github.com/sirupsen/logrus"
)

// Input carries the per-tick axis values. Move axes are clamped to [-1, 1].
type Input struct {
	MoveForward float32
	MoveRight   float32
	// Turn and LookUp are absolute deltas in degrees (mouse style).
	Turn   float32
	LookUp float32
	// TurnRate and LookUpRate are scaled by the base rates and dt (stick style).
	TurnRate   float32
	LookUpRate float32
}

// Deps are the collaborators a Controller drives. Scheduler, Debug and Logger
// are optional.
type Deps struct {
	Body       Body
	Prober     Prober
	Animator   Animator
	Indicators IndicatorSpawner
	Scheduler  Scheduler
	Debug      DebugDrawer
	Logger     logrus.FieldLogger
}

// Controller is the traversal state machine for one character. It is not safe
// for concurrent use; call Tick and the action methods from one goroutine.
type Controller struct {
	cfg config.Traversal

	body       Body
	prober     Prober
	anim       Animator
	indicators IndicatorSpawner
	timers     Scheduler
	debug      DebugDrawer
	log        logrus.FieldLogger

	mover  *Repositioner
	camera *CameraRig

	state         CharacterState
	maxJumpHeight float32
	indicator     IndicatorHandle
	climbTimer    TimerHandle

	// Non-zero while re-entry into the mode is blocked.
	hangCooldown    TimerHandle
	wallRunCooldown TimerHandle

	moveDir mgl32.Vec3
	moveMag float32
	dt      float32
}

// New validates cfg and deps and returns a controller at the body's current
// pose. Missing assets fail here rather than at first use.
func New(cfg config.Traversal, deps Deps) (*Controller, error) {
	switch {
	case deps.Body == nil:
		return nil, fmt.Errorf("%w: body", ErrMissingCollaborator)
	case deps.Prober == nil:
		return nil, fmt.Errorf("%w: prober", ErrMissingCollaborator)
	case deps.Animator == nil:
		return nil, fmt.Errorf("%w: animator", ErrMissingCollaborator)
	case deps.Indicators == nil:
		return nil, fmt.Errorf("%w: indicator spawner", ErrMissingCollaborator)
	}
	if cfg.ClimbMontage == "" || !deps.Animator.HasMontage(cfg.ClimbMontage) {
		return nil, fmt.Errorf("%w: %q", ErrMissingMontage, cfg.ClimbMontage)
	}
	if cfg.IndicatorClass == "" {
		return nil, ErrMissingIndicatorClass
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("traversal: %w", err)
	}

	c := &Controller{
		cfg:           cfg,
		body:          deps.Body,
		prober:        deps.Prober,
		anim:          deps.Animator,
		indicators:    deps.Indicators,
		timers:        deps.Scheduler,
		debug:         deps.Debug,
		log:           deps.Logger,
		mover:         NewRepositioner(deps.Body),
		camera:        NewCameraRig(cfg),
		maxJumpHeight: deps.Body.MaxJumpHeight(),
	}
	if c.timers == nil {
		c.timers = NewTimers()
	}
	if c.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		c.log = l
	}

	c.state.Control = common.YawRotator(deps.Body.Rotation().Yaw)
	c.camera.Recalculate(&c.state)
	c.syncPose()
	return c, nil
}

// Tick advances the controller by dt seconds: pending timers, the scripted
// move, movement, the indicator, hang detection, wall-run entry and the camera,
// in that order.
func (c *Controller) Tick(dt float32, in Input) {
	c.dt = dt

	c.timers.Advance(dt)
	c.mover.Advance(dt)

	c.applyLook(in, dt)
	c.moveCharacter(in)
	c.updateIndicator()
	c.tryHang()
	c.tryStartWallRun()

	c.camera.Update(dt)
	c.syncPose()

	if c.cfg.DebugDraw {
		if err := c.state.Validate(); err != nil {
			c.log.WithError(err).WithField("mode", c.state.Mode()).Warn("traversal: invariant check failed")
		}
	}
}

// SetConfig swaps in new tuning, keeping the current state. An invalid config
// or an unknown climb montage leaves the old tuning in place.
func (c *Controller) SetConfig(cfg config.Traversal) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("traversal: %w", err)
	}
	if !c.anim.HasMontage(cfg.ClimbMontage) {
		return fmt.Errorf("%w: %q", ErrMissingMontage, cfg.ClimbMontage)
	}
	c.cfg = cfg
	c.camera.cfg = cfg
	c.maxJumpHeight = c.body.MaxJumpHeight()
	c.recalculateCamera()
	return nil
}

// Reset drops every traversal mode and returns to free movement at the body's
// current pose. The control rotation is kept. A character taken off a ledge is
// left falling.
func (c *Controller) Reset() {
	for _, h := range []*TimerHandle{&c.climbTimer, &c.hangCooldown, &c.wallRunCooldown} {
		if *h != 0 {
			c.timers.Cancel(*h)
			*h = 0
		}
	}
	c.mover.Stop()
	if c.state.Hanging {
		c.anim.Stop(c.cfg.ClimbMontage)
		c.body.SetMovementMode(ModeFalling)
	}
	c.body.SetGravityScale(1)
	c.removeIndicator()

	c.state = CharacterState{Control: c.state.Control}
	c.recalculateCamera()
	c.syncPose()
	c.transition("reset").Debug("traversal: reset")
}

// State returns a copy of the current state.
func (c *Controller) State() CharacterState {
	return c.state
}

func (c *Controller) Camera() *CameraRig {
	return c.camera
}

func (c *Controller) Repositioner() *Repositioner {
	return c.mover
}

func (c *Controller) Config() config.Traversal {
	return c.cfg
}

// CameraLocation resolves the spring arm against the world.
func (c *Controller) CameraLocation() mgl32.Vec3 {
	return c.camera.CameraLocation(c.body.Location(), c.state.Control, c.prober)
}

// CanJump reports whether a regular jump is allowed.
func (c *Controller) CanJump() bool {
	return !c.state.Hanging && !c.state.Climbing && !c.state.InCover
}

// Jump pushes off the wall while wall-running, otherwise starts a regular jump
// when allowed.
func (c *Controller) Jump() {
	if c.state.WallRunning {
		c.wallRunJump()
		return
	}
	if !c.CanJump() {
		return
	}
	c.body.Jump()
}

func (c *Controller) StopJumping() {
	c.body.StopJumping()
}

// startCooldown arms a timer that clears *h when it fires, replacing any
// cooldown already running on h.
func (c *Controller) startCooldown(h *TimerHandle, delay float32) {
	if *h != 0 {
		c.timers.Cancel(*h)
	}
	*h = c.timers.After(delay, func() { *h = 0 })
}

func (c *Controller) syncPose() {
	c.state.Location = c.body.Location()
	c.state.Rotation = c.body.Rotation()
	c.state.Velocity = c.body.Velocity()
	c.state.CameraOffset = c.camera.Offset
	c.state.CameraArmLength = c.camera.ArmLength
}

func (c *Controller) recalculateCamera() {
	c.camera.Recalculate(&c.state)
}

// cast runs one probe and mirrors it to the debug drawer.
func (c *Controller) cast(start, end mgl32.Vec3) ProbeHit {
	hit, ok := c.prober.Cast(start, end)
	if c.cfg.DebugDraw && c.debug != nil {
		if ok {
			c.debug.Line(start, hit.Location, true)
		} else {
			c.debug.Line(start, end, false)
		}
	}
	return probeHit(hit, ok)
}

func (c *Controller) transition(event string) *logrus.Entry {
	return c.log.WithFields(logrus.Fields{
		"event": event,
		"mode":  c.state.Mode(),
	})
}
