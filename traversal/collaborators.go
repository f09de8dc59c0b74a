package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/traversal/common"
)

// Hit is a blocking ray hit.
type Hit struct {
	Location mgl32.Vec3
	Normal   mgl32.Vec3
}

// Prober casts a single ray against world collision, ignoring the character.
// A miss is reported with ok == false and is never an error.
type Prober interface {
	Cast(start, end mgl32.Vec3) (hit Hit, ok bool)
}

// DebugDrawer receives every probe when debug drawing is enabled.
type DebugDrawer interface {
	Line(start, end mgl32.Vec3, hit bool)
}

type MovementMode uint8

const (
	ModeNone MovementMode = iota
	ModeWalking
	ModeFalling
	ModeFlying
)

func (m MovementMode) String() string {
	switch m {
	case ModeWalking:
		return "walking"
	case ModeFalling:
		return "falling"
	case ModeFlying:
		return "flying"
	default:
		return "none"
	}
}

// Body is the locomotion capability set the controller drives. Location is the
// capsule centre.
type Body interface {
	Location() mgl32.Vec3
	Rotation() common.Rotator
	SetRotation(r common.Rotator)

	// SweepTo moves the capsule toward target, stopping at the first blocking
	// contact, and returns where it ended up.
	SweepTo(target mgl32.Vec3) mgl32.Vec3
	// SetScriptedMove suspends the body's own integration while a scripted
	// move owns the capsule.
	SetScriptedMove(active bool)

	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
	AddMovementInput(dir mgl32.Vec3, scale float32)

	MovementMode() MovementMode
	SetMovementMode(m MovementMode)
	IsFalling() bool

	GravityScale() float32
	SetGravityScale(scale float32)

	CapsuleRadius() float32
	CapsuleHalfHeight() float32
	MaxJumpHeight() float32

	Jump()
	StopJumping()
}

// Animator plays named montages.
type Animator interface {
	HasMontage(name string) bool
	// Play starts name at rate and returns its length in seconds. A rate of 0
	// holds the first frame.
	Play(name string, rate float32) float32
	Stop(name string)
	BlendOutTriggerTime(name string) float32
}

// IndicatorHandle is a weak reference to a spawned indicator. Zero means none.
type IndicatorHandle uint64

type IndicatorSpawner interface {
	Spawn(class string, location mgl32.Vec3, rotation common.Rotator) IndicatorHandle
	Reposition(h IndicatorHandle, location mgl32.Vec3, rotation common.Rotator)
	Destroy(h IndicatorHandle)
}

// Scheduler arms one-shot callbacks measured in simulated seconds.
type Scheduler interface {
	After(delay float32, fn func()) TimerHandle
	Cancel(h TimerHandle) bool
	Advance(dt float32)
}
