package main

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/traversal/traversal"
)

const (
	stickDeadzone    = 0.2
	mouseSensitivity = 0.15
)

// Input polls keyboard, mouse and the first gamepad once per tick.
type Input struct {
	Axes    traversal.Input
	Actions []traversal.Action

	Pause       bool
	CopyState   bool
	ToggleDebug bool
	Restart     bool

	lastMouseX int
	haveMouse  bool
	aimHeld    bool
}

func NewInput() *Input {
	return &Input{}
}

func deadzone(v float64) float32 {
	if math32.Abs(float32(v)) < stickDeadzone {
		return 0
	}
	return float32(v)
}

func axis(neg, pos bool) float32 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}

func (i *Input) Update() {
	i.Axes = traversal.Input{}
	i.Actions = i.Actions[:0]

	i.Axes.MoveForward = axis(ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyW))
	i.Axes.MoveRight = axis(ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyD))
	// Z-up with yaw counter-clockwise: turning right lowers the yaw.
	i.Axes.TurnRate = axis(ebiten.IsKeyPressed(ebiten.KeyRight), ebiten.IsKeyPressed(ebiten.KeyLeft))
	i.Axes.LookUpRate = axis(ebiten.IsKeyPressed(ebiten.KeyDown), ebiten.IsKeyPressed(ebiten.KeyUp))

	mx, _ := ebiten.CursorPosition()
	if i.haveMouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		i.Axes.Turn = -float32(mx-i.lastMouseX) * mouseSensitivity
	}
	i.lastMouseX, i.haveMouse = mx, true

	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	jumpReleased := inpututil.IsKeyJustReleased(ebiten.KeySpace)
	climb := inpututil.IsKeyJustPressed(ebiten.KeyE)
	drop := inpututil.IsKeyJustPressed(ebiten.KeyQ)
	cover := inpututil.IsKeyJustPressed(ebiten.KeyC)
	aim := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.CopyState = inpututil.IsKeyJustPressed(ebiten.KeyY)
	i.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	i.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)

	// Gamepad: left stick moves, right stick looks, face buttons act.
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			if v := deadzone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)); v != 0 {
				i.Axes.MoveForward = -v
			}
			if v := deadzone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)); v != 0 {
				i.Axes.MoveRight = v
			}
			if v := deadzone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)); v != 0 {
				i.Axes.TurnRate = -v
			}
			if v := deadzone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)); v != 0 {
				i.Axes.LookUpRate = -v
			}

			jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			jumpReleased = jumpReleased || inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)
			climb = climb || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
			drop = drop || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
			cover = cover || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
			aim = aim || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
			i.Pause = i.Pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		}
	}

	if jumpPressed {
		i.Actions = append(i.Actions, traversal.ActionJump)
	}
	if jumpReleased {
		i.Actions = append(i.Actions, traversal.ActionStopJumping)
	}
	if climb {
		i.Actions = append(i.Actions, traversal.ActionClimbUp)
	}
	if drop {
		i.Actions = append(i.Actions, traversal.ActionDropDown)
	}
	if cover {
		i.Actions = append(i.Actions, traversal.ActionToggleCover)
	}
	switch {
	case aim && !i.aimHeld:
		i.Actions = append(i.Actions, traversal.ActionStartAim)
	case !aim && i.aimHeld:
		i.Actions = append(i.Actions, traversal.ActionEndAim)
	}
	i.aimHeld = aim
}
