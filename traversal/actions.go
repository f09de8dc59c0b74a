package traversal

import (
	"fmt"
	"strings"
)

// Action is a discrete input signal.
type Action uint8

const (
	ActionNone Action = iota
	ActionJump
	ActionStopJumping
	ActionClimbUp
	ActionDropDown
	ActionToggleCover
	ActionStartAim
	ActionEndAim
)

var actionNames = map[Action]string{
	ActionJump:        "jump",
	ActionStopJumping: "stop_jumping",
	ActionClimbUp:     "climb_up",
	ActionDropDown:    "drop_down",
	ActionToggleCover: "toggle_cover",
	ActionStartAim:    "start_aim",
	ActionEndAim:      "end_aim",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction maps a snake_case action name to its Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("traversal: unknown action %q", name)
}

// HandleAction dispatches a to the matching method.
func (c *Controller) HandleAction(a Action) {
	switch a {
	case ActionJump:
		c.Jump()
	case ActionStopJumping:
		c.StopJumping()
	case ActionClimbUp:
		c.ClimbUp()
	case ActionDropDown:
		c.DropDown()
	case ActionToggleCover:
		c.ToggleCover()
	case ActionStartAim:
		c.StartAim()
	case ActionEndAim:
		c.EndAim()
	}
}
