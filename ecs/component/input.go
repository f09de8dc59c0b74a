package component

import "github.com/milk9111/traversal/traversal"

// Input is the per-tick input for a character. Actions are consumed by the
// traversal system.
type Input struct {
	Axes    traversal.Input
	Actions []traversal.Action
}

var InputComponent = NewComponent[Input]()
