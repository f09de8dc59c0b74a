package component

import "github.com/milk9111/traversal/traversal"

// Character binds a traversal controller to its entity. Name is how cameras
// and scripts refer to it.
type Character struct {
	Name       string
	Controller *traversal.Controller
}

var CharacterComponent = NewComponent[Character]()
