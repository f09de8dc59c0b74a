package component

import "github.com/milk9111/traversal/script"

// ScriptControl hands a character's input to a script driver. Tick counts the
// steps taken so far; Err holds the error that stopped the script, if any.
type ScriptControl struct {
	Driver *script.Driver
	Tick   int
	Err    error
}

var ScriptControlComponent = NewComponent[ScriptControl]()
