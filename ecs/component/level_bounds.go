package component

// LevelBounds holds the kill height of the current level. Characters that
// fall below KillZ are returned to their spawn point.
type LevelBounds struct {
	KillZ float32
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
