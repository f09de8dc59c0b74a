package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// DebugTag marks entities spawned for debug drawing.
type DebugTag struct{}

var DebugTagComponent = NewComponent[DebugTag]()
