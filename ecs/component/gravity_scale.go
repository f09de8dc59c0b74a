package component

// GravityScale scales world gravity for a character body.
// 1 is normal gravity. Wall-running lowers it.
type GravityScale struct {
	Scale float32
}

var GravityScaleComponent = NewComponent[GravityScale]()
