package component

// Indicator is a spawned ledge hint. Handle is what the controller holds.
type Indicator struct {
	Class  string
	Handle uint64
}

var IndicatorComponent = NewComponent[Indicator]()
