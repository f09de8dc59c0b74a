package component

// TTL destroys its entity once Seconds of simulated time have passed.
type TTL struct {
	Seconds float32
}

var TTLComponent = NewComponent[TTL]()
