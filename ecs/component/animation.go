package component

import "github.com/milk9111/traversal/config"

// MontagePlayer plays one montage at a time. A Rate of 0 holds the current
// frame.
type MontagePlayer struct {
	Montages map[string]config.Montage

	Current string
	Time    float32
	Rate    float32
	Playing bool
}

var MontagePlayerComponent = NewComponent[MontagePlayer]()
