package component

import "github.com/milk9111/traversal/config"

// ReloadRequest carries a freshly loaded configuration. The traversal system
// applies it to every character and destroys the carrier entity.
type ReloadRequest struct {
	Config config.Config
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
