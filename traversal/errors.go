package traversal

import "errors"

var (
	ErrMissingCollaborator   = errors.New("traversal: missing collaborator")
	ErrMissingMontage        = errors.New("traversal: climb montage not available")
	ErrMissingIndicatorClass = errors.New("traversal: indicator class not set")
	ErrInvariant             = errors.New("traversal: state invariant violated")
)
