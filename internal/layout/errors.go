package layout

import "errors"

// Sentinel errors for fit runs.
var (
	ErrInvalidGeometry = errors.New("invalid page geometry")
	ErrInvalidProfile  = errors.New("invalid typography profile")
	ErrInvalidStep     = errors.New("invalid rescale step")
	ErrInvalidStrategy = errors.New("invalid rescale strategy")
)
