package triangles

import "errors"

var (
	// ErrInvalidCapacity is returned by New when a reservoir capacity is not positive.
	ErrInvalidCapacity = errors.New("reservoir capacity must be positive")
	// ErrSelfLoop is returned by Update for an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("self-loop edge rejected")
)
