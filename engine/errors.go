package engine

import "errors"

var (
	// ErrCapacity is returned when a count exceeds the allocated buffers
	ErrCapacity = errors.New("count exceeds buffer capacity")
	// ErrStopped is returned by Step after the context is done
	ErrStopped = errors.New("simulation stopped")
)
