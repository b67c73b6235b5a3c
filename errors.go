package shaper

import "errors"

// Sentinel errors for shaper package.
var (
	// ErrBackendUnavailable is returned by factories for shaping backends
	// that are not part of this build.
	ErrBackendUnavailable = errors.New("shaper: backend unavailable")

	// ErrIteratorExhausted is the panic value of Consume on an iterator
	// that is already at its end.
	ErrIteratorExhausted = errors.New("shaper: Consume called on exhausted run iterator")

	// ErrInvalidTag is returned when a string is not a four byte tag.
	ErrInvalidTag = errors.New("shaper: invalid four byte tag")

	// ErrInvalidFeature is returned by ParseFeature for malformed input.
	ErrInvalidFeature = errors.New("shaper: invalid feature")
)
