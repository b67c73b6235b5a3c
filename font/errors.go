package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrTypefaceClosed is returned when a closed typeface is used for
	// an operation that needs its font data.
	ErrTypefaceClosed = errors.New("font: typeface is closed")
)

// ParseError is returned when a font backend rejects the font data.
type ParseError struct {
	// Backend is the name of the backend that failed ("ximage", "gotext").
	Backend string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("font: %s backend failed to parse font: %v", e.Backend, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
