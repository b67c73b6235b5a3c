// Package unicodes provides the Unicode backends used by the shaper: bidi
// level resolution and visual reordering, script lookup, line break
// opportunities and normalization.
//
// Backends are registered by name and constructed on demand. Construction
// may fail, so every shaper factory that needs a backend reports an error
// instead of returning a half-built shaper:
//
//	u, err := unicodes.Make(unicodes.DefaultBackend)
//	if err != nil {
//	    // fall back to shaper.MakePrimitive()
//	}
package unicodes

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-text/typesetting/language"
)

// DefaultBackend is the name of the built-in backend, backed by
// golang.org/x/text and go-text/typesetting tables.
const DefaultBackend = "xtext"

// Embedding levels with special meaning as a paragraph base level.
const (
	// LevelDefaultLTR resolves the paragraph level from the first strong
	// character, left-to-right if there is none.
	LevelDefaultLTR uint8 = 0xFE
	// LevelDefaultRTL resolves the paragraph level from the first strong
	// character, right-to-left if there is none.
	LevelDefaultRTL uint8 = 0xFF
	// MaxExplicitLevel is the deepest embedding level of UAX #9.
	MaxExplicitLevel uint8 = 125
)

// Sentinel errors for unicodes package.
var (
	// ErrUnknownBackend is returned by Make for a name nobody registered.
	ErrUnknownBackend = errors.New("unicodes: unknown backend")

	// ErrBackendFailed wraps failures reported by a backend factory.
	ErrBackendFailed = errors.New("unicodes: backend construction failed")
)

// BidiRun is a maximal byte range [Start, End) sharing one embedding level.
type BidiRun struct {
	Start, End int
	Level      uint8
}

// BreakKind distinguishes optional from mandatory line breaks.
type BreakKind uint8

const (
	// BreakSoft marks a position where a line may be broken.
	BreakSoft BreakKind = iota + 1
	// BreakHard marks a position where a line must be broken.
	BreakHard
)

// LineBreak is a break opportunity before byte offset Pos.
type LineBreak struct {
	Pos  int
	Kind BreakKind
}

// Form selects a Unicode normalization form.
type Form int

// Normalization forms.
const (
	NFC Form = iota
	NFD
	NFKC
	NFKD
)

// Unicode is a Unicode backend. Implementations are safe for concurrent use.
type Unicode interface {
	// Name returns the registered backend name.
	Name() string

	// BidiRuns resolves embedding levels for text and returns runs covering
	// every byte of text in logical order. baseLevel is 0, 1, or one of
	// LevelDefaultLTR / LevelDefaultRTL.
	BidiRuns(text string, baseLevel uint8) ([]BidiRun, error)

	// ReorderVisual returns, for each visual position, the logical index of
	// the run with the given levels (UAX #9 rule L2).
	ReorderVisual(levels []uint8) []int

	// Script returns the ISO 15924 script of r.
	Script(r rune) language.Script

	// PairedBracket reports whether r is a paired bracket and if it opens.
	PairedBracket(r rune) (isBracket, opening bool)

	// LineBreaks returns the break opportunities inside text in increasing
	// order. Offsets 0 and len(text) are never reported.
	LineBreaks(text string) []LineBreak

	// IsWhitespace reports whether r is trimmed at the end of a line.
	IsWhitespace(r rune) bool

	// Normalize returns text in the given normalization form.
	Normalize(form Form, text string) string
}

// Factory constructs a backend.
type Factory func() (Unicode, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		DefaultBackend: func() (Unicode, error) { return newXText(), nil },
	}
)

// Register makes a backend available under name, replacing any previous
// registration.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Unregister removes a backend. It reports whether name was registered.
func Unregister(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	_, ok := registry[name]
	delete(registry, name)
	return ok
}

// Backends returns the registered names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Make constructs the backend registered under name.
func Make(name string) (Unicode, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	u, err := f()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendFailed, name, err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s returned no backend", ErrBackendFailed, name)
	}
	return u, nil
}

// MakeDefault constructs the DefaultBackend.
func MakeDefault() (Unicode, error) {
	return Make(DefaultBackend)
}

// IsRTL reports whether level is a right-to-left embedding level.
func IsRTL(level uint8) bool {
	return level&1 == 1
}
