package shaper

import (
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
)

// Shaper converts text into positioned glyph runs delivered to a
// RunHandler. All calls are synchronous; output arrives only through the
// handler. Implementations are safe for concurrent use, but iterators and
// handlers passed to one call must not be shared with another.
//
// width is the maximum line width in pixels; use math.Inf(1) for no
// wrapping. Empty text produces no lines.
type Shaper interface {
	// Shape shapes text with f, falling back through the shaper's font
	// manager for characters f cannot render.
	Shape(text string, f font.Font, leftToRight bool, width float64, h RunHandler)

	// ShapeRuns shapes text segmented by caller supplied iterators, which
	// must cover exactly len(text) bytes.
	ShapeRuns(text string, fonts FontRunIterator, bidi BiDiRunIterator,
		script ScriptRunIterator, lang LanguageRunIterator, width float64, h RunHandler)

	// ShapeRunsWithFeatures is ShapeRuns with OpenType features applied to
	// byte ranges of text.
	ShapeRunsWithFeatures(text string, fonts FontRunIterator, bidi BiDiRunIterator,
		script ScriptRunIterator, lang LanguageRunIterator, features []Feature,
		width float64, h RunHandler)
}

// Make returns the default shaper: HarfBuzz shaping followed by line
// wrapping. When no Unicode backend can be constructed it logs a warning
// and returns the primitive shaper instead. A nil mgr disables font
// fallback.
func Make(mgr fontmgr.FontMgr) Shaper {
	s, err := MakeShapeThenWrap(mgr)
	if err != nil {
		Logger().Warn("shaper: HarfBuzz shaper unavailable, using primitive shaper", "err", err)
		return MakePrimitive()
	}
	return s
}

// MakeShaperDrivenWrapper returns a HarfBuzz shaper that finds line breaks
// first and then shapes every line on its own.
func MakeShaperDrivenWrapper(mgr fontmgr.FontMgr, opts ...Option) (Shaper, error) {
	return newHBShaper(modeShaperDrivenWrapper, mgr, opts)
}

// MakeShapeThenWrap returns a HarfBuzz shaper that shapes whole runs and
// then cuts the result into lines.
func MakeShapeThenWrap(mgr fontmgr.FontMgr, opts ...Option) (Shaper, error) {
	return newHBShaper(modeShapeThenWrap, mgr, opts)
}

// MakeShapeDontWrapOrReorder returns a HarfBuzz shaper that emits one line
// with runs in logical order and ignores the width.
func MakeShapeDontWrapOrReorder(mgr fontmgr.FontMgr, opts ...Option) (Shaper, error) {
	return newHBShaper(modeShapeDontWrapOrReorder, mgr, opts)
}

// MakeCoreText returns the platform text shaper. No platform shaper is
// compiled into this package, so it always fails with
// ErrBackendUnavailable.
func MakeCoreText() (Shaper, error) {
	return nil, ErrBackendUnavailable
}
