// Package shaper turns UTF-8 text into lines of positioned glyph runs.
//
// A Shaper is built by one of the factories and reports its output through a
// RunHandler, line by line:
//
//	BeginLine
//	RunInfo ... (once per run of the line)
//	CommitRunInfo
//	RunBuffer, CommitRunBuffer ... (once per run of the line)
//	CommitLine
//
// The input is segmented by four run iterators (font, bidi level, script and
// language). The shaper consumes all four in lockstep and shapes every
// segment where none of them changes.
//
// # Shapers
//
//   - [Make]: HarfBuzz shaping, wrapping after shaping; falls back to the
//     primitive shaper when no Unicode backend is available
//   - [MakeShapeThenWrap], [MakeShaperDrivenWrapper],
//     [MakeShapeDontWrapOrReorder]: the HarfBuzz variants, which fail when the
//     Unicode backend cannot be constructed
//   - [MakePrimitive]: one glyph per code point, no OpenType processing
//
// Shaping is done by go-text/typesetting. Bidi levels, scripts and line
// breaks come from a [unicodes.Unicode] backend.
//
// # Example
//
//	tf, _ := font.NewTypeface(goregular.TTF)
//	s := shaper.Make(fontmgr.NewCollection(tf))
//
//	h := shaper.NewTextBlobBuilderRunHandler(text, shaper.Point{})
//	s.Shape(text, font.NewFont(tf, 16), true, 300, h)
//	blob := h.MakeBlob()
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive diagnostics.
package shaper
