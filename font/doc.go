// Package font provides the font values consumed by the shaper: typefaces
// parsed from TTF/OTF data and sized fonts built on top of them.
//
// The package follows a separation of concerns:
//
//   - Typeface: Heavyweight, shared font resource (parses TTF/OTF data once)
//   - Font: Lightweight value type pairing a typeface with a size and
//     rendering parameters; safe to copy and compare
//   - FontParser: Pluggable metrics backend (default: golang.org/x/image)
//
// Glyph shaping does not happen here. A Typeface additionally exposes a
// go-text/typesetting face so that the HarfBuzz shapers of the parent package
// can shape with the same font data.
//
// # Example usage
//
//	tf, err := font.NewTypeface(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tf.Close()
//
//	f := font.NewFont(tf, 16)
//	gid := f.UnicharToGlyph('A')
//	adv := f.GlyphAdvance(gid)
package font
