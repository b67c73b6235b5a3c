package font

import "unicode/utf8"

// DefaultSize is the size used by the zero-configured Font.
const DefaultSize = 12

// Font is a typeface at a specific size plus rendering parameters.
// Font is a small value type: copy it freely and compare it with Equal.
// A Font with a nil Typeface is valid and maps every rune to glyph 0.
type Font struct {
	Typeface *Typeface
	Size     float64
	ScaleX   float64
	SkewX    float64
	Hinting  Hinting
	Edging   Edging
}

// NewFont returns a Font for tf at size (in points, one point per pixel).
func NewFont(tf *Typeface, size float64, opts ...FontOption) Font {
	f := Font{
		Typeface: tf,
		Size:     size,
		ScaleX:   1,
		Hinting:  HintingNone,
		Edging:   EdgingAntiAlias,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithSize returns a copy of f at another size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// WithTypeface returns a copy of f using another typeface.
func (f Font) WithTypeface(tf *Typeface) Font {
	f.Typeface = tf
	return f
}

// Equal reports whether both fonts would produce identical glyphs.
func (f Font) Equal(o Font) bool {
	return f == o
}

// scaleX returns the effective horizontal scale; a zero value means 1.
func (f Font) scaleX() float64 {
	if f.ScaleX == 0 {
		return 1
	}
	return f.ScaleX
}

func (f Font) parsed() ParsedFont {
	if f.Typeface == nil {
		return nil
	}
	return f.Typeface.Parsed()
}

// Metrics returns the font metrics at the font size.
func (f Font) Metrics() Metrics {
	p := f.parsed()
	if p == nil {
		return Metrics{}
	}
	return p.Metrics(f.Size)
}

// HasGlyph reports whether the typeface maps r to a glyph.
func (f Font) HasGlyph(r rune) bool {
	if f.Typeface == nil {
		return false
	}
	return f.Typeface.HasGlyph(r)
}

// UnicharToGlyph returns the nominal glyph for r, or 0 if unmapped.
func (f Font) UnicharToGlyph(r rune) GlyphID {
	if f.Typeface == nil {
		return 0
	}
	return f.Typeface.GlyphIndex(r)
}

// TextToGlyphs appends the nominal glyph of every code point of text to dst.
// Invalid UTF-8 bytes map to glyph 0, one glyph per byte.
func (f Font) TextToGlyphs(dst []GlyphID, text string) []GlyphID {
	for _, r := range text {
		dst = append(dst, f.UnicharToGlyph(r))
	}
	return dst
}

// CountText returns the number of glyphs TextToGlyphs would produce.
func (f Font) CountText(text string) int {
	return utf8.RuneCountInString(text)
}

// GlyphAdvance returns the horizontal advance of gid in pixels.
func (f Font) GlyphAdvance(gid GlyphID) float64 {
	p := f.parsed()
	if p == nil {
		return 0
	}
	return p.GlyphAdvance(uint16(gid), f.Size) * f.scaleX()
}

// GlyphBounds returns the bounds of gid relative to its origin.
func (f Font) GlyphBounds(gid GlyphID) Rect {
	p := f.parsed()
	if p == nil {
		return Rect{}
	}
	b := p.GlyphBounds(uint16(gid), f.Size)
	sx := f.scaleX()
	b.MinX *= sx
	b.MaxX *= sx
	if f.SkewX != 0 {
		// Skew shears x by -y*SkewX; y is negative above the baseline.
		b.MinX += min(-b.MinY*f.SkewX, -b.MaxY*f.SkewX)
		b.MaxX += max(-b.MinY*f.SkewX, -b.MaxY*f.SkewX)
	}
	return b
}

// MeasureText returns the sum of nominal advances of text, without shaping.
func (f Font) MeasureText(text string) float64 {
	var w float64
	for _, r := range text {
		w += f.GlyphAdvance(f.UnicharToGlyph(r))
	}
	return w
}
