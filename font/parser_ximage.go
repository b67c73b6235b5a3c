package font

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &ParseError{Backend: defaultParserName, Err: err}
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
// sfnt.Font is safe for concurrent use as long as every call gets its own
// sfnt.Buffer, which is why each method allocates one.
type ximageParsedFont struct {
	font *opentype.Font
}

func (f *ximageParsedFont) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsedFont) FullName() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageParsedFont) GlyphIndex(r rune) uint16 {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

func (f *ximageParsedFont) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

func (f *ximageParsedFont) GlyphBounds(glyphIndex uint16, ppem float64) Rect {
	var buf sfnt.Buffer
	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), xfont.HintingNone)
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fromFixed(bounds.Min.X),
		MinY: fromFixed(bounds.Min.Y),
		MaxX: fromFixed(bounds.Max.X),
		MaxY: fromFixed(bounds.Max.Y),
	}
}

func (f *ximageParsedFont) Metrics(ppem float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, toFixed(ppem), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fromFixed(m.Ascent)
	descent := fromFixed(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	leading := fromFixed(m.Height) - ascent - descent
	if leading < 0 {
		leading = 0
	}
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		Leading:   leading,
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}
}

// toFixed converts a float64 size to fixed.Int26_6.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
