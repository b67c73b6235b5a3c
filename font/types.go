package font

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a typeface. Zero is ".notdef".
type GlyphID uint16

// Weight is the OpenType usWeightClass of a typeface (100..1000).
type Weight int

// Common weights.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Width is the OpenType usWidthClass of a typeface (1..9).
type Width int

// Common widths.
const (
	WidthCondensed Width = 3
	WidthNormal    Width = 5
	WidthExpanded  Width = 7
)

// Slant specifies whether a typeface is upright, italic or oblique.
type Slant int

const (
	// SlantUpright is the regular, upright style.
	SlantUpright Slant = iota
	// SlantItalic is a true italic design.
	SlantItalic
	// SlantOblique is a slanted roman design.
	SlantOblique
)

// String returns the string representation of the slant.
func (s Slant) String() string {
	switch s {
	case SlantUpright:
		return "Upright"
	case SlantItalic:
		return "Italic"
	case SlantOblique:
		return "Oblique"
	default:
		return unknownStr
	}
}

// Style groups the weight, width and slant used for typeface matching.
type Style struct {
	Weight Weight
	Width  Width
	Slant  Slant
}

// NormalStyle returns the regular style (400, normal width, upright).
func NormalStyle() Style {
	return Style{Weight: WeightNormal, Width: WidthNormal, Slant: SlantUpright}
}

// BoldStyle returns the bold style.
func BoldStyle() Style {
	return Style{Weight: WeightBold, Width: WidthNormal, Slant: SlantUpright}
}

// ItalicStyle returns the italic style.
func ItalicStyle() Style {
	return Style{Weight: WeightNormal, Width: WidthNormal, Slant: SlantItalic}
}

// Distance returns a matching score between two styles; smaller is closer.
// Slant mismatches dominate width mismatches, which dominate weight.
func (s Style) Distance(o Style) int {
	d := 0
	if s.Slant != o.Slant {
		d += 10000
	}
	dw := int(s.Width - o.Width)
	if dw < 0 {
		dw = -dw
	}
	d += dw * 1000
	dwt := int(s.Weight - o.Weight)
	if dwt < 0 {
		dwt = -dwt
	}
	return d + dwt
}

// Hinting specifies font hinting mode.
type Hinting int

const (
	// HintingNone disables hinting.
	HintingNone Hinting = iota
	// HintingVertical applies vertical hinting only.
	HintingVertical
	// HintingFull applies full hinting.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// Edging specifies how glyph edges are anti-aliased when rasterized.
// The shaper carries it through unchanged.
type Edging int

const (
	// EdgingAntiAlias uses grayscale coverage.
	EdgingAntiAlias Edging = iota
	// EdgingAlias disables anti-aliasing.
	EdgingAlias
	// EdgingSubpixelAntiAlias uses LCD subpixel coverage.
	EdgingSubpixelAntiAlias
)

// String returns the string representation of the edging.
func (e Edging) String() string {
	switch e {
	case EdgingAntiAlias:
		return "AntiAlias"
	case EdgingAlias:
		return "Alias"
	case EdgingSubpixelAntiAlias:
		return "SubpixelAntiAlias"
	default:
		return unknownStr
	}
}

// Rect represents a rectangle for glyph bounds.
// The y axis points down: MinY is negative above the baseline.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Metrics holds font metrics at a specific size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// Leading is the recommended gap between lines.
	Leading float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// LineHeight returns the recommended distance between consecutive baselines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.Leading
}
