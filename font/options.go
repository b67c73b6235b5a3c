package font

// TypefaceOption configures Typeface creation.
type TypefaceOption func(*typefaceConfig)

// typefaceConfig holds configuration for Typeface.
type typefaceConfig struct {
	parserName string
	style      Style
	styleSet   bool
	family     string
	ranges     []UnicodeRange
}

// defaultTypefaceConfig returns the default typeface configuration.
func defaultTypefaceConfig() typefaceConfig {
	return typefaceConfig{
		parserName: defaultParserName,
		style:      NormalStyle(),
	}
}

// WithParser specifies the metrics backend by registered name.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
func WithParser(name string) TypefaceOption {
	return func(c *typefaceConfig) {
		c.parserName = name
	}
}

// WithStyle overrides the style reported by the typeface.
// Without it the style is guessed from the full font name.
func WithStyle(s Style) TypefaceOption {
	return func(c *typefaceConfig) {
		c.style = s
		c.styleSet = true
	}
}

// WithFamilyName overrides the family name read from the name table.
func WithFamilyName(name string) TypefaceOption {
	return func(c *typefaceConfig) {
		c.family = name
	}
}

// WithUnicodeRanges restricts the code points the typeface reports as
// covered. Font fallback then routes other code points to other typefaces.
func WithUnicodeRanges(ranges ...UnicodeRange) TypefaceOption {
	return func(c *typefaceConfig) {
		c.ranges = append(c.ranges, ranges...)
	}
}

// FontOption configures a Font value.
type FontOption func(*Font)

// WithScaleX sets the horizontal scale applied to advances and bounds.
func WithScaleX(sx float64) FontOption {
	return func(f *Font) {
		f.ScaleX = sx
	}
}

// WithSkewX sets the horizontal skew used for synthetic obliques.
func WithSkewX(kx float64) FontOption {
	return func(f *Font) {
		f.SkewX = kx
	}
}

// WithHinting sets the hinting mode.
func WithHinting(h Hinting) FontOption {
	return func(f *Font) {
		f.Hinting = h
	}
}

// WithEdging sets the edging mode.
func WithEdging(e Edging) FontOption {
	return func(f *Font) {
		f.Edging = e
	}
}
