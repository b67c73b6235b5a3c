package font

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
)

// nextTypefaceID hands out process-unique typeface IDs, starting at 1.
var nextTypefaceID atomic.Uint32

// Typeface represents a loaded font file.
// One Typeface backs any number of Font values at different sizes.
// Typeface is heavyweight and should be shared across the application.
//
// Typeface is safe for concurrent use.
// Typeface must not be copied after creation (enforced by copyCheck).
type Typeface struct {
	// addr must point to the Typeface itself.
	addr *Typeface

	id     uint32
	data   []byte
	parsed ParsedFont
	family string
	full   string
	style  Style
	ranges []UnicodeRange

	coverage *coverageMap

	// goText is parsed lazily; the shapers need it, metric queries do not.
	goTextOnce sync.Once
	goText     *gotext.Font
	goTextErr  error

	mu     sync.RWMutex
	closed bool
}

// NewTypeface creates a Typeface from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewTypeface(data []byte, opts ...TypefaceOption) (*Typeface, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultTypefaceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	t := &Typeface{
		id:       nextTypefaceID.Add(1),
		data:     dataCopy,
		parsed:   parsed,
		full:     parsed.FullName(),
		ranges:   config.ranges,
		coverage: newCoverageMap(),
	}
	t.addr = t

	t.family = config.family
	if t.family == "" {
		t.family = familyName(parsed)
	}
	t.style = config.style
	if !config.styleSet {
		t.style = guessStyle(t.full)
	}
	return t, nil
}

// NewTypefaceFromFile loads a Typeface from a font file path.
func NewTypefaceFromFile(path string, opts ...TypefaceOption) (*Typeface, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return NewTypeface(data, opts...)
}

// ID returns a process-unique identifier for the typeface.
func (t *Typeface) ID() uint32 {
	t.copyCheck()
	return t.id
}

// FamilyName returns the font family name.
func (t *Typeface) FamilyName() string {
	t.copyCheck()
	return t.family
}

// FullName returns the full font name, e.g. "Go Bold Italic".
func (t *Typeface) FullName() string {
	t.copyCheck()
	return t.full
}

// Style returns the typeface style.
func (t *Typeface) Style() Style {
	t.copyCheck()
	return t.style
}

// Parsed returns the metrics backend, or nil once the typeface is closed.
func (t *Typeface) Parsed() ParsedFont {
	t.copyCheck()
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.parsed
}

// GlyphIndex returns the nominal glyph for r, or 0 if unmapped or outside
// the typeface's Unicode ranges.
func (t *Typeface) GlyphIndex(r rune) GlyphID {
	parsed := t.Parsed()
	if parsed == nil || !inRanges(t.ranges, r) {
		return 0
	}
	return GlyphID(parsed.GlyphIndex(r))
}

// HasGlyph reports whether the typeface maps r to a glyph.
// Results are memoized per rune.
func (t *Typeface) HasGlyph(r rune) bool {
	if covered, checked := t.coverage.get(r); checked {
		return covered
	}
	covered := t.GlyphIndex(r) != 0
	t.coverage.set(r, covered)
	return covered
}

// UnitsPerEm returns the design units per em, or 0 once closed.
func (t *Typeface) UnitsPerEm() int {
	parsed := t.Parsed()
	if parsed == nil {
		return 0
	}
	return parsed.UnitsPerEm()
}

// GoTextFont returns the go-text/typesetting representation of the typeface,
// parsing it on first use. The returned *font.Font is read-only and safe for
// concurrent use; callers wrap it in a font.Face per shaping call.
func (t *Typeface) GoTextFont() (*gotext.Font, error) {
	t.copyCheck()
	t.goTextOnce.Do(func() {
		t.mu.RLock()
		data := t.data
		t.mu.RUnlock()
		if data == nil {
			t.goTextErr = ErrTypefaceClosed
			return
		}
		face, err := gotext.ParseTTF(bytes.NewReader(data))
		if err != nil {
			t.goTextErr = &ParseError{Backend: "gotext", Err: err}
			return
		}
		t.goText = face.Font
	})
	return t.goText, t.goTextErr
}

// Close releases the font data. Fonts built from the typeface report zero
// metrics and unmapped glyphs afterwards.
func (t *Typeface) Close() error {
	t.copyCheck()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.data = nil
	t.parsed = nil
	t.closed = true
	t.coverage.clear()
	return nil
}

// String returns "<family> (<full name>)".
func (t *Typeface) String() string {
	if t == nil {
		return "<nil typeface>"
	}
	return fmt.Sprintf("%s (%s)", t.family, t.full)
}

// copyCheck panics if Typeface was copied by value.
func (t *Typeface) copyCheck() {
	if t.addr != t {
		panic("font: Typeface must not be copied by value")
	}
}

// familyName extracts the font family name from the parsed font.
func familyName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}

// guessStyle derives a style from the words of a full font name.
func guessStyle(fullName string) Style {
	s := NormalStyle()
	name := strings.ToLower(fullName)
	switch {
	case strings.Contains(name, "extrabold"), strings.Contains(name, "extra bold"):
		s.Weight = WeightExtraBold
	case strings.Contains(name, "semibold"), strings.Contains(name, "semi bold"):
		s.Weight = WeightSemiBold
	case strings.Contains(name, "bold"):
		s.Weight = WeightBold
	case strings.Contains(name, "black"):
		s.Weight = WeightBlack
	case strings.Contains(name, "medium"):
		s.Weight = WeightMedium
	case strings.Contains(name, "light"):
		s.Weight = WeightLight
	case strings.Contains(name, "thin"):
		s.Weight = WeightThin
	}
	switch {
	case strings.Contains(name, "italic"):
		s.Slant = SlantItalic
	case strings.Contains(name, "oblique"):
		s.Slant = SlantOblique
	}
	switch {
	case strings.Contains(name, "condensed"):
		s.Width = WidthCondensed
	case strings.Contains(name, "expanded"):
		s.Width = WidthExpanded
	}
	return s
}
