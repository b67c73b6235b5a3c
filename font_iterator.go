package shaper

import (
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
)

// FontMgrRunIterator splits text into runs that the requested font, or a
// fallback typeface found through a font manager, can render.
type FontMgrRunIterator struct {
	text    string
	pos     int
	request font.Font
	current font.Font
	// fallback is the last typeface obtained from the manager, reused
	// while it keeps covering the text.
	fallback    font.Font
	mgr         fontmgr.FontMgr
	requestName string
	style       font.Style
	lang        LanguageRunIterator
}

// MakeFontMgrRunIterator returns an iterator over text for f that falls back
// to typefaces of mgr for characters f cannot render. A nil mgr disables
// fallback.
func MakeFontMgrRunIterator(text string, f font.Font, mgr fontmgr.FontMgr) *FontMgrRunIterator {
	name := ""
	style := font.NormalStyle()
	if f.Typeface != nil {
		name = f.Typeface.FamilyName()
		style = f.Typeface.Style()
	}
	return NewFontMgrRunIterator(text, f, mgr, name, style, nil)
}

// NewFontMgrRunIterator is MakeFontMgrRunIterator with an explicit request
// family and style, and an optional language iterator whose languages are
// passed to the manager as hints. The language iterator must cover text and
// must not be shared with a shaper.
func NewFontMgrRunIterator(text string, f font.Font, mgr fontmgr.FontMgr, requestName string, style font.Style, lang LanguageRunIterator) *FontMgrRunIterator {
	if mgr == nil {
		mgr = fontmgr.Empty()
	}
	return &FontMgrRunIterator{
		text:        text,
		request:     f,
		current:     f,
		fallback:    f.WithTypeface(nil),
		mgr:         mgr,
		requestName: requestName,
		style:       style,
		lang:        lang,
	}
}

// Consume moves to the next run.
func (it *FontMgrRunIterator) Consume() {
	if it.AtEnd() {
		panic(ErrIteratorExhausted)
	}
	r, size := utf8.DecodeRuneInString(it.text[it.pos:])
	it.current = it.choose(r)
	it.pos += size

	for it.pos < len(it.text) {
		r, size := utf8.DecodeRuneInString(it.text[it.pos:])
		if !neutral(r) {
			// Return to the requested font as soon as it covers the text.
			if it.current.Typeface != it.request.Typeface && it.request.HasGlyph(r) {
				return
			}
			if !it.current.HasGlyph(r) && it.match(r) != nil {
				return
			}
		}
		it.pos += size
	}
}

// choose picks the font for the first character of a run.
func (it *FontMgrRunIterator) choose(r rune) font.Font {
	if neutral(r) || it.request.HasGlyph(r) {
		return it.request
	}
	if it.fallback.Typeface != nil && it.fallback.HasGlyph(r) {
		return it.fallback
	}
	if tf := it.match(r); tf != nil {
		it.fallback = it.request.WithTypeface(tf)
		return it.fallback
	}
	return it.request
}

func (it *FontMgrRunIterator) match(r rune) *font.Typeface {
	var hints []string
	if it.lang != nil {
		for !it.lang.AtEnd() && it.lang.EndOfCurrentRun() <= it.pos {
			it.lang.Consume()
		}
		if l := it.lang.CurrentLanguage(); l != "" {
			hints = []string{l}
		}
	}
	tf := it.mgr.MatchFamilyStyleCharacter(it.requestName, it.style, hints, r)
	if tf == it.request.Typeface {
		return nil
	}
	return tf
}

// EndOfCurrentRun returns the byte offset just past the current run.
func (it *FontMgrRunIterator) EndOfCurrentRun() int { return it.pos }

// AtEnd reports whether the last run has been consumed.
func (it *FontMgrRunIterator) AtEnd() bool { return it.pos >= len(it.text) }

// CurrentFont returns the font of the current run.
func (it *FontMgrRunIterator) CurrentFont() font.Font { return it.current }

// neutral characters never start a fallback; they stay with the current
// font.
func neutral(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
