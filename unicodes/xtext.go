package unicodes

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// xtext is the built-in backend: bidi from golang.org/x/text/unicode/bidi,
// scripts from go-text/typesetting/language, line breaks from
// go-text/typesetting/segmenter, normalization from
// golang.org/x/text/unicode/norm.
type xtext struct{}

func newXText() *xtext { return &xtext{} }

func (*xtext) Name() string { return DefaultBackend }

func (*xtext) Script(r rune) language.Script {
	return language.LookupScript(r)
}

func (*xtext) PairedBracket(r rune) (isBracket, opening bool) {
	p, _ := bidi.LookupRune(r)
	return p.IsBracket(), p.IsOpeningBracket()
}

func (*xtext) IsWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u200b'
}

func (*xtext) Normalize(form Form, text string) string {
	switch form {
	case NFD:
		return norm.NFD.String(text)
	case NFKC:
		return norm.NFKC.String(text)
	case NFKD:
		return norm.NFKD.String(text)
	default:
		return norm.NFC.String(text)
	}
}

func (*xtext) ReorderVisual(levels []uint8) []int {
	return reorderVisual(levels)
}

func (*xtext) LineBreaks(text string) []LineBreak {
	return lineBreaks(text)
}

func (*xtext) BidiRuns(text string, baseLevel uint8) ([]BidiRun, error) {
	return bidiRuns(text, baseLevel)
}
