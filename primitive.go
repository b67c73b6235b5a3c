package shaper

import (
	"unicode"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/shaper/font"
)

// primitiveShaper maps one code point to one glyph, left to right, with
// word wrapping. It needs neither HarfBuzz nor a Unicode backend.
type primitiveShaper struct{}

// MakePrimitive returns a shaper without OpenType processing. Every line is
// reported as a single run in the first font of the text, excluding the
// line's trailing whitespace.
func MakePrimitive() Shaper {
	return primitiveShaper{}
}

// Shape implements Shaper.
func (primitiveShaper) Shape(text string, f font.Font, _ bool, width float64, h RunHandler) {
	shapePrimitive(text, f, scriptTag(language.Common), undetermined, width, h)
}

// ShapeRuns implements Shaper.
func (p primitiveShaper) ShapeRuns(text string, fonts FontRunIterator, bidi BiDiRunIterator,
	script ScriptRunIterator, lang LanguageRunIterator, width float64, h RunHandler) {
	p.ShapeRunsWithFeatures(text, fonts, bidi, script, lang, nil, width, h)
}

// ShapeRunsWithFeatures implements Shaper. Features and bidi levels are
// ignored.
func (primitiveShaper) ShapeRunsWithFeatures(text string, fonts FontRunIterator, _ BiDiRunIterator,
	script ScriptRunIterator, lang LanguageRunIterator, _ []Feature,
	width float64, h RunHandler) {
	if text == "" {
		return
	}
	var f font.Font
	if fonts != nil && !fonts.AtEnd() {
		fonts.Consume()
		f = fonts.CurrentFont()
	}
	tag := scriptTag(language.Common)
	if script != nil && !script.AtEnd() {
		script.Consume()
		tag = script.CurrentScript()
	}
	l := undetermined
	if lang != nil && !lang.AtEnd() {
		lang.Consume()
		l = lang.CurrentLanguage()
	}
	shapePrimitive(text, f, tag, l, width, h)
}

func shapePrimitive(text string, f font.Font, script FourByteTag, lang string, width float64, h RunHandler) {
	if text == "" {
		return
	}
	seg := segment{
		Range:    Range{Start: 0, End: len(text)},
		font:     f,
		script:   script,
		language: lang,
	}
	run := shapeNominal(newParagraph(text, 0), seg)

	clusters := clustersOf(text, []shapedRun{run}, unicode.IsSpace)
	lines := breakLines(text, clusters, primitiveBreaks(text, unicode.IsSpace), width)
	for _, line := range lines {
		visible := trimTrailingSpace(text, line.Start, line.End, unicode.IsSpace)
		piece := run.slice(line.Start, visible)
		emitLine(h, []shapedRun{piece})
	}
}
