package shaper

import "github.com/gogpu/shaper/font"

// RunIterator walks a text in runs. It is finite and single pass:
//
//	for !it.AtEnd() {
//	    it.Consume()
//	    end := it.EndOfCurrentRun()
//	    ...
//	}
//
// Consume on an iterator at its end panics. EndOfCurrentRun and the
// Current accessors are only meaningful after the first Consume.
// Iterators are not safe for concurrent use.
type RunIterator interface {
	// Consume moves to the next run.
	Consume()
	// EndOfCurrentRun returns the byte offset just past the current run.
	EndOfCurrentRun() int
	// AtEnd reports whether the last run has been consumed.
	AtEnd() bool
}

// FontRunIterator yields runs sharing one font.
type FontRunIterator interface {
	RunIterator
	CurrentFont() font.Font
}

// BiDiRunIterator yields runs sharing one embedding level.
type BiDiRunIterator interface {
	RunIterator
	CurrentLevel() uint8
}

// ScriptRunIterator yields runs sharing one ISO 15924 script.
type ScriptRunIterator interface {
	RunIterator
	CurrentScript() FourByteTag
}

// LanguageRunIterator yields runs sharing one BCP 47 language.
type LanguageRunIterator interface {
	RunIterator
	CurrentLanguage() string
}

// trivialRun covers a whole text of n bytes with one run.
type trivialRun struct {
	end   int
	atEnd bool
}

func newTrivialRun(n int) trivialRun {
	return trivialRun{end: n, atEnd: n == 0}
}

func (t *trivialRun) Consume() {
	if t.atEnd {
		panic(ErrIteratorExhausted)
	}
	t.atEnd = true
}

func (t *trivialRun) EndOfCurrentRun() int {
	if t.atEnd {
		return t.end
	}
	return 0
}

func (t *trivialRun) AtEnd() bool { return t.atEnd }

// TrivialFontRunIterator yields one run of a fixed font.
type TrivialFontRunIterator struct {
	trivialRun
	font font.Font
}

// NewTrivialFontRunIterator returns an iterator yielding f for n bytes.
func NewTrivialFontRunIterator(f font.Font, n int) *TrivialFontRunIterator {
	return &TrivialFontRunIterator{trivialRun: newTrivialRun(n), font: f}
}

// CurrentFont returns the font of the run.
func (t *TrivialFontRunIterator) CurrentFont() font.Font { return t.font }

// TrivialBiDiRunIterator yields one run of a fixed level.
type TrivialBiDiRunIterator struct {
	trivialRun
	level uint8
}

// NewTrivialBiDiRunIterator returns an iterator yielding level for n bytes.
func NewTrivialBiDiRunIterator(level uint8, n int) *TrivialBiDiRunIterator {
	return &TrivialBiDiRunIterator{trivialRun: newTrivialRun(n), level: level}
}

// CurrentLevel returns the level of the run.
func (t *TrivialBiDiRunIterator) CurrentLevel() uint8 { return t.level }

// TrivialScriptRunIterator yields one run of a fixed script.
type TrivialScriptRunIterator struct {
	trivialRun
	script FourByteTag
}

// NewTrivialScriptRunIterator returns an iterator yielding script for n
// bytes.
func NewTrivialScriptRunIterator(script FourByteTag, n int) *TrivialScriptRunIterator {
	return &TrivialScriptRunIterator{trivialRun: newTrivialRun(n), script: script}
}

// CurrentScript returns the script of the run.
func (t *TrivialScriptRunIterator) CurrentScript() FourByteTag { return t.script }

// TrivialLanguageRunIterator yields one run of a fixed language.
type TrivialLanguageRunIterator struct {
	trivialRun
	language string
}

// NewTrivialLanguageRunIterator returns an iterator yielding lang for n
// bytes.
func NewTrivialLanguageRunIterator(lang string, n int) *TrivialLanguageRunIterator {
	return &TrivialLanguageRunIterator{trivialRun: newTrivialRun(n), language: lang}
}

// CurrentLanguage returns the language of the run.
func (t *TrivialLanguageRunIterator) CurrentLanguage() string { return t.language }
