package shaper

import (
	"slices"
	"unicode/utf8"

	"github.com/gogpu/shaper/font"
)

// segment is a byte range over which no iterator changes value.
type segment struct {
	Range
	font     font.Font
	level    uint8
	script   FourByteTag
	language string
}

// iterators bundles the four segmentation iterators of one shaping call.
type iterators struct {
	fonts  FontRunIterator
	bidi   BiDiRunIterator
	script ScriptRunIterator
	lang   LanguageRunIterator
}

// withDefaults replaces missing iterators with trivial ones over n bytes.
func (its iterators) withDefaults(n int) iterators {
	if its.fonts == nil {
		its.fonts = NewTrivialFontRunIterator(font.Font{}, n)
	}
	if its.bidi == nil {
		its.bidi = NewTrivialBiDiRunIterator(0, n)
	}
	if its.script == nil {
		its.script = NewTrivialScriptRunIterator(0, n)
	}
	if its.lang == nil {
		its.lang = NewTrivialLanguageRunIterator(undetermined, n)
	}
	return its
}

// segments consumes the iterators in lockstep and returns the runs where
// none of them, and no feature range, changes.
func (its iterators) segments(text string, features []Feature) []segment {
	all := [...]RunIterator{its.fonts, its.bidi, its.script, its.lang}
	bounds := featureBounds(text, features)

	var segs []segment
	for pos := 0; pos < len(text); {
		end := len(text)
		for _, it := range all {
			for !it.AtEnd() && it.EndOfCurrentRun() <= pos {
				it.Consume()
			}
			if e := it.EndOfCurrentRun(); e > pos {
				end = min(end, e)
			}
		}
		for len(bounds) > 0 && bounds[0] <= pos {
			bounds = bounds[1:]
		}
		if len(bounds) > 0 {
			end = min(end, bounds[0])
		}

		segs = append(segs, segment{
			Range:    Range{Start: pos, End: end},
			font:     its.fonts.CurrentFont(),
			level:    its.bidi.CurrentLevel(),
			script:   its.script.CurrentScript(),
			language: its.lang.CurrentLanguage(),
		})
		pos = end
	}
	return segs
}

// featureBounds returns the sorted feature starts and ends strictly inside
// text, moved forward to rune boundaries.
func featureBounds(text string, features []Feature) []int {
	var bounds []int
	add := func(b int) {
		for b > 0 && b < len(text) && !utf8.RuneStart(text[b]) {
			b++
		}
		if b > 0 && b < len(text) {
			bounds = append(bounds, b)
		}
	}
	for _, f := range features {
		add(f.Start)
		add(f.End)
	}
	slices.Sort(bounds)
	return slices.Compact(bounds)
}
