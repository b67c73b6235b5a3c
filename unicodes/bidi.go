package unicodes

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// bidiRuns splits text into paragraphs at paragraph separators, resolves
// each paragraph with x/text, and converts the resulting directional runs
// into embedding levels relative to the paragraph level.
func bidiRuns(text string, baseLevel uint8) (runs []BidiRun, err error) {
	if text == "" {
		return nil, nil
	}
	if baseLevel > MaxExplicitLevel && baseLevel < LevelDefaultLTR {
		return nil, fmt.Errorf("unicodes: invalid base level %d", baseLevel)
	}

	// x/text panics on some malformed inputs instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			runs, err = nil, fmt.Errorf("unicodes: bidi resolution failed: %v", r)
		}
	}()

	start := 0
	for start < len(text) {
		end := paragraphEnd(text, start)
		para := text[start:end]
		level := paragraphLevel(para, baseLevel)
		levels, err := resolveParagraph(para, level)
		if err != nil {
			return nil, err
		}
		runs = appendLevelRuns(runs, para, start, levels)
		start = end
	}
	return runs, nil
}

// paragraphEnd returns the offset just after the next paragraph separator
// at or after start, or len(text).
func paragraphEnd(text string, start int) int {
	for i, r := range text[start:] {
		p, _ := bidi.LookupRune(r)
		if p.Class() == bidi.B {
			return start + i + utf8.RuneLen(r)
		}
	}
	return len(text)
}

// paragraphLevel applies rules P2/P3 for the default levels and passes
// explicit levels through.
func paragraphLevel(para string, baseLevel uint8) uint8 {
	if baseLevel != LevelDefaultLTR && baseLevel != LevelDefaultRTL {
		return baseLevel
	}
	for _, r := range para {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		}
	}
	if baseLevel == LevelDefaultRTL {
		return 1
	}
	return 0
}

// resolveParagraph returns one level per rune of para.
func resolveParagraph(para string, level uint8) ([]uint8, error) {
	n := utf8.RuneCountInString(para)
	levels := make([]uint8, n)
	for i := range levels {
		levels[i] = level
	}

	def := bidi.LeftToRight
	if IsRTL(level) {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(para, bidi.DefaultDirection(def)); err != nil {
		return nil, fmt.Errorf("unicodes: bidi paragraph: %w", err)
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, fmt.Errorf("unicodes: bidi ordering: %w", err)
	}

	// Run.Pos returns inclusive rune indices; runs come in visual order.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		from, to := run.Pos()
		lvl := levelFor(level, run.Direction())
		for j := max(from, 0); j <= to && j < n; j++ {
			levels[j] = lvl
		}
	}
	raiseNumbers(para, level, levels)
	return levels, nil
}

// raiseNumbers restores the levels of numbers in an even-level paragraph.
// x/text reports only the direction of a run, so a number resolved to
// level base+2 (rules W2 and I1: European digits after right-to-left text,
// Arabic digits anywhere) comes back looking like left-to-right text at
// the base level.
func raiseNumbers(para string, base uint8, levels []uint8) {
	if IsRTL(base) {
		// Rule I2 puts every left-to-right character of an odd paragraph,
		// digits included, at base+1, which levelFor already gives.
		return
	}
	classes := make([]bidi.Class, 0, len(levels))
	for _, r := range para {
		p, _ := bidi.LookupRune(r)
		classes = append(classes, p.Class())
	}

	afterRTL := false // start of paragraph counts as the embedding direction, L
	for i := 0; i < len(classes); {
		switch classes[i] {
		case bidi.L:
			afterRTL = false
		case bidi.R, bidi.AL:
			afterRTL = true
		case bidi.EN, bidi.AN, bidi.ET:
			end, arabic := numberEnd(classes, i)
			if end > i && (afterRTL || arabic) {
				for j := i; j < end; j++ {
					if levels[j] == base {
						levels[j] = base + 2
					}
				}
			}
			if end > i {
				i = end
				continue
			}
		}
		i++
	}
}

// numberEnd returns the end of the number starting at rune i: digits,
// terminators such as '%' or '$', and single separators between digits
// (rules W4 and W5). It returns i when the sequence holds no digit.
// arabic reports whether the number holds Arabic digits.
func numberEnd(classes []bidi.Class, i int) (end int, arabic bool) {
	digit := func(c bidi.Class) bool { return c == bidi.EN || c == bidi.AN }
	hasDigit := false
	j := i
	for j < len(classes) {
		switch c := classes[j]; {
		case digit(c):
			hasDigit = true
			arabic = arabic || c == bidi.AN
		case c == bidi.ET, c == bidi.NSM:
		case (c == bidi.CS || c == bidi.ES) && j > i && digit(classes[j-1]) &&
			j+1 < len(classes) && digit(classes[j+1]):
		default:
			if !hasDigit {
				return i, false
			}
			return j, arabic
		}
		j++
	}
	if !hasDigit {
		return i, false
	}
	return j, arabic
}

// levelFor returns the lowest level above or at base with the parity of dir.
func levelFor(base uint8, dir bidi.Direction) uint8 {
	rtl := dir == bidi.RightToLeft
	if rtl == IsRTL(base) {
		return base
	}
	return base + 1
}

// appendLevelRuns converts per-rune levels into byte runs shifted by offset.
func appendLevelRuns(runs []BidiRun, para string, offset int, levels []uint8) []BidiRun {
	i := 0
	for pos, r := range para {
		end := offset + pos + utf8.RuneLen(r)
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(para[pos:])
			end = offset + pos + size
		}
		lvl := levels[i]
		i++
		if n := len(runs); n > 0 && runs[n-1].Level == lvl && runs[n-1].End == offset+pos {
			runs[n-1].End = end
			continue
		}
		runs = append(runs, BidiRun{Start: offset + pos, End: end, Level: lvl})
	}
	return runs
}

// reorderVisual applies rule L2: from the highest level down to the lowest
// odd level, reverse every maximal sequence at that level or higher.
func reorderVisual(levels []uint8) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) == 0 {
		return order
	}
	highest, lowestOdd := uint8(0), uint8(MaxExplicitLevel+2)
	for _, l := range levels {
		highest = max(highest, l)
		if IsRTL(l) {
			lowestOdd = min(lowestOdd, l)
		}
	}
	for level := highest; level >= lowestOdd && level > 0; level-- {
		for i := 0; i < len(levels); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[order[j]] >= level {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}
