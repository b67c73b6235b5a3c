package shaper

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/shaper/unicodes"
)

// cluster is the smallest unit a line can be broken around: the bytes
// [start, next cluster start) and the advance of their glyphs.
type cluster struct {
	start int
	width float64
	space bool
}

// clustersOf collects the clusters of shaped runs. Run starts are always
// cluster starts.
func clustersOf(text string, runs []shapedRun, isSpace func(rune) bool) []cluster {
	widths := make(map[int]float64)
	for i := range runs {
		if _, ok := widths[runs[i].Start]; !ok {
			widths[runs[i].Start] = 0
		}
		for _, g := range runs[i].glyphs {
			widths[g.cluster] += g.advance.X
		}
	}

	starts := make([]int, 0, len(widths))
	for s := range widths {
		starts = append(starts, s)
	}
	slices.Sort(starts)

	out := make([]cluster, len(starts))
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out[i] = cluster{start: s, width: widths[s], space: allSpace(text[s:end], isSpace)}
	}
	return out
}

func allSpace(s string, isSpace func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isSpace(r) && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// breakLines assigns clusters to lines no wider than width. Trailing
// whitespace does not count toward the width. Lines end at hard breaks,
// at the last soft break that fits, or, for a word wider than the line,
// before the first cluster that overflows. The returned ranges tile text.
func breakLines(text string, clusters []cluster, breaks map[int]unicodes.BreakKind, width float64) []Range {
	unlimited := math.IsInf(width, 1) || math.IsNaN(width)

	var (
		lines     []Range
		start     int     // byte offset of the current line
		first     int     // index of its first cluster
		lineWidth float64 // width of clusters [first, i)
		lastBreak = -1    // index of the last soft break cluster
	)
	for i := 0; i < len(clusters); i++ {
		c := clusters[i]
		if c.start > start {
			switch breaks[c.start] {
			case unicodes.BreakHard:
				lines = append(lines, Range{Start: start, End: c.start})
				start, first, lineWidth, lastBreak = c.start, i, 0, -1
			case unicodes.BreakSoft:
				lastBreak = i
			}
		}

		if !unlimited && !c.space && i > first && lineWidth+c.width > width {
			cut := i
			if lastBreak > first {
				cut = lastBreak
			}
			lines = append(lines, Range{Start: start, End: clusters[cut].start})
			start, first, lineWidth, lastBreak = clusters[cut].start, cut, 0, -1
			for j := cut; j < i; j++ {
				lineWidth += clusters[j].width
				if j > cut && breaks[clusters[j].start] == unicodes.BreakSoft {
					lastBreak = j
				}
			}
			if cut < i {
				// The carried over clusters may still not fit with c.
				i--
				continue
			}
		}
		lineWidth += c.width
	}
	return append(lines, Range{Start: start, End: len(text)})
}

// primitiveBreaks finds break opportunities without a Unicode backend:
// soft breaks where a word follows whitespace, hard breaks after newlines.
func primitiveBreaks(text string, isSpace func(rune) bool) map[int]unicodes.BreakKind {
	breaks := make(map[int]unicodes.BreakKind)
	var prev rune
	for i, r := range text {
		if i > 0 {
			switch {
			case prev == '\n' || (prev == '\r' && r != '\n'):
				breaks[i] = unicodes.BreakHard
			case isSpace(prev) && !isSpace(r):
				breaks[i] = unicodes.BreakSoft
			}
		}
		prev = r
	}
	return breaks
}

// breakMap indexes break opportunities by byte offset.
func breakMap(list []unicodes.LineBreak) map[int]unicodes.BreakKind {
	m := make(map[int]unicodes.BreakKind, len(list))
	for _, b := range list {
		m[b.Pos] = b.Kind
	}
	return m
}

// trimTrailingSpace returns the end of the visible part of text[start:end].
func trimTrailingSpace(text string, start, end int, isSpace func(rune) bool) int {
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !isSpace(r) && r != '\n' && r != '\r' {
			break
		}
		end -= size
	}
	return end
}
