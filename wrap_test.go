package shaper

import (
	"math"
	"testing"
	"unicode"

	"github.com/gogpu/shaper/unicodes"
)

// unitClusters makes one cluster of width 1 per byte of ASCII text.
func unitClusters(text string) []cluster {
	out := make([]cluster, len(text))
	for i := range text {
		out[i] = cluster{start: i, width: 1, space: text[i] == ' ' || text[i] == '\n'}
	}
	return out
}

func TestBreakLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []Range
	}{
		{"fits", "ab cd", 10, []Range{{0, 5}}},
		{"unlimited", "ab cd", math.Inf(1), []Range{{0, 5}}},
		{"word wrap", "ab cd", 3, []Range{{0, 3}, {3, 5}}},
		{"trailing spaces do not count", "ab    cd", 2, []Range{{0, 6}, {6, 8}}},
		{"long word", "abcdef", 4, []Range{{0, 4}, {4, 6}}},
		{"hard break", "ab\ncd", 10, []Range{{0, 3}, {3, 5}}},
		{"several words carried", "a b c d e", 3, []Range{{0, 4}, {4, 8}, {8, 9}}},
		{"zero width", "ab cd", 0, []Range{{0, 1}, {1, 3}, {3, 4}, {4, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaks := primitiveBreaks(tt.text, unicode.IsSpace)
			got := breakLines(tt.text, unitClusters(tt.text), breaks, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("breakLines = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPrimitiveBreaks(t *testing.T) {
	got := primitiveBreaks("a b\nc\r\nd", unicode.IsSpace)
	want := map[int]unicodes.BreakKind{
		2: unicodes.BreakSoft,
		4: unicodes.BreakHard,
		7: unicodes.BreakHard,
	}
	if len(got) != len(want) {
		t.Fatalf("primitiveBreaks = %v, want %v", got, want)
	}
	for pos, kind := range want {
		if got[pos] != kind {
			t.Errorf("break at %d = %v, want %v", pos, got[pos], kind)
		}
	}
}

func TestTrimTrailingSpace(t *testing.T) {
	text := "ab  \n"
	if got := trimTrailingSpace(text, 0, len(text), unicode.IsSpace); got != 2 {
		t.Errorf("trimTrailingSpace = %d, want 2", got)
	}
	if got := trimTrailingSpace("   ", 0, 3, unicode.IsSpace); got != 0 {
		t.Errorf("all-space trim = %d, want 0", got)
	}
}

func TestReorderRuns(t *testing.T) {
	s, err := MakeShapeThenWrap(nil)
	if err != nil {
		t.Fatal(err)
	}
	hb := s.(*hbShaper)
	runs := []shapedRun{
		{segment: segment{Range: Range{0, 1}, level: 0}},
		{segment: segment{Range: Range{1, 2}, level: 1}},
		{segment: segment{Range: Range{2, 3}, level: 1}},
		{segment: segment{Range: Range{3, 4}, level: 0}},
	}
	got := hb.reorder(runs)
	wantStarts := []int{0, 2, 1, 3}
	for i, r := range got {
		if r.Start != wantStarts[i] {
			t.Errorf("visual run %d starts at %d, want %d", i, r.Start, wantStarts[i])
		}
	}
}
