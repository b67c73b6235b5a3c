package unicodes

import (
	"errors"
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

func TestMakeDefault(t *testing.T) {
	u, err := MakeDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, u.Name())
	assert.Contains(t, Backends(), DefaultBackend)
}

func TestMakeUnknown(t *testing.T) {
	_, err := Make("icu")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestMakeFailingBackend(t *testing.T) {
	boom := errors.New("boom")
	Register("failing", func() (Unicode, error) { return nil, boom })
	t.Cleanup(func() { Unregister("failing") })

	_, err := Make("failing")
	assert.ErrorIs(t, err, ErrBackendFailed)
	assert.ErrorIs(t, err, boom)
}

func TestBidiRunsLTR(t *testing.T) {
	u := newXText()
	runs, err := u.BidiRuns("hello world", LevelDefaultLTR)
	require.NoError(t, err)
	assert.Equal(t, []BidiRun{{Start: 0, End: 11, Level: 0}}, runs)
}

func TestBidiRunsEmpty(t *testing.T) {
	runs, err := newXText().BidiRuns("", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestBidiRunsInvalidLevel(t *testing.T) {
	_, err := newXText().BidiRuns("abc", 200)
	assert.Error(t, err)
}

func TestBidiRunsCoverText(t *testing.T) {
	texts := []string{
		"hello",
		"abc שלום def",
		"مرحبا",
		"one\ntwo",
	}
	for _, text := range texts {
		for _, level := range []uint8{0, 1, LevelDefaultLTR, LevelDefaultRTL} {
			runs, err := newXText().BidiRuns(text, level)
			require.NoError(t, err, text)
			require.NotEmpty(t, runs)
			assert.Equal(t, 0, runs[0].Start)
			assert.Equal(t, len(text), runs[len(runs)-1].End)
			for i := 1; i < len(runs); i++ {
				assert.Equal(t, runs[i-1].End, runs[i].Start)
				assert.NotEqual(t, runs[i-1].Level, runs[i].Level)
			}
		}
	}
}

func TestBidiRunsNumbers(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level uint8
		want  []BidiRun
	}{
		{"digits after Latin", "abc 123", 0, []BidiRun{{0, 7, 0}}},
		{"digits after Hebrew", "\u05d0\u05d1\u05d2 123", 0, []BidiRun{{0, 7, 1}, {7, 10, 2}}},
		{"digits after Hebrew, RTL paragraph", "\u05d0\u05d1\u05d2 123", 1, []BidiRun{{0, 7, 1}, {7, 10, 2}}},
		{"decimal after Hebrew", "\u05d0 1.5", 0, []BidiRun{{0, 3, 1}, {3, 6, 2}}},
		{"Arabic digits after Latin", "abc \u0661\u0662\u0663", 0, []BidiRun{{0, 4, 0}, {4, 10, 2}}},
		{"mixed line", "abc \u05d0\u05d1\u05d2 123 def", 0,
			[]BidiRun{{0, 4, 0}, {4, 11, 1}, {11, 14, 2}, {14, 18, 0}}},
	}
	for _, tt := range tests {
		runs, err := newXText().BidiRuns(tt.text, tt.level)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, runs, tt.name)
	}
}

func TestNumberEnd(t *testing.T) {
	tests := []struct {
		classes []bidi.Class
		end     int
		arabic  bool
	}{
		{[]bidi.Class{bidi.EN, bidi.EN, bidi.WS}, 2, false},
		{[]bidi.Class{bidi.EN, bidi.CS, bidi.EN}, 3, false},
		{[]bidi.Class{bidi.EN, bidi.CS, bidi.WS}, 1, false},
		{[]bidi.Class{bidi.ET, bidi.EN}, 2, false},
		{[]bidi.Class{bidi.ET, bidi.L}, 0, false},
		{[]bidi.Class{bidi.AN, bidi.AN}, 2, true},
	}
	for _, tt := range tests {
		end, arabic := numberEnd(tt.classes, 0)
		assert.Equal(t, tt.end, end, "%v", tt.classes)
		assert.Equal(t, tt.arabic, arabic, "%v", tt.classes)
	}
}

func TestParagraphLevel(t *testing.T) {
	tests := []struct {
		text string
		base uint8
		want uint8
	}{
		{"abc", LevelDefaultLTR, 0},
		{"abc", LevelDefaultRTL, 0},
		{"של", LevelDefaultLTR, 1},
		{"123", LevelDefaultLTR, 0},
		{"123", LevelDefaultRTL, 1},
		{"abc", 1, 1},
		{"", LevelDefaultRTL, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paragraphLevel(tt.text, tt.base), "%q base %d", tt.text, tt.base)
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, uint8(0), levelFor(0, bidi.LeftToRight))
	assert.Equal(t, uint8(1), levelFor(0, bidi.RightToLeft))
	assert.Equal(t, uint8(1), levelFor(1, bidi.RightToLeft))
	assert.Equal(t, uint8(2), levelFor(1, bidi.LeftToRight))
}

func TestReorderVisual(t *testing.T) {
	tests := []struct {
		levels []uint8
		want   []int
	}{
		{nil, []int{}},
		{[]uint8{0, 0, 0}, []int{0, 1, 2}},
		{[]uint8{1, 1, 1}, []int{2, 1, 0}},
		{[]uint8{0, 1, 1, 0}, []int{0, 2, 1, 3}},
		{[]uint8{1, 2, 2, 1}, []int{3, 1, 2, 0}},
		{[]uint8{0, 2, 0}, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, newXText().ReorderVisual(tt.levels), "%v", tt.levels)
	}
}

func TestScript(t *testing.T) {
	u := newXText()
	assert.Equal(t, language.Latin, u.Script('a'))
	assert.Equal(t, language.Arabic, u.Script('م'))
	assert.Equal(t, language.Common, u.Script(' '))
}

func TestPairedBracket(t *testing.T) {
	u := newXText()
	isBracket, opening := u.PairedBracket('(')
	assert.True(t, isBracket)
	assert.True(t, opening)

	isBracket, opening = u.PairedBracket(']')
	assert.True(t, isBracket)
	assert.False(t, opening)

	isBracket, _ = u.PairedBracket('a')
	assert.False(t, isBracket)
}

func TestLineBreaks(t *testing.T) {
	tests := []struct {
		text string
		want []LineBreak
	}{
		{"", nil},
		{"word", nil},
		{"a b", []LineBreak{{Pos: 2, Kind: BreakSoft}}},
		{"a  b", []LineBreak{{Pos: 3, Kind: BreakSoft}}},
		{"a\nb", []LineBreak{{Pos: 2, Kind: BreakHard}}},
		{"a\r\nb", []LineBreak{{Pos: 3, Kind: BreakHard}}},
		{"well-known", []LineBreak{{Pos: 5, Kind: BreakSoft}}},
		{"(a)", nil},
		{"一二", []LineBreak{{Pos: 3, Kind: BreakSoft}}},
		{"a \n", nil},
		{"-5 degrees", []LineBreak{{Pos: 3, Kind: BreakSoft}}},
		{"2024-10-18", nil},
		{"\u65e5\u672c\u8a9e\u3002\u3067\u3059", []LineBreak{
			{Pos: 3, Kind: BreakSoft}, {Pos: 6, Kind: BreakSoft},
			{Pos: 12, Kind: BreakSoft}, {Pos: 15, Kind: BreakSoft},
		}},
		{"a\xffb c", []LineBreak{{Pos: 4, Kind: BreakSoft}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, newXText().LineBreaks(tt.text), "%q", tt.text)
	}
}

func TestIsWhitespace(t *testing.T) {
	u := newXText()
	assert.True(t, u.IsWhitespace(' '))
	assert.True(t, u.IsWhitespace('\t'))
	assert.True(t, u.IsWhitespace('\u200b'))
	assert.False(t, u.IsWhitespace('x'))
}

func TestNormalize(t *testing.T) {
	u := newXText()
	decomposed := "e\u0301"
	assert.Equal(t, "\u00e9", u.Normalize(NFC, decomposed))
	assert.Equal(t, decomposed, u.Normalize(NFD, "\u00e9"))
	assert.Equal(t, "fi", u.Normalize(NFKC, "\ufb01"))
	assert.Equal(t, "fi", u.Normalize(NFKD, "\ufb01"))
}

func TestIsRTL(t *testing.T) {
	assert.False(t, IsRTL(0))
	assert.True(t, IsRTL(1))
	assert.False(t, IsRTL(2))
}
