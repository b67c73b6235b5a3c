package shaper

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
	"github.com/gogpu/shaper/unicodes"
)

// runEnds drains it and returns the end of every run.
func runEnds(t *testing.T, it RunIterator) []int {
	t.Helper()
	var ends []int
	for !it.AtEnd() {
		it.Consume()
		ends = append(ends, it.EndOfCurrentRun())
		if len(ends) > 1000 {
			t.Fatal("iterator does not terminate")
		}
	}
	return ends
}

func checkEnds(t *testing.T, name string, ends []int, n int) {
	t.Helper()
	for i := 1; i < len(ends); i++ {
		if ends[i] <= ends[i-1] {
			t.Errorf("%s: run ends not increasing: %v", name, ends)
		}
	}
	if n > 0 && (len(ends) == 0 || ends[len(ends)-1] != n) {
		t.Errorf("%s: ends %v, want final end %d", name, ends, n)
	}
	if n == 0 && len(ends) != 0 {
		t.Errorf("%s: ends %v for empty text", name, ends)
	}
}

func expectExhaustedPanic(t *testing.T, it RunIterator) {
	t.Helper()
	defer func() {
		if r := recover(); r != ErrIteratorExhausted {
			t.Errorf("Consume at end: recovered %v, want ErrIteratorExhausted", r)
		}
	}()
	it.Consume()
}

func TestTrivialIterators(t *testing.T) {
	f := regularFont(t)
	latn := SetFourByteTag('L', 'a', 't', 'n')

	fonts := NewTrivialFontRunIterator(f, 5)
	bidi := NewTrivialBiDiRunIterator(1, 5)
	script := NewTrivialScriptRunIterator(latn, 5)
	lang := NewTrivialLanguageRunIterator("en", 5)

	for name, it := range map[string]RunIterator{"font": fonts, "bidi": bidi, "script": script, "lang": lang} {
		if it.AtEnd() {
			t.Errorf("%s: AtEnd before Consume", name)
		}
		if got := it.EndOfCurrentRun(); got != 0 {
			t.Errorf("%s: EndOfCurrentRun before Consume = %d, want 0", name, got)
		}
		checkEnds(t, name, runEnds(t, it), 5)
		expectExhaustedPanic(t, it)
	}

	if !fonts.CurrentFont().Equal(f) {
		t.Error("CurrentFont mismatch")
	}
	if bidi.CurrentLevel() != 1 {
		t.Errorf("CurrentLevel = %d, want 1", bidi.CurrentLevel())
	}
	if script.CurrentScript() != latn {
		t.Errorf("CurrentScript = %v, want Latn", script.CurrentScript())
	}
	if lang.CurrentLanguage() != "en" {
		t.Errorf("CurrentLanguage = %q, want en", lang.CurrentLanguage())
	}
}

func TestTrivialIteratorEmpty(t *testing.T) {
	it := NewTrivialBiDiRunIterator(0, 0)
	if !it.AtEnd() {
		t.Error("empty trivial iterator should start at end")
	}
	expectExhaustedPanic(t, it)
}

func TestUnicodeBiDiRunIterator(t *testing.T) {
	text := "abc אבג def"
	it, err := MakeUnicodeBiDiRunIterator(nil, text, unicodes.LevelDefaultLTR)
	if err != nil {
		t.Fatal(err)
	}
	var levels []uint8
	var ends []int
	for !it.AtEnd() {
		it.Consume()
		levels = append(levels, it.CurrentLevel())
		ends = append(ends, it.EndOfCurrentRun())
	}
	checkEnds(t, "bidi", ends, len(text))
	if len(levels) != 3 || levels[0] != 0 || levels[1] != 1 || levels[2] != 0 {
		t.Errorf("levels = %v ends = %v, want [0 1 0]", levels, ends)
	}
	expectExhaustedPanic(t, it)
}

func TestUnicodeBiDiRunIteratorNumbersInRTL(t *testing.T) {
	text := "\u05d0\u05d1\u05d2 123"
	for _, base := range []uint8{0, 1} {
		it, err := MakeUnicodeBiDiRunIterator(nil, text, base)
		if err != nil {
			t.Fatal(err)
		}
		var levels []uint8
		var ends []int
		for !it.AtEnd() {
			it.Consume()
			levels = append(levels, it.CurrentLevel())
			ends = append(ends, it.EndOfCurrentRun())
		}
		checkEnds(t, "bidi", ends, len(text))
		if len(levels) != 2 || levels[0] != 1 || levels[1] != 2 || ends[0] != 7 {
			t.Errorf("base %d: levels = %v ends = %v, want [1 2] ending at 7", base, levels, ends)
		}
	}
}

type failingUnicode struct{ unicodes.Unicode }

func (failingUnicode) BidiRuns(string, uint8) ([]unicodes.BidiRun, error) {
	return nil, unicodes.ErrBackendFailed
}

func TestUnicodeBiDiRunIteratorError(t *testing.T) {
	if it, err := MakeUnicodeBiDiRunIterator(failingUnicode{}, "abc", 0); err == nil || it != nil {
		t.Errorf("MakeUnicodeBiDiRunIterator = %v, %v, want error", it, err)
	}
}

func TestMakeBiDiRunIteratorTrivialFallback(t *testing.T) {
	builtin, err := unicodes.MakeDefault()
	if err != nil {
		t.Fatal(err)
	}
	unicodes.Unregister(unicodes.DefaultBackend)
	t.Cleanup(func() {
		unicodes.Register(unicodes.DefaultBackend, func() (unicodes.Unicode, error) { return builtin, nil })
	})

	it := MakeBiDiRunIterator("abc", unicodes.LevelDefaultRTL)
	trivial, ok := it.(*TrivialBiDiRunIterator)
	if !ok {
		t.Fatalf("got %T, want *TrivialBiDiRunIterator", it)
	}
	trivial.Consume()
	if trivial.CurrentLevel() != 1 || trivial.EndOfCurrentRun() != 3 {
		t.Errorf("level %d end %d, want 1 and 3", trivial.CurrentLevel(), trivial.EndOfCurrentRun())
	}

	script := MakeScriptRunIterator("abc", SetFourByteTag('Z', 'y', 'y', 'y'))
	if _, ok := script.(*TrivialScriptRunIterator); !ok {
		t.Errorf("script iterator %T, want trivial fallback", script)
	}

	if s := Make(nil); s != MakePrimitive() {
		t.Errorf("Make without a backend = %T, want the primitive shaper", s)
	}
}

func TestScriptRunIterator(t *testing.T) {
	tests := []struct {
		text    string
		scripts []language.Script
		ends    []int
	}{
		{"abc", []language.Script{language.Latin}, []int{3}},
		{"abc αβγ", []language.Script{language.Latin, language.Greek}, []int{4, 10}},
		{"123 abc", []language.Script{language.Latin}, []int{7}},
		{"123", []language.Script{language.Common}, []int{3}},
		// The closing bracket returns to the script of the opening one.
		{"a(α)", []language.Script{language.Latin, language.Greek, language.Latin}, []int{2, 4, 5}},
	}
	for _, tt := range tests {
		it, err := MakeHbUnicodeScriptRunIterator(nil, tt.text)
		if err != nil {
			t.Fatal(err)
		}
		var scripts []language.Script
		var ends []int
		for !it.AtEnd() {
			it.Consume()
			scripts = append(scripts, it.CurrentScript().script())
			ends = append(ends, it.EndOfCurrentRun())
		}
		if len(scripts) != len(tt.scripts) {
			t.Errorf("%q: scripts %v ends %v, want %v %v", tt.text, scripts, ends, tt.scripts, tt.ends)
			continue
		}
		for i := range scripts {
			if scripts[i] != tt.scripts[i] || ends[i] != tt.ends[i] {
				t.Errorf("%q: run %d = %v..%d, want %v..%d", tt.text, i, scripts[i], ends[i], tt.scripts[i], tt.ends[i])
			}
		}
	}
}

func TestFontMgrRunIteratorFallback(t *testing.T) {
	latinOnly := loadTypeface(t, goregular.TTF, font.WithUnicodeRanges(font.RangeBasicLatin))
	mono := loadTypeface(t, gomono.TTF)
	mgr := fontmgr.NewCollection(latinOnly, mono)

	text := "aé b"
	it := MakeFontMgrRunIterator(text, font.NewFont(latinOnly, 12), mgr)
	var typefaces []*font.Typeface
	var ends []int
	for !it.AtEnd() {
		it.Consume()
		typefaces = append(typefaces, it.CurrentFont().Typeface)
		ends = append(ends, it.EndOfCurrentRun())
		if it.CurrentFont().Size != 12 {
			t.Errorf("fallback font size = %v, want 12", it.CurrentFont().Size)
		}
	}
	checkEnds(t, "font", ends, len(text))

	// "a" | "é " (space stays with the fallback) | "b"
	if len(typefaces) != 3 {
		t.Fatalf("runs %v ends %v, want 3", typefaces, ends)
	}
	if typefaces[0] != latinOnly || typefaces[1] != mono || typefaces[2] != latinOnly {
		t.Errorf("typefaces = %v", typefaces)
	}
	if ends[0] != 1 || ends[1] != 4 {
		t.Errorf("ends = %v, want [1 4 5]", ends)
	}
	expectExhaustedPanic(t, it)
}

func TestFontMgrRunIteratorNoFallback(t *testing.T) {
	latinOnly := loadTypeface(t, goregular.TTF, font.WithUnicodeRanges(font.RangeBasicLatin))
	text := "aéb"
	it := MakeFontMgrRunIterator(text, font.NewFont(latinOnly, 12), nil)
	ends := runEnds(t, it)
	if len(ends) != 1 || ends[0] != len(text) {
		t.Errorf("ends = %v, want one run", ends)
	}
	if it.CurrentFont().Typeface != latinOnly {
		t.Error("uncovered characters should stay with the requested font")
	}
}

func TestStdLanguageRunIterator(t *testing.T) {
	it := MakeStdLanguageRunIterator("hello")
	checkEnds(t, "lang", runEnds(t, it), 5)
	if it.CurrentLanguage() == "" {
		t.Error("CurrentLanguage should never be empty")
	}
}

func TestProcessLanguage(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{nil, "und"},
		{map[string]string{"LANG": "C"}, "und"},
		{map[string]string{"LANG": "POSIX"}, "und"},
		{map[string]string{"LANG": "en_US.UTF-8"}, "en-US"},
		{map[string]string{"LANG": "de_DE@euro"}, "de-DE"},
		{map[string]string{"LANG": "en_US", "LC_ALL": "pt_BR.UTF-8"}, "pt-BR"},
		{map[string]string{"LANG": "en_US", "LC_MESSAGES": "fr"}, "fr"},
		{map[string]string{"LANG": "!!"}, "und"},
	}
	for _, tt := range tests {
		got := processLanguage(func(k string) string { return tt.env[k] })
		if got != tt.want {
			t.Errorf("processLanguage(%v) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestSegmentsIntersectIterators(t *testing.T) {
	text := "aaaabbbb"
	f := font.Font{Size: 1}
	its := iterators{
		fonts:  NewTrivialFontRunIterator(f, len(text)),
		bidi:   &UnicodeBiDiRunIterator{spanIterator: newSpanIterator([]span[uint8]{{end: 3, value: 0}, {end: 8, value: 1}})},
		script: NewTrivialScriptRunIterator(0, len(text)),
		lang:   &spanLang{spanIterator: newSpanIterator([]span[string]{{end: 5, value: "en"}, {end: 8, value: "de"}})},
	}
	segs := its.segments(text, []Feature{{Start: 6, End: FeatureGlobalEnd}})
	want := []struct {
		rng   Range
		level uint8
		lang  string
	}{
		{Range{0, 3}, 0, "en"},
		{Range{3, 5}, 1, "en"},
		{Range{5, 6}, 1, "de"},
		{Range{6, 8}, 1, "de"},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %+v", segs)
	}
	for i, w := range want {
		if segs[i].Range != w.rng || segs[i].level != w.level || segs[i].language != w.lang {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], w)
		}
	}
}

type spanLang struct{ spanIterator[string] }

func (s *spanLang) CurrentLanguage() string { return s.current() }
