package font

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func testTypeface(t *testing.T, data []byte, opts ...TypefaceOption) *Typeface {
	t.Helper()
	tf, err := NewTypeface(data, opts...)
	if err != nil {
		t.Fatalf("NewTypeface: %v", err)
	}
	t.Cleanup(func() { _ = tf.Close() })
	return tf
}

func TestNewTypeface_Empty(t *testing.T) {
	_, err := NewTypeface(nil)
	if !errors.Is(err, ErrEmptyFontData) {
		t.Fatalf("NewTypeface(nil) error = %v, want ErrEmptyFontData", err)
	}
}

func TestNewTypeface_Garbage(t *testing.T) {
	_, err := NewTypeface([]byte("definitely not a font"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("NewTypeface(garbage) error = %v, want *ParseError", err)
	}
	if perr.Backend != "ximage" {
		t.Errorf("Backend = %q, want ximage", perr.Backend)
	}
}

func TestNewTypeface_CopiesData(t *testing.T) {
	data := make([]byte, len(goregular.TTF))
	copy(data, goregular.TTF)
	tf := testTypeface(t, data)
	for i := range data {
		data[i] = 0
	}
	if !tf.HasGlyph('A') {
		t.Error("typeface lost its data after caller buffer was cleared")
	}
}

func TestTypeface_Names(t *testing.T) {
	tf := testTypeface(t, goregular.TTF)
	if tf.FamilyName() == "" {
		t.Error("FamilyName() is empty")
	}
	if tf.FullName() == "" {
		t.Error("FullName() is empty")
	}
	if tf.ID() == 0 {
		t.Error("ID() = 0, want non-zero")
	}

	other := testTypeface(t, goregular.TTF, WithFamilyName("Custom"))
	if other.FamilyName() != "Custom" {
		t.Errorf("FamilyName() = %q, want Custom", other.FamilyName())
	}
	if other.ID() == tf.ID() {
		t.Error("two typefaces share an ID")
	}
}

func TestTypeface_Style(t *testing.T) {
	bold := testTypeface(t, gobold.TTF)
	if got := bold.Style().Weight; got != WeightBold {
		t.Errorf("bold weight = %d, want %d", got, WeightBold)
	}
	forced := testTypeface(t, goregular.TTF, WithStyle(ItalicStyle()))
	if got := forced.Style().Slant; got != SlantItalic {
		t.Errorf("forced slant = %v, want Italic", got)
	}
}

func TestGuessStyle(t *testing.T) {
	tests := []struct {
		name string
		want Style
	}{
		{"Go Regular", NormalStyle()},
		{"Go Bold", BoldStyle()},
		{"Go Italic", ItalicStyle()},
		{"Go Bold Italic", Style{Weight: WeightBold, Width: WidthNormal, Slant: SlantItalic}},
		{"Foo SemiBold Condensed", Style{Weight: WeightSemiBold, Width: WidthCondensed}},
		{"Foo Light Oblique", Style{Weight: WeightLight, Width: WidthNormal, Slant: SlantOblique}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guessStyle(tt.name); got != tt.want {
				t.Errorf("guessStyle(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTypeface_UnicodeRanges(t *testing.T) {
	tf := testTypeface(t, goregular.TTF, WithUnicodeRanges(RangeBasicLatin))
	if !tf.HasGlyph('A') {
		t.Error("HasGlyph('A') = false inside allowed range")
	}
	if tf.HasGlyph('Ж') {
		t.Error("HasGlyph('Ж') = true outside allowed range")
	}
	if gid := tf.GlyphIndex('Ж'); gid != 0 {
		t.Errorf("GlyphIndex('Ж') = %d, want 0", gid)
	}
}

func TestTypeface_GoTextFont(t *testing.T) {
	tf := testTypeface(t, goregular.TTF)
	f1, err := tf.GoTextFont()
	if err != nil {
		t.Fatalf("GoTextFont: %v", err)
	}
	f2, _ := tf.GoTextFont()
	if f1 != f2 {
		t.Error("GoTextFont should be parsed once and cached")
	}
}

func TestTypeface_GoTextFontAfterClose(t *testing.T) {
	tf, err := NewTypeface(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	_ = tf.Close()
	if _, err := tf.GoTextFont(); !errors.Is(err, ErrTypefaceClosed) {
		t.Errorf("GoTextFont after Close error = %v, want ErrTypefaceClosed", err)
	}
	if tf.HasGlyph('A') {
		t.Error("closed typeface still reports glyphs")
	}
}

func TestTypeface_CopyPanics(t *testing.T) {
	tf := testTypeface(t, goregular.TTF)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for copied Typeface")
		}
	}()
	copied := *tf //nolint:govet // copying on purpose
	_ = copied.FamilyName()
}

func TestTypeface_ConcurrentHasGlyph(t *testing.T) {
	tf := testTypeface(t, goregular.TTF)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := rune(0x20); r < 0x500; r++ {
				_ = tf.HasGlyph(r)
			}
		}()
	}
	wg.Wait()
	if !tf.HasGlyph('z') {
		t.Error("HasGlyph('z') = false")
	}
}

func TestNewTypefaceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	tf, err := NewTypefaceFromFile(path)
	if err != nil {
		t.Fatalf("NewTypefaceFromFile: %v", err)
	}
	defer tf.Close()
	if !tf.HasGlyph('g') {
		t.Error("HasGlyph('g') = false")
	}

	if _, err := NewTypefaceFromFile(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
}
