package fontmgr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper/font"
)

func typeface(t *testing.T, data []byte, opts ...font.TypefaceOption) *font.Typeface {
	t.Helper()
	tf, err := font.NewTypeface(data, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tf.Close() })
	return tf
}

func TestEmpty(t *testing.T) {
	m := Empty()
	assert.Equal(t, 0, m.CountFamilies())
	assert.Nil(t, m.MatchFamilyStyle("", font.NormalStyle()))
	assert.Nil(t, m.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'a'))
	assert.Nil(t, m.LegacyMakeTypeface("Go", font.NormalStyle()))
}

func TestCollection_Families(t *testing.T) {
	regular := typeface(t, goregular.TTF, font.WithFamilyName("Sans"))
	bold := typeface(t, gobold.TTF, font.WithFamilyName("Sans"))
	mono := typeface(t, gomono.TTF, font.WithFamilyName("Mono"))

	c := NewCollection(regular, bold, mono, nil)
	require.Equal(t, 2, c.CountFamilies())
	assert.Equal(t, "Sans", c.FamilyName(0))
	assert.Equal(t, "Mono", c.FamilyName(1))
	assert.Equal(t, "", c.FamilyName(2))

	assert.Same(t, bold, c.MatchFamilyStyle("sans", font.BoldStyle()))
	assert.Same(t, regular, c.MatchFamilyStyle("Sans", font.NormalStyle()))
	assert.Same(t, mono, c.MatchFamilyStyle("Mono", font.BoldStyle()))
	assert.Nil(t, c.MatchFamilyStyle("Serif", font.NormalStyle()))
	assert.Same(t, regular, c.MatchFamilyStyle("", font.NormalStyle()), "empty name is the default family")
}

func TestCollection_LegacyMakeTypeface(t *testing.T) {
	regular := typeface(t, goregular.TTF, font.WithFamilyName("Sans"))
	c := NewCollection(regular)
	assert.Same(t, regular, c.LegacyMakeTypeface("Unknown", font.NormalStyle()))
	assert.Nil(t, NewCollection().LegacyMakeTypeface("Unknown", font.NormalStyle()))
}

func TestCollection_MatchCharacter(t *testing.T) {
	latin := typeface(t, goregular.TTF, font.WithFamilyName("Latin"), font.WithUnicodeRanges(font.RangeBasicLatin))
	cyrillic := typeface(t, gomono.TTF, font.WithFamilyName("Cyrillic"), font.WithUnicodeRanges(font.RangeCyrillic))
	c := NewCollection(latin, cyrillic)

	assert.Same(t, latin, c.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'a'))
	assert.Same(t, cyrillic, c.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'ж'))
	assert.Same(t, cyrillic, c.MatchFamilyStyleCharacter("Latin", font.NormalStyle(), nil, 'ж'),
		"requested family without coverage falls through to others")
	assert.Nil(t, c.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'א'))

	// Cached lookups stay correct after new fonts arrive.
	hebrew := typeface(t, goregular.TTF, font.WithFamilyName("Hebrew"), font.WithUnicodeRanges(font.RangeHebrew))
	c.Add(hebrew)
	// Go fonts have no Hebrew glyphs, so the range alone cannot help.
	assert.Nil(t, c.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'א'))
}

func TestCollection_MatchCharacterLanguageHint(t *testing.T) {
	a := typeface(t, goregular.TTF, font.WithFamilyName("Noto Sans"))
	b := typeface(t, gomono.TTF, font.WithFamilyName("Noto Sans Cyrillic"))
	c := NewCollection(a, b)

	assert.Same(t, a, c.MatchFamilyStyleCharacter("", font.NormalStyle(), nil, 'ж'))
	assert.Same(t, b, c.MatchFamilyStyleCharacter("", font.NormalStyle(), []string{"ru-RU"}, 'ж'))
}

func TestMatchesLanguage(t *testing.T) {
	tests := []struct {
		family string
		tags   []string
		want   bool
	}{
		{"Noto Sans JP", []string{"ja-JP"}, true},
		{"Noto Sans JP", []string{"ja"}, true},
		{"Noto Naskh Arabic", []string{"ar"}, true},
		{"Noto Sans", []string{"ar"}, false},
		{"Noto Sans", nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchesLanguage(tt.family, tt.tags), "%s %v", tt.family, tt.tags)
	}
}

func TestNewCollectionFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regular.ttf"), goregular.TTF, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "mono.TTF"), gomono.TTF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o600))

	c, err := NewCollectionFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, c.CountFamilies())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.otf"), []byte("junk"), 0o600))
	c, err = NewCollectionFromDir(dir)
	assert.Error(t, err)
	assert.Equal(t, 2, c.CountFamilies(), "valid fonts still load")
}
