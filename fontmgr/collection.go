package fontmgr

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/internal/cache"
)

// charCacheLimit bounds the per-collection fallback cache.
const charCacheLimit = 4096

// Collection is an in-memory FontMgr over an explicit set of typefaces.
// Families are kept in insertion order; the first family is the default.
type Collection struct {
	mu       sync.RWMutex
	families []*family
	byName   map[string]*family

	// chars memoizes fallback lookups made without language hints.
	chars *cache.Cache[charKey, *font.Typeface]
}

type family struct {
	name      string
	typefaces []*font.Typeface
}

type charKey struct {
	family string
	style  font.Style
	r      rune
}

// NewCollection returns a Collection holding typefaces.
func NewCollection(typefaces ...*font.Typeface) *Collection {
	c := &Collection{
		byName: make(map[string]*family),
		chars:  cache.New[charKey, *font.Typeface](charCacheLimit),
	}
	for _, tf := range typefaces {
		c.Add(tf)
	}
	return c
}

// NewCollectionFromDir loads every .ttf and .otf file below dir.
// Files that fail to parse are skipped; the first such error is returned
// together with the collection of fonts that did load.
func NewCollectionFromDir(dir string, opts ...font.TypefaceOption) (*Collection, error) {
	c := NewCollection()
	var firstErr error
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
		default:
			return nil
		}
		tf, err := font.NewTypefaceFromFile(path, opts...)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fontmgr: %s: %w", path, err)
			}
			return nil
		}
		c.Add(tf)
		return nil
	})
	if err != nil {
		return c, fmt.Errorf("fontmgr: walking %s: %w", dir, err)
	}
	return c, firstErr
}

// Add registers a typeface under its family name. Nil is ignored.
func (c *Collection) Add(tf *font.Typeface) {
	if tf == nil {
		return
	}
	c.mu.Lock()
	key := foldName(tf.FamilyName())
	fam, ok := c.byName[key]
	if !ok {
		fam = &family{name: tf.FamilyName()}
		c.byName[key] = fam
		c.families = append(c.families, fam)
	}
	fam.typefaces = append(fam.typefaces, tf)
	c.mu.Unlock()

	// The cache lock is taken outside c.mu: lookups hold the cache lock
	// while acquiring c.mu.
	c.chars.Clear()
}

// CountFamilies implements FontMgr.
func (c *Collection) CountFamilies() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.families)
}

// FamilyName implements FontMgr.
func (c *Collection) FamilyName(i int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.families) {
		return ""
	}
	return c.families[i].name
}

// MatchFamilyStyle implements FontMgr.
func (c *Collection) MatchFamilyStyle(name string, style font.Style) *font.Typeface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fam := c.lookup(name)
	if fam == nil {
		return nil
	}
	return closestStyle(fam.typefaces, style)
}

// MatchFamilyStyleCharacter implements FontMgr.
func (c *Collection) MatchFamilyStyleCharacter(name string, style font.Style, bcp47 []string, r rune) *font.Typeface {
	key := charKey{family: foldName(name), style: style, r: r}
	if len(bcp47) == 0 {
		return c.chars.GetOrCreate(key, func() *font.Typeface {
			return c.matchCharacter(name, style, nil, r)
		})
	}
	return c.matchCharacter(name, style, bcp47, r)
}

// LegacyMakeTypeface implements FontMgr.
func (c *Collection) LegacyMakeTypeface(name string, style font.Style) *font.Typeface {
	if tf := c.MatchFamilyStyle(name, style); tf != nil {
		return tf
	}
	return c.MatchFamilyStyle("", style)
}

// matchCharacter scans families in preference order: the requested family,
// families whose name mentions a requested language, then all others.
func (c *Collection) matchCharacter(name string, style font.Style, bcp47 []string, r rune) *font.Typeface {
	c.mu.RLock()
	defer c.mu.RUnlock()

	order := make([]*family, 0, len(c.families))
	if fam := c.lookup(name); fam != nil && name != "" {
		order = append(order, fam)
	}
	for _, fam := range c.families {
		if matchesLanguage(fam.name, bcp47) && !slices.Contains(order, fam) {
			order = append(order, fam)
		}
	}
	for _, fam := range c.families {
		if !slices.Contains(order, fam) {
			order = append(order, fam)
		}
	}

	for _, fam := range order {
		covering := make([]*font.Typeface, 0, len(fam.typefaces))
		for _, tf := range fam.typefaces {
			if tf.HasGlyph(r) {
				covering = append(covering, tf)
			}
		}
		if tf := closestStyle(covering, style); tf != nil {
			return tf
		}
	}
	return nil
}

// lookup returns the family for name; "" is the default family.
// Caller must hold c.mu.
func (c *Collection) lookup(name string) *family {
	if name == "" {
		if len(c.families) == 0 {
			return nil
		}
		return c.families[0]
	}
	return c.byName[foldName(name)]
}

// closestStyle returns the typeface with the smallest style distance.
func closestStyle(typefaces []*font.Typeface, style font.Style) *font.Typeface {
	var best *font.Typeface
	bestDist := 0
	for _, tf := range typefaces {
		d := tf.Style().Distance(style)
		if best == nil || d < bestDist {
			best, bestDist = tf, d
		}
	}
	return best
}

// matchesLanguage reports whether a family name carries a hint for one of
// the languages, e.g. "Noto Sans JP" for "ja-JP" or "Noto Naskh Arabic" for "ar".
func matchesLanguage(familyName string, bcp47 []string) bool {
	if len(bcp47) == 0 {
		return false
	}
	words := strings.Fields(strings.ToLower(familyName))
	for _, tag := range bcp47 {
		base, region, _ := strings.Cut(strings.ToLower(tag), "-")
		for _, w := range words {
			if w == base || (region != "" && w == region) || languageNames[base] == w {
				return true
			}
		}
	}
	return false
}

// languageNames maps language subtags to the script or language words that
// font families commonly carry.
var languageNames = map[string]string{
	"ar": "arabic",
	"he": "hebrew",
	"ja": "jp",
	"ko": "kr",
	"zh": "sc",
	"hi": "devanagari",
	"th": "thai",
	"el": "greek",
	"ru": "cyrillic",
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
