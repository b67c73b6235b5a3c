// Package fontmgr provides font managers: the provider the shaper asks for
// typefaces by family and style, and for fallback typefaces covering a
// specific character.
//
// A FontMgr is shared across shapers and iterators. All implementations in
// this package are safe for concurrent use.
package fontmgr

import (
	"github.com/gogpu/shaper/font"
)

// FontMgr matches typefaces by family, style and character coverage.
type FontMgr interface {
	// CountFamilies returns the number of font families known to the manager.
	CountFamilies() int

	// FamilyName returns the name of family i, or "" if out of range.
	FamilyName(i int) string

	// MatchFamilyStyle returns the closest style of family, or nil if the
	// family is unknown. An empty family name matches the default family.
	MatchFamilyStyle(family string, style font.Style) *font.Typeface

	// MatchFamilyStyleCharacter returns a typeface that covers r, preferring
	// family, then the closest style, then typefaces whose family names one
	// of the BCP 47 languages. It returns nil if no typeface covers r.
	MatchFamilyStyleCharacter(family string, style font.Style, bcp47 []string, r rune) *font.Typeface

	// LegacyMakeTypeface returns a typeface for family and style, falling
	// back to the default family. It returns nil only for an empty manager.
	LegacyMakeTypeface(family string, style font.Style) *font.Typeface
}

// emptyMgr is a FontMgr that knows no fonts.
type emptyMgr struct{}

// Empty returns a FontMgr without fonts. Every match returns nil, so the
// shaper keeps using the caller's font for every character.
func Empty() FontMgr { return emptyMgr{} }

func (emptyMgr) CountFamilies() int    { return 0 }
func (emptyMgr) FamilyName(int) string { return "" }

func (emptyMgr) MatchFamilyStyle(string, font.Style) *font.Typeface {
	return nil
}

func (emptyMgr) MatchFamilyStyleCharacter(string, font.Style, []string, rune) *font.Typeface {
	return nil
}

func (emptyMgr) LegacyMakeTypeface(string, font.Style) *font.Typeface {
	return nil
}
