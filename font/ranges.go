package font

// UnicodeRange represents a contiguous, inclusive range of code points.
type UnicodeRange struct {
	Start rune
	End   rune
}

// Contains reports whether the rune is in the range.
func (ur UnicodeRange) Contains(r rune) bool {
	return r >= ur.Start && r <= ur.End
}

// Common Unicode ranges for restricting typeface coverage.
var (
	RangeBasicLatin = UnicodeRange{0x0000, 0x007F}
	RangeLatin1Sup  = UnicodeRange{0x0080, 0x00FF}
	RangeLatinExtA  = UnicodeRange{0x0100, 0x017F}
	RangeLatinExtB  = UnicodeRange{0x0180, 0x024F}
	RangeGreek      = UnicodeRange{0x0370, 0x03FF}
	RangeCyrillic   = UnicodeRange{0x0400, 0x04FF}
	RangeHebrew     = UnicodeRange{0x0590, 0x05FF}
	RangeArabic     = UnicodeRange{0x0600, 0x06FF}
	RangeHiragana   = UnicodeRange{0x3040, 0x309F}
	RangeKatakana   = UnicodeRange{0x30A0, 0x30FF}
	RangeCJKUnified = UnicodeRange{0x4E00, 0x9FFF}
	RangeHangul     = UnicodeRange{0xAC00, 0xD7AF}
	RangeEmoji      = UnicodeRange{0x1F600, 0x1F64F}
)

// inRanges reports whether r is allowed; no ranges means everything is.
func inRanges(ranges []UnicodeRange, r rune) bool {
	if len(ranges) == 0 {
		return true
	}
	for _, ur := range ranges {
		if ur.Contains(r) {
			return true
		}
	}
	return false
}
