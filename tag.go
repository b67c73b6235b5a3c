package shaper

import (
	"fmt"

	"github.com/go-text/typesetting/language"
)

// FourByteTag is a big-endian packed four character tag, used for OpenType
// feature tags and ISO 15924 script tags.
type FourByteTag uint32

// SetFourByteTag packs four bytes into a tag.
func SetFourByteTag(a, b, c, d byte) FourByteTag {
	return FourByteTag(a)<<24 | FourByteTag(b)<<16 | FourByteTag(c)<<8 | FourByteTag(d)
}

// ParseFourByteTag parses a tag of one to four ASCII characters. Short tags
// are padded with spaces.
func ParseFourByteTag(s string) (FourByteTag, error) {
	if len(s) == 0 || len(s) > 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	var b [4]byte
	for i := range b {
		b[i] = ' '
		if i < len(s) {
			if s[i] < 0x20 || s[i] > 0x7e {
				return 0, fmt.Errorf("%w: %q", ErrInvalidTag, s)
			}
			b[i] = s[i]
		}
	}
	return SetFourByteTag(b[0], b[1], b[2], b[3]), nil
}

// String returns the four characters of the tag.
func (t FourByteTag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// scriptTag converts a go-text script to a tag. Both use ISO 15924 codes
// packed big-endian.
func scriptTag(s language.Script) FourByteTag { return FourByteTag(s) }

func (t FourByteTag) script() language.Script {
	if t == 0 {
		return language.Common
	}
	return language.Script(t)
}
