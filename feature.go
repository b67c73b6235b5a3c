package shaper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/shaping"
)

// FeatureGlobalEnd is the End of a feature that applies to the rest of the
// text.
const FeatureGlobalEnd = math.MaxInt

// Feature enables or configures an OpenType feature on the byte range
// [Start, End) of the shaped text.
type Feature struct {
	Tag   FourByteTag
	Value uint32
	Start int
	End   int
}

// ParseFeature parses the feature syntax of the command line tool:
//
//	kern        enable kern everywhere
//	-liga       disable liga
//	aalt=2      set aalt to 2
//	smcp[3:7]   enable smcp on bytes 3 to 7
func ParseFeature(s string) (Feature, error) {
	f := Feature{Value: 1, End: FeatureGlobalEnd}
	rest := s
	switch {
	case strings.HasPrefix(rest, "-"):
		f.Value = 0
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}

	if i := strings.IndexByte(rest, '['); i >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return Feature{}, fmt.Errorf("%w: %q", ErrInvalidFeature, s)
		}
		lo, hi, ok := strings.Cut(rest[i+1:len(rest)-1], ":")
		if !ok {
			return Feature{}, fmt.Errorf("%w: %q", ErrInvalidFeature, s)
		}
		var err error
		if f.Start, err = parseBound(lo, 0); err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %w", ErrInvalidFeature, s, err)
		}
		if f.End, err = parseBound(hi, FeatureGlobalEnd); err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %w", ErrInvalidFeature, s, err)
		}
		rest = rest[:i]
	}

	if name, value, ok := strings.Cut(rest, "="); ok {
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %w", ErrInvalidFeature, s, err)
		}
		f.Value = uint32(v)
		rest = name
	}

	tag, err := ParseFourByteTag(rest)
	if err != nil {
		return Feature{}, fmt.Errorf("%w: %q: %w", ErrInvalidFeature, s, err)
	}
	f.Tag = tag
	if f.End < f.Start {
		return Feature{}, fmt.Errorf("%w: %q: empty range", ErrInvalidFeature, s)
	}
	return f, nil
}

func parseBound(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("bad bound %q", s)
	}
	return v, nil
}

// String formats f in the syntax accepted by ParseFeature.
func (f Feature) String() string {
	var b strings.Builder
	if f.Value == 0 {
		b.WriteByte('-')
	}
	b.WriteString(strings.TrimRight(f.Tag.String(), " "))
	if f.Value > 1 {
		fmt.Fprintf(&b, "=%d", f.Value)
	}
	if f.Start != 0 || f.End != FeatureGlobalEnd {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(f.Start))
		b.WriteByte(':')
		if f.End != FeatureGlobalEnd {
			b.WriteString(strconv.Itoa(f.End))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// covers reports whether the feature applies to the whole of [start, end).
func (f Feature) covers(start, end int) bool {
	return f.Start <= start && end <= f.End
}

// activeFeatures returns the go-text features applying to [start, end).
// Runs are split at feature boundaries, so a feature either covers the
// whole range or none of it.
func activeFeatures(features []Feature, start, end int) []shaping.FontFeature {
	var out []shaping.FontFeature
	for _, f := range features {
		if f.covers(start, end) {
			out = append(out, shaping.FontFeature{Tag: ot.Tag(f.Tag), Value: f.Value})
		}
	}
	return out
}
