package shaper

import (
	"fmt"

	"github.com/gogpu/shaper/unicodes"
)

// UnicodeBiDiRunIterator yields the embedding levels resolved by a Unicode
// backend.
type UnicodeBiDiRunIterator struct {
	spanIterator[uint8]
}

// MakeUnicodeBiDiRunIterator resolves the levels of text with u. level is
// the paragraph level: 0, 1, unicodes.LevelDefaultLTR or
// unicodes.LevelDefaultRTL. A nil u selects the default backend.
func MakeUnicodeBiDiRunIterator(u unicodes.Unicode, text string, level uint8) (*UnicodeBiDiRunIterator, error) {
	if u == nil {
		var err error
		if u, err = unicodes.MakeDefault(); err != nil {
			return nil, err
		}
	}
	runs, err := u.BidiRuns(text, level)
	if err != nil {
		return nil, fmt.Errorf("shaper: bidi runs: %w", err)
	}
	spans := make([]span[uint8], len(runs))
	for i, r := range runs {
		spans[i] = span[uint8]{end: r.End, value: r.Level}
	}
	return &UnicodeBiDiRunIterator{spanIterator: newSpanIterator(spans)}, nil
}

// CurrentLevel returns the embedding level of the current run.
func (it *UnicodeBiDiRunIterator) CurrentLevel() uint8 { return it.current() }

// MakeBiDiRunIterator returns a Unicode backed iterator, or a trivial one at
// level when no backend can be constructed.
func MakeBiDiRunIterator(text string, level uint8) BiDiRunIterator {
	it, err := MakeUnicodeBiDiRunIterator(nil, text, level)
	if err != nil {
		Logger().Warn("shaper: bidi iterator falls back to a single run", "err", err)
		return NewTrivialBiDiRunIterator(trivialLevel(level), len(text))
	}
	return it
}

// trivialLevel maps the auto-detect levels to a concrete one.
func trivialLevel(level uint8) uint8 {
	switch level {
	case unicodes.LevelDefaultLTR:
		return 0
	case unicodes.LevelDefaultRTL:
		return 1
	}
	return level
}
