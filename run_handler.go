package shaper

import "github.com/gogpu/shaper/font"

// Range is a byte range [Start, End) of the shaped text.
type Range struct {
	Start, End int
}

// Size returns the number of bytes in the range.
func (r Range) Size() int { return r.End - r.Start }

// RunInfo describes one shaped run.
type RunInfo struct {
	Font      font.Font
	BidiLevel uint8
	Script    FourByteTag
	Language  string
	// Advance is the pen movement over the whole run.
	Advance    Point
	GlyphCount int
	Utf8Range  Range
}

// Buffer is the storage a RunHandler supplies for a run. Glyphs and
// Positions receive GlyphCount entries. When Offsets is nil the glyph
// offsets are folded into Positions. Clusters, if set, receive the byte
// offset in the shaped text of each glyph's cluster.
type Buffer struct {
	Glyphs    []font.GlyphID
	Positions []Point
	Offsets   []Point
	Clusters  []uint32
	// Point is the pen position of the first glyph.
	Point Point
}

// RunHandler receives the output of a Shaper. See the package
// documentation for the order of calls.
type RunHandler interface {
	BeginLine()
	RunInfo(info *RunInfo)
	CommitRunInfo()
	RunBuffer(info *RunInfo) Buffer
	CommitRunBuffer(info *RunInfo)
	CommitLine()
}
