// Package textblob holds immutable runs of positioned glyphs produced by
// shaping, and the Builder that assembles them.
package textblob

import (
	"slices"
	"sync/atomic"

	"github.com/gogpu/shaper/font"
)

// Positioning describes how glyph positions of a run are stored.
type Positioning uint8

const (
	// PositionDefault stores only the run origin; glyphs are placed by
	// their advances.
	PositionDefault Positioning = iota
	// PositionHorizontal stores one x per glyph and a shared y.
	PositionHorizontal
	// PositionFull stores one point per glyph.
	PositionFull
)

// String returns the positioning name.
func (p Positioning) String() string {
	switch p {
	case PositionDefault:
		return "Default"
	case PositionHorizontal:
		return "Horizontal"
	case PositionFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// Run is a sequence of glyphs sharing one font.
type Run struct {
	Font        font.Font
	Positioning Positioning

	// Origin is the run origin for PositionDefault. For PositionHorizontal
	// only Origin.Y is used.
	Origin Point

	Glyphs []font.GlyphID

	// Xs holds glyph x positions for PositionHorizontal.
	Xs []float64

	// Points holds glyph positions for PositionFull.
	Points []Point

	// Clusters and Text are set for text-bearing runs. Clusters are byte
	// offsets into Text.
	Clusters []uint32
	Text     string
}

// GlyphCount returns the number of glyphs in the run.
func (r *Run) GlyphCount() int { return len(r.Glyphs) }

// GlyphPosition returns the origin of glyph i.
func (r *Run) GlyphPosition(i int) Point {
	switch r.Positioning {
	case PositionFull:
		return r.Points[i]
	case PositionHorizontal:
		return Point{X: r.Xs[i], Y: r.Origin.Y}
	default:
		x := r.Origin.X
		for _, g := range r.Glyphs[:i] {
			x += r.Font.GlyphAdvance(g)
		}
		return Point{X: x, Y: r.Origin.Y}
	}
}

// Bounds returns the union of the glyph bounds at their positions.
func (r *Run) Bounds() font.Rect {
	var b font.Rect
	pen := r.Origin
	for i, g := range r.Glyphs {
		pos := pen
		if r.Positioning != PositionDefault {
			pos = r.GlyphPosition(i)
		}
		b = b.Union(r.Font.GlyphBounds(g).Offset(pos.X, pos.Y))
		pen.X += r.Font.GlyphAdvance(g)
	}
	return b
}

var blobIDs atomic.Uint32

// TextBlob is an immutable list of glyph runs.
type TextBlob struct {
	id     uint32
	runs   []Run
	bounds font.Rect
}

// ID returns a process-unique identifier of the blob.
func (b *TextBlob) ID() uint32 { return b.id }

// RunCount returns the number of runs.
func (b *TextBlob) RunCount() int { return len(b.runs) }

// Run returns run i. The returned value shares storage with the blob and
// must not be modified.
func (b *TextBlob) Run(i int) Run { return b.runs[i] }

// Runs returns a copy of the run list.
func (b *TextBlob) Runs() []Run { return slices.Clone(b.runs) }

// GlyphCount returns the total number of glyphs.
func (b *TextBlob) GlyphCount() int {
	n := 0
	for i := range b.runs {
		n += len(b.runs[i].Glyphs)
	}
	return n
}

// Bounds returns the conservative bounds of all runs.
func (b *TextBlob) Bounds() font.Rect { return b.bounds }

// Text returns the concatenated text of text-bearing runs.
func (b *TextBlob) Text() string {
	var s []byte
	for i := range b.runs {
		s = append(s, b.runs[i].Text...)
	}
	return string(s)
}
