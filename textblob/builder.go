package textblob

import "github.com/gogpu/shaper/font"

// RunBuffer exposes the storage of the run most recently allocated by a
// Builder. The slices alias the run and stay valid until the next
// allocation or Make.
type RunBuffer struct {
	Glyphs   []font.GlyphID
	Xs       []float64
	Points   []Point
	Clusters []uint32
	Text     []byte
}

// Builder assembles a TextBlob run by run. The zero value is ready to use.
// A Builder is not safe for concurrent use.
type Builder struct {
	runs []Run
	// texts[i] is the text buffer of runs[i], copied into the run by Make
	texts [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) alloc(r Run, text []byte) *RunBuffer {
	b.runs = append(b.runs, r)
	b.texts = append(b.texts, text)
	last := &b.runs[len(b.runs)-1]
	return &RunBuffer{
		Glyphs:   last.Glyphs,
		Xs:       last.Xs,
		Points:   last.Points,
		Clusters: last.Clusters,
		Text:     text,
	}
}

// AllocRun allocates a run of count glyphs placed by their advances from
// (x, y).
func (b *Builder) AllocRun(f font.Font, count int, x, y float64) *RunBuffer {
	return b.alloc(Run{
		Font:        f,
		Positioning: PositionDefault,
		Origin:      Point{X: x, Y: y},
		Glyphs:      make([]font.GlyphID, count),
	}, nil)
}

// AllocRunPosH allocates a run of count glyphs with explicit x positions
// on the baseline y.
func (b *Builder) AllocRunPosH(f font.Font, count int, y float64) *RunBuffer {
	return b.alloc(Run{
		Font:        f,
		Positioning: PositionHorizontal,
		Origin:      Point{Y: y},
		Glyphs:      make([]font.GlyphID, count),
		Xs:          make([]float64, count),
	}, nil)
}

// AllocRunPos allocates a run of count fully positioned glyphs.
func (b *Builder) AllocRunPos(f font.Font, count int) *RunBuffer {
	return b.alloc(Run{
		Font:        f,
		Positioning: PositionFull,
		Glyphs:      make([]font.GlyphID, count),
		Points:      make([]Point, count),
	}, nil)
}

// AllocRunTextPos allocates a fully positioned run that also carries
// textSize bytes of UTF-8 text and one cluster per glyph.
func (b *Builder) AllocRunTextPos(f font.Font, count, textSize int) *RunBuffer {
	return b.alloc(Run{
		Font:        f,
		Positioning: PositionFull,
		Glyphs:      make([]font.GlyphID, count),
		Points:      make([]Point, count),
		Clusters:    make([]uint32, count),
	}, make([]byte, textSize))
}

// Empty reports whether no glyphs have been allocated.
func (b *Builder) Empty() bool {
	for i := range b.runs {
		if len(b.runs[i].Glyphs) > 0 {
			return false
		}
	}
	return true
}

// Make returns the blob built so far and resets the builder. It returns
// nil when no glyphs were allocated.
func (b *Builder) Make() *TextBlob {
	runs, texts := b.runs, b.texts
	b.runs, b.texts = nil, nil

	blob := &TextBlob{}
	for i := range runs {
		if len(runs[i].Glyphs) == 0 {
			continue
		}
		r := runs[i]
		r.Text = string(texts[i])
		blob.runs = append(blob.runs, r)
		blob.bounds = blob.bounds.Union(r.Bounds())
	}
	if len(blob.runs) == 0 {
		return nil
	}
	blob.id = blobIDs.Add(1)
	return blob
}
