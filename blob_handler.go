package shaper

import "github.com/gogpu/shaper/textblob"

// TextBlobBuilderRunHandler is a RunHandler that stacks the shaped lines
// into a text blob, starting at an offset. Every run carries its text and
// clusters relative to that text.
type TextBlobBuilderRunHandler struct {
	builder textblob.Builder
	text    string
	offset  Point
	pen     Point

	maxAscent  float64
	maxDescent float64
	maxLeading float64

	clusters      []uint32
	clusterOffset int
}

// NewTextBlobBuilderRunHandler returns a handler for shaping text with its
// first line's top at offset.
func NewTextBlobBuilderRunHandler(text string, offset Point) *TextBlobBuilderRunHandler {
	return &TextBlobBuilderRunHandler{text: text, offset: offset}
}

// BeginLine implements RunHandler.
func (h *TextBlobBuilderRunHandler) BeginLine() {
	h.pen = h.offset
	h.maxAscent, h.maxDescent, h.maxLeading = 0, 0, 0
}

// RunInfo implements RunHandler.
func (h *TextBlobBuilderRunHandler) RunInfo(info *RunInfo) {
	m := info.Font.Metrics()
	h.maxAscent = max(h.maxAscent, m.Ascent)
	h.maxDescent = max(h.maxDescent, m.Descent)
	h.maxLeading = max(h.maxLeading, m.Leading)
}

// CommitRunInfo implements RunHandler. It moves the pen to the baseline.
func (h *TextBlobBuilderRunHandler) CommitRunInfo() {
	h.pen.Y += h.maxAscent
}

// RunBuffer implements RunHandler.
func (h *TextBlobBuilderRunHandler) RunBuffer(info *RunInfo) Buffer {
	h.clusters = nil
	if info.GlyphCount == 0 {
		return Buffer{}
	}
	start := min(max(info.Utf8Range.Start, 0), len(h.text))
	end := min(max(info.Utf8Range.End, start), len(h.text))

	buf := h.builder.AllocRunTextPos(info.Font, info.GlyphCount, end-start)
	copy(buf.Text, h.text[start:end])
	h.clusters = buf.Clusters
	h.clusterOffset = info.Utf8Range.Start
	return Buffer{
		Glyphs:    buf.Glyphs,
		Positions: buf.Points,
		Clusters:  buf.Clusters,
		Point:     h.pen,
	}
}

// CommitRunBuffer implements RunHandler.
func (h *TextBlobBuilderRunHandler) CommitRunBuffer(info *RunInfo) {
	for i := range h.clusters {
		h.clusters[i] -= uint32(h.clusterOffset)
	}
	h.clusters = nil
	h.pen = h.pen.Add(info.Advance)
}

// CommitLine implements RunHandler.
func (h *TextBlobBuilderRunHandler) CommitLine() {
	h.offset.Y += h.maxAscent + h.maxDescent + h.maxLeading
}

// MakeBlob returns the shaped text and resets the handler's builder. It
// returns nil if no glyphs were shaped since the last call.
func (h *TextBlobBuilderRunHandler) MakeBlob() *textblob.TextBlob {
	return h.builder.Make()
}

// EndPoint returns the top left of the line after the last committed one.
func (h *TextBlobBuilderRunHandler) EndPoint() Point {
	return h.offset
}
