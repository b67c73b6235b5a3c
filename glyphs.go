package shaper

import (
	"slices"
	"unicode/utf8"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/unicodes"
)

// glyph is one shaped glyph. cluster is a byte offset into the caller's
// text.
type glyph struct {
	id      font.GlyphID
	cluster int
	advance Point
	offset  Point
}

// shapedRun is a segment with its glyphs in visual order.
type shapedRun struct {
	segment
	glyphs  []glyph
	advance Point
}

// info returns the RunInfo reported to handlers.
func (r *shapedRun) info() RunInfo {
	return RunInfo{
		Font:       r.font,
		BidiLevel:  r.level,
		Script:     r.script,
		Language:   r.language,
		Advance:    r.advance,
		GlyphCount: len(r.glyphs),
		Utf8Range:  r.Range,
	}
}

// fill writes the glyphs into buf, skipping entries the handler did not
// provide room for.
func (r *shapedRun) fill(buf Buffer) {
	pen := buf.Point
	for i, g := range r.glyphs {
		if i < len(buf.Glyphs) {
			buf.Glyphs[i] = g.id
		}
		pos := pen
		if buf.Offsets == nil {
			pos = pos.Add(g.offset)
		} else if i < len(buf.Offsets) {
			buf.Offsets[i] = g.offset
		}
		if i < len(buf.Positions) {
			buf.Positions[i] = pos
		}
		if i < len(buf.Clusters) {
			buf.Clusters[i] = uint32(g.cluster)
		}
		pen = pen.Add(g.advance)
	}
}

// slice returns the part of r whose clusters lie in [start, end).
func (r *shapedRun) slice(start, end int) shapedRun {
	out := shapedRun{segment: r.segment}
	out.Start, out.End = max(r.Start, start), min(r.End, end)
	for _, g := range r.glyphs {
		if g.cluster >= start && g.cluster < end {
			out.glyphs = append(out.glyphs, g)
			out.advance = out.advance.Add(g.advance)
		}
	}
	return out
}

// paragraph is the shaping context: text decoded to runes with the byte
// offset of every rune.
type paragraph struct {
	runes []rune
	// byteOf[i] is the byte offset of runes[i]; the extra last entry is the
	// text length.
	byteOf []int
	// base is the byte offset of the paragraph in the caller's text.
	base int
}

func newParagraph(text string, base int) *paragraph {
	p := &paragraph{base: base}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		p.runes = append(p.runes, r)
		p.byteOf = append(p.byteOf, i)
		i += size
	}
	p.byteOf = append(p.byteOf, len(text))
	return p
}

// runeIndex returns the index of the rune starting at byte offset off of
// the caller's text.
func (p *paragraph) runeIndex(off int) int {
	i, _ := slices.BinarySearch(p.byteOf, off-p.base)
	return i
}

// byteOffset returns the caller's byte offset of rune i.
func (p *paragraph) byteOffset(i int) int {
	i = min(max(i, 0), len(p.byteOf)-1)
	return p.base + p.byteOf[i]
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// mapDirection converts an embedding level to a go-text direction.
func mapDirection(level uint8) di.Direction {
	if unicodes.IsRTL(level) {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func fontSize(f font.Font) float64 {
	if f.Size <= 0 {
		return font.DefaultSize
	}
	return f.Size
}

func scaleX(f font.Font) float64 {
	if f.ScaleX == 0 {
		return 1
	}
	return f.ScaleX
}

// shapeSegment shapes seg, which must lie inside p, with HarfBuzz. Fonts
// go-text cannot load are shaped one glyph per rune.
func (s *hbShaper) shapeSegment(p *paragraph, seg segment, features []Feature) shapedRun {
	var gf *gotext.Font
	if seg.font.Typeface != nil {
		var err error
		if gf, err = seg.font.Typeface.GoTextFont(); err != nil {
			Logger().Debug("shaper: typeface not loadable by go-text", "typeface", seg.font.Typeface, "err", err)
		}
	}
	if gf == nil {
		return shapeNominal(p, seg)
	}

	lang := seg.language
	if lang == "" {
		lang = undetermined
	}
	input := shaping.Input{
		Text:         p.runes,
		RunStart:     p.runeIndex(seg.Start),
		RunEnd:       p.runeIndex(seg.End),
		Direction:    mapDirection(seg.level),
		Face:         gotext.NewFace(gf),
		Size:         floatToFixed(fontSize(seg.font)),
		Script:       seg.script.script(),
		Language:     language.NewLanguage(lang),
		FontFeatures: activeFeatures(features, seg.Start, seg.End),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	sx := scaleX(seg.font)
	run := shapedRun{segment: seg, glyphs: make([]glyph, 0, len(output.Glyphs))}
	for _, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance) * sx
		run.glyphs = append(run.glyphs, glyph{
			id:      font.GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph IDs of sfnt fonts fit in 16 bits
			cluster: p.byteOffset(g.TextIndex()),
			advance: Point{X: adv},
			// go-text offsets point up; ours point down.
			offset: Point{X: fixedToFloat(g.XOffset) * sx, Y: -fixedToFloat(g.YOffset)},
		})
		run.advance.X += adv
	}
	return run
}

// shapeNominal maps every rune of seg to its nominal glyph, in visual
// order.
func shapeNominal(p *paragraph, seg segment) shapedRun {
	run := shapedRun{segment: seg}
	for i := p.runeIndex(seg.Start); i < p.runeIndex(seg.End); i++ {
		gid := seg.font.UnicharToGlyph(p.runes[i])
		adv := seg.font.GlyphAdvance(gid)
		run.glyphs = append(run.glyphs, glyph{
			id:      gid,
			cluster: p.byteOffset(i),
			advance: Point{X: adv},
		})
		run.advance.X += adv
	}
	if unicodes.IsRTL(seg.level) {
		slices.Reverse(run.glyphs)
	}
	return run
}
