package shaper

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
	"github.com/gogpu/shaper/unicodes"
)

// wrapMode selects how a HarfBuzz shaper turns shaped runs into lines.
type wrapMode uint8

const (
	modeShapeThenWrap wrapMode = iota
	modeShaperDrivenWrapper
	modeShapeDontWrapOrReorder
)

func (m wrapMode) String() string {
	switch m {
	case modeShapeThenWrap:
		return "ShapeThenWrap"
	case modeShaperDrivenWrapper:
		return "ShaperDrivenWrapper"
	case modeShapeDontWrapOrReorder:
		return "ShapeDontWrapOrReorder"
	default:
		return "Unknown"
	}
}

// hbShaper shapes with go-text/typesetting's HarfBuzz port.
//
// hbShaper is safe for concurrent use: HarfbuzzShaper instances carry
// mutable buffers and are pooled, go-text faces are created per call.
type hbShaper struct {
	mode     wrapMode
	mgr      fontmgr.FontMgr
	unicode  unicodes.Unicode
	language string

	shaperPool sync.Pool
}

func newHBShaper(mode wrapMode, mgr fontmgr.FontMgr, opts []Option) (*hbShaper, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	u, err := cfg.resolveUnicode()
	if err != nil {
		return nil, fmt.Errorf("shaper: %s: %w", mode, err)
	}
	if mgr == nil {
		mgr = fontmgr.Empty()
	}
	return &hbShaper{
		mode:     mode,
		mgr:      mgr,
		unicode:  u,
		language: cfg.language,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}, nil
}

// Shape implements Shaper.
func (s *hbShaper) Shape(text string, f font.Font, leftToRight bool, width float64, h RunHandler) {
	level := uint8(0)
	if !leftToRight {
		level = 1
	}
	var its iterators
	its.fonts = MakeFontMgrRunIterator(text, f, s.mgr)
	if bidi, err := MakeUnicodeBiDiRunIterator(s.unicode, text, level); err == nil {
		its.bidi = bidi
	} else {
		Logger().Warn("shaper: bidi resolution failed, shaping as one direction", "err", err)
		its.bidi = NewTrivialBiDiRunIterator(level, len(text))
	}
	its.script = &UnicodeScriptRunIterator{spanIterator: newSpanIterator(scriptSpans(s.unicode, text))}
	if s.language != "" {
		its.lang = NewTrivialLanguageRunIterator(s.language, len(text))
	} else {
		its.lang = MakeStdLanguageRunIterator(text)
	}
	s.shape(text, its, nil, width, h)
}

// ShapeRuns implements Shaper.
func (s *hbShaper) ShapeRuns(text string, fonts FontRunIterator, bidi BiDiRunIterator,
	script ScriptRunIterator, lang LanguageRunIterator, width float64, h RunHandler) {
	s.shape(text, iterators{fonts, bidi, script, lang}, nil, width, h)
}

// ShapeRunsWithFeatures implements Shaper.
func (s *hbShaper) ShapeRunsWithFeatures(text string, fonts FontRunIterator, bidi BiDiRunIterator,
	script ScriptRunIterator, lang LanguageRunIterator, features []Feature,
	width float64, h RunHandler) {
	s.shape(text, iterators{fonts, bidi, script, lang}, features, width, h)
}

func (s *hbShaper) shape(text string, its iterators, features []Feature, width float64, h RunHandler) {
	if text == "" {
		return
	}
	segs := its.withDefaults(len(text)).segments(text, features)
	Logger().Debug("shaper: segmented", "mode", s.mode, "bytes", len(text), "segments", len(segs))

	p := newParagraph(text, 0)
	runs := make([]shapedRun, len(segs))
	for i, seg := range segs {
		runs[i] = s.shapeSegment(p, seg, features)
	}

	if s.mode == modeShapeDontWrapOrReorder {
		emitLine(h, runs)
		return
	}

	clusters := clustersOf(text, runs, s.unicode.IsWhitespace)
	lines := breakLines(text, clusters, breakMap(s.unicode.LineBreaks(text)), width)
	for _, line := range lines {
		var pieces []shapedRun
		switch s.mode {
		case modeShaperDrivenWrapper:
			pieces = s.reshapeLine(text, line, segs, features)
		default:
			pieces = sliceLine(runs, line)
		}
		emitLine(h, s.reorder(pieces))
	}
}

// sliceLine cuts the runs overlapping line down to the line.
func sliceLine(runs []shapedRun, line Range) []shapedRun {
	var out []shapedRun
	for i := range runs {
		if runs[i].End <= line.Start || runs[i].Start >= line.End {
			continue
		}
		out = append(out, runs[i].slice(line.Start, line.End))
	}
	return out
}

// reshapeLine shapes the segments overlapping line again, with only the
// line's text as context.
func (s *hbShaper) reshapeLine(text string, line Range, segs []segment, features []Feature) []shapedRun {
	p := newParagraph(text[line.Start:line.End], line.Start)
	var out []shapedRun
	for _, seg := range segs {
		if seg.End <= line.Start || seg.Start >= line.End {
			continue
		}
		seg.Start, seg.End = max(seg.Start, line.Start), min(seg.End, line.End)
		out = append(out, s.shapeSegment(p, seg, features))
	}
	return out
}

// reorder returns the runs of a line in visual order.
func (s *hbShaper) reorder(runs []shapedRun) []shapedRun {
	if len(runs) < 2 {
		return runs
	}
	levels := make([]uint8, len(runs))
	for i := range runs {
		levels[i] = runs[i].level
	}
	order := s.unicode.ReorderVisual(levels)
	visual := make([]shapedRun, 0, len(runs))
	for _, i := range order {
		visual = append(visual, runs[i])
	}
	return visual
}

// emitLine reports one line to h.
func emitLine(h RunHandler, runs []shapedRun) {
	infos := make([]RunInfo, len(runs))
	h.BeginLine()
	for i := range runs {
		infos[i] = runs[i].info()
		h.RunInfo(&infos[i])
	}
	h.CommitRunInfo()
	for i := range runs {
		buf := h.RunBuffer(&infos[i])
		runs[i].fill(buf)
		h.CommitRunBuffer(&infos[i])
	}
	h.CommitLine()
}
