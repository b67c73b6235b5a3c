package main

import (
	"fmt"
	"math"

	"github.com/pterm/pterm"

	"github.com/gogpu/shaper"
	"github.com/gogpu/shaper/font"
)

var maxWidth = math.Inf(1)

// printer is a RunHandler collecting runs for display.
type printer struct {
	text  string
	lines [][]printedRun
	buf   shaper.Buffer
}

type printedRun struct {
	info   shaper.RunInfo
	glyphs []font.GlyphID
	pos    []shaper.Point
}

func (p *printer) BeginLine() { p.lines = append(p.lines, nil) }
func (p *printer) RunInfo(*shaper.RunInfo) {}
func (p *printer) CommitRunInfo() {}
func (p *printer) CommitLine() {}

func (p *printer) RunBuffer(info *shaper.RunInfo) shaper.Buffer {
	p.buf = shaper.Buffer{
		Glyphs:    make([]font.GlyphID, info.GlyphCount),
		Positions: make([]shaper.Point, info.GlyphCount),
	}
	return p.buf
}

func (p *printer) CommitRunBuffer(info *shaper.RunInfo) {
	last := len(p.lines) - 1
	p.lines[last] = append(p.lines[last], printedRun{info: *info, glyphs: p.buf.Glyphs, pos: p.buf.Positions})
}

func (p *printer) render() {
	if len(p.lines) == 0 {
		pterm.Info.Println("nothing shaped")
		return
	}
	for i, runs := range p.lines {
		pterm.Printf("line %d\n", i)
		data := [][]string{{"run", "bytes", "text", "level", "script", "lang", "size", "glyphs", "advance"}}
		for j, r := range runs {
			rng := r.info.Utf8Range
			data = append(data, []string{
				fmt.Sprint(j),
				fmt.Sprintf("%d:%d", rng.Start, rng.End),
				fmt.Sprintf("%q", p.text[rng.Start:rng.End]),
				fmt.Sprint(r.info.BidiLevel),
				r.info.Script.String(),
				r.info.Language,
				fmt.Sprintf("%g", r.info.Font.Size),
				fmt.Sprint(r.glyphs),
				fmt.Sprintf("%.2f", r.info.Advance.X),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}
