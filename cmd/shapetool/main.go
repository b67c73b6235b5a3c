// Command shapetool shapes text and prints the runs a shaper produces.
//
//	shapetool -mode wrap -width 200 -features kern,-liga "Hello, world"
//
// Without text arguments it reads lines interactively.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
	"github.com/gogpu/shaper/unicodes"
)

type options struct {
	mode     string
	fontPath string
	size     float64
	width    float64
	rtl      bool
	features []shaper.Feature
	nfc      bool
}

func main() {
	var (
		mode     = flag.String("mode", "wrap", "shaper: primitive, driven, wrap or nowrap")
		fontPath = flag.String("font", "", "font file (default Go Regular)")
		fontDir  = flag.String("fontdir", "", "directory of fallback fonts")
		size     = flag.Float64("size", 16, "font size")
		width    = flag.Float64("width", 0, "line width, 0 for unlimited")
		rtl      = flag.Bool("rtl", false, "right-to-left paragraph")
		features = flag.String("features", "", "comma separated features, e.g. kern,-liga,smcp[0:5]")
		nfc      = flag.Bool("nfc", false, "normalize input to NFC")
		level    = flag.String("log", "warn", "log level: debug, info, warn or error")
	)
	flag.Parse()
	initDisplay()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		pterm.Error.Printf("invalid log level %q\n", *level)
		os.Exit(2)
	}
	shaper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	opts := options{mode: *mode, fontPath: *fontPath, size: *size, width: *width, rtl: *rtl, nfc: *nfc}
	if *features != "" {
		for _, s := range strings.Split(*features, ",") {
			f, err := shaper.ParseFeature(strings.TrimSpace(s))
			if err != nil {
				pterm.Error.Println(err)
				os.Exit(2)
			}
			opts.features = append(opts.features, f)
		}
	}

	tool, err := newTool(opts, *fontDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		tool.run(strings.Join(flag.Args(), " "))
		return
	}
	if err := tool.repl(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " i ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// tool holds what stays fixed between shaped lines.
type tool struct {
	opts    options
	shaper  shaper.Shaper
	mgr     *fontmgr.Collection
	font    font.Font
	unicode unicodes.Unicode
}

func newTool(opts options, fontDir string) (*tool, error) {
	var (
		tf  *font.Typeface
		err error
	)
	if opts.fontPath != "" {
		tf, err = font.NewTypefaceFromFile(opts.fontPath)
	} else {
		tf, err = font.NewTypeface(goregular.TTF)
	}
	if err != nil {
		return nil, err
	}

	mgr := fontmgr.NewCollection(tf)
	if fontDir != "" {
		dir, err := fontmgr.NewCollectionFromDir(fontDir)
		if err != nil {
			return nil, err
		}
		for i := 0; i < dir.CountFamilies(); i++ {
			if t := dir.LegacyMakeTypeface(dir.FamilyName(i), font.NormalStyle()); t != nil {
				mgr.Add(t)
			}
		}
	}

	s, err := makeShaper(opts.mode, mgr)
	if err != nil {
		return nil, err
	}
	u, err := unicodes.MakeDefault()
	if err != nil {
		return nil, err
	}
	return &tool{opts: opts, shaper: s, mgr: mgr, font: font.NewFont(tf, opts.size), unicode: u}, nil
}

func makeShaper(mode string, mgr fontmgr.FontMgr) (shaper.Shaper, error) {
	switch mode {
	case "primitive":
		return shaper.MakePrimitive(), nil
	case "driven":
		return shaper.MakeShaperDrivenWrapper(mgr)
	case "wrap":
		return shaper.MakeShapeThenWrap(mgr)
	case "nowrap":
		return shaper.MakeShapeDontWrapOrReorder(mgr)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func (t *tool) repl() error {
	rl, err := readline.New("shape > ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			break
		}
		if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line != "" {
			t.run(line)
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// prepare applies the input options to text.
func (t *tool) prepare(text string) string {
	if t.opts.nfc {
		return t.unicode.Normalize(unicodes.NFC, text)
	}
	return text
}

func (t *tool) run(text string) {
	text = t.prepare(text)
	width := t.opts.width
	if width <= 0 {
		width = maxWidth
	}

	var level uint8
	if t.opts.rtl {
		level = 1
	}
	rec := &printer{text: text}
	if len(t.opts.features) == 0 {
		t.shaper.Shape(text, t.font, !t.opts.rtl, width, rec)
	} else {
		t.shaper.ShapeRunsWithFeatures(text,
			shaper.MakeFontMgrRunIterator(text, t.font, t.mgr),
			shaper.MakeBiDiRunIterator(text, level),
			shaper.MakeScriptRunIterator(text, shaper.SetFourByteTag('Z', 'y', 'y', 'y')),
			shaper.MakeStdLanguageRunIterator(text),
			t.opts.features, width, rec)
	}
	rec.render()
}
