package shaper

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/language"
	"github.com/gogpu/shaper/unicodes"
)

// UnicodeScriptRunIterator yields script runs resolved with a Unicode
// backend. Common and Inherited characters join the run they are in, and
// paired brackets take the script of their opening bracket.
type UnicodeScriptRunIterator struct {
	spanIterator[FourByteTag]
}

// MakeHbUnicodeScriptRunIterator segments text by script using u. A nil u
// selects the default backend.
func MakeHbUnicodeScriptRunIterator(u unicodes.Unicode, text string) (*UnicodeScriptRunIterator, error) {
	if u == nil {
		var err error
		if u, err = unicodes.MakeDefault(); err != nil {
			return nil, err
		}
	}
	return &UnicodeScriptRunIterator{spanIterator: newSpanIterator(scriptSpans(u, text))}, nil
}

// CurrentScript returns the script of the current run.
func (it *UnicodeScriptRunIterator) CurrentScript() FourByteTag { return it.current() }

// MakeScriptRunIterator returns a Unicode backed script iterator, or a
// trivial one yielding defaultScript when no backend can be constructed.
func MakeScriptRunIterator(text string, defaultScript FourByteTag) ScriptRunIterator {
	it, err := MakeHbUnicodeScriptRunIterator(nil, text)
	if err != nil {
		Logger().Warn("shaper: script iterator falls back to a single run", "err", err)
		return NewTrivialScriptRunIterator(defaultScript, len(text))
	}
	return it
}

func unresolved(s language.Script) bool {
	return s == language.Common || s == language.Inherited || s == language.Unknown
}

// bracketEntry remembers the script in effect at an opening bracket.
type bracketEntry struct {
	script language.Script
}

func scriptSpans(u unicodes.Unicode, text string) []span[FourByteTag] {
	var (
		spans   []span[FourByteTag]
		current = language.Common
		stack   []bracketEntry
		// stackBase is the part of the stack that predates the current run.
		stackBase int
	)
	pos := 0
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		script := u.Script(r)
		isBracket, opening := u.PairedBracket(r)

		if unresolved(script) {
			script = current
			if isBracket && !opening && len(stack) > 0 {
				script = stack[len(stack)-1].script
				stack = stack[:len(stack)-1]
				stackBase = min(stackBase, len(stack))
			}
		}

		switch {
		case unresolved(current):
			current = script
			if !unresolved(script) {
				for i := stackBase; i < len(stack); i++ {
					stack[i].script = script
				}
			}
		case script != current:
			spans = append(spans, span[FourByteTag]{end: pos, value: scriptTag(current)})
			current = script
			stackBase = len(stack)
		}

		if isBracket && opening {
			stack = append(stack, bracketEntry{script: current})
		}
		pos += size
	}
	if len(text) > 0 {
		if current == language.Inherited {
			current = language.Common
		}
		spans = append(spans, span[FourByteTag]{end: len(text), value: scriptTag(current)})
	}
	return spans
}
