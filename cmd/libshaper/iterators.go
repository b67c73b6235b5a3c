//go:build cgo

package main

/*
#include "libshaper.h"
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/shaper"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/unicodes"
)

func registerIterator(it shaper.RunIterator) C.shaper_handle {
	return register(iterators, it)
}

//export shaper_fontmgr_run_iterator_new
func shaper_fontmgr_run_iterator_new(text *C.char, n C.size_t, tf C.shaper_handle, size C.float,
	mgr C.shaper_handle) C.shaper_handle {
	defer guard("shaper_fontmgr_run_iterator_new")
	return registerIterator(shaper.MakeFontMgrRunIterator(goString(text, n), fontFor(tf, size), mgrFor(mgr)))
}

//export shaper_trivial_font_run_iterator_new
func shaper_trivial_font_run_iterator_new(tf C.shaper_handle, size C.float, n C.size_t) C.shaper_handle {
	defer guard("shaper_trivial_font_run_iterator_new")
	return registerIterator(shaper.NewTrivialFontRunIterator(fontFor(tf, size), int(n)))
}

//export shaper_bidi_run_iterator_new
func shaper_bidi_run_iterator_new(text *C.char, n C.size_t, level C.uint8_t) C.shaper_handle {
	defer guard("shaper_bidi_run_iterator_new")
	return registerIterator(shaper.MakeBiDiRunIterator(goString(text, n), uint8(level)))
}

//export shaper_unicode_bidi_run_iterator_new
func shaper_unicode_bidi_run_iterator_new(text *C.char, n C.size_t, level C.uint8_t) C.shaper_handle {
	defer guard("shaper_unicode_bidi_run_iterator_new")
	it, err := shaper.MakeUnicodeBiDiRunIterator(nil, goString(text, n), uint8(level))
	if err != nil {
		shaper.Logger().Warn("libshaper: bidi iterator", "err", err)
		return 0
	}
	return registerIterator(it)
}

//export shaper_trivial_bidi_run_iterator_new
func shaper_trivial_bidi_run_iterator_new(level C.uint8_t, n C.size_t) C.shaper_handle {
	defer guard("shaper_trivial_bidi_run_iterator_new")
	return registerIterator(shaper.NewTrivialBiDiRunIterator(uint8(level), int(n)))
}

//export shaper_script_run_iterator_new
func shaper_script_run_iterator_new(text *C.char, n C.size_t, script C.uint32_t) C.shaper_handle {
	defer guard("shaper_script_run_iterator_new")
	return registerIterator(shaper.MakeScriptRunIterator(goString(text, n), shaper.FourByteTag(script)))
}

//export shaper_hb_unicode_script_run_iterator_new
func shaper_hb_unicode_script_run_iterator_new(text *C.char, n C.size_t) C.shaper_handle {
	defer guard("shaper_hb_unicode_script_run_iterator_new")
	u, err := unicodes.MakeDefault()
	if err != nil {
		shaper.Logger().Warn("libshaper: script iterator", "err", err)
		return 0
	}
	it, err := shaper.MakeHbUnicodeScriptRunIterator(u, goString(text, n))
	if err != nil {
		shaper.Logger().Warn("libshaper: script iterator", "err", err)
		return 0
	}
	return registerIterator(it)
}

//export shaper_trivial_script_run_iterator_new
func shaper_trivial_script_run_iterator_new(script C.uint32_t, n C.size_t) C.shaper_handle {
	defer guard("shaper_trivial_script_run_iterator_new")
	return registerIterator(shaper.NewTrivialScriptRunIterator(shaper.FourByteTag(script), int(n)))
}

//export shaper_std_language_run_iterator_new
func shaper_std_language_run_iterator_new(text *C.char, n C.size_t) C.shaper_handle {
	defer guard("shaper_std_language_run_iterator_new")
	return registerIterator(shaper.MakeStdLanguageRunIterator(goString(text, n)))
}

//export shaper_trivial_language_run_iterator_new
func shaper_trivial_language_run_iterator_new(lang *C.char, n C.size_t) C.shaper_handle {
	defer guard("shaper_trivial_language_run_iterator_new")
	var l string
	if lang != nil {
		l = C.GoString(lang)
	}
	return registerIterator(shaper.NewTrivialLanguageRunIterator(l, int(n)))
}

// shaper_run_iterator_consume advances h. It returns false when h is
// unknown or already at its end.
//
//export shaper_run_iterator_consume
func shaper_run_iterator_consume(h C.shaper_handle) C.bool {
	defer guard("shaper_run_iterator_consume")
	it, ok := lookup(iterators, h)
	if !ok || it.AtEnd() {
		return false
	}
	it.Consume()
	return true
}

//export shaper_run_iterator_end_of_current_run
func shaper_run_iterator_end_of_current_run(h C.shaper_handle) C.size_t {
	defer guard("shaper_run_iterator_end_of_current_run")
	if it, ok := lookup(iterators, h); ok {
		return C.size_t(it.EndOfCurrentRun())
	}
	return 0
}

//export shaper_run_iterator_at_end
func shaper_run_iterator_at_end(h C.shaper_handle) C.bool {
	defer guard("shaper_run_iterator_at_end")
	it, ok := lookup(iterators, h)
	return C.bool(!ok || it.AtEnd())
}

//export shaper_run_iterator_current_level
func shaper_run_iterator_current_level(h C.shaper_handle) C.uint8_t {
	defer guard("shaper_run_iterator_current_level")
	it, _ := lookup(iterators, h)
	if b, ok := it.(shaper.BiDiRunIterator); ok {
		return C.uint8_t(b.CurrentLevel())
	}
	return 0
}

//export shaper_run_iterator_current_script
func shaper_run_iterator_current_script(h C.shaper_handle) C.uint32_t {
	defer guard("shaper_run_iterator_current_script")
	it, _ := lookup(iterators, h)
	if s, ok := it.(shaper.ScriptRunIterator); ok {
		return C.uint32_t(s.CurrentScript())
	}
	return 0
}

// shaper_run_iterator_current_language writes the NUL terminated language
// of h into buf and returns the length of the full tag.
//
//export shaper_run_iterator_current_language
func shaper_run_iterator_current_language(h C.shaper_handle, buf *C.char, capacity C.size_t) C.size_t {
	defer guard("shaper_run_iterator_current_language")
	it, _ := lookup(iterators, h)
	l, ok := it.(shaper.LanguageRunIterator)
	if !ok {
		return 0
	}
	lang := l.CurrentLanguage()
	copyCString(buf, int(capacity), lang)
	return C.size_t(len(lang))
}

//export shaper_run_iterator_current_font
func shaper_run_iterator_current_font(h C.shaper_handle, typefaceID *C.uint32_t, size *C.float) C.bool {
	defer guard("shaper_run_iterator_current_font")
	it, _ := lookup(iterators, h)
	f, ok := it.(shaper.FontRunIterator)
	if !ok {
		return false
	}
	cur := f.CurrentFont()
	if typefaceID != nil {
		*typefaceID = C.uint32_t(typefaceID32(cur))
	}
	if size != nil {
		*size = C.float(cur.Size)
	}
	return true
}

//export shaper_run_iterator_delete
func shaper_run_iterator_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_run_iterator_delete")
	return C.bool(release(iterators, "iterator", h))
}

func typefaceID32(f font.Font) uint32 {
	if f.Typeface == nil {
		return 0
	}
	return f.Typeface.ID()
}

// copyCString copies s into the capacity bytes at buf, truncating and
// always NUL terminating.
func copyCString(buf *C.char, capacity int, s string) {
	if buf == nil || capacity <= 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), capacity)
	n := copy(dst[:capacity-1], s)
	dst[n] = 0
}
