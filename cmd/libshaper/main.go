//go:build cgo

// Command libshaper builds the shaper as a C shared library:
//
//	go build -buildmode=c-shared -o libshaper.so ./cmd/libshaper
//
// Every object crosses the boundary as an integer handle. Constructors
// return 0 on failure, and every handle is released exactly once through
// the matching *_delete function. Releasing a handle twice is ignored and
// logged. Panics never cross into C: exported functions recover, log, and
// return a zero result.
package main

/*
#include "libshaper.h"
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/shaper"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/fontmgr"
	"github.com/gogpu/shaper/internal/handle"
	"github.com/gogpu/shaper/textblob"
)

func main() {}

var (
	typefaces = handle.NewTable[*font.Typeface]()
	fontMgrs  = handle.NewTable[*fontmgr.Collection]()
	shapers   = handle.NewTable[shaper.Shaper]()
	iterators = handle.NewTable[shaper.RunIterator]()
	handlers  = handle.NewTable[shaper.RunHandler]()
	blobs     = handle.NewTable[*textblob.TextBlob]()
)

// guard recovers a panic of an exported function. It must be deferred
// directly.
func guard(fn string) {
	if r := recover(); r != nil {
		shaper.Logger().Error("libshaper: recovered panic", "func", fn, "panic", r)
	}
}

// release removes h from t, logging misuse.
func release[T any](t *handle.Table[T], kind string, h C.shaper_handle) bool {
	if _, ok := t.Release(handle.ID(h)); !ok {
		shaper.Logger().Warn("libshaper: release of unknown handle", "kind", kind, "handle", uint64(h))
		return false
	}
	return true
}

func register[T any](t *handle.Table[T], v T) C.shaper_handle {
	return C.shaper_handle(t.Register(v))
}

func lookup[T any](t *handle.Table[T], h C.shaper_handle) (T, bool) {
	return t.Lookup(handle.ID(h))
}

// goString copies n bytes of C text. Embedded NULs are kept.
func goString(text *C.char, n C.size_t) string {
	return copyString(unsafe.Pointer(text), uint64(n))
}

// fontFor builds a Font from a typeface handle; 0 gives a typeface-less font.
func fontFor(tf C.shaper_handle, size C.float) font.Font {
	t, _ := lookup(typefaces, tf)
	return font.NewFont(t, float64(size))
}

// mgrFor returns the font manager of h, or nil for 0.
func mgrFor(h C.shaper_handle) fontmgr.FontMgr {
	if m, ok := lookup(fontMgrs, h); ok {
		return m
	}
	return nil
}

//export shaper_typeface_new
func shaper_typeface_new(data *C.uint8_t, n C.size_t) (h C.shaper_handle) {
	defer guard("shaper_typeface_new")
	buf := copyBytes(unsafe.Pointer(data), uint64(n))
	if buf == nil {
		return 0
	}
	tf, err := font.NewTypeface(buf)
	if err != nil {
		shaper.Logger().Warn("libshaper: typeface rejected", "err", err)
		return 0
	}
	return register(typefaces, tf)
}

//export shaper_typeface_id
func shaper_typeface_id(h C.shaper_handle) C.uint32_t {
	defer guard("shaper_typeface_id")
	if tf, ok := lookup(typefaces, h); ok {
		return C.uint32_t(tf.ID())
	}
	return 0
}

//export shaper_typeface_delete
func shaper_typeface_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_typeface_delete")
	tf, ok := typefaces.Release(handle.ID(h))
	if !ok {
		shaper.Logger().Warn("libshaper: release of unknown handle", "kind", "typeface", "handle", uint64(h))
		return false
	}
	closeLogged("typeface", tf)
	return true
}

//export shaper_fontmgr_new
func shaper_fontmgr_new() C.shaper_handle {
	defer guard("shaper_fontmgr_new")
	return register(fontMgrs, fontmgr.NewCollection())
}

//export shaper_fontmgr_add
func shaper_fontmgr_add(mgr, tf C.shaper_handle) C.bool {
	defer guard("shaper_fontmgr_add")
	m, ok := lookup(fontMgrs, mgr)
	t, ok2 := lookup(typefaces, tf)
	if !ok || !ok2 {
		return false
	}
	m.Add(t)
	return true
}

//export shaper_fontmgr_delete
func shaper_fontmgr_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_fontmgr_delete")
	return C.bool(release(fontMgrs, "fontmgr", h))
}
