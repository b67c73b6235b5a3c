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
	"github.com/gogpu/shaper/textblob"
)

// cHandler forwards shaping events to C callbacks. Glyph data is produced
// into Go slices and copied into the caller's buffer on CommitRunBuffer,
// since the C side stores single precision points.
type cHandler struct {
	funcs C.shaper_run_handler_funcs
	ctx   unsafe.Pointer
	cbuf  C.shaper_buffer
	buf   shaper.Buffer
}

func cRunInfo(info *shaper.RunInfo) C.shaper_run_info {
	ci := C.shaper_run_info{
		typeface_id: C.uint32_t(typefaceID32(info.Font)),
		size:        C.float(info.Font.Size),
		bidi_level:  C.uint8_t(info.BidiLevel),
		script:      C.uint32_t(info.Script),
		advance:     cPoint(info.Advance),
		glyph_count: C.size_t(info.GlyphCount),
		utf8_begin:  C.size_t(info.Utf8Range.Start),
		utf8_end:    C.size_t(info.Utf8Range.End),
	}
	copyCString(&ci.language[0], len(ci.language), info.Language)
	return ci
}

func cPoint(p shaper.Point) C.shaper_point {
	return C.shaper_point{x: C.float(p.X), y: C.float(p.Y)}
}

var cHandlerFuncs = shaper.RunHandlerFuncs{
	BeginLine: func(ctx any) {
		h := ctx.(*cHandler)
		C.shaper_call_begin_line(&h.funcs, h.ctx)
	},
	RunInfo: func(ctx any, info *shaper.RunInfo) {
		h := ctx.(*cHandler)
		ci := cRunInfo(info)
		C.shaper_call_run_info(&h.funcs, h.ctx, &ci)
	},
	CommitRunInfo: func(ctx any) {
		h := ctx.(*cHandler)
		C.shaper_call_commit_run_info(&h.funcs, h.ctx)
	},
	RunBuffer: func(ctx any, info *shaper.RunInfo) shaper.Buffer {
		h := ctx.(*cHandler)
		ci := cRunInfo(info)
		h.cbuf = C.shaper_call_run_buffer(&h.funcs, h.ctx, &ci)
		n := info.GlyphCount
		h.buf = shaper.Buffer{
			Glyphs:    make([]font.GlyphID, n),
			Positions: make([]shaper.Point, n),
			Point:     shaper.Pt(float64(h.cbuf.point.x), float64(h.cbuf.point.y)),
		}
		if h.cbuf.offsets != nil {
			h.buf.Offsets = make([]shaper.Point, n)
		}
		if h.cbuf.clusters != nil {
			h.buf.Clusters = make([]uint32, n)
		}
		return h.buf
	},
	CommitRunBuffer: func(ctx any, info *shaper.RunInfo) {
		h := ctx.(*cHandler)
		h.flush(info.GlyphCount)
		ci := cRunInfo(info)
		C.shaper_call_commit_run_buffer(&h.funcs, h.ctx, &ci)
	},
	CommitLine: func(ctx any) {
		h := ctx.(*cHandler)
		C.shaper_call_commit_line(&h.funcs, h.ctx)
	},
}

// flush copies the Go side run buffer into the C arrays that were
// supplied for it. Missing arrays are skipped.
func (h *cHandler) flush(n int) {
	if n == 0 {
		return
	}
	if h.cbuf.glyphs != nil {
		dst := unsafe.Slice((*uint16)(unsafe.Pointer(h.cbuf.glyphs)), n)
		for i, g := range h.buf.Glyphs {
			dst[i] = uint16(g)
		}
	}
	copyPoints(h.cbuf.positions, h.buf.Positions)
	copyPoints(h.cbuf.offsets, h.buf.Offsets)
	if h.cbuf.clusters != nil {
		copy(unsafe.Slice((*uint32)(unsafe.Pointer(h.cbuf.clusters)), n), h.buf.Clusters)
	}
}

func copyPoints(dst *C.shaper_point, src []shaper.Point) {
	if dst == nil || len(src) == 0 {
		return
	}
	out := unsafe.Slice(dst, len(src))
	for i, p := range src {
		out[i] = cPoint(p)
	}
}

// shaper_run_handler_new wraps C callbacks in a run handler. funcs is
// copied; ctx is passed back to every callback.
//
//export shaper_run_handler_new
func shaper_run_handler_new(funcs *C.shaper_run_handler_funcs, ctx unsafe.Pointer) C.shaper_handle {
	defer guard("shaper_run_handler_new")
	if funcs == nil {
		return 0
	}
	state := &cHandler{funcs: *funcs, ctx: ctx}
	return register(handlers, shaper.RunHandler(shaper.NewFuncRunHandler(state, cHandlerFuncs)))
}

//export shaper_run_handler_delete
func shaper_run_handler_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_run_handler_delete")
	return C.bool(release(handlers, "run handler", h))
}

//export shaper_text_blob_builder_run_handler_new
func shaper_text_blob_builder_run_handler_new(text *C.char, n C.size_t, x, y C.float) C.shaper_handle {
	defer guard("shaper_text_blob_builder_run_handler_new")
	h := shaper.NewTextBlobBuilderRunHandler(goString(text, n), shaper.Pt(float64(x), float64(y)))
	return register(handlers, shaper.RunHandler(h))
}

func blobHandler(h C.shaper_handle) (*shaper.TextBlobBuilderRunHandler, bool) {
	rh, ok := lookup(handlers, h)
	if !ok {
		return nil, false
	}
	b, ok := rh.(*shaper.TextBlobBuilderRunHandler)
	return b, ok
}

// shaper_text_blob_builder_run_handler_make_blob returns the blob built so
// far, or 0 when no glyphs were produced.
//
//export shaper_text_blob_builder_run_handler_make_blob
func shaper_text_blob_builder_run_handler_make_blob(h C.shaper_handle) C.shaper_handle {
	defer guard("shaper_text_blob_builder_run_handler_make_blob")
	b, ok := blobHandler(h)
	if !ok {
		return 0
	}
	blob := b.MakeBlob()
	if blob == nil {
		return 0
	}
	return register(blobs, blob)
}

//export shaper_text_blob_builder_run_handler_end_point
func shaper_text_blob_builder_run_handler_end_point(h C.shaper_handle) C.shaper_point {
	defer guard("shaper_text_blob_builder_run_handler_end_point")
	b, ok := blobHandler(h)
	if !ok {
		return C.shaper_point{}
	}
	return cPoint(b.EndPoint())
}

func lookupBlob(h C.shaper_handle) *textblob.TextBlob {
	b, _ := lookup(blobs, h)
	return b
}

//export shaper_text_blob_run_count
func shaper_text_blob_run_count(h C.shaper_handle) C.size_t {
	defer guard("shaper_text_blob_run_count")
	if b := lookupBlob(h); b != nil {
		return C.size_t(b.RunCount())
	}
	return 0
}

//export shaper_text_blob_glyph_count
func shaper_text_blob_glyph_count(h C.shaper_handle) C.size_t {
	defer guard("shaper_text_blob_glyph_count")
	if b := lookupBlob(h); b != nil {
		return C.size_t(b.GlyphCount())
	}
	return 0
}

//export shaper_text_blob_delete
func shaper_text_blob_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_text_blob_delete")
	return C.bool(release(blobs, "text blob", h))
}
