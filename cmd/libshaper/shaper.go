//go:build cgo

package main

/*
#include "libshaper.h"
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/shaper"
)

func registerShaper(s shaper.Shaper, err error) C.shaper_handle {
	if err != nil {
		shaper.Logger().Warn("libshaper: shaper unavailable", "err", err)
		return 0
	}
	return register(shapers, s)
}

//export shaper_make
func shaper_make(mgr C.shaper_handle) C.shaper_handle {
	defer guard("shaper_make")
	return register(shapers, shaper.Make(mgrFor(mgr)))
}

//export shaper_make_primitive
func shaper_make_primitive() C.shaper_handle {
	defer guard("shaper_make_primitive")
	return register(shapers, shaper.MakePrimitive())
}

//export shaper_make_core_text
func shaper_make_core_text() C.shaper_handle {
	defer guard("shaper_make_core_text")
	return registerShaper(shaper.MakeCoreText())
}

//export shaper_make_hb_shaper_driven_wrapper
func shaper_make_hb_shaper_driven_wrapper(mgr C.shaper_handle) C.shaper_handle {
	defer guard("shaper_make_hb_shaper_driven_wrapper")
	return registerShaper(shaper.MakeShaperDrivenWrapper(mgrFor(mgr)))
}

//export shaper_make_hb_shape_then_wrap
func shaper_make_hb_shape_then_wrap(mgr C.shaper_handle) C.shaper_handle {
	defer guard("shaper_make_hb_shape_then_wrap")
	return registerShaper(shaper.MakeShapeThenWrap(mgrFor(mgr)))
}

//export shaper_make_hb_shape_dont_wrap_or_reorder
func shaper_make_hb_shape_dont_wrap_or_reorder(mgr C.shaper_handle) C.shaper_handle {
	defer guard("shaper_make_hb_shape_dont_wrap_or_reorder")
	return registerShaper(shaper.MakeShapeDontWrapOrReorder(mgrFor(mgr)))
}

//export shaper_delete
func shaper_delete(h C.shaper_handle) C.bool {
	defer guard("shaper_delete")
	return C.bool(release(shapers, "shaper", h))
}

//export shaper_shape
func shaper_shape(s C.shaper_handle, text *C.char, n C.size_t, tf C.shaper_handle, size C.float,
	leftToRight C.bool, width C.float, rh C.shaper_handle) (ok C.bool) {
	defer guard("shaper_shape")
	sh, found := lookup(shapers, s)
	h, found2 := lookup(handlers, rh)
	if !found || !found2 {
		return false
	}
	sh.Shape(goString(text, n), fontFor(tf, size), bool(leftToRight), float64(width), h)
	return true
}

// runIterators resolves the four iterator handles of a shape2/shape3 call.
func runIterators(fonts, bidi, script, lang C.shaper_handle) (
	shaper.FontRunIterator, shaper.BiDiRunIterator, shaper.ScriptRunIterator, shaper.LanguageRunIterator, bool) {
	f, _ := lookup(iterators, fonts)
	b, _ := lookup(iterators, bidi)
	s, _ := lookup(iterators, script)
	l, _ := lookup(iterators, lang)
	fi, ok1 := f.(shaper.FontRunIterator)
	bi, ok2 := b.(shaper.BiDiRunIterator)
	si, ok3 := s.(shaper.ScriptRunIterator)
	li, ok4 := l.(shaper.LanguageRunIterator)
	return fi, bi, si, li, ok1 && ok2 && ok3 && ok4
}

//export shaper_shape2
func shaper_shape2(s C.shaper_handle, text *C.char, n C.size_t,
	fonts, bidi, script, lang C.shaper_handle, width C.float, rh C.shaper_handle) C.bool {
	return shaper_shape3(s, text, n, fonts, bidi, script, lang, nil, 0, width, rh)
}

//export shaper_shape3
func shaper_shape3(s C.shaper_handle, text *C.char, n C.size_t,
	fonts, bidi, script, lang C.shaper_handle, features *C.shaper_feature, nfeatures C.size_t,
	width C.float, rh C.shaper_handle) (ok C.bool) {
	defer guard("shaper_shape3")
	sh, found := lookup(shapers, s)
	h, found2 := lookup(handlers, rh)
	fi, bi, si, li, found3 := runIterators(fonts, bidi, script, lang)
	if !found || !found2 || !found3 {
		return false
	}

	var fs []shaper.Feature
	if features != nil && nfeatures > 0 {
		for _, f := range unsafe.Slice(features, int(nfeatures)) {
			fs = append(fs, shaper.Feature{
				Tag:   shaper.FourByteTag(f.tag),
				Value: uint32(f.value),
				Start: int(f.start),
				End:   clampEnd(f.end),
			})
		}
	}
	sh.ShapeRunsWithFeatures(goString(text, n), fi, bi, si, li, fs, float64(width), h)
	return true
}

// clampEnd maps SIZE_MAX style "to the end" markers to FeatureGlobalEnd.
func clampEnd(end C.size_t) int {
	if uint64(end) > uint64(shaper.FeatureGlobalEnd) {
		return shaper.FeatureGlobalEnd
	}
	return int(end)
}
