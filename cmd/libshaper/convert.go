//go:build cgo

package main

import (
	"bytes"
	"io"
	"math"
	"strings"
	"unsafe"

	"github.com/gogpu/shaper"
)

// copyString copies n bytes at p into a Go string. Embedded NULs are kept.
func copyString(p unsafe.Pointer, n uint64) string {
	if p == nil || n == 0 || n > math.MaxInt {
		return ""
	}
	return strings.Clone(unsafe.String((*byte)(p), int(n)))
}

// copyBytes copies n bytes at p.
func copyBytes(p unsafe.Pointer, n uint64) []byte {
	if p == nil || n == 0 || n > math.MaxInt {
		return nil
	}
	return bytes.Clone(unsafe.Slice((*byte)(p), int(n)))
}

// closeLogged closes c, logging a failure at Warn.
func closeLogged(kind string, c io.Closer) bool {
	if err := c.Close(); err != nil {
		shaper.Logger().Warn("libshaper: close failed", "kind", kind, "err", err)
		return false
	}
	return true
}
