//go:build cgo

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/shaper"
)

func TestCopyString(t *testing.T) {
	b := []byte("a\x00bc")
	s := copyString(unsafe.Pointer(&b[0]), uint64(len(b)))
	b[0] = 'z'
	assert.Equal(t, "a\x00bc", s)

	assert.Equal(t, "", copyString(nil, 4))
	assert.Equal(t, "", copyString(unsafe.Pointer(&b[0]), 0))
	assert.Equal(t, "", copyString(unsafe.Pointer(&b[0]), 1<<63))
}

func TestCopyBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	c := copyBytes(unsafe.Pointer(&b[0]), 3)
	b[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, c)
	assert.Nil(t, copyBytes(nil, 3))
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseLoggedWarns(t *testing.T) {
	orig := shaper.Logger()
	t.Cleanup(func() { shaper.SetLogger(orig) })
	var buf bytes.Buffer
	shaper.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.True(t, closeLogged("typeface", failingCloser{}))
	assert.Empty(t, buf.String())

	assert.False(t, closeLogged("typeface", failingCloser{err: errors.New("busy")}))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "busy")
}
