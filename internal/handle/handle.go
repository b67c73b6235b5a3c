// Package handle maps Go values to integer handles that can cross the C
// boundary. C code never holds Go pointers; it holds a handle and hands it
// back on every call.
//
// Every table is single owner: a handle is released exactly once.
package handle

import "sync"

// ID identifies a value in a Table. Zero is never a valid ID.
type ID uintptr

// Table stores values of one kind. It is safe for concurrent use.
type Table[T any] struct {
	mu     sync.RWMutex
	values map[ID]T
	next   ID
}

// NewTable returns an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{values: make(map[ID]T), next: 1}
}

// Register stores v and returns its new handle.
func (t *Table[T]) Register(v T) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.values[id] = v
	return id
}

// Lookup returns the value of id.
func (t *Table[T]) Lookup(id ID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[id]
	return v, ok
}

// Release removes id and returns its value. It reports false for an
// unknown or already released handle.
func (t *Table[T]) Release(id ID) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.values[id]
	delete(t.values, id)
	return v, ok
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
