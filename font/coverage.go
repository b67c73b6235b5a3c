package font

import "sync"

// coverageMap memoizes "does this typeface map rune r to a glyph".
// It stores 2 bits per rune (checked, covered) in 256-rune blocks that are
// allocated on first access, so sparse lookups across Unicode stay small.
//
// coverageMap is safe for concurrent use.
type coverageMap struct {
	mu     sync.RWMutex
	blocks map[uint32]*coverageBlock // keyed by rune >> 8
}

// coverageBlock holds 256 runes x 2 bits.
type coverageBlock struct {
	bits [8]uint64
}

func newCoverageMap() *coverageMap {
	return &coverageMap{blocks: make(map[uint32]*coverageBlock)}
}

// get returns (covered, checked). checked is false if r was never stored.
func (m *coverageMap) get(r rune) (covered, checked bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blocks[uint32(r)>>8]
	if !ok {
		return false, false
	}
	word, pos := coverageSlot(r)
	w := b.bits[word]
	return (w>>(pos+1))&1 != 0, (w>>pos)&1 != 0
}

// set records whether r is covered.
func (m *coverageMap) set(r rune, covered bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := uint32(r) >> 8
	b, ok := m.blocks[key]
	if !ok {
		b = &coverageBlock{}
		m.blocks[key] = b
	}
	word, pos := coverageSlot(r)
	b.bits[word] |= 1 << pos
	if covered {
		b.bits[word] |= 1 << (pos + 1)
	} else {
		b.bits[word] &^= 1 << (pos + 1)
	}
}

func (m *coverageMap) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = make(map[uint32]*coverageBlock)
}

func coverageSlot(r rune) (word, pos uint32) {
	bit := (uint32(r) & 0xFF) * 2
	return bit / 64, bit % 64
}
