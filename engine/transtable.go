package engine

import (
	. "github.com/sentinelchess/sentinel/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// 16 bytes. The table index is the low half of the key, the stored
// key32 the high half; a mismatch is a miss. A single search owns the
// table, so entries need no synchronization.
type transEntry struct {
	key32 uint32
	move  uint32
	score int16
	depth int8
	bound uint8
	date  uint16
}

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint32
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & 0x7ff
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Read is a pure lookup. Entry recency changes only on Update, so a
// hit leaves the stored record untouched.
func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if entry.key32 == uint32(key>>32) && entry.bound != 0 {
		depth = int(entry.depth)
		score = int(entry.score)
		bound = int(entry.bound)
		move = Move(entry.move)
		ok = true
	}
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	var replace bool
	if entry.key32 == uint32(key>>32) {
		replace = depth >= int(entry.depth)-3 || bound == boundExact
	} else {
		replace = entry.date != tt.date || depth >= int(entry.depth)
	}
	if replace {
		entry.key32 = uint32(key >> 32)
		entry.move = uint32(move)
		entry.score = int16(score)
		entry.depth = int8(depth)
		entry.bound = uint8(bound)
		entry.date = tt.date
	}
}
