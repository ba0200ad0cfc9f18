// Package tt implements the transposition table: a large hash table keyed
// by a position's Zobrist key, caching search results across nodes and
// across iterative-deepening depths.
package tt

import (
	"sync/atomic"

	"github.com/herohde/morlock-core/pkg/board"
)

// Search bounds shared by the table's mate-score adjustment and by the
// search package built on top of it.
const (
	Inf           = 32000
	Mate          = 30000
	MateThreshold = Mate - 512
	MaxPly        = 128
)

// Bound records what kind of value a TTEntry's stored score represents
// relative to the search window that produced it.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

// emptyDepth is the sentinel depth unpackInfo returns for a slot that has
// never been written (or has been cleared). Real depths are always >= 0.
const emptyDepth = -1

// Entry is the decoded, user-facing view of a transposition table slot.
type Entry struct {
	Value      int32
	Depth      int
	Bound      Bound
	Best       board.Move
	StaticEval int32
}

// entry is a single lock-free slot, packed into two atomic 64-bit words so
// that concurrent probes and stores never need a lock. A torn read is
// detected and treated as a miss: the cost of a missed hit is acceptable,
// a false hit is not.
//
// info: key-low-16 | key-high-16 | age(8) | depth(8) | bound(2)
// data: move(19)   | value(16)   | staticEval(16)
//
// Writers store data first (relaxed in spirit — Go's atomic package only
// offers sequentially consistent operations, a strictly stronger guarantee
// than the C++ relaxed/release/acquire scheme this mirrors), then info
// (release in spirit). Readers load info (acquire in spirit), reject on key
// mismatch, then load data.
type entry struct {
	info atomic.Uint64
	data atomic.Uint64
}

// Cluster groups 4 entries sharing one hash-table slot, so that a single
// index collision has room for distinct positions before anything must be
// evicted.
type Cluster struct {
	entries [4]entry
}

// Table is the lock-free, cluster-of-4 transposition table.
type Table struct {
	clusters []Cluster
	mask     uint64

	generation atomic.Uint32
}

// NewTable allocates a table sized to hold mb megabytes, rounded down to
// the nearest power-of-two cluster count (minimum 1 cluster).
func NewTable(mb int) *Table {
	t := &Table{}
	t.Resize(mb)
	return t
}

const clusterSize = 4 * 16 // 4 entries * 2 words * 8 bytes, approximated generously.

// Resize reallocates the table for mb megabytes. A non-positive mb coerces
// to the minimum of 1 cluster.
func (t *Table) Resize(mb int) {
	bytes := int64(mb) * 1024 * 1024
	n := bytes / clusterSize
	if n < 1 {
		n = 1
	}
	slots := highestPowerOfTwo(uint64(n))

	t.clusters = make([]Cluster, slots)
	t.mask = slots - 1
	t.generation.Store(1)
	t.markAllEmpty()
}

var emptyInfo = packInfo(0, 0, 0, emptyDepth, Exact)

// markAllEmpty stamps every entry's info word with the empty-slot encoding.
// A freshly make()'d Cluster slice is all-zero, which unpackInfo would
// otherwise decode as a spuriously valid depth-0 Exact entry.
func (t *Table) markAllEmpty() {
	for i := range t.clusters {
		c := &t.clusters[i]
		for j := range c.entries {
			c.entries[j].info.Store(emptyInfo)
		}
	}
}

func highestPowerOfTwo(x uint64) uint64 {
	if x == 0 {
		return 1
	}
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x - x>>1
}

// Clear zeroes every entry and resets the generation counter.
func (t *Table) Clear() {
	for i := range t.clusters {
		t.clusters[i] = Cluster{}
	}
	t.generation.Store(1)
	t.markAllEmpty()
}

// NewGeneration increments the age tag. On wrap to 0, every stored entry's
// age is reset to 0 so that age comparisons remain monotonic.
func (t *Table) NewGeneration() {
	g := t.generation.Add(1)
	if uint8(g) == 0 {
		for i := range t.clusters {
			c := &t.clusters[i]
			for j := range c.entries {
				info := c.entries[j].info.Load()
				info = setAge(info, 0)
				c.entries[j].info.Store(info)
			}
		}
		t.generation.Store(1)
	}
}

func (t *Table) index(key board.ZobristKey) uint64 {
	return uint64(key) & t.mask
}

// Probe returns the entry matching key, if present. A key mismatch (both
// 16-bit fragments must agree) is treated as absent, which also silently
// absorbs any torn concurrent read.
func (t *Table) Probe(key board.ZobristKey) (Entry, bool) {
	c := &t.clusters[t.index(key)]
	keyLo, keyHi := keyFragments(key)

	for i := range c.entries {
		info := c.entries[i].info.Load()
		lo, hi, _, depth, bound := unpackInfo(info)
		if depth == emptyDepth {
			continue
		}
		if lo != keyLo || hi != keyHi {
			continue
		}
		data := c.entries[i].data.Load()
		m, value, staticEval := unpackData(data)
		return Entry{Value: value, Depth: depth, Bound: bound, Best: m, StaticEval: staticEval}, true
	}
	return Entry{}, false
}

// Store records a search result for key, per the replacement policy: update
// in place on a matching key, except that an incoming Upper bound shallower
// than a stored Exact/Lower for the same key is dropped; else take a free
// slot; else evict the cluster's lowest-scored entry, where score favors
// deeper, newer, more exact entries.
func (t *Table) Store(key board.ZobristKey, value int32, depth int, bound Bound, best board.Move, staticEval int32) {
	c := &t.clusters[t.index(key)]
	keyLo, keyHi := keyFragments(key)
	age := uint8(t.generation.Load())

	if depth > 255 {
		depth = 255
	}
	if depth < 0 {
		depth = 0
	}

	data := packData(best, value, staticEval)
	newInfo := packInfo(keyLo, keyHi, age, depth, bound)

	for i := range c.entries {
		info := c.entries[i].info.Load()
		lo, hi, _, existingDepth, existingBound := unpackInfo(info)
		if existingDepth != emptyDepth && lo == keyLo && hi == keyHi {
			if bound == Upper && existingBound != Upper && existingDepth > depth {
				return
			}
			c.entries[i].data.Store(data)
			c.entries[i].info.Store(newInfo)
			return
		}
	}

	for i := range c.entries {
		info := c.entries[i].info.Load()
		_, _, _, existingDepth, _ := unpackInfo(info)
		if existingDepth == emptyDepth {
			c.entries[i].data.Store(data)
			c.entries[i].info.Store(newInfo)
			return
		}
	}

	worst := 0
	worstScore := slotScore(c.entries[0].info.Load(), age)
	for i := 1; i < len(c.entries); i++ {
		s := slotScore(c.entries[i].info.Load(), age)
		if s < worstScore {
			worstScore = s
			worst = i
		}
	}
	c.entries[worst].data.Store(data)
	c.entries[worst].info.Store(newInfo)
}

func slotScore(info uint64, currentAge uint8) int {
	_, _, age, depth, bound := unpackInfo(info)
	bias := 0
	switch bound {
	case Exact:
		bias = 2
	case Lower:
		bias = 1
	case Upper:
		bias = 0
	}
	ageDelta := int(currentAge - age)
	return int(depth)*256 + bias - ageDelta
}

func keyFragments(key board.ZobristKey) (lo, hi uint16) {
	return uint16(key), uint16(key >> 16)
}

func setAge(info uint64, age uint8) uint64 {
	const ageMask = uint64(0xff) << 32
	return (info &^ ageMask) | (uint64(age) << 32)
}

func packInfo(keyLo, keyHi uint16, age uint8, depth int, bound Bound) uint64 {
	var info uint64
	info |= uint64(keyLo)
	info |= uint64(keyHi) << 16
	info |= uint64(age) << 32
	info |= uint64(uint8(depth)) << 40
	info |= uint64(bound) << 48
	if depth == emptyDepth {
		info |= 1 << 50 // empty-slot marker
	}
	return info
}

func unpackInfo(info uint64) (keyLo, keyHi uint16, age uint8, depth int, bound Bound) {
	keyLo = uint16(info)
	keyHi = uint16(info >> 16)
	age = uint8(info >> 32)
	if info&(1<<50) != 0 {
		return keyLo, keyHi, age, emptyDepth, Exact
	}
	depth = int(uint8(info >> 40))
	bound = Bound(uint8(info >> 48))
	return keyLo, keyHi, age, depth, bound
}

// packMove encodes a board.Move into 19 bits: from(6) to(6) promotion(3)
// castle(2) isCapture(1) isEnPassant(1).
func packMove(m board.Move) uint32 {
	var v uint32
	v |= uint32(m.From)
	v |= uint32(m.To) << 6
	v |= uint32(m.Promotion) << 12
	v |= uint32(m.Castle) << 15
	if m.IsCapture {
		v |= 1 << 17
	}
	if m.IsEnPassant {
		v |= 1 << 18
	}
	return v
}

func unpackMove(v uint32) board.Move {
	return board.Move{
		From:        board.Square(v & 0x3f),
		To:          board.Square((v >> 6) & 0x3f),
		Promotion:   board.PieceType((v >> 12) & 0x7),
		Castle:      board.CastleSide((v >> 15) & 0x3),
		IsCapture:   v&(1<<17) != 0,
		IsEnPassant: v&(1<<18) != 0,
	}
}

func packData(m board.Move, value, staticEval int32) uint64 {
	var data uint64
	data |= uint64(packMove(m))
	data |= uint64(uint16(int16(value))) << 19
	data |= uint64(uint16(int16(staticEval))) << 35
	return data
}

func unpackData(data uint64) (board.Move, int32, int32) {
	m := unpackMove(uint32(data & 0x7ffff))
	value := int32(int16(uint16(data >> 19)))
	staticEval := int32(int16(uint16(data >> 35)))
	return m, value, staticEval
}

// ValueToTT adjusts a mate-distance score computed at ply into a
// ply-independent value suitable for storage, so that mate distances
// remain correct across different root distances to the same position.
func ValueToTT(value int32, ply int) int32 {
	switch {
	case value >= MateThreshold:
		return value + int32(ply)
	case value <= -MateThreshold:
		return value - int32(ply)
	default:
		return value
	}
}

// ValueFromTT reverses ValueToTT at probe time.
func ValueFromTT(value int32, ply int) int32 {
	switch {
	case value >= MateThreshold:
		return value - int32(ply)
	case value <= -MateThreshold:
		return value + int32(ply)
	default:
		return value
	}
}
