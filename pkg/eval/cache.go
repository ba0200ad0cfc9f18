package eval

import "github.com/herohde/morlock-core/pkg/board"

// evalCacheBits sizes the whole-position eval cache at 2^evalCacheBits
// entries, keyed by the position's full Zobrist key modulo the table size.
const evalCacheBits = 14

type evalCacheEntry struct {
	key   board.ZobristKey
	valid bool
	score int32 // final tapered score, from White's perspective
}

type evalCache struct {
	entries [1 << evalCacheBits]evalCacheEntry
}

func (c *evalCache) clear() {
	*c = evalCache{}
}

func (c *evalCache) get(key board.ZobristKey) (int32, bool) {
	e := &c.entries[uint64(key)&(1<<evalCacheBits-1)]
	if e.valid && e.key == key {
		return e.score, true
	}
	return 0, false
}

func (c *evalCache) put(key board.ZobristKey, score int32) {
	c.entries[uint64(key)&(1<<evalCacheBits-1)] = evalCacheEntry{key: key, valid: true, score: score}
}
