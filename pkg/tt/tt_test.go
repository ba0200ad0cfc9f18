package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/tt"
)

func TestStoreProbeRoundTrip(t *testing.T) {
	table := tt.NewTable(1)

	key := board.ZobristKey(0x1234567890abcdef)
	m := board.Move{From: board.E2, To: board.E4}

	table.Store(key, 123, 4, tt.Lower, m, 45)

	e, ok := table.Probe(key)
	require.True(t, ok)
	assert.Equal(t, int32(123), e.Value)
	assert.Equal(t, 4, e.Depth)
	assert.Equal(t, tt.Lower, e.Bound)
	assert.Equal(t, int32(45), e.StaticEval)
	assert.True(t, m.Equals(e.Best))
}

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := tt.NewTable(1)
	_, ok := table.Probe(board.ZobristKey(42))
	assert.False(t, ok)
}

func TestClusterEvictsLowestScored(t *testing.T) {
	table := tt.NewTable(1)

	// Five keys sharing the same low bits (so they hash into one cluster)
	// but distinct key-high fragments (so each is a genuinely distinct
	// entry, not an update-in-place) force eviction on the fifth store.
	const sameSlot = uint64(7)
	var keys []board.ZobristKey
	for i := uint64(0); i < 5; i++ {
		keys = append(keys, board.ZobristKey(sameSlot|(i<<16)))
	}

	for i, k := range keys[:4] {
		table.Store(k, int32(i), i, tt.Exact, board.Move{}, 0)
	}
	table.Store(keys[4], 99, 10, tt.Exact, board.Move{}, 0)

	// The deepest, most recently stored entry must survive.
	e, ok := table.Probe(keys[4])
	require.True(t, ok)
	assert.Equal(t, int32(99), e.Value)

	// The shallowest entry (depth 0) scored lowest and was the one evicted.
	_, ok = table.Probe(keys[0])
	assert.False(t, ok)
}

func TestNewGenerationAdvancesAge(t *testing.T) {
	table := tt.NewTable(1)
	key := board.ZobristKey(99)
	table.Store(key, 1, 1, tt.Exact, board.Move{}, 0)
	table.NewGeneration()
	table.NewGeneration()

	_, ok := table.Probe(key)
	assert.True(t, ok, "generation bump must not invalidate existing entries")
}

func TestResizeCoercesZeroToMinimumOneCluster(t *testing.T) {
	table := tt.NewTable(0)
	table.Store(board.ZobristKey(1), 5, 1, tt.Exact, board.Move{}, 0)
	_, ok := table.Probe(board.ZobristKey(1))
	assert.True(t, ok)
}

func TestMateScorePlyAdjustment(t *testing.T) {
	mateIn2 := int32(tt.Mate - 3)
	stored := tt.ValueToTT(mateIn2, 5)
	got := tt.ValueFromTT(stored, 5)
	assert.Equal(t, mateIn2, got)

	storedAtDifferentPly := tt.ValueToTT(mateIn2, 5)
	gotAtRootPly := tt.ValueFromTT(storedAtDifferentPly, 1)
	assert.NotEqual(t, mateIn2, gotAtRootPly, "mate distance must be measured relative to the probing ply")
}
