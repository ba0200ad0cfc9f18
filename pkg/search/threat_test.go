package search

import (
	"testing"

	"github.com/herohde/morlock-core/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreatenedDetectsHangingPiece(t *testing.T) {
	// White knight on d5 is attacked by the black e6 pawn and defended by
	// nothing: a live threat against the side to move.
	pos, err := fen.Decode("4k3/8/4p3/3N4/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.True(t, threatened(pos))
}

func TestThreatenedIsFalseOnQuietPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.False(t, threatened(pos))
}

func TestThreatenedIgnoresEquallyValuedExchanges(t *testing.T) {
	// White knight on d5, black knight on f6 can capture it but the
	// exchange is even, not a one-sided threat (minAttackerValue ties the
	// threatened piece's own value, which the strict "<" comparison treats
	// as no threat).
	pos, err := fen.Decode("4k3/8/5n2/3N4/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.False(t, threatened(pos))
}
