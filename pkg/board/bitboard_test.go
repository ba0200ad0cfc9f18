package board_test

import (
	"testing"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboard(t *testing.T) {

	t.Run("popcount", func(t *testing.T) {
		tests := []struct {
			bb       board.Bitboard
			expected int
		}{
			{board.EmptyBitboard, 0},
			{board.BitMask(board.G4), 1},
			{board.BitMask(board.G3) | board.BitMask(board.G4), 2},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.bb.PopCount())
		}
	})

	t.Run("string", func(t *testing.T) {
		tests := []struct {
			bb       board.Bitboard
			expected string
		}{
			{board.EmptyBitboard, "--------/--------/--------/--------/--------/--------/--------/--------"},
			{board.BitMask(board.H1), "--------/--------/--------/--------/--------/--------/--------/-------X"},
			{board.BitMask(board.G3) | board.BitMask(board.G4), "--------/--------/--------/--------/------X-/------X-/--------/--------"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.bb.String())
		}
	})

	t.Run("lsb and poplsb", func(t *testing.T) {
		bb := board.BitMask(board.C3) | board.BitMask(board.F6)
		assert.Equal(t, board.C3, bb.LSB())

		sq, rest := bb.PopLSB()
		assert.Equal(t, board.C3, sq)
		assert.Equal(t, board.F6, rest.LSB())
		assert.Equal(t, 1, rest.PopCount())

		assert.Equal(t, board.NoSquare, board.EmptyBitboard.LSB())
	})

	t.Run("set and clear", func(t *testing.T) {
		bb := board.EmptyBitboard.Set(board.D4)
		assert.True(t, bb.IsSet(board.D4))

		bb = bb.Clear(board.D4)
		assert.False(t, bb.IsSet(board.D4))
		assert.Equal(t, board.EmptyBitboard, bb)
	})

	t.Run("king", func(t *testing.T) {
		tests := []struct {
			sq       board.Square
			expected string
		}{
			{board.H1, "--------/--------/--------/--------/--------/--------/------XX/------X-"},
			{board.D1, "--------/--------/--------/--------/--------/--------/--XXX---/--X-X---"},
			{board.D3, "--------/--------/--------/--------/--XXX---/--X-X---/--XXX---/--------"},
			{board.A3, "--------/--------/--------/--------/XX------/-X------/XX------/--------"},
			{board.B7, "XXX-----/X-X-----/XXX-----/--------/--------/--------/--------/--------"},
			{board.A8, "-X------/XX------/--------/--------/--------/--------/--------/--------"},
			{board.H8, "------X-/------XX/--------/--------/--------/--------/--------/--------"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, board.KingAttacks(tt.sq).String())
		}
	})

	t.Run("knight", func(t *testing.T) {
		tests := []struct {
			sq       board.Square
			expected string
		}{
			{board.H1, "--------/--------/--------/--------/--------/------X-/-----X--/--------"},
			{board.D1, "--------/--------/--------/--------/--------/--X-X---/-X---X--/--------"},
			{board.D3, "--------/--------/--------/--X-X---/-X---X--/--------/-X---X--/--X-X---"},
			{board.A3, "--------/--------/--------/-X------/--X-----/--------/--X-----/-X------"},
			{board.B7, "---X----/--------/---X----/X-X-----/--------/--------/--------/--------"},
			{board.A8, "--------/--X-----/-X------/--------/--------/--------/--------/--------"},
			{board.H8, "--------/-----X--/------X-/--------/--------/--------/--------/--------"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, board.KnightAttacks(tt.sq).String())
		}
	})

	t.Run("pawn attacks", func(t *testing.T) {
		white := board.PawnAttacks(board.White, board.BitMask(board.E4))
		assert.True(t, white.IsSet(board.D5))
		assert.True(t, white.IsSet(board.F5))
		assert.Equal(t, 2, white.PopCount())

		black := board.PawnAttacks(board.Black, board.BitMask(board.E4))
		assert.True(t, black.IsSet(board.D3))
		assert.True(t, black.IsSet(board.F3))
		assert.Equal(t, 2, black.PopCount())
	})

	t.Run("between and line through", func(t *testing.T) {
		assert.True(t, board.Between(board.A1, board.A4).IsSet(board.A2))
		assert.True(t, board.Between(board.A1, board.A4).IsSet(board.A3))
		assert.Equal(t, 2, board.Between(board.A1, board.A4).PopCount())
		assert.Equal(t, board.EmptyBitboard, board.Between(board.A1, board.B3))

		assert.True(t, board.LineThrough(board.A1, board.C3).IsSet(board.H8))
		assert.Equal(t, board.EmptyBitboard, board.LineThrough(board.A1, board.B3))
	})
}
