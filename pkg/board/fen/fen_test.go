package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/board/fen"
)

func TestDecodeInitial(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, pos.SideToMove())
	assert.Equal(t, board.FullCastlingRights, pos.Castling())
	assert.Equal(t, board.NoSquare, pos.EPSquare())
	assert.Equal(t, 0, pos.HalfmoveClock())
	assert.Equal(t, 1, pos.FullmoveNumber())

	assert.Equal(t, board.NewPiece(board.Rook, board.White), pos.Board().PieceOn(board.A1))
	assert.Equal(t, board.NewPiece(board.King, board.White), pos.Board().PieceOn(board.E1))
	assert.Equal(t, board.NewPiece(board.King, board.Black), pos.Board().PieceOn(board.E8))
	assert.Equal(t, board.NoPiece, pos.Board().PieceOn(board.E4))
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/4k3/8/8/4K3/7R w - - 0 1",
	}
	for _, want := range tests {
		pos, err := fen.Decode(want)
		require.NoError(t, err, want)
		assert.Equal(t, want, fen.Encode(pos))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKXNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, s := range tests {
		_, err := fen.Decode(s)
		assert.Error(t, err, s)
	}
}

func TestEnPassantFieldPreservedWhenLegal(t *testing.T) {
	pos, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", fen.Encode(pos))
}
