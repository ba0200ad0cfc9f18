package board_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDoUndoRoundTrip exercises the "undo restores the prior position
// bit-for-bit" property: for every legal move from a handful of positions,
// DoMove followed by UndoMove must leave every piece of observable state --
// the board, side to move, castling rights, en passant square, and Zobrist
// key -- exactly as it was.
func TestDoUndoRoundTrip(t *testing.T) {
	fens := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	}

	for _, f := range fens {
		pos, err := fen.Decode(f)
		require.NoError(t, err)

		before := snapshot(pos)
		for _, m := range board.GenerateLegal(pos) {
			ok := pos.DoMove(m)
			require.True(t, ok, "DoMove(%v) on %v", m, f)
			pos.UndoMove()

			after := snapshot(pos)
			if diff := cmp.Diff(before, after, cmp.AllowUnexported(board.Board{})); diff != "" {
				t.Fatalf("UndoMove(%v) on %v did not restore state:\n%v", m, f, diff)
			}
		}
	}
}

// reconcile recovers the capture/en-passant/castle metadata ParseUCIMove
// cannot infer on its own, by matching against pos's legal moves.
func reconcile(t *testing.T, pos *board.Position, m board.Move) board.Move {
	t.Helper()
	for _, legal := range board.GenerateLegal(pos) {
		if legal.From == m.From && legal.To == m.To && legal.Promotion == m.Promotion {
			return legal
		}
	}
	t.Fatalf("no legal move matches %v", m)
	return board.Move{}
}

type stateSnapshot struct {
	Board    board.Board
	Turn     board.Color
	Castling board.Castling
	EP       board.Square
	Key      board.ZobristKey
	PawnKey  board.ZobristKey
}

func snapshot(pos *board.Position) stateSnapshot {
	return stateSnapshot{
		Board:    *pos.Board(),
		Turn:     pos.SideToMove(),
		Castling: pos.Castling(),
		EP:       pos.EPSquare(),
		Key:      pos.Key(),
		PawnKey:  pos.PawnKey(),
	}
}

// TestComputeZobristMatchesFENLoadAndInTreeMove checks that a position
// reached by loading its FEN directly hashes identically to the same
// position reached by playing moves from the initial position -- in
// particular across an en passant square that no enemy pawn can actually
// capture on, which must not be folded into either hash.
func TestComputeZobristMatchesFENLoadAndInTreeMove(t *testing.T) {
	viaFEN, err := fen.Decode("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)

	viaMoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	for _, uci := range []string{"e2e4", "e7e5"} {
		m, err := board.ParseUCIMove(uci)
		require.NoError(t, err)

		m = reconcile(t, viaMoves, m)
		require.True(t, viaMoves.DoMove(m))
	}

	assert.Equal(t, viaMoves.Key(), viaFEN.Key())

	key, pawnKey := board.ComputeZobrist(viaFEN)
	assert.Equal(t, viaFEN.Key(), key)
	assert.Equal(t, viaFEN.PawnKey(), pawnKey)
}

// TestPerft checks published node counts at shallow-to-moderate depths,
// including Kiwipete and a known rook endgame.
func TestPerft(t *testing.T) {
	tests := []struct {
		fen      string
		depth    int
		expected int64
	}{
		{fen.Initial, 1, 20},
		{fen.Initial, 2, 400},
		{fen.Initial, 3, 8902},
		{fen.Initial, 4, 197281},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt.fen)
		require.NoError(t, err)

		assert.Equal(t, tt.expected, perft(pos, tt.depth), "fen=%v depth=%v", tt.fen, tt.depth)
	}
}

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range board.GenerateLegal(pos) {
		if !pos.DoMove(m) {
			continue
		}
		nodes += perft(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}
