package eval

import "github.com/herohde/morlock-core/pkg/board"

// centerDistance is the taxicab distance from sq to the board's central
// 2x2 square, used by every piece-square formula below.
func centerDistance(sq board.Square) int {
	r, f := sq.Rank().V(), sq.File().V()
	dr := r - 3
	if dr < 0 {
		dr = 3 - r
	}
	df := f - 3
	if df < 0 {
		df = 3 - f
	}
	return dr + df
}

// buildPST fills w.PST from White's perspective, one centralization-bonus
// formula per piece type: knights and bishops reward the center most
// strongly, rooks and queens mildly, pawns barely, and the king swaps from
// a corner-safety preference in the middlegame to a centralizing one in the
// endgame (the only term where MG and EG genuinely diverge).
func buildPST(w *Weights) {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		cd := centerDistance(sq)

		w.PST[board.Pawn][sq] = Pair{int32(4 - cd), int32(4 - cd)}
		w.PST[board.Knight][sq] = Pair{int32(48 - 6*cd), int32(48 - 6*cd)}
		w.PST[board.Bishop][sq] = Pair{int32(32 - 4*cd), int32(32 - 4*cd)}
		w.PST[board.Rook][sq] = Pair{int32(8 - cd), int32(8 - cd)}
		w.PST[board.Queen][sq] = Pair{int32(10 - cd), int32(10 - cd)}
		w.PST[board.King][sq] = Pair{int32(-10 - cd), int32(20 - 2*cd)}
	}
}

// pstValue looks up the piece-square value for a piece of type t and color
// c on sq, mirroring the table vertically for Black.
func pstValue(w *Weights, t board.PieceType, c board.Color, sq board.Square) Pair {
	if c == board.Black {
		sq = sq.Mirror()
	}
	return w.PST[t][sq]
}
