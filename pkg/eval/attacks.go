package eval

import "github.com/herohde/morlock-core/pkg/board"

// attackers returns the pieces of color by that attack sq, given occupancy
// occ. Adapted from board.Position's unexported attackersOfColor: the
// evaluator only sees the public Board, so the same per-piece-type union is
// rebuilt here against board's exported attack-table accessors.
func attackers(b *board.Board, sq board.Square, by board.Color, occ board.Bitboard) board.Bitboard {
	var att board.Bitboard
	att |= board.KnightAttacks(sq) & b.Pieces(by, board.Knight)
	att |= board.KingAttacks(sq) & b.Pieces(by, board.King)

	bishopsQueens := b.Pieces(by, board.Bishop) | b.Pieces(by, board.Queen)
	att |= board.SlidingAttacks(board.BishopSlider, sq, occ) & bishopsQueens

	rooksQueens := b.Pieces(by, board.Rook) | b.Pieces(by, board.Queen)
	att |= board.SlidingAttacks(board.RookSlider, sq, occ) & rooksQueens

	att |= board.PawnAttacks(by.Opponent(), board.BitMask(sq)) & b.Pieces(by, board.Pawn)
	return att
}

// pieceAttackSquares returns the squares a single piece of type t on sq
// attacks, given board occupancy occ. Pawns are excluded: pawn attacks
// depend on color, not just square, and callers that need them use
// board.PawnAttacks directly.
func pieceAttackSquares(t board.PieceType, sq board.Square, occ board.Bitboard) board.Bitboard {
	switch t {
	case board.Knight:
		return board.KnightAttacks(sq)
	case board.Bishop:
		return board.SlidingAttacks(board.BishopSlider, sq, occ)
	case board.Rook:
		return board.SlidingAttacks(board.RookSlider, sq, occ)
	case board.Queen:
		return board.SlidingAttacks(board.BishopSlider, sq, occ) | board.SlidingAttacks(board.RookSlider, sq, occ)
	case board.King:
		return board.KingAttacks(sq)
	default:
		return 0
	}
}
