package search

import "github.com/herohde/morlock-core/pkg/board"

// threatAttackers returns the pieces of color by that attack sq, given
// occupancy occ. Adapted from board.Position's unexported attackersOfColor,
// the same per-piece-type union pkg/eval's attackers() rebuilds against
// board's exported attack-table accessors, since neither package can see
// Position's internal attack bitboards.
func threatAttackers(b *board.Board, sq board.Square, by board.Color, occ board.Bitboard) board.Bitboard {
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

// threatened reports whether the side to move has a piece attacked by a
// less valuable enemy piece: a live tactical threat that move-count and
// futility pruning should not discount just because the move is quiet.
// Used to gate late-move/futility pruning and LMR under
// Config.UseThreatSignals.
func threatened(pos *board.Position) bool {
	us := pos.SideToMove()
	them := us.Opponent()
	b := pos.Board()
	occ := b.All()

	for t := board.Pawn; t <= board.Queen; t++ {
		pieces := b.Pieces(us, t)
		for pieces != 0 {
			var sq board.Square
			sq, pieces = pieces.PopLSB()

			att := threatAttackers(b, sq, them, occ)
			if att == 0 {
				continue
			}
			if minAttackerValue(b, att) < board.SEEPieceValue[t] {
				return true
			}
		}
	}
	return false
}

// minAttackerValue returns the lowest SEEPieceValue among the pieces set in
// attackers.
func minAttackerValue(b *board.Board, attackers board.Bitboard) int {
	best := board.SEEPieceValue[board.King]
	for attackers != 0 {
		var sq board.Square
		sq, attackers = attackers.PopLSB()
		if v := board.SEEPieceValue[b.PieceOn(sq).Type]; v < best {
			best = v
		}
	}
	return best
}
