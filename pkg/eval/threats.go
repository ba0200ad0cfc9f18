package eval

import "github.com/herohde/morlock-core/pkg/board"

// threats returns the threats term for us, from us's perspective: pawn
// attacks on enemy minors/rooks/queens, pieces hanging (attacked and
// undefended), and a minor piece attacking the enemy queen. The Threat*,
// Hanging* and MinorOnQueen weights are stored as penalties to the
// threatened side, so the sum is negated to credit us.
func (e *Evaluator) threats(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()
	occ := b.All()

	var score Pair

	pawnAttacks := board.PawnAttacks(us, b.Pieces(us, board.Pawn))
	if bb := pawnAttacks & (b.Pieces(them, board.Knight) | b.Pieces(them, board.Bishop)); bb != 0 {
		score = score.Add(w.ThreatPawnMinor.Scale(int32(bb.PopCount())))
	}
	if bb := pawnAttacks & b.Pieces(them, board.Rook); bb != 0 {
		score = score.Add(w.ThreatPawnRook.Scale(int32(bb.PopCount())))
	}
	if bb := pawnAttacks & b.Pieces(them, board.Queen); bb != 0 {
		score = score.Add(w.ThreatPawnQueen.Scale(int32(bb.PopCount())))
	}

	for t := board.Knight; t <= board.Queen; t++ {
		for bb := b.Pieces(them, t); bb != 0; {
			sq, rest := bb.PopLSB()
			bb = rest
			if attackers(b, sq, us, occ) == 0 {
				continue
			}
			if attackers(b, sq, them, occ) != 0 {
				continue // defended
			}
			switch t {
			case board.Knight, board.Bishop:
				score = score.Add(w.HangingMinor)
			case board.Rook:
				score = score.Add(w.HangingRook)
			case board.Queen:
				score = score.Add(w.HangingQueen)
			}
		}
	}

	minors := b.Pieces(us, board.Knight) | b.Pieces(us, board.Bishop)
	for bb := minors; bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest
		t := b.PieceOn(sq).Type
		if pieceAttackSquares(t, sq, occ)&b.Pieces(them, board.Queen) != 0 {
			score = score.Add(w.MinorOnQueen)
		}
	}

	return score.Neg()
}

// space returns the space term for us: own third/fourth-rank squares (from
// us's side) that are safe — not attacked by an enemy pawn — counted as
// controlled space.
func (e *Evaluator) space(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()

	var ranks [2]board.Rank
	if us == board.White {
		ranks = [2]board.Rank{board.Rank3, board.Rank4}
	} else {
		ranks = [2]board.Rank{board.Rank6, board.Rank5}
	}

	var zone board.Bitboard
	for _, r := range ranks {
		zone |= board.BitRank(r)
	}
	zone &^= b.Occupied(us)

	enemyPawnAttacks := board.PawnAttacks(them, b.Pieces(them, board.Pawn))
	safe := zone &^ enemyPawnAttacks

	return w.SpaceBonus.Scale(int32(safe.PopCount()))
}
