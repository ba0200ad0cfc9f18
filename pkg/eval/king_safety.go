package eval

import "github.com/herohde/morlock-core/pkg/board"

// kingSafety returns the king-safety term for us, from us's perspective
// (always <= 0: it only ever penalizes an exposed king). It sums attacker
// weights on the king ring, a per-extra-attacker ring bonus, pawn
// shelter/storm, an open-file penalty, and a rook/queen line-of-sight
// penalty, then clamps to +/-KSClamp. Shelter and storm look only at the
// king's file and the two adjacent files, and index Shelter/Storm by the
// rank distance from the king to the nearest own/enemy pawn on each of
// those files; they are not indexed by file distance. This is an
// MG-only term: king safety matters far less once material is traded down.
func (e *Evaluator) kingSafety(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()
	kingSq := b.King(us)
	occ := b.All()
	kf := kingSq.File().V()

	ring := board.KingAttacks(kingSq) | board.BitMask(kingSq)

	var danger, attackerCount int32
	for t := board.Knight; t <= board.Queen; t++ {
		var count int32
		for bb := b.Pieces(them, t); bb != 0; {
			sq, rest := bb.PopLSB()
			bb = rest
			if pieceAttackSquares(t, sq, occ)&ring != 0 {
				count++
			}
		}
		danger += w.KSAttackerWeight[t] * count
		attackerCount += count
	}
	if attackerCount > 1 {
		danger += w.KSRingBonus * (attackerCount - 1)
	}

	ownPawns := b.Pieces(us, board.Pawn)
	enemyPawns := b.Pieces(them, board.Pawn)
	for f := kf - 1; f <= kf+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		fileMask := board.BitFile(board.File(f))

		if ownPawns&fileMask == 0 {
			danger += w.KSOpenFile
			danger += w.KSMissingShield
		} else {
			danger += w.Shelter[clampIndex(nearestPawnRankDistance(ownPawns&fileMask, kingSq.Rank()))]
		}

		if enemyPawns&fileMask != 0 {
			storm := nearestPawnRankDistance(enemyPawns&fileMask, kingSq.Rank())
			danger += w.Storm[clampIndex(7-storm)]
		}
	}

	noKing := occ &^ board.BitMask(kingSq)
	rookQueens := b.Pieces(them, board.Queen) | b.Pieces(them, board.Rook)
	if board.SlidingAttacks(board.RookSlider, kingSq, noKing)&rookQueens != 0 {
		danger += w.KSLineOfSight
	}
	bishopQueens := b.Pieces(them, board.Queen) | b.Pieces(them, board.Bishop)
	if board.SlidingAttacks(board.BishopSlider, kingSq, noKing)&bishopQueens != 0 {
		danger += w.KSLineOfSight
	}

	penalty := -danger
	switch {
	case penalty < -w.KSClamp:
		penalty = -w.KSClamp
	case penalty > w.KSClamp:
		penalty = w.KSClamp
	}
	return Pair{MG: penalty, EG: 0}
}

func nearestPawnRankDistance(pawns board.Bitboard, kingRank board.Rank) int {
	best := 7
	for bb := pawns; bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest
		d := sq.Rank().V() - kingRank.V()
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	return best
}

func clampIndex(i int) int {
	switch {
	case i < 0:
		return 0
	case i > 7:
		return 7
	default:
		return i
	}
}
