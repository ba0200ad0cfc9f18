package board

// SEEPieceValue is the piece-value table used by static exchange evaluation
// (the evaluator's default material weights use the same P..Q values):
// P=100, N=320, B=330, R=500, Q=950, K=20000.
var SEEPieceValue = [NumPieceTypes]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  950,
	King:   20000,
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker returns the square and type of the cheapest piece of
// color side present in attackers, scanning in ascending piece-value order.
func leastValuableAttacker(b *Board, attackers Bitboard, side Color) (Square, PieceType, bool) {
	for t := Pawn; t < NumPieceTypes; t++ {
		set := attackers & b.Pieces(side, t)
		if set != 0 {
			return set.LSB(), t, true
		}
	}
	return NoSquare, None, false
}

// SEE runs the static exchange evaluation swap algorithm on m's target
// square, returning the net material change (in centipawns, from the
// mover's perspective) of the full capture sequence, including x-ray
// attackers revealed as blockers are removed.
func SEE(pos *Position, m Move) int {
	b := pos.Board()
	us := pos.SideToMove()
	toSq := m.To

	occ := b.All()
	var targetType PieceType
	if m.IsEnPassant {
		targetType = Pawn
		occ = occ.Clear(epCaptureSquare(toSq, us))
	} else {
		targetType = b.PieceOn(toSq).Type
	}
	occ = occ.Clear(m.From)

	curType := b.PieceOn(m.From).Type
	if m.Promotion != None {
		curType = m.Promotion
	}

	gain := make([]int, 1, 32)
	gain[0] = SEEPieceValue[targetType]
	side := us.Opponent()

	for {
		d := len(gain)
		gain = append(gain, SEEPieceValue[curType]-gain[d-1])
		if maxInt(-gain[d-1], gain[d]) < 0 {
			break
		}

		attackers := pos.attackersOfColor(toSq, side, occ) & occ
		sq, pt, ok := leastValuableAttacker(b, attackers, side)
		if !ok {
			break
		}
		occ = occ.Clear(sq)
		curType = pt
		side = side.Opponent()
	}

	for d := len(gain) - 2; d > 0; d-- {
		gain[d-1] = -maxInt(-gain[d-1], gain[d])
	}
	return gain[0]
}

// SEENonNegative reports whether the capture sequence initiated by m is
// non-losing for the side to move.
func SEENonNegative(pos *Position, m Move) bool {
	return SEE(pos, m) >= 0
}
