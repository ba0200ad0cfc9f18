package eval

import "github.com/herohde/morlock-core/pkg/board"

var centerSquares = [4]board.Square{board.D4, board.D5, board.E4, board.E5}

// squareColor reports whether sq is a light square, for the bad-bishop and
// bishop-pair terms (same-colored bishops interact differently with pawns).
func squareColor(sq board.Square) bool {
	return (sq.File().V()+sq.Rank().V())%2 == 1
}

// pieceTerms covers bishop pair/bad bishop, knight outpost/rim, and center
// control for one side, from that side's perspective (positive favors us).
func (e *Evaluator) pieceTerms(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()
	var score Pair

	ownPawns := b.Pieces(us, board.Pawn)
	enemyPawns := b.Pieces(them, board.Pawn)
	occ := b.All()

	bishops := b.Pieces(us, board.Bishop)
	if bishops.PopCount() >= 2 {
		score = score.Add(w.BishopPair)
	}
	for bb := bishops; bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest
		light := squareColor(sq)
		for pb := ownPawns; pb != 0; {
			psq, prest := pb.PopLSB()
			pb = prest
			if squareColor(psq) == light {
				score = score.Add(w.BadBishopPawn)
			}
		}
	}

	for bb := b.Pieces(us, board.Knight); bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest
		if sq.File() == board.FileA || sq.File() == board.FileH {
			score = score.Add(w.KnightRim)
		}
		if isOutpost(ownPawns, enemyPawns, us, sq) {
			score = score.Add(w.KnightOutpost)
		}
	}

	for _, sq := range centerSquares {
		if attackers(b, sq, us, occ) != 0 {
			score = score.Add(w.CenterControl)
		}
	}

	score = score.Add(e.rookTerms(b, us))

	return score
}

func isOutpost(ownPawns, enemyPawns board.Bitboard, us board.Color, sq board.Square) bool {
	if board.PawnAttacks(us.Opponent(), enemyPawns).IsSet(sq) {
		return false // currently attacked by an enemy pawn
	}
	if !board.PawnAttacks(us, ownPawns).IsSet(sq) {
		return false // not defended by a friendly pawn
	}
	f := sq.File().V()
	threat := enemyPawns & forwardMask(us, sq) & adjacentFilesMask(f)
	return threat == 0
}

func (e *Evaluator) rookTerms(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()
	ownPawns := b.Pieces(us, board.Pawn)
	enemyPawns := b.Pieces(them, board.Pawn)
	occ := b.All()

	seventh := board.Rank7
	if us == board.Black {
		seventh = board.Rank2
	}

	var score Pair
	rooks := b.Pieces(us, board.Rook)
	for bb := rooks; bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest

		fileMask := board.BitFile(sq.File())
		switch {
		case ownPawns&fileMask == 0 && enemyPawns&fileMask == 0:
			score = score.Add(w.RookOpenFile)
		case ownPawns&fileMask == 0:
			score = score.Add(w.RookSemiOpenFile)
		}

		if sq.Rank() == seventh {
			score = score.Add(w.RookOn7th)
		}

		if board.SlidingAttacks(board.RookSlider, sq, occ)&rooks != 0 {
			score = score.Add(w.ConnectedRooks)
		}

		for pb := ownPawns; pb != 0; {
			psq, prest := pb.PopLSB()
			pb = prest
			if psq.File() != sq.File() {
				continue
			}
			if isPassed(ownPawns, enemyPawns, us, psq) && isBehindOnFile(us, sq, psq) {
				score = score.Add(w.RookBehindPasser)
			}
		}
	}
	return score
}

// isBehindOnFile reports whether rookSq sits behind pawnSq on the pawn's
// march toward promotion, from us's perspective.
func isBehindOnFile(us board.Color, rookSq, pawnSq board.Square) bool {
	if us == board.White {
		return rookSq.Rank() < pawnSq.Rank()
	}
	return rookSq.Rank() > pawnSq.Rank()
}
