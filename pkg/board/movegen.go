package board

// GeneratePseudoLegal appends every pseudo-legal move for the side to move
// into list. Pseudo-legal here means the move is well-formed and obeys
// piece movement rules, but may leave the mover's own king in check —
// GenerateLegal (or a direct DoMove attempt) filters those out.
func GeneratePseudoLegal(pos *Position, list *MoveList) {
	generate(pos, list, false)
}

// GeneratePseudoLegalCaptures appends only capturing (and promoting) moves,
// for use by quiescence search.
func GeneratePseudoLegalCaptures(pos *Position, list *MoveList) {
	generate(pos, list, true)
}

func generate(pos *Position, list *MoveList, capturesOnly bool) {
	us := pos.SideToMove()
	them := us.Opponent()
	b := pos.Board()
	own := b.Occupied(us)
	enemy := b.Occupied(them)
	occ := b.All()

	generatePawnMoves(pos, list, us, capturesOnly)

	for t := Knight; t <= King; t++ {
		if t == King {
			continue
		}
		pieces := b.Pieces(us, t)
		for pieces != 0 {
			var from Square
			from, pieces = pieces.PopLSB()
			attacks := pieceAttacks(t, from, occ) &^ own
			targets := attacks & enemy
			for targets != 0 {
				var to Square
				to, targets = targets.PopLSB()
				list.Add(Move{From: from, To: to, Promotion: None, IsCapture: true})
			}
			if !capturesOnly {
				quiets := attacks &^ enemy
				for quiets != 0 {
					var to Square
					to, quiets = quiets.PopLSB()
					list.Add(NewMove(from, to))
				}
			}
		}
	}

	generateKingMoves(pos, list, us, capturesOnly)
	if !capturesOnly {
		generateCastles(pos, list, us)
	}
}

func pieceAttacks(t PieceType, from Square, occ Bitboard) Bitboard {
	switch t {
	case Knight:
		return KnightAttacks(from)
	case Bishop:
		return SlidingAttacks(BishopSlider, from, occ)
	case Rook:
		return SlidingAttacks(RookSlider, from, occ)
	case Queen:
		return SlidingAttacks(BishopSlider, from, occ) | SlidingAttacks(RookSlider, from, occ)
	case King:
		return KingAttacks(from)
	default:
		return EmptyBitboard
	}
}

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

func generatePawnMoves(pos *Position, list *MoveList, us Color, capturesOnly bool) {
	b := pos.Board()
	them := us.Opponent()
	occ := b.All()
	enemy := b.Occupied(them)
	pawns := b.Pieces(us, Pawn)

	promoRank := Rank8
	startRank := Rank2
	forward := 8
	if us == Black {
		promoRank = Rank1
		startRank = Rank7
		forward = -8
	}

	remaining := pawns
	for remaining != 0 {
		var from Square
		from, remaining = remaining.PopLSB()

		one := Square(int(from) + forward)
		if one.IsValid() && occ&BitMask(one) == 0 && (!capturesOnly || one.Rank() == promoRank) {
			addPawnMove(list, from, one, promoRank)
			if !capturesOnly && from.Rank() == startRank {
				two := Square(int(from) + 2*forward)
				if occ&BitMask(two) == 0 {
					list.Add(NewMove(from, two))
				}
			}
		}

		caps := PawnAttacks(us, BitMask(from)) & enemy
		for caps != 0 {
			var to Square
			to, caps = caps.PopLSB()
			addPawnCapture(list, from, to, promoRank)
		}

		if ep := pos.EPSquare(); ep != NoSquare {
			if PawnAttacks(us, BitMask(from))&BitMask(ep) != 0 {
				list.Add(Move{From: from, To: ep, Promotion: None, IsCapture: true, IsEnPassant: true})
			}
		}
	}
}

func addPawnMove(list *MoveList, from, to Square, promoRank Rank) {
	if to.Rank() == promoRank {
		for _, pt := range promotionPieces {
			list.Add(Move{From: from, To: to, Promotion: pt})
		}
		return
	}
	list.Add(NewMove(from, to))
}

func addPawnCapture(list *MoveList, from, to Square, promoRank Rank) {
	if to.Rank() == promoRank {
		for _, pt := range promotionPieces {
			list.Add(Move{From: from, To: to, Promotion: pt, IsCapture: true})
		}
		return
	}
	list.Add(Move{From: from, To: to, Promotion: None, IsCapture: true})
}

func generateKingMoves(pos *Position, list *MoveList, us Color, capturesOnly bool) {
	b := pos.Board()
	from := b.King(us)
	attacks := KingAttacks(from) &^ b.Occupied(us)
	enemy := b.Occupied(us.Opponent())

	targets := attacks & enemy
	for targets != 0 {
		var to Square
		to, targets = targets.PopLSB()
		list.Add(Move{From: from, To: to, Promotion: None, IsCapture: true})
	}
	if !capturesOnly {
		quiets := attacks &^ enemy
		for quiets != 0 {
			var to Square
			to, quiets = quiets.PopLSB()
			list.Add(NewMove(from, to))
		}
	}
}

func generateCastles(pos *Position, list *MoveList, us Color) {
	b := pos.Board()
	occ := b.All()
	them := us.Opponent()

	type castle struct {
		right               Castling
		kingFrom, kingTo    Square
		transit             Square
		pathEmpty           Bitboard
		side                CastleSide
	}

	var candidates []castle
	if us == White {
		candidates = []castle{
			{WhiteKingSideCastle, E1, G1, F1, BitMask(F1) | BitMask(G1), KingSide},
			{WhiteQueenSideCastle, E1, C1, D1, BitMask(D1) | BitMask(C1) | BitMask(B1), QueenSide},
		}
	} else {
		candidates = []castle{
			{BlackKingSideCastle, E8, G8, F8, BitMask(F8) | BitMask(G8), KingSide},
			{BlackQueenSideCastle, E8, C8, D8, BitMask(D8) | BitMask(C8) | BitMask(B8), QueenSide},
		}
	}

	for _, c := range candidates {
		if !pos.Castling().IsAllowed(c.right) {
			continue
		}
		if occ&c.pathEmpty != 0 {
			continue
		}
		if pos.IsAttacked(c.kingFrom, them) || pos.IsAttacked(c.transit, them) || pos.IsAttacked(c.kingTo, them) {
			continue
		}
		list.Add(Move{From: c.kingFrom, To: c.kingTo, Promotion: None, Castle: c.side})
	}
}

// GenerateLegal returns every legal move for the side to move, found by
// generating pseudo-legal moves and attempting DoMove/UndoMove on each —
// correctness-first, per the generator's design.
func GenerateLegal(pos *Position) []Move {
	var buf MoveList
	GeneratePseudoLegal(pos, &buf)

	moves := make([]Move, 0, buf.Len())
	for i := 0; i < buf.Len(); i++ {
		m := buf.Get(i)
		if pos.DoMove(m) {
			pos.UndoMove()
			moves = append(moves, m)
		}
	}
	return moves
}

// GenerateLegalCaptures returns every legal capturing (or promoting) move.
func GenerateLegalCaptures(pos *Position) []Move {
	var buf MoveList
	GeneratePseudoLegalCaptures(pos, &buf)

	moves := make([]Move, 0, buf.Len())
	for i := 0; i < buf.Len(); i++ {
		m := buf.Get(i)
		if pos.DoMove(m) {
			pos.UndoMove()
			moves = append(moves, m)
		}
	}
	return moves
}

// IsMate reports whether the side to move has no legal moves while in
// check. IsStalemate reports the same with the side to move not in check.
func IsMate(pos *Position) bool {
	return pos.InCheck() && len(GenerateLegal(pos)) == 0
}

func IsStalemate(pos *Position) bool {
	return !pos.InCheck() && len(GenerateLegal(pos)) == 0
}
