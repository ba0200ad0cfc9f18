package board

import "fmt"

// GameState holds everything about a Position beyond raw piece placement:
// whose turn it is, castling rights, the en-passant target (if any), and
// the move counters used by the 50-move rule and FEN round-tripping.
type GameState struct {
	SideToMove     Color
	Castling       Castling
	EPSquare       Square // NoSquare if the last move was not a double pawn push.
	HalfmoveClock  int
	FullmoveNumber int
}

// StateInfo is the history record pushed by DoMove and popped by UndoMove,
// carrying everything needed to reverse the move's effect on Board and
// GameState without recomputation.
type StateInfo struct {
	Move            Move
	PrevCastling    Castling
	PrevEPSquare    Square
	PrevHalfmove    int
	CapturedPiece   Piece
	CapturedSquare  Square
	PrevKey         ZobristKey
	PrevPawnKey     ZobristKey
}

// nullState is the analogous history record for DoNull/UndoNull.
type nullState struct {
	PrevEPSquare Square
	PrevKey      ZobristKey
}

// Position owns a Board, a GameState, and the do/undo history stack needed
// to make and unmake moves in place. It is exclusive to the thread doing
// search; each worker clones the root Position (see Clone).
type Position struct {
	board Board
	state GameState

	key     ZobristKey
	pawnKey ZobristKey

	history     []StateInfo
	nullHistory []nullState
}

// NewPosition returns an empty position: no pieces, White to move, no
// castling rights, no en-passant target. fen.Decode builds on it through the
// Set* methods below.
func NewPosition() *Position {
	return &Position{
		state: GameState{
			SideToMove:     White,
			EPSquare:       NoSquare,
			FullmoveNumber: 1,
		},
	}
}

// Clone returns an independent deep copy, suitable for handing to a search
// worker. The move history stack is copied too, so that repetition
// detection in the clone still sees the moves made before the clone; the
// null-move stack is not copied.
func (p *Position) Clone() *Position {
	c := &Position{
		board:   p.board,
		state:   p.state,
		key:     p.key,
		pawnKey: p.pawnKey,
		history: append([]StateInfo(nil), p.history...),
	}
	return c
}

func (p *Position) Board() *Board           { return &p.board }

// The Set* methods below mutate GameState directly, bypassing do/undo
// bookkeeping. They exist solely for position setup (FEN loading, test
// fixtures) — the caller must finish with RecomputeHash.
func (p *Position) SetSideToMove(c Color)       { p.state.SideToMove = c }
func (p *Position) SetCastling(c Castling)      { p.state.Castling = c }
func (p *Position) SetEPSquare(sq Square)       { p.state.EPSquare = sq }
func (p *Position) SetHalfmoveClock(n int)      { p.state.HalfmoveClock = n }
func (p *Position) SetFullmoveNumber(n int)     { p.state.FullmoveNumber = n }

// RecomputeHash recomputes the Zobrist key and pawn sub-key from scratch.
// Called once after a position's pieces and GameState have been set up
// directly (outside of DoMove), e.g. when loading a FEN.
func (p *Position) RecomputeHash() {
	p.key, p.pawnKey = ComputeZobrist(p)
}
func (p *Position) SideToMove() Color       { return p.state.SideToMove }
func (p *Position) Castling() Castling      { return p.state.Castling }
func (p *Position) EPSquare() Square        { return p.state.EPSquare }
func (p *Position) HalfmoveClock() int      { return p.state.HalfmoveClock }
func (p *Position) FullmoveNumber() int     { return p.state.FullmoveNumber }
func (p *Position) Key() ZobristKey         { return p.key }
func (p *Position) PawnKey() ZobristKey     { return p.pawnKey }
func (p *Position) HistoryLen() int         { return len(p.history) }

// InCheck reports whether the side to move's king is currently attacked.
func (p *Position) InCheck() bool {
	us := p.state.SideToMove
	return p.IsAttacked(p.board.King(us), us.Opponent())
}

// attackersOfColor returns the bitboard of all squares holding a piece of
// color by that attacks sq, given the occupancy occ. A single routine
// serving both IsAttacked and SEE, rather than four independent per-piece
// callers computing the same rays.
func (p *Position) attackersOfColor(sq Square, by Color, occ Bitboard) Bitboard {
	b := &p.board
	var att Bitboard
	att |= PawnAttacks(by.Opponent(), BitMask(sq)) & b.Pieces(by, Pawn)
	att |= KnightAttacks(sq) & b.Pieces(by, Knight)
	att |= KingAttacks(sq) & b.Pieces(by, King)
	att |= SlidingAttacks(BishopSlider, sq, occ) & (b.Pieces(by, Bishop) | b.Pieces(by, Queen))
	att |= SlidingAttacks(RookSlider, sq, occ) & (b.Pieces(by, Rook) | b.Pieces(by, Queen))
	return att
}

// attackersTo returns the attackers of sq from both colors, given occ.
func (p *Position) attackersTo(sq Square, occ Bitboard) Bitboard {
	return p.attackersOfColor(sq, White, occ) | p.attackersOfColor(sq, Black, occ)
}

// IsAttacked reports whether any piece of color by attacks sq given the
// current occupancy.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.attackersOfColor(sq, by, p.board.allOcc) != 0
}

func (p *Position) setPieceWithHash(sq Square, pc Piece) {
	p.board.SetPiece(sq, pc)
	k := zobristPieceKey(pc.Color, pc.Type, sq)
	p.key ^= k
	if pc.Type == Pawn {
		p.pawnKey ^= k
	}
}

func (p *Position) removePieceWithHash(sq Square, pc Piece) {
	if pc.Type == None {
		return
	}
	k := zobristPieceKey(pc.Color, pc.Type, sq)
	p.key ^= k
	if pc.Type == Pawn {
		p.pawnKey ^= k
	}
	p.board.RemovePiece(sq)
}

func epCaptureSquare(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

func castlingRookSquares(us Color, side CastleSide) (from, to Square) {
	switch {
	case us == White && side == KingSide:
		return H1, F1
	case us == White && side == QueenSide:
		return A1, D1
	case us == Black && side == KingSide:
		return H8, F8
	default:
		return A8, D8
	}
}

// epPawnAdjacent reports whether an enemy pawn stands beside the pawn that
// just double-pushed past epSq (same rank, adjacent file), i.e. whether the
// EP capture is actually available to the side not moving. Folding the EP
// file into the hash only in that case keeps positions differing solely by
// an irrelevant EP square hash-identical.
func epPawnAdjacent(b *Board, epSq Square, justMoved Color) bool {
	them := justMoved.Opponent()
	captureRank := epCaptureSquare(epSq, them).Rank()
	f := epSq.File()
	for _, df := range []int{-1, 1} {
		nf := int(f) + df
		if nf < 0 || nf >= 8 {
			continue
		}
		sq := NewSquare(File(nf), captureRank)
		if b.Pieces(them, Pawn).IsSet(sq) {
			return true
		}
	}
	return false
}

var castlingLossMask [64]Castling

func init() {
	castlingLossMask[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	castlingLossMask[H1] = WhiteKingSideCastle
	castlingLossMask[A1] = WhiteQueenSideCastle
	castlingLossMask[E8] = BlackKingSideCastle | BlackQueenSideCastle
	castlingLossMask[H8] = BlackKingSideCastle
	castlingLossMask[A8] = BlackQueenSideCastle
}

// DoMove applies m and returns false iff the mover's king would be left in
// check, in which case the move is fully undone and no history is pushed.
func (p *Position) DoMove(m Move) bool {
	us := p.state.SideToMove
	them := us.Opponent()
	mover := p.board.PieceOn(m.From)

	si := StateInfo{
		Move:         m,
		PrevCastling: p.state.Castling,
		PrevEPSquare: p.state.EPSquare,
		PrevHalfmove: p.state.HalfmoveClock,
		PrevKey:      p.key,
		PrevPawnKey:  p.pawnKey,

		CapturedPiece:  NoPiece,
		CapturedSquare: NoSquare,
	}

	// (1) Clear EP file from hash (if it was folded in); clear ep_square.
	if p.state.EPSquare != NoSquare && epPawnAdjacent(&p.board, p.state.EPSquare, them) {
		p.key ^= zobristEPFileKey(p.state.EPSquare.File())
	}

	// (2) Resolve and remove any captured piece, including EP.
	if m.IsEnPassant {
		capSq := epCaptureSquare(m.To, us)
		cap := p.board.PieceOn(capSq)
		si.CapturedPiece, si.CapturedSquare = cap, capSq
		p.removePieceWithHash(capSq, cap)
	} else if m.IsCapture {
		cap := p.board.PieceOn(m.To)
		si.CapturedPiece, si.CapturedSquare = cap, m.To
		p.removePieceWithHash(m.To, cap)
	}

	// (3) Move the piece, applying promotion if any.
	p.removePieceWithHash(m.From, mover)
	destType := mover.Type
	if m.Promotion != None {
		destType = m.Promotion
	}
	p.setPieceWithHash(m.To, NewPiece(destType, us))

	// (4) Castle: relocate the rook.
	if m.Castle != NoCastle {
		rFrom, rTo := castlingRookSquares(us, m.Castle)
		rook := p.board.PieceOn(rFrom)
		p.removePieceWithHash(rFrom, rook)
		p.setPieceWithHash(rTo, rook)
	}

	// (5) Halfmove clock.
	if mover.Type == Pawn || si.CapturedPiece.Type != None {
		p.state.HalfmoveClock = 0
	} else {
		p.state.HalfmoveClock++
	}

	// (6) Double pawn push sets ep_square; fold the EP file into the hash
	// only if an enemy pawn can actually execute the capture.
	newEP := NoSquare
	if mover.Type == Pawn && absSquareDelta(m.From, m.To) == 16 {
		newEP = Square((int(m.From) + int(m.To)) / 2)
		if epPawnAdjacent(&p.board, newEP, us) {
			p.key ^= zobristEPFileKey(newEP.File())
		}
	}
	p.state.EPSquare = newEP

	// (7) Recompute castling rights.
	oldCastling := p.state.Castling
	newCastling := oldCastling.Remove(castlingLossMask[m.From]).Remove(castlingLossMask[m.To])
	if newCastling != oldCastling {
		p.key ^= zobristCastlingKey(oldCastling) ^ zobristCastlingKey(newCastling)
		p.state.Castling = newCastling
	}

	// (8) Flip side to move.
	p.key ^= zobristSide
	p.state.SideToMove = them
	if us == Black {
		p.state.FullmoveNumber++
	}

	if p.IsAttacked(p.board.King(us), them) {
		p.unwind(si)
		return false
	}

	p.history = append(p.history, si)
	return true
}

// unwind reverses the board/state mutation described by si, without
// touching the history stack. Used both by UndoMove (after popping si) and
// by DoMove when a move turns out to leave the mover's king in check.
func (p *Position) unwind(si StateInfo) {
	them := p.state.SideToMove
	us := them.Opponent()

	if us == Black {
		p.state.FullmoveNumber--
	}
	p.state.SideToMove = us

	m := si.Move
	if m.Castle != NoCastle {
		rFrom, rTo := castlingRookSquares(us, m.Castle)
		rook := p.board.PieceOn(rTo)
		p.board.RemovePiece(rTo)
		p.board.SetPiece(rFrom, rook)
	}

	destType := p.board.PieceOn(m.To).Type
	p.board.RemovePiece(m.To)
	moverType := destType
	if m.Promotion != None {
		moverType = Pawn
	}
	p.board.SetPiece(m.From, NewPiece(moverType, us))

	if si.CapturedPiece.Type != None {
		p.board.SetPiece(si.CapturedSquare, si.CapturedPiece)
	}

	p.state.Castling = si.PrevCastling
	p.state.EPSquare = si.PrevEPSquare
	p.state.HalfmoveClock = si.PrevHalfmove
	p.key = si.PrevKey
	p.pawnKey = si.PrevPawnKey
}

// UndoMove reverses the most recently applied move, restoring the position
// — including the Zobrist key and pawn sub-key — bit-for-bit.
func (p *Position) UndoMove() {
	n := len(p.history)
	si := p.history[n-1]
	p.history = p.history[:n-1]
	p.unwind(si)
}

// DoNull makes a null move: flips the side to move without moving any
// piece. Only legal when the side to move is not in check.
func (p *Position) DoNull() {
	ns := nullState{PrevEPSquare: p.state.EPSquare, PrevKey: p.key}
	p.nullHistory = append(p.nullHistory, ns)

	if p.state.EPSquare != NoSquare {
		if epPawnAdjacent(&p.board, p.state.EPSquare, p.state.SideToMove.Opponent()) {
			p.key ^= zobristEPFileKey(p.state.EPSquare.File())
		}
		p.state.EPSquare = NoSquare
	}
	p.key ^= zobristSide
	p.state.SideToMove = p.state.SideToMove.Opponent()
}

// UndoNull reverses the most recent DoNull.
func (p *Position) UndoNull() {
	n := len(p.nullHistory)
	ns := p.nullHistory[n-1]
	p.nullHistory = p.nullHistory[:n-1]

	p.state.SideToMove = p.state.SideToMove.Opponent()
	p.state.EPSquare = ns.PrevEPSquare
	p.key = ns.PrevKey
}

func absSquareDelta(a, b Square) int {
	d := int(b) - int(a)
	if d < 0 {
		return -d
	}
	return d
}

// InsufficientMaterial reports true for K vs K, K+minor vs K, and K+B vs K+B
// with same-colored bishops — positions in which neither side can force
// checkmate.
func (p *Position) InsufficientMaterial() bool {
	b := &p.board
	if b.Pieces(White, Pawn)|b.Pieces(Black, Pawn) != 0 {
		return false
	}
	if b.Pieces(White, Rook)|b.Pieces(Black, Rook) != 0 {
		return false
	}
	if b.Pieces(White, Queen)|b.Pieces(Black, Queen) != 0 {
		return false
	}

	wMinors := b.Pieces(White, Knight).PopCount() + b.Pieces(White, Bishop).PopCount()
	bMinors := b.Pieces(Black, Knight).PopCount() + b.Pieces(Black, Bishop).PopCount()

	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors+bMinors == 1 {
		return true
	}
	if wMinors == 1 && bMinors == 1 {
		wb := b.Pieces(White, Bishop)
		bb := b.Pieces(Black, Bishop)
		if wb != 0 && bb != 0 && b.Pieces(White, Knight) == 0 && b.Pieces(Black, Knight) == 0 {
			return squareColor(wb.LSB()) == squareColor(bb.LSB())
		}
		return false
	}
	return false
}

func squareColor(sq Square) Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return Black
	}
	return White
}

// FiftyMoveRule reports whether the halfmove clock has reached the 50-move
// (100-halfmove) threshold.
func (p *Position) FiftyMoveRule() bool {
	return p.state.HalfmoveClock >= 100
}

// ThreefoldRepetition scans the history for two earlier occurrences of the
// current key within the halfmove window (i.e. since the last irreversible
// move), returning true when the current position has occurred three times
// in total.
func (p *Position) ThreefoldRepetition() bool {
	return p.repetitionCount() >= 3
}

// IsRepetitionDraw reports whether the current position has occurred at
// least once earlier since the last irreversible move — the single-
// occurrence rule search nodes apply to cut short repetition cycles short
// of an actual threefold.
func (p *Position) IsRepetitionDraw() bool {
	return p.repetitionCount() >= 2
}

func (p *Position) repetitionCount() int {
	count := 1
	n := len(p.history)
	limit := n - p.state.HalfmoveClock
	if limit < 0 {
		limit = 0
	}
	for i := n - 2; i >= limit; i -= 2 {
		if p.history[i].PrevKey == p.key {
			count++
		}
	}
	return count
}

// IsDraw reports whether the position is drawn by one of the rules the
// search itself must recognize (50-move, insufficient material, repetition).
func (p *Position) IsDraw() bool {
	return p.FiftyMoveRule() || p.InsufficientMaterial() || p.IsRepetitionDraw()
}

func (p *Position) String() string {
	return fmt.Sprintf("%v\n%v to move, castling=%v, ep=%v, halfmove=%v, fullmove=%v",
		p.board.String(), p.state.SideToMove, p.state.Castling, p.state.EPSquare, p.state.HalfmoveClock, p.state.FullmoveNumber)
}
