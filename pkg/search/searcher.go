package search

import (
	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/eval"
	"github.com/herohde/morlock-core/pkg/tt"
)

// stackEntry carries per-ply search-local state: the move played to reach
// this ply (for counter-move/follow-up lookups) and the static eval
// computed at this node (reused by reverse-futility/null-move/futility).
type stackEntry struct {
	move       board.Move
	staticEval int32
}

// Searcher runs iterative-deepening PVS over a single Position. Not
// thread-safe: pkg/engine gives each lazy-SMP worker its own Searcher over
// its own cloned Position, sharing only the TT and the stop flag.
type Searcher struct {
	Eval   *eval.Evaluator
	TT     *tt.Table
	Config Config

	pos    *board.Position
	limits Limits
	nodes  uint64

	stack [tt.MaxPly]stackEntry

	killers     [tt.MaxPly][2]board.Move
	history     [board.NumColors][board.NumPieceTypes][board.NumSquares]int32
	counterMove [board.NumColors][board.NumPieceTypes][board.NumSquares]board.Move
	followUp    [board.NumColors][board.NumPieceTypes][board.NumSquares]board.Move
}

// NewSearcher returns a Searcher over pos, sharing e and table with any
// sibling workers.
func NewSearcher(pos *board.Position, e *eval.Evaluator, table *tt.Table, cfg Config) *Searcher {
	return &Searcher{Eval: e, TT: table, Config: cfg, pos: pos}
}

// resetHistory clears the move-ordering heuristics carried between root
// searches; a fresh FindBestMove call starts from a clean slate.
func (s *Searcher) resetHistory() {
	s.history = [board.NumColors][board.NumPieceTypes][board.NumSquares]int32{}
	s.killers = [tt.MaxPly][2]board.Move{}
	s.counterMove = [board.NumColors][board.NumPieceTypes][board.NumSquares]board.Move{}
	s.followUp = [board.NumColors][board.NumPieceTypes][board.NumSquares]board.Move{}
}

// recordCutoff updates the move-ordering heuristics after a beta cutoff on
// a quiet move: killers, counter-move, follow-up, and depth-squared history.
func (s *Searcher) recordCutoff(m board.Move, ply, depth int) {
	if m.IsCapture || m.IsPromotion() {
		return
	}

	k := &s.killers[ply]
	if !m.Equals(k[0]) {
		k[1] = k[0]
		k[0] = m
	}

	us := s.pos.SideToMove()
	moving := s.pos.Board().PieceOn(m.From).Type // m was already undone by the caller
	bonus := int32(depth * depth)

	if ply > 0 {
		if prev := s.stack[ply-1].move; !prev.IsNull() {
			prevPiece := s.pos.Board().PieceOn(prev.To).Type
			s.counterMove[us][prevPiece][prev.To] = m
		}
	}
	if ply > 1 {
		if prior := s.stack[ply-2].move; !prior.IsNull() {
			priorPiece := s.pos.Board().PieceOn(prior.To).Type
			s.followUp[us][priorPiece][prior.To] = m
		}
	}

	s.history[us][moving][m.To] += bonus
	if s.history[us][moving][m.To] > 1<<20 {
		// Rescale to keep history from overflowing across a long game of
		// cutoffs without ever losing relative ordering.
		for pt := board.Pawn; pt <= board.King; pt++ {
			for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
				s.history[us][pt][sq] /= 2
			}
		}
	}
}

// mateScore returns the mate-distance score at ply for the side that has no
// legal move: -Mate+ply if in check (mated), 0 if stalemate.
func mateScore(inCheck bool, ply int) int32 {
	if inCheck {
		return int32(-tt.Mate + ply)
	}
	return 0
}
