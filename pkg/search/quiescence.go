package search

import (
	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/tt"
)

// quiescence resolves captures (and, while in check, all legal replies)
// until the position is quiet: stand-pat, captures-only generation ordered
// by MVV-LVA with SEE<0 captures skipped, and recursion with a negated
// window. The result is fail-soft, like negamax: the best score found
// (starting from stand-pat), which may lie outside [alpha, beta]; it is not
// clamped to alpha.
func (s *Searcher) quiescence(alpha, beta, ply int) int32 {
	s.nodes++
	if s.limits.stopped(s.nodes) {
		return 0
	}
	if s.pos.IsDraw() {
		return 0
	}
	if ply >= tt.MaxPly-1 {
		return int32(s.Eval.Evaluate(s.pos))
	}

	inCheck := s.pos.InCheck()

	var stand int32
	if !inCheck {
		stand = int32(s.Eval.Evaluate(s.pos))
		if stand >= int32(beta) {
			return stand
		}
		if stand > int32(alpha) {
			alpha = int(stand)
		}
	}

	var moves []board.Move
	if inCheck {
		// In check: the only way out is a legal move, so search everything
		// rather than captures-only.
		moves = board.GenerateLegal(s.pos)
	} else {
		moves = board.GenerateLegalCaptures(s.pos)
	}

	if len(moves) == 0 {
		if inCheck {
			return mateScore(true, ply)
		}
		return stand
	}

	order := s.orderMoves(moves, ply, board.Move{})

	hasLegal := false
	best := stand
	for {
		m, ok := order.Next()
		if !ok {
			break
		}

		if !inCheck && m.IsCapture && board.SEE(s.pos, m) < 0 {
			continue
		}

		if !s.pos.DoMove(m) {
			continue
		}
		s.stack[ply].move = m
		hasLegal = true
		score := -s.quiescence(-beta, -alpha, ply+1)
		s.pos.UndoMove()

		if score > best {
			best = score
			if score > int32(alpha) {
				alpha = int(score)
			}
		}
		if alpha >= beta {
			break
		}
	}

	if inCheck && !hasLegal {
		return mateScore(true, ply)
	}
	return best
}
