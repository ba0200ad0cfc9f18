package search

import (
	"time"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/tt"
)

// Result is one iterative-deepening depth's outcome: the fully-searched
// depth, its score and best move, the recovered principal variation, the
// node count accumulated so far, and the wall time the depth took.
type Result struct {
	Depth   int
	Nodes   uint64
	Score   int32
	Best    board.Move
	PV      []board.Move
	Elapsed time.Duration
}

// IterativeDeepening runs depth 1..limits.MaxDepth (or until stopped),
// widening an aspiration window around the previous depth's score. onDepth,
// if non-nil, is called after every completed depth — the engine layer
// uses it to log per-depth progress. Depth 1's result is kept even if a
// stop is observed during it; a later depth cut short is discarded.
func (s *Searcher) IterativeDeepening(limits Limits, onDepth func(Result)) Result {
	s.resetHistory()
	s.limits = limits
	s.nodes = 0

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 || maxDepth >= tt.MaxPly {
		maxDepth = tt.MaxPly - 1
	}

	var last Result
	var prevScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()

		score, stopped := s.searchDepthWithAspiration(depth, prevScore)
		if stopped && depth > 1 {
			// Abandon this depth's partial result; keep the last complete one.
			break
		}

		best, pv := s.recoverPV(depth)
		result := Result{
			Depth:   depth,
			Nodes:   s.nodes,
			Score:   score,
			Best:    best,
			PV:      pv,
			Elapsed: time.Since(start),
		}
		last = result
		prevScore = score

		if onDepth != nil {
			onDepth(result)
		}

		if stopped {
			break
		}
	}

	return last
}

// searchDepthWithAspiration runs negamax at depth, widening the window
// (double, then full) on a fail-low/fail-high. Returns whether the search
// was cut short by the stop flag or the node cap.
func (s *Searcher) searchDepthWithAspiration(depth int, prevScore int32) (int32, bool) {
	alpha, beta := int32(-tt.Inf), int32(tt.Inf)
	if s.Config.UseAspiration && depth > 1 {
		w := s.Config.AspirationWindow
		if w <= 0 {
			w = 20
		}
		alpha = prevScore - w
		beta = prevScore + w
	}

	window := beta - alpha
	for {
		score := s.negamax(depth, int(alpha), int(beta), 0, board.NullMove)
		if s.stopRequested() {
			return score, true
		}

		if score <= alpha && alpha > -tt.Inf {
			window *= 2
			alpha = prevScore - window
			if alpha < -tt.Inf {
				alpha = -tt.Inf
			}
			continue
		}
		if score >= beta && beta < tt.Inf {
			window *= 2
			beta = prevScore + window
			if beta > tt.Inf {
				beta = tt.Inf
			}
			continue
		}
		return score, false
	}
}

func (s *Searcher) stopRequested() bool {
	if s.limits.MaxNodes > 0 && s.nodes >= s.limits.MaxNodes {
		return true
	}
	return s.limits.Stop != nil && s.limits.Stop.Load()
}

// recoverPV walks TT best moves from the root position to reconstruct the
// principal variation. maxLen bounds the walk so a TT cycle (two positions
// each naming the other as best) cannot loop forever.
func (s *Searcher) recoverPV(maxLen int) (board.Move, []board.Move) {
	var pv []board.Move
	seen := map[board.ZobristKey]bool{}

	for len(pv) < maxLen && len(pv) < tt.MaxPly {
		key := s.pos.Key()
		if seen[key] {
			break
		}
		seen[key] = true

		entry, ok := s.TT.Probe(key)
		if !ok || entry.Best.IsNull() {
			break
		}
		if !s.pos.DoMove(entry.Best) {
			break
		}
		pv = append(pv, entry.Best)
	}
	for range pv {
		s.pos.UndoMove()
	}

	var best board.Move
	if len(pv) > 0 {
		best = pv[0]
	}
	return best, pv
}
