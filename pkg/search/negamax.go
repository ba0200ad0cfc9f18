package search

import (
	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/tt"
)

// negamax searches to depth from ply, within [alpha, beta], and returns a
// score in [-Inf, Inf] from the side-to-move's perspective: draw checks at
// the top, depth<=0 delegates to quiescence, TT cutoff, in-check extension,
// static-eval caching, reverse-futility/null-move/ProbCut/IID/singular-
// extension, then the ordered move loop with threat-signal-gated
// LMP/futility/SEE-pruning/LMR and a PVS re-search, move-ordering updates
// on cutoff, and a TT store. excluded, if non-null, is skipped in the move
// loop -- used by the singular-extension probe to search every move but
// the TT move.
func (s *Searcher) negamax(depth, alpha, beta, ply int, excluded board.Move) int32 {
	s.nodes++
	if s.limits.stopped(s.nodes) {
		return 0
	}

	pv := ply == 0 || alpha+1 != beta
	isRoot := ply == 0

	if !isRoot && s.pos.IsDraw() {
		return 0
	}
	if depth <= 0 {
		return s.quiescence(alpha, beta, ply)
	}
	if ply >= tt.MaxPly-1 {
		return int32(s.Eval.Evaluate(s.pos))
	}

	origAlpha := alpha
	inCheck := s.pos.InCheck()

	var ttMove board.Move
	var ttEntry tt.Entry
	haveTTEntry := false
	if entry, ok := s.TT.Probe(s.pos.Key()); ok {
		ttMove = entry.Best
		ttEntry = entry
		haveTTEntry = true
		if entry.Depth >= depth && !pv {
			v := tt.ValueFromTT(entry.Value, ply)
			switch entry.Bound {
			case tt.Exact:
				return v
			case tt.Lower:
				if v >= int32(beta) {
					return v
				}
			case tt.Upper:
				if v <= int32(alpha) {
					return v
				}
			}
		}
	}

	if inCheck {
		depth++
	}

	staticEval := int32(s.Eval.Evaluate(s.pos))
	s.stack[ply].staticEval = staticEval

	if !pv && !inCheck {
		if s.Config.UseReverseFutility && depth <= rRFP {
			margin := int32(depth) * s.Config.FutilityMargin
			if staticEval-margin >= int32(beta) {
				return staticEval
			}
		}

		if s.Config.UseNullMove && depth >= 2 && staticEval >= int32(beta) && hasNonPawnMaterial(s.pos) {
			r := 3 + depth/4
			s.pos.DoNull()
			s.stack[ply].move = board.NullMove
			score := -s.negamax(depth-1-r, -beta, -beta+1, ply+1, board.NullMove)
			s.pos.UndoNull()

			if score >= int32(beta) && score < tt.MateThreshold {
				return score
			}
		}

		if s.Config.UseProbCut && depth >= dProbCut {
			if score, ok := s.probCut(depth, beta, ply); ok {
				return score
			}
		}
	}

	if s.Config.UseIID && ttMove.IsNull() && depth >= dIID && pv {
		s.negamax(depth-2, alpha, beta, ply, board.NullMove)
		if entry, ok := s.TT.Probe(s.pos.Key()); ok {
			ttMove = entry.Best
		}
	}

	singularExtension := 0
	if s.Config.UseSingularExt && pv && !isRoot && excluded.IsNull() && !ttMove.IsNull() &&
		depth >= dSingularExt && haveTTEntry && ttEntry.Bound != tt.Upper && ttEntry.Depth >= depth-singularTTDepthSlack {
		ttValue := tt.ValueFromTT(ttEntry.Value, ply)
		singularBeta := ttValue - int32(depth)*singularMarginPerPly
		singularDepth := (depth - 1) / 2

		probe := s.negamax(singularDepth, int(singularBeta)-1, int(singularBeta), ply, ttMove)
		if probe < singularBeta {
			singularExtension = 1
		}
	}

	threat := false
	if s.Config.UseThreatSignals && !pv && !inCheck && depth <= s.Config.ThreatSignalsDepthMax {
		threat = threatened(s.pos)
	}

	legal := board.GenerateLegal(s.pos)
	if len(legal) == 0 {
		return mateScore(inCheck, ply)
	}

	order := s.orderMoves(legal, ply, ttMove)

	var best board.Move
	bestScore := int32(-tt.Inf)
	moveNumber := 0
	quietNumber := 0

	for {
		m, ok := order.Next()
		if !ok {
			break
		}
		if !excluded.IsNull() && m.Equals(excluded) {
			continue
		}
		moveNumber++

		quiet := m.IsQuiet()
		isKiller := m.Equals(s.killers[ply][0]) || m.Equals(s.killers[ply][1])
		giveCheck := moveGivesCheck(s.pos, m)

		threatExempt := false
		if quiet {
			quietNumber++
			if threat && quietNumber <= s.Config.ThreatSignalsQuietCap {
				moving := s.pos.Board().PieceOn(m.From).Type
				if s.history[s.pos.SideToMove()][moving][m.To] >= s.Config.ThreatSignalsHistMin {
					threatExempt = true
				}
			}
		}

		if !pv && !inCheck && quiet && !isKiller && bestScore > -tt.MateThreshold && !threatExempt {
			if s.Config.UseLMP && depth <= s.Config.LMPDepthMax && moveNumber >= s.Config.LMPBase+depth*depth {
				continue
			}
			if s.Config.UseFutility && depth == 1 && !giveCheck && staticEval+s.Config.FutilityMargin <= int32(alpha) {
				continue
			}
		}
		if s.Config.UseSEEPruning && m.IsCapture && depth <= 3 && !inCheck {
			if board.SEE(s.pos, m) < -50*depth {
				continue
			}
		}

		if !s.pos.DoMove(m) {
			continue
		}
		s.stack[ply].move = m

		extend := 0
		if m.Equals(ttMove) {
			extend = singularExtension
		}
		newDepth := depth - 1 + extend

		reduction := 0
		if s.Config.UseLMR && depth >= 3 && moveNumber > s.Config.FullRescoreTopK && quiet && !inCheck && !isKiller && !giveCheck && !threatExempt {
			reduction = lmrReduction(depth, moveNumber)
			if s.history[s.pos.SideToMove().Opponent()][movedPieceType(s.pos, m)][m.To] > 0 {
				if reduction > 0 {
					reduction--
				}
			}
			if reduction > s.Config.LMRMax {
				reduction = s.Config.LMRMax
			}
		}

		var score int32
		if moveNumber == 1 {
			score = -s.negamax(newDepth, -beta, -alpha, ply+1, board.NullMove)
		} else {
			d := newDepth - reduction
			if d < 0 {
				d = 0
			}
			score = -s.negamax(d, -alpha-1, -alpha, ply+1, board.NullMove)
			if score > int32(alpha) && (reduction > 0 || score < int32(beta)) {
				score = -s.negamax(newDepth, -beta, -alpha, ply+1, board.NullMove)
			}
		}

		s.pos.UndoMove()

		if score > bestScore {
			bestScore = score
			best = m
			if score > int32(alpha) {
				alpha = int(score)
			}
		}

		if alpha >= beta {
			s.recordCutoff(m, ply, depth)
			break
		}
	}

	bound := tt.Upper
	if bestScore >= int32(beta) {
		bound = tt.Lower
	} else if bestScore > int32(origAlpha) {
		bound = tt.Exact
	}
	s.TT.Store(s.pos.Key(), tt.ValueToTT(bestScore, ply), depth, bound, best, staticEval)

	return bestScore
}

// probCut tries a handful of good captures at a shallow depth to see if any
// of them refutes beta by a wide margin.
func (s *Searcher) probCut(depth, beta, ply int) (int32, bool) {
	captures := board.GenerateLegalCaptures(s.pos)
	threshold := int32(beta) + probCutMargin

	for _, m := range captures {
		if board.SEE(s.pos, m) < int(threshold-s.stack[ply].staticEval) {
			continue
		}
		if !s.pos.DoMove(m) {
			continue
		}
		s.stack[ply].move = m
		score := -s.negamax(depth-4, -int(threshold), -int(threshold)+1, ply+1, board.NullMove)
		s.pos.UndoMove()

		if score >= threshold {
			return score, true
		}
	}
	return 0, false
}

func hasNonPawnMaterial(pos *board.Position) bool {
	us := pos.SideToMove()
	b := pos.Board()
	for t := board.Knight; t <= board.Queen; t++ {
		if b.Pieces(us, t) != 0 {
			return true
		}
	}
	return false
}

func movedPieceType(pos *board.Position, m board.Move) board.PieceType {
	return pos.Board().PieceOn(m.To).Type
}

// moveGivesCheck reports whether playing m leaves the opponent in check,
// used to exempt checking moves from LMR/futility reduction.
func moveGivesCheck(pos *board.Position, m board.Move) bool {
	if !pos.DoMove(m) {
		return false
	}
	check := pos.InCheck()
	pos.UndoMove()
	return check
}
