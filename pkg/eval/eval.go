// Package eval implements the static position evaluator: tapered
// material+PST, pawn structure, king safety, threats, space, and endgame
// scaling, returning a centipawn score from the perspective of the side to
// move.
package eval

import "github.com/herohde/morlock-core/pkg/board"

// Evaluator is a static position evaluator with a tunable parameter set and
// eval/pawn-hash caches: one evaluate entry point, plus
// parameters()/set_parameters()/clear_caches() for an external tuner.
type Evaluator struct {
	weights *Weights
	pawns   pawnCache
	cache   evalCache
}

// NewEvaluator returns an Evaluator seeded with the built-in default
// parameters.
func NewEvaluator() *Evaluator {
	return &Evaluator{weights: DefaultWeights()}
}

// Parameters returns a flat copy of every tunable parameter, in stable
// order, for an external tuner.
func (e *Evaluator) Parameters() []int32 {
	return e.weights.Parameters()
}

// SetParameters overwrites the tunable parameters and invalidates both
// caches, since cached scores were computed under the old weights.
func (e *Evaluator) SetParameters(p []int32) error {
	if err := e.weights.SetParameters(p); err != nil {
		return err
	}
	e.ClearCaches()
	return nil
}

// ClearCaches empties the eval cache and the pawn-hash cache.
func (e *Evaluator) ClearCaches() {
	e.pawns.clear()
	e.cache.clear()
}

// Evaluate returns the position's score in centipawns, from the
// perspective of the side to move.
func (e *Evaluator) Evaluate(pos *board.Position) int32 {
	white := e.evaluateWhitePerspective(pos)
	if pos.SideToMove() == board.Black {
		return -white
	}
	return white
}

func (e *Evaluator) evaluateWhitePerspective(pos *board.Position) int32 {
	if s, ok := e.cache.get(pos.Key()); ok {
		return s
	}

	b := pos.Board()
	phase := Phase(b)

	var total Pair
	total = total.Add(e.material(b))
	total = total.Add(e.pst(b))
	total = total.Add(e.pawnStructure(b, pos.PawnKey()))
	total = total.Add(e.pieceTerms(b, board.White)).Sub(e.pieceTerms(b, board.Black))
	total = total.Add(e.kingSafety(b, board.White)).Sub(e.kingSafety(b, board.Black))
	total = total.Add(e.threats(b, board.White)).Sub(e.threats(b, board.Black))
	total = total.Add(e.space(b, board.White)).Sub(e.space(b, board.Black))

	if isOppositeColoredBishops(b) {
		total.EG = total.EG * e.weights.OppositeBishopScale / 256
	}

	score := Taper(total, phase)
	e.cache.put(pos.Key(), score)
	return score
}
