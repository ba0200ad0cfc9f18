// Package eval implements the static position evaluator: tapered
// material+PST, pawn structure, king safety, threats, space, and endgame
// scaling, returning a centipawn score from the perspective of the side to
// move.
package eval

import "github.com/herohde/morlock-core/pkg/board"

// Pair is a middlegame/endgame value pair. Most evaluation terms carry one,
// so that the final score can be linearly tapered by game phase.
type Pair struct {
	MG, EG int32
}

func (p Pair) Add(q Pair) Pair {
	return Pair{p.MG + q.MG, p.EG + q.EG}
}

func (p Pair) Sub(q Pair) Pair {
	return Pair{p.MG - q.MG, p.EG - q.EG}
}

func (p Pair) Scale(n int32) Pair {
	return Pair{p.MG * n, p.EG * n}
}

func (p Pair) Neg() Pair {
	return Pair{-p.MG, -p.EG}
}

// MaxPhase is the non-pawn, non-king material phase value of the starting
// position: 2 knights + 2 bishops + 2 rooks*2 + 1 queen*4, per side, doubled.
const MaxPhase = 24

// phaseWeight is the phase contribution of one piece of the given type.
var phaseWeight = [board.NumPieceTypes]int32{
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
}

// Phase computes the game phase in [0, MaxPhase] from non-pawn, non-king
// material: 24 at the start of the game, trending to 0 as material is
// traded off.
func Phase(b *board.Board) int32 {
	var phase int32
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for t := board.Knight; t <= board.Queen; t++ {
			phase += phaseWeight[t] * int32(b.Pieces(c, t).PopCount())
		}
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

// Taper combines a Pair into a single centipawn score by linear
// interpolation on the game phase: full weight to MG at phase==MaxPhase,
// full weight to EG at phase==0.
func Taper(p Pair, phase int32) int32 {
	return (p.MG*phase + p.EG*(MaxPhase-phase)) / MaxPhase
}
