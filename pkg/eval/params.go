package eval

import (
	"fmt"

	"github.com/herohde/morlock-core/pkg/board"
)

// Weights holds every tunable evaluation parameter in one struct. The order
// in which fields() walks them is the stable wire order exposed by
// Parameters()/SetParameters(), per the Texel-tuner contract: material,
// PSTs, pawn terms, king-safety weights, and so on.
//
// Most terms carry a middlegame/endgame Pair so the final score can be
// tapered by game phase. Several source constants (eval_shared.hpp) are not
// themselves phase-split; where the original gives one number, it is used
// for both halves of the Pair (see DESIGN.md).
type Weights struct {
	// Material, indexed by PieceType (Pawn..Queen; King is never scored).
	Material [board.NumPieceTypes]Pair

	// Piece-square tables, indexed [PieceType][Square], from White's
	// perspective; Black squares are mirrored at lookup time.
	PST [board.NumPieceTypes][board.NumSquares]Pair

	IsolatedPawn     Pair
	DoubledPawn      Pair
	BackwardPawn     Pair
	Phalanx          Pair
	CandidatePasser  Pair
	PassedRank       [8]Pair
	PassedBlocked    Pair
	PassedSupported  Pair
	PassedFreePath   Pair
	PassedKingBoost  int32 // EG-only: bonus per unit of friendly-king proximity
	PassedKingBlock  int32 // EG-only: penalty per unit of enemy-king proximity
	ConnectedPassers Pair

	BishopPair      Pair
	BadBishopPawn   Pair
	KnightOutpost   Pair
	CenterControl   Pair
	KnightRim       Pair

	RookOpenFile       Pair
	RookSemiOpenFile   Pair
	RookOn7th          Pair
	ConnectedRooks     Pair
	RookBehindPasser   Pair

	KSAttackerWeight [board.NumPieceTypes]int32 // MG-only: indexed Knight, Bishop, Rook, Queen
	KSRingBonus      int32
	KSMissingShield  int32
	KSOpenFile       int32
	KSLineOfSight    int32
	KSClamp          int32
	Shelter          [8]int32
	Storm            [8]int32

	ThreatPawnMinor Pair
	ThreatPawnRook  Pair
	ThreatPawnQueen Pair
	HangingMinor    Pair
	HangingRook     Pair
	HangingQueen    Pair
	MinorOnQueen    Pair

	SpaceBonus Pair

	// OppositeBishopScale scales the endgame half of the score (numerator
	// over 256) in opposite-colored-bishop endgames.
	OppositeBishopScale int32
}

// fields returns pointers to every tunable int32 in w, in the stable order
// used by Parameters/SetParameters. Pairs contribute two consecutive slots
// (MG, then EG).
func (w *Weights) fields() []*int32 {
	var fs []*int32
	p := func(pr *Pair) { fs = append(fs, &pr.MG, &pr.EG) }

	for i := range w.Material {
		p(&w.Material[i])
	}
	for t := range w.PST {
		for sq := range w.PST[t] {
			p(&w.PST[t][sq])
		}
	}

	p(&w.IsolatedPawn)
	p(&w.DoubledPawn)
	p(&w.BackwardPawn)
	p(&w.Phalanx)
	p(&w.CandidatePasser)
	for i := range w.PassedRank {
		p(&w.PassedRank[i])
	}
	p(&w.PassedBlocked)
	p(&w.PassedSupported)
	p(&w.PassedFreePath)
	fs = append(fs, &w.PassedKingBoost, &w.PassedKingBlock)
	p(&w.ConnectedPassers)

	p(&w.BishopPair)
	p(&w.BadBishopPawn)
	p(&w.KnightOutpost)
	p(&w.CenterControl)
	p(&w.KnightRim)

	p(&w.RookOpenFile)
	p(&w.RookSemiOpenFile)
	p(&w.RookOn7th)
	p(&w.ConnectedRooks)
	p(&w.RookBehindPasser)

	for i := range w.KSAttackerWeight {
		fs = append(fs, &w.KSAttackerWeight[i])
	}
	fs = append(fs, &w.KSRingBonus, &w.KSMissingShield, &w.KSOpenFile, &w.KSLineOfSight, &w.KSClamp)
	for i := range w.Shelter {
		fs = append(fs, &w.Shelter[i])
	}
	for i := range w.Storm {
		fs = append(fs, &w.Storm[i])
	}

	p(&w.ThreatPawnMinor)
	p(&w.ThreatPawnRook)
	p(&w.ThreatPawnQueen)
	p(&w.HangingMinor)
	p(&w.HangingRook)
	p(&w.HangingQueen)
	p(&w.MinorOnQueen)

	p(&w.SpaceBonus)
	fs = append(fs, &w.OppositeBishopScale)

	return fs
}

// Parameters returns a flat copy of every tunable parameter, in stable
// order, for an external tuner to read.
func (w *Weights) Parameters() []int32 {
	fs := w.fields()
	out := make([]int32, len(fs))
	for i, f := range fs {
		out[i] = *f
	}
	return out
}

// SetParameters overwrites every tunable parameter from p, which must have
// exactly len(w.Parameters()) entries in the same order.
func (w *Weights) SetParameters(p []int32) error {
	fs := w.fields()
	if len(p) != len(fs) {
		return fmt.Errorf("eval: expected %d parameters, got %d", len(fs), len(p))
	}
	for i, f := range fs {
		*f = p[i]
	}
	return nil
}
