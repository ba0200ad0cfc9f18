package eval

import "github.com/herohde/morlock-core/pkg/board"

// DefaultWeights returns the evaluator's built-in parameter set. Material
// base values track board.SEEPieceValue, the same values board.SEE uses, so
// material scoring and exchange evaluation agree.
//
// Most structural terms use the same value for both the MG and EG half of
// the Pair; passed-pawn rank bonuses, the king, and the space bonus
// diverge by phase and keep distinct MG/EG values.
func DefaultWeights() *Weights {
	w := &Weights{}

	w.Material[board.Pawn] = Pair{100, 100}
	w.Material[board.Knight] = Pair{320, 320}
	w.Material[board.Bishop] = Pair{330, 330}
	w.Material[board.Rook] = Pair{500, 500}
	w.Material[board.Queen] = Pair{950, 950}

	buildPST(w)

	w.IsolatedPawn = Pair{-12, -12}
	w.DoubledPawn = Pair{-16, -16}
	w.BackwardPawn = Pair{-10, -10}
	w.Phalanx = Pair{6, 6}
	w.CandidatePasser = Pair{6, 6}
	w.PassedRank = [8]Pair{
		{0, 0}, {8, 12}, {16, 22}, {26, 36}, {44, 56}, {70, 85}, {110, 130}, {0, 0},
	}
	w.PassedBlocked = Pair{-8, -8}
	w.PassedSupported = Pair{6, 6}
	w.PassedFreePath = Pair{8, 8}
	w.PassedKingBoost = 6
	w.PassedKingBlock = 6
	w.ConnectedPassers = Pair{12, 12}

	w.BishopPair = Pair{38, 38}
	w.BadBishopPawn = Pair{-2, -2}
	w.KnightOutpost = Pair{24, 24}
	w.CenterControl = Pair{6, 6}
	w.KnightRim = Pair{-12, -12}

	w.RookOpenFile = Pair{16, 16}
	w.RookSemiOpenFile = Pair{8, 8}
	w.RookOn7th = Pair{20, 20}
	w.ConnectedRooks = Pair{18, 18}
	w.RookBehindPasser = Pair{18, 18}

	w.KSAttackerWeight[board.Knight] = 18
	w.KSAttackerWeight[board.Bishop] = 18
	w.KSAttackerWeight[board.Rook] = 10
	w.KSAttackerWeight[board.Queen] = 38
	w.KSRingBonus = 2
	w.KSMissingShield = 7
	w.KSOpenFile = 12
	w.KSLineOfSight = 6
	w.KSClamp = 220
	w.Shelter = [8]int32{0, 0, 2, 6, 12, 18, 24, 28}
	w.Storm = [8]int32{0, 6, 10, 14, 18, 22, 26, 30}

	w.ThreatPawnMinor = Pair{-12, -12}
	w.ThreatPawnRook = Pair{-18, -18}
	w.ThreatPawnQueen = Pair{-26, -26}
	w.HangingMinor = Pair{-14, -14}
	w.HangingRook = Pair{-20, -20}
	w.HangingQueen = Pair{-28, -28}
	w.MinorOnQueen = Pair{-8, -8}

	w.SpaceBonus = Pair{2, 0}

	w.OppositeBishopScale = 192

	return w
}
