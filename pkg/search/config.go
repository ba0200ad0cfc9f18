// Package search implements iterative-deepening PVS over a mutable
// board.Position: move ordering, null-move/LMR/futility/SEE pruning,
// quiescence, and a transposition table keyed by the position's Zobrist
// hash, with the full pruning and extension set a tournament-strength
// search needs.
package search

// Config holds the feature toggles and tuning knobs a Searcher consults on
// every node. pkg/engine's Config holds one in its Search field and is the
// surface a caller actually configures; Config exists standalone so pkg/search has no
// dependency on pkg/engine.
type Config struct {
	UseNullMove       bool
	UseLMR            bool
	UseAspiration     bool
	UseLMP            bool
	UseIID            bool
	UseSingularExt    bool
	UseFutility       bool
	UseReverseFutility bool
	UseSEEPruning     bool
	UseProbCut        bool
	QSearchQuietChecks bool
	UseThreatSignals  bool

	AspirationWindow int32 // cp half-width

	LMPDepthMax int
	LMPBase     int

	LMRBase int
	LMRMax  int

	FullRescoreTopK int

	FutilityMargin int32

	ThreatSignalsDepthMax int
	ThreatSignalsQuietCap int
	ThreatSignalsHistMin  int32
}

// DefaultConfig returns a reasonable set of knob values for a tournament
// search: every pruning/extension technique enabled, with margins and
// thresholds tuned conservatively.
func DefaultConfig() Config {
	return Config{
		UseNullMove:        true,
		UseLMR:             true,
		UseAspiration:      true,
		UseLMP:             true,
		UseIID:             true,
		UseSingularExt:     true,
		UseFutility:        true,
		UseReverseFutility: true,
		UseSEEPruning:      true,
		UseProbCut:         true,
		QSearchQuietChecks: false,
		UseThreatSignals:   true,

		AspirationWindow: 20,

		LMPDepthMax: 3,
		LMPBase:     2,

		LMRBase: 1,
		LMRMax:  3,

		FullRescoreTopK: 4,

		FutilityMargin: 125,

		ThreatSignalsDepthMax: 5,
		ThreatSignalsQuietCap: 8,
		ThreatSignalsHistMin:  -8000,
	}
}

// Depth thresholds gating the reverse-futility/ProbCut/IID/singular-
// extension techniques: reverse-futility/static-null applies at
// depth <= rRFP, ProbCut at depth >= dProbCut, IID at depth >= dIID,
// singular extension at depth >= dSingularExt.
const (
	rRFP          = 3
	dProbCut      = 5
	dIID          = 4
	probCutMargin = 100

	dSingularExt         = 8
	singularTTDepthSlack = 3
	singularMarginPerPly = 2
)
