// Package engine orchestrates lazy-SMP search workers over a shared
// transposition table and exposes the single programmatic entry point an
// external UCI (or any other) shell drives: FindBestMove, which fans
// workers out and joins on completion or on a shared stop signal.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/eval"
	"github.com/herohde/morlock-core/pkg/search"
	"github.com/herohde/morlock-core/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

var version = build.NewVersion(0, 1, 0)

// ScoredMove pairs a root move with its backed-up score, for SearchStats'
// top_moves list.
type ScoredMove struct {
	Move  board.Move
	Score int32
}

// SearchStats is the result of the most recent FindBestMove call.
type SearchStats struct {
	Depth     int
	Nodes     uint64
	Elapsed   time.Duration
	NPS       uint64
	BestScore int32
	BestMove  board.Move
	BestPV    []board.Move
	TopMoves  []ScoredMove
}

// Engine encapsulates the transposition table, evaluator, and tuning
// configuration shared by every lazy-SMP worker.
type Engine struct {
	name, author string

	cfg   Config
	eval  *eval.Evaluator
	table *tt.Table

	mu    sync.Mutex
	stats SearchStats
}

// New returns an Engine with the given configuration. Name/author are
// reported by a UCI shell's "id" response — itself out of scope here.
func New(name, author string, cfg Config) *Engine {
	if cfg.TTSizeMB <= 0 {
		cfg.TTSizeMB = 1 // coerce to a 1 MB table.
	}
	e := &Engine{
		name:   name,
		author: author,
		cfg:    cfg,
		eval:   eval.NewEvaluator(),
		table:  tt.NewTable(cfg.TTSizeMB),
	}
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the configured author string.
func (e *Engine) Author() string {
	return e.author
}

// Evaluator exposes the shared evaluator, for an external Texel tuner to
// read/mutate parameters between evaluations.
func (e *Engine) Evaluator() *eval.Evaluator {
	return e.eval
}

func (e *Engine) workerCount() int {
	if e.cfg.Threads > 0 {
		return e.cfg.Threads
	}
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// FindBestMove searches pos to maxDepth (or until stop is set) and returns
// the best move found: clones the position once per worker, bumps the TT
// generation, fans out N-1 lazy-SMP helpers alongside a main worker that
// publishes the canonical stats, and on stop returns the best move from the
// last depth the main worker completed.
func (e *Engine) FindBestMove(ctx context.Context, pos *board.Position, maxDepth int, stop *atomic.Bool) (*board.Move, error) {
	if maxDepth <= 0 || maxDepth > e.cfg.MaxDepth {
		maxDepth = e.cfg.MaxDepth
	}
	if stop == nil {
		stop = atomic.NewBool(false)
	}

	e.table.NewGeneration()
	start := time.Now()

	workers := e.workerCount()
	limits := search.Limits{MaxDepth: maxDepth, MaxNodes: e.cfg.MaxNodes, Stop: stop}

	var mainResult search.Result

	grp, _ := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		i := i
		grp.Go(func() error {
			clone := pos.Clone()
			s := search.NewSearcher(clone, e.eval, e.table, e.cfg.Search)

			// Lazy-SMP diversification: helper workers' depth ceiling is
			// nudged by a worker-dependent offset, so identical searches
			// sharing one TT explore slightly different depths instead of
			// duplicating the main worker's work exactly.
			l := limits
			if i > 0 {
				l.MaxDepth += i % 2
			}

			onDepth := func(r search.Result) {
				if i == 0 {
					logw.Debugf(ctx, "depth %v: score=%v nodes=%v pv=%v", r.Depth, r.Score, r.Nodes, r.PV)
				}
			}

			result := s.IterativeDeepening(l, onDepth)
			if i == 0 {
				mainResult = result
			}
			return nil
		})
	}
	_ = grp.Wait()

	elapsed := time.Since(start)
	e.table.NewGeneration()

	stats := SearchStats{
		Depth:     mainResult.Depth,
		Nodes:     mainResult.Nodes,
		Elapsed:   elapsed,
		BestScore: mainResult.Score,
		BestMove:  mainResult.Best,
		BestPV:    mainResult.PV,
		TopMoves:  e.topRootMoves(pos),
	}
	if elapsed > 0 {
		stats.NPS = uint64(float64(stats.Nodes) / elapsed.Seconds())
	}

	e.mu.Lock()
	e.stats = stats
	e.mu.Unlock()

	if mainResult.Best.IsNull() {
		return nil, nil // no move found: the TT holds no best move for the root, e.g. no legal move.
	}
	m := mainResult.Best
	return &m, nil
}

// LastStats returns the stats from the most recently completed
// FindBestMove call.
func (e *Engine) LastStats() SearchStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// topRootMoves backs up a score for every legal root move by probing the TT
// entry the search left behind for the position after that move, giving an
// approximate ranked move list without a dedicated root-move search pass.
func (e *Engine) topRootMoves(pos *board.Position) []ScoredMove {
	var scored []ScoredMove
	for _, m := range board.GenerateLegal(pos) {
		if !pos.DoMove(m) {
			continue
		}
		if entry, ok := e.table.Probe(pos.Key()); ok {
			scored = append(scored, ScoredMove{Move: m, Score: -tt.ValueFromTT(entry.Value, 0)})
		}
		pos.UndoMove()
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 5 {
		scored = scored[:5]
	}
	return scored
}
