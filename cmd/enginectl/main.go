// enginectl is a minimal command-line driver over pkg/engine: it loads a
// single position, searches it to a fixed depth or time budget, and prints
// the best move and search stats. It is not a UCI shell, just a thin
// harness for exercising Engine.FindBestMove from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/herohde/morlock-core/pkg/board/fen"
	"github.com/herohde/morlock-core/pkg/engine"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

var (
	position = flag.String("fen", "", "Position to search (default to standard start)")
	maxDepth = flag.Int("depth", 0, "Search depth (0 uses the configured default)")
	movetime = flag.Duration("movetime", 0, "Time budget (0 searches to depth only)")
	config   = flag.String("config", "", "Path to a TOML engine configuration file")
	hashMB   = flag.Int("hash", 0, "Transposition table size in MB (0 uses the config default)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: enginectl [options]

enginectl searches one FEN position and prints the best move found.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := engine.LoadConfig(*config)
	if err != nil {
		logw.Exitf(ctx, "Invalid config '%v': %v", *config, err)
	}
	if *hashMB > 0 {
		cfg.TTSizeMB = *hashMB
	}

	fenStr := *position
	if fenStr == "" {
		fenStr = fen.Initial
	}
	pos, err := fen.Decode(fenStr)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", fenStr, err)
	}

	e := engine.New("morlock-core", "herohde", cfg)

	stop := atomic.NewBool(false)
	if *movetime > 0 {
		timer := time.AfterFunc(*movetime, func() { stop.Store(true) })
		defer timer.Stop()
	}

	best, err := e.FindBestMove(ctx, pos, *maxDepth, stop)
	if err != nil {
		logw.Exitf(ctx, "Search failed: %v", err)
	}
	if best == nil {
		logw.Exitf(ctx, "No legal move found for '%v'", fenStr)
	}

	stats := e.LastStats()
	fmt.Printf("bestmove %v\n", best)
	fmt.Printf("info depth %v score cp %v nodes %v nps %v time %v pv %v\n",
		stats.Depth, stats.BestScore, stats.Nodes, stats.NPS, stats.Elapsed.Milliseconds(), stats.BestPV)
}
