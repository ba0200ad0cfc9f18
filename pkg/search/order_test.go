package search

import (
	"testing"

	"github.com/herohde/morlock-core/pkg/board"
	"github.com/herohde/morlock-core/pkg/board/fen"
	"github.com/herohde/morlock-core/pkg/eval"
	"github.com/herohde/morlock-core/pkg/tt"
)

func newTestSearcher(t *testing.T, fenStr string) *Searcher {
	t.Helper()
	pos, err := fen.Decode(fenStr)
	if err != nil {
		t.Fatalf("fen.Decode(%q): %v", fenStr, err)
	}
	return NewSearcher(pos, eval.NewEvaluator(), tt.NewTable(1), DefaultConfig())
}

func findMove(t *testing.T, moves []board.Move, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range moves {
		if m.From == from && m.To == to {
			return m
		}
	}
	t.Fatalf("no move %v-%v among %v", from, to, moves)
	return board.Move{}
}

func TestScoreMoveTTMoveOutranksEverything(t *testing.T) {
	s := newTestSearcher(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := board.GenerateLegal(s.pos)

	capture := findMove(t, moves, board.E4, board.D5)
	quiet := findMove(t, moves, board.E1, board.D1)

	if got := s.scoreMove(capture, 0, capture); got/tierWidth != tierTT {
		t.Errorf("TT-move capture score tier = %v, want tierTT", got/tierWidth)
	}
	if got := s.scoreMove(quiet, 0, quiet); got/tierWidth != tierTT {
		t.Errorf("TT-move quiet score tier = %v, want tierTT", got/tierWidth)
	}
}

func TestScoreMoveGoodCaptureOutranksQuiet(t *testing.T) {
	s := newTestSearcher(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := board.GenerateLegal(s.pos)

	capture := findMove(t, moves, board.E4, board.D5)
	quiet := findMove(t, moves, board.E1, board.D1)

	captureScore := s.scoreMove(capture, 0, board.Move{})
	quietScore := s.scoreMove(quiet, 0, board.Move{})

	if captureScore <= quietScore {
		t.Errorf("capture score %v did not outrank quiet score %v", captureScore, quietScore)
	}
	if captureScore/tierWidth != tierGoodCapture {
		t.Errorf("undefended pawn capture tier = %v, want tierGoodCapture", captureScore/tierWidth)
	}
}

func TestScoreMovePromotionOutranksQuiet(t *testing.T) {
	s := newTestSearcher(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	moves := board.GenerateLegal(s.pos)

	var promo, quiet board.Move
	for _, m := range moves {
		if m.IsPromotion() && m.Promotion == board.Queen {
			promo = m
		}
		if m.From == board.E1 && m.To == board.D1 {
			quiet = m
		}
	}
	if promo.IsNull() || quiet.IsNull() {
		t.Fatal("expected both a queen promotion and a quiet king move")
	}

	promoScore := s.scoreMove(promo, 0, board.Move{})
	quietScore := s.scoreMove(quiet, 0, board.Move{})

	if promoScore <= quietScore {
		t.Errorf("promotion score %v did not outrank quiet score %v", promoScore, quietScore)
	}
	if promoScore/tierWidth != tierPromotion {
		t.Errorf("promotion tier = %v, want tierPromotion", promoScore/tierWidth)
	}
}

func TestScoreMoveKillerOutranksOrdinaryQuiet(t *testing.T) {
	s := newTestSearcher(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	moves := board.GenerateLegal(s.pos)

	killer := findMove(t, moves, board.E1, board.D1)
	other := findMove(t, moves, board.E1, board.F1)
	s.killers[0][0] = killer

	killerScore := s.scoreMove(killer, 0, board.Move{})
	otherScore := s.scoreMove(other, 0, board.Move{})

	if killerScore <= otherScore {
		t.Errorf("killer score %v did not outrank ordinary quiet score %v", killerScore, otherScore)
	}
}

func TestOrderMovesYieldsHighestTierFirst(t *testing.T) {
	s := newTestSearcher(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := board.GenerateLegal(s.pos)

	order := s.orderMoves(moves, 0, board.Move{})

	first, ok := order.Next()
	if !ok {
		t.Fatal("expected at least one move")
	}
	if !first.Equals(findMove(t, moves, board.E4, board.D5)) {
		t.Errorf("first move = %v, want the pawn capture", first)
	}

	seen := 1
	for {
		if _, ok := order.Next(); !ok {
			break
		}
		seen++
	}
	if seen != len(moves) {
		t.Errorf("orderMoves yielded %v moves, want %v", seen, len(moves))
	}
}
