package search

import (
	"container/heap"

	"github.com/herohde/morlock-core/pkg/board"
)

// Move-ordering tiers, highest first: TT move, good captures (MVV-LVA),
// promotions, killers, bad captures, counter-move, follow-up move,
// quiet-by-history. Scores within a tier are added to the tier's base so
// tiers never overlap.
const (
	tierQuiet tierScore = iota
	tierFollowUp
	tierCounter
	tierBadCapture
	tierKiller
	tierPromotion
	tierGoodCapture
	tierTT
)

type tierScore = int32

const tierWidth int32 = 1 << 20

// orderMoves attaches a priority to every pseudo-legal move in moves and
// returns a heap-backed iterator yielding them highest-priority first.
func (s *Searcher) orderMoves(moves []board.Move, ply int, ttMove board.Move) *moveOrder {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = scoredMove{m: m, score: s.scoreMove(m, ply, ttMove)}
	}
	heap.Init(&h)
	return &moveOrder{h: h}
}

func (s *Searcher) scoreMove(m board.Move, ply int, ttMove board.Move) int32 {
	if !ttMove.IsNull() && m.Equals(ttMove) {
		return tierTT * tierWidth
	}

	b := s.pos.Board()
	moving := b.PieceOn(m.From).Type

	if m.IsCapture {
		victim := moving // en-passant: the captured pawn isn't on m.To
		if !m.IsEnPassant {
			victim = b.PieceOn(m.To).Type
		}
		see := board.SEE(s.pos, m)
		mvvlva := int32(100*board.SEEPieceValue[victim]) - int32(board.SEEPieceValue[moving])
		if see >= 0 {
			return tierGoodCapture*tierWidth + mvvlva
		}
		return tierBadCapture*tierWidth + mvvlva
	}
	if m.IsPromotion() {
		return tierPromotion*tierWidth + int32(board.SEEPieceValue[m.Promotion])
	}

	k := &s.killers[ply]
	if m.Equals(k[0]) || m.Equals(k[1]) {
		return tierKiller * tierWidth
	}

	us := s.pos.SideToMove()
	if ply > 0 {
		if prev := s.stack[ply-1].move; !prev.IsNull() {
			prevPiece := b.PieceOn(prev.To).Type
			if cm := s.counterMove[us][prevPiece][prev.To]; !cm.IsNull() && m.Equals(cm) {
				return tierCounter * tierWidth
			}
		}
	}
	if ply > 1 {
		if prior := s.stack[ply-2].move; !prior.IsNull() {
			priorPiece := b.PieceOn(prior.To).Type
			if fu := s.followUp[us][priorPiece][prior.To]; !fu.IsNull() && m.Equals(fu) {
				return tierFollowUp * tierWidth
			}
		}
	}

	h := s.history[us][moving][m.To]
	return tierQuiet*tierWidth + h
}

// scoredMove pairs a move with its ordering priority.
type scoredMove struct {
	m     board.Move
	score int32
}

type moveHeap []scoredMove

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].score > h[j].score }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(scoredMove)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// moveOrder yields moves highest-priority first.
type moveOrder struct {
	h moveHeap
}

func (o *moveOrder) Next() (board.Move, bool) {
	if len(o.h) == 0 {
		return board.Move{}, false
	}
	m := heap.Pop(&o.h).(scoredMove)
	return m.m, true
}
