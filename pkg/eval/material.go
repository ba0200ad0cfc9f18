package eval

import "github.com/herohde/morlock-core/pkg/board"

// material returns White-minus-Black material, MG and EG.
func (e *Evaluator) material(b *board.Board) Pair {
	w := e.weights
	var score Pair
	for t := board.Pawn; t <= board.Queen; t++ {
		diff := b.Pieces(board.White, t).PopCount() - b.Pieces(board.Black, t).PopCount()
		score = score.Add(w.Material[t].Scale(int32(diff)))
	}
	return score
}

// pst returns White-minus-Black piece-square value, MG and EG.
func (e *Evaluator) pst(b *board.Board) Pair {
	w := e.weights
	var score Pair
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := int32(1)
		if c == board.Black {
			sign = -1
		}
		for t := board.Pawn; t <= board.King; t++ {
			for bb := b.Pieces(c, t); bb != 0; {
				sq, rest := bb.PopLSB()
				bb = rest
				score = score.Add(pstValue(w, t, c, sq).Scale(sign))
			}
		}
	}
	return score
}

// isOppositeColoredBishops reports whether each side has exactly one
// bishop and they sit on opposite-colored squares — the classic drawish
// endgame pattern the endgame-scaling term dampens.
func isOppositeColoredBishops(b *board.Board) bool {
	wb := b.Pieces(board.White, board.Bishop)
	bb := b.Pieces(board.Black, board.Bishop)
	if wb.PopCount() != 1 || bb.PopCount() != 1 {
		return false
	}
	return squareColor(wb.LSB()) != squareColor(bb.LSB())
}
