package eval

import "github.com/herohde/morlock-core/pkg/board"

// pawnCacheBits sizes the pawn-hash cache at 2^pawnCacheBits entries, keyed
// by the position's pawn sub-key modulo the table size.
const pawnCacheBits = 13

type pawnCacheEntry struct {
	key   board.ZobristKey
	valid bool
	score Pair // from White's perspective
}

// pawnCache memoizes the pawn-structure term by pawn sub-key, since it
// depends only on pawn placement and is comparatively expensive (isolated,
// doubled, backward, passed, and phalanx all scan file/rank neighborhoods).
type pawnCache struct {
	entries [1 << pawnCacheBits]pawnCacheEntry
}

func (c *pawnCache) clear() {
	*c = pawnCache{}
}

func (c *pawnCache) get(key board.ZobristKey) (Pair, bool) {
	e := &c.entries[uint64(key)&(1<<pawnCacheBits-1)]
	if e.valid && e.key == key {
		return e.score, true
	}
	return Pair{}, false
}

func (c *pawnCache) put(key board.ZobristKey, score Pair) {
	c.entries[uint64(key)&(1<<pawnCacheBits-1)] = pawnCacheEntry{key: key, valid: true, score: score}
}

// pawnStructure returns the pawn-structure term from White's perspective,
// using or populating the pawn-hash cache keyed by pawnKey.
func (e *Evaluator) pawnStructure(b *board.Board, pawnKey board.ZobristKey) Pair {
	if s, ok := e.pawns.get(pawnKey); ok {
		return s
	}
	s := e.evaluatePawnsForColor(b, board.White).Sub(e.evaluatePawnsForColor(b, board.Black))
	e.pawns.put(pawnKey, s)
	return s
}

func (e *Evaluator) evaluatePawnsForColor(b *board.Board, us board.Color) Pair {
	w := e.weights
	them := us.Opponent()
	own := b.Pieces(us, board.Pawn)
	enemy := b.Pieces(them, board.Pawn)

	var score Pair
	var passers []board.Square

	for bb := own; bb != 0; {
		sq, rest := bb.PopLSB()
		bb = rest
		f, r := sq.File().V(), sq.Rank().V()

		adjFiles := adjacentFilesMask(f)
		if own&adjFiles == 0 {
			score = score.Add(w.IsolatedPawn)
		} else if isBackward(own, enemy, us, sq) {
			score = score.Add(w.BackwardPawn)
		}

		if east := eastNeighbor(sq); east.IsValid() && own.IsSet(east) && east.Rank().V() == r {
			score = score.Add(w.Phalanx)
		}

		if isPassed(own, enemy, us, sq) {
			passers = append(passers, sq)
			score = score.Add(passedPawnScore(w, b, us, sq))
		} else if isCandidatePasser(own, enemy, us, sq) {
			score = score.Add(w.CandidatePasser)
		}
	}

	for f := board.ZeroFile; f < board.NumFiles; f++ {
		count := (own & board.BitFile(f)).PopCount()
		if count > 1 {
			score = score.Add(w.DoubledPawn.Scale(int32(count - 1)))
		}
	}

	for i := 0; i < len(passers); i++ {
		for j := i + 1; j < len(passers); j++ {
			if board.FileDistance(passers[i], passers[j]) == 1 && board.RankDistance(passers[i], passers[j]) <= 1 {
				score = score.Add(w.ConnectedPassers)
			}
		}
	}

	return score
}

func adjacentFilesMask(f int) board.Bitboard {
	var mask board.Bitboard
	if f > 0 {
		mask |= board.BitFile(board.File(f - 1))
	}
	if f < 7 {
		mask |= board.BitFile(board.File(f + 1))
	}
	return mask
}

func eastNeighbor(sq board.Square) board.Square {
	if sq.File() == board.FileH {
		return board.NoSquare
	}
	return sq + 1
}

// forwardMask returns the squares strictly ahead of sq (from us's
// perspective) on sq's own file and the two adjacent files — the classic
// passed-pawn span.
func forwardMask(us board.Color, sq board.Square) board.Bitboard {
	var mask board.Bitboard
	f, r := sq.File().V(), sq.Rank().V()
	for rr := 0; rr < 8; rr++ {
		if us == board.White && rr <= r {
			continue
		}
		if us == board.Black && rr >= r {
			continue
		}
		for ff := f - 1; ff <= f+1; ff++ {
			if ff < 0 || ff > 7 {
				continue
			}
			mask |= board.BitMask(board.NewSquare(board.File(ff), board.Rank(rr)))
		}
	}
	return mask
}

func isPassed(own, enemy board.Bitboard, us board.Color, sq board.Square) bool {
	return enemy&forwardMask(us, sq) == 0
}

// isCandidatePasser approximates "would become passed after one pawn
// trade": the pawn isn't passed yet, but on its file and the two adjacent
// files, the friendly pawns at or behind its rank are at least as numerous
// as the enemy pawns ahead of it.
func isCandidatePasser(own, enemy board.Bitboard, us board.Color, sq board.Square) bool {
	f, r := sq.File().V(), sq.Rank().V()
	var ownBehind, enemyAhead int
	for ff := f - 1; ff <= f+1; ff++ {
		if ff < 0 || ff > 7 {
			continue
		}
		for rr := 0; rr < 8; rr++ {
			s := board.NewSquare(board.File(ff), board.Rank(rr))
			ahead := (us == board.White && rr > r) || (us == board.Black && rr < r)
			behindOrLevel := !ahead
			if own.IsSet(s) && behindOrLevel {
				ownBehind++
			}
			if enemy.IsSet(s) && ahead {
				enemyAhead++
			}
		}
	}
	return ownBehind >= enemyAhead && enemyAhead > 0
}

// isBackward reports whether the pawn at sq cannot safely advance (its stop
// square is controlled by an enemy pawn) and has no friendly pawn on an
// adjacent file positioned to support its advance.
func isBackward(own, enemy board.Bitboard, us board.Color, sq board.Square) bool {
	stop := advanceOne(us, sq)
	if !stop.IsValid() {
		return false
	}
	if board.PawnAttacks(us.Opponent(), enemy)&board.BitMask(stop) == 0 {
		return false
	}

	f, r := sq.File().V(), sq.Rank().V()
	for ff := f - 1; ff <= f+1; ff += 2 {
		if ff < 0 || ff > 7 {
			continue
		}
		for rr := 0; rr < 8; rr++ {
			behindOrLevel := (us == board.White && rr <= r) || (us == board.Black && rr >= r)
			if behindOrLevel && own.IsSet(board.NewSquare(board.File(ff), board.Rank(rr))) {
				return false
			}
		}
	}
	return true
}

func advanceOne(us board.Color, sq board.Square) board.Square {
	if us == board.White {
		if sq.Rank() == board.Rank8 {
			return board.NoSquare
		}
		return sq + 8
	}
	if sq.Rank() == board.Rank1 {
		return board.NoSquare
	}
	return sq - 8
}

func passedPawnScore(w *Weights, b *board.Board, us board.Color, sq board.Square) Pair {
	r := sq.Rank().V()
	rank := r
	if us == board.Black {
		rank = 7 - r
	}
	score := w.PassedRank[rank]

	front := advanceOne(us, sq)
	if front.IsValid() && !b.IsEmpty(front) && b.PieceOn(front).Color != us {
		score = score.Add(w.PassedBlocked)
	}

	supportRank := r - 1
	if us == board.Black {
		supportRank = r + 1
	}
	if supportRank >= 0 && supportRank <= 7 {
		f := sq.File().V()
		for _, ff := range []int{f - 1, f + 1} {
			if ff < 0 || ff > 7 {
				continue
			}
			if b.Pieces(us, board.Pawn).IsSet(board.NewSquare(board.File(ff), board.Rank(supportRank))) {
				score = score.Add(w.PassedSupported)
				break
			}
		}
	}

	path := forwardMask(us, sq) & board.BitFile(sq.File())
	if b.All()&path == 0 {
		score = score.Add(w.PassedFreePath)
	}

	promo := board.NewSquare(sq.File(), board.Rank1)
	if us == board.White {
		promo = board.NewSquare(sq.File(), board.Rank8)
	}
	friendlyKing := b.King(us)
	enemyKing := b.King(us.Opponent())
	boost := int32(6-board.Distance(friendlyKing, promo)) * w.PassedKingBoost / 6
	block := int32(6-board.Distance(enemyKing, promo)) * w.PassedKingBlock / 6
	score.EG += boost - block

	return score
}
