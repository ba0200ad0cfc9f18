// Package fen contains utilities for reading and writing positions in FEN
// (Forsyth-Edwards Notation).
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/morlock-core/pkg/board"
)

// Initial is the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a standard six-field FEN string into a fresh Position. No
// partial board state is committed if decoding fails.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %d: %q", len(parts), s)
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, fmt.Errorf("fen: %w: %q", err, s)
	}

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("fen: invalid active color %q: %q", parts[1], s)
	}

	castling, ok := board.ParseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling rights %q: %q", parts[2], s)
	}

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en passant square %q: %q", parts[3], s)
		}
		if sq.Rank() != board.Rank3 && sq.Rank() != board.Rank6 {
			return nil, fmt.Errorf("fen: en passant square %q not on rank 3 or 6: %q", parts[3], s)
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock %q: %q", parts[4], s)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number %q: %q", parts[5], s)
	}

	pos := board.NewPosition()
	for _, pl := range placements {
		pos.Board().SetPiece(pl.sq, pl.piece)
	}
	if pos.Board().Pieces(board.White, board.King).PopCount() != 1 ||
		pos.Board().Pieces(board.Black, board.King).PopCount() != 1 {
		return nil, fmt.Errorf("fen: each side must have exactly one king: %q", s)
	}

	pos.SetSideToMove(active)
	pos.SetCastling(castling)
	pos.SetEPSquare(ep)
	pos.SetHalfmoveClock(halfmove)
	pos.SetFullmoveNumber(fullmove)
	pos.RecomputeHash()

	return pos, nil
}

type placement struct {
	sq    board.Square
	piece board.Piece
}

func decodePlacement(field string) ([]placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}

	var out []placement
	for i, rankStr := range ranks {
		r := board.Rank(7 - i)
		f := board.ZeroFile
		for _, c := range rankStr {
			switch {
			case unicode.IsDigit(c):
				f += board.File(c - '0')
			default:
				p, ok := board.ParsePiece(c)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q", c)
				}
				if f >= board.NumFiles {
					return nil, fmt.Errorf("rank %q overflows 8 files", rankStr)
				}
				out = append(out, placement{sq: board.NewSquare(f, r), piece: p})
				f++
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("rank %q does not sum to 8 files", rankStr)
		}
	}
	return out, nil
}

// Encode renders pos as a standard six-field FEN string. The en-passant
// field is written "-" unless a legal en-passant capture actually exists in
// the position, per the canonical EP rule.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		r := board.Rank(7 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			p := pos.Board().PieceOn(board.NewSquare(f, r))
			if p.Type == board.None {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(p.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i != 7 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if pos.EPSquare() != board.NoSquare && hasLegalEPCapture(pos) {
		ep = pos.EPSquare().String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v",
		sb.String(), pos.SideToMove(), pos.Castling(), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

func hasLegalEPCapture(pos *board.Position) bool {
	for _, m := range board.GenerateLegal(pos) {
		if m.IsEnPassant {
			return true
		}
	}
	return false
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}
