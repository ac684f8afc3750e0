// Package engine provides chess move generation and board manipulation.
package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// InitialPlacement is the piece placement of the starting position.
// Lowercase pieces belong to First and sit on ranks 6-7; uppercase pieces
// belong to Second and sit on ranks 0-1.
const InitialPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParsePlacement parses a slash-delimited piece placement string, starting at
// rank 7, file 0. Lowercase letters are First pieces and uppercase letters are
// Second pieces.
//
// Malformed input is rejected with a *errors.ParseError wrapping
// errors.ErrInvalidPlacement; the returned board is empty in that case.
func ParsePlacement(placement string) (chess.Board, error) {
	var board chess.Board
	rank := chess.BoardSize - 1
	file := 0

	fail := func(i int, got, reason string) (chess.Board, error) {
		return chess.Board{}, &errors.ParseError{
			Err:    errors.ErrInvalidPlacement,
			Input:  placement,
			Column: i + 1,
			Got:    got,
			Reason: reason,
		}
	}

	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return fail(i, fmt.Sprintf("%d", file), fmt.Sprintf("rank %d must cover 8 files", rank+1))
			}
			if rank == 0 {
				return fail(i, "'/'", "more than 8 ranks")
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > chess.BoardSize {
				return fail(i, fmt.Sprintf("%q", c), fmt.Sprintf("rank %d overflows 8 files", rank+1))
			}
		default:
			piece := chess.PieceFromLetter(c)
			if piece == chess.NoPiece {
				return fail(i, fmt.Sprintf("%q", c), "expected piece letter, digit 1-8 or '/'")
			}
			if file >= chess.BoardSize {
				return fail(i, fmt.Sprintf("%q", c), fmt.Sprintf("rank %d overflows 8 files", rank+1))
			}

			color := chess.Second
			if c >= 'a' && c <= 'z' {
				color = chess.First
			}
			board.Set(chess.NewSquare(rank, file), chess.Place(color, piece))
			file++
		}
	}

	if rank != 0 || file != chess.BoardSize {
		return fail(len(placement)-1, "end of input", "expected 8 complete ranks")
	}
	return board, nil
}

// PlacementString writes a board in the encoding read by ParsePlacement.
func PlacementString(board chess.Board) string {
	var sb strings.Builder

	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			p := board.At(chess.NewSquare(rank, file))
			if p.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
