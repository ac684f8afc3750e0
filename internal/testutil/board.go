package testutil

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Piece shorthands for fixtures: F* are First pieces, S* are Second pieces.
var (
	FP = chess.Place(chess.First, chess.Pawn)
	FN = chess.Place(chess.First, chess.Knight)
	FB = chess.Place(chess.First, chess.Bishop)
	FR = chess.Place(chess.First, chess.Rook)
	FQ = chess.Place(chess.First, chess.Queen)
	FK = chess.Place(chess.First, chess.King)
	SP = chess.Place(chess.Second, chess.Pawn)
	SN = chess.Place(chess.Second, chess.Knight)
	SB = chess.Place(chess.Second, chess.Bishop)
	SR = chess.Place(chess.Second, chess.Rook)
	SQ = chess.Place(chess.Second, chess.Queen)
	SK = chess.Place(chess.Second, chess.King)
)

// BoardWith returns a board holding exactly the given pieces.
func BoardWith(pieces map[chess.Square]chess.Placement) chess.Board {
	var b chess.Board
	for sq, p := range pieces {
		b.Set(sq, p)
	}
	return b
}

// MustSquare parses a square index or name and calls t.Fatal on failure.
func MustSquare(t *testing.T, text string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", text, err)
	}
	return sq
}

// Squares converts a list of square names to indices and calls t.Fatal on
// the first bad name.
func Squares(t *testing.T, names ...string) []chess.Square {
	t.Helper()
	out := make([]chess.Square, 0, len(names))
	for _, name := range names {
		out = append(out, MustSquare(t, name))
	}
	return out
}
