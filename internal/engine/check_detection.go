package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// IsKingInCheck returns true if the given color's king is attacked.
//
// The king is the lowest-indexed square holding (color, King); a board without
// one is reported as not in check. Attacks are the pseudo-legal destinations
// of every opposing piece, computed regardless of whose turn it is.
func IsKingInCheck(pos *Position, color chess.Color) bool {
	kingSq, ok := findKing(pos, color)
	if !ok {
		return false
	}
	return isSquareAttacked(pos, kingSq, color.Opposite())
}

// findKing finds the king of the given color on the board.
func findKing(pos *Position, color chess.Color) (chess.Square, bool) {
	return pos.Board.Find(chess.Place(color, chess.King))
}

// isSquareAttacked returns true if any piece of byColor can reach sq.
func isSquareAttacked(pos *Position, sq chess.Square, byColor chess.Color) bool {
	return slices.Contains(AttackedSquares(pos, byColor), sq)
}

// AttackedSquares returns the union, with repeats, of the pseudo-legal
// destinations of every piece of byColor, in board order.
func AttackedSquares(pos *Position, byColor chess.Color) []chess.Square {
	var squares []chess.Square
	for _, from := range pos.Board.Occupied(byColor) {
		squares = append(squares, MovesFrom(pos, from)...)
	}
	return squares
}
