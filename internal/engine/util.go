package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// fileDistance returns the number of files between two squares.
func fileDistance(a, b chess.Square) int {
	return abs(a.File() - b.File())
}

// rankDistance returns the number of ranks between two squares.
func rankDistance(a, b chess.Square) int {
	return abs(a.Rank() - b.Rank())
}

// offset returns the square n steps of size step away from sq.
// The result may be off the board.
func offset(sq chess.Square, step, n int) chess.Square {
	return sq + chess.Square(step*n)
}
