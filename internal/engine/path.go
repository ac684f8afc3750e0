package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

var (
	bishopDirections = []int{7, 9, -7, -9}
	rookDirections   = []int{1, -1, 8, -8}
)

// rayGuard reports whether to is still on the line that started at from.
// It is what stops a ray from wrapping around a board edge.
type rayGuard func(from, to chess.Square) bool

// onDiagonal keeps a ray going while the file and rank distances match.
func onDiagonal(from, to chess.Square) bool {
	return fileDistance(from, to) == rankDistance(from, to)
}

// onLine keeps a ray going while it shares a rank or a file with the source.
func onLine(from, to chess.Square) bool {
	return from.Rank() == to.Rank() || from.File() == to.File()
}

// walkRay collects up to seven squares in one direction. The ray ends before
// a friendly piece and after an enemy piece.
func walkRay(pos *Position, from chess.Square, color chess.Color, step int, guard rayGuard) []chess.Square {
	var squares []chess.Square
	for n := 1; n < chess.BoardSize; n++ {
		to := offset(from, step, n)
		if !to.Valid() || !guard(from, to) {
			break
		}
		target := pos.Board.At(to)
		if !target.IsEmpty() && target.Color == color {
			break
		}
		squares = append(squares, to)
		if !target.IsEmpty() {
			break
		}
	}
	return squares
}

// slidingMoves concatenates independent rays in the given direction order.
func slidingMoves(pos *Position, from chess.Square, color chess.Color, directions []int, guard rayGuard) []chess.Square {
	var moves []chess.Square
	for _, step := range directions {
		moves = append(moves, walkRay(pos, from, color, step, guard)...)
	}
	return moves
}

func bishopMoves(pos *Position, from chess.Square, color chess.Color) []chess.Square {
	return slidingMoves(pos, from, color, bishopDirections, onDiagonal)
}

func rookMoves(pos *Position, from chess.Square, color chess.Color) []chess.Square {
	return slidingMoves(pos, from, color, rookDirections, onLine)
}

// queenMoves is the bishop result followed by the rook result.
func queenMoves(pos *Position, from chess.Square, color chess.Color) []chess.Square {
	return append(bishopMoves(pos, from, color), rookMoves(pos, from, color)...)
}
