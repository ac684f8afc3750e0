package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

var (
	knightOffsets = []int{-17, -15, -10, -6, 6, 10, 15, 17}
	kingOffsets   = []int{-9, -8, -7, -1, 1, 7, 8, 9}
)

// LegalMoves returns the pseudo-legal destinations of the piece on from.
// The second result is false when the square is empty, off the board, or holds
// a piece of the side not to move. A piece with no destinations yields an
// empty, non-nil slice.
//
// Moves that leave the mover's own king in check are not filtered out; see
// SafeMoves for that.
func LegalMoves(pos *Position, from chess.Square) ([]chess.Square, bool) {
	p := pos.Board.At(from)
	if p.IsEmpty() || p.Color != pos.Turn {
		return nil, false
	}
	moves := MovesFrom(pos, from)
	if moves == nil {
		moves = []chess.Square{}
	}
	return moves, true
}

// MovesFrom returns the pseudo-legal destinations of the piece on from for
// its own color, whoever is to move. An empty square yields nil.
func MovesFrom(pos *Position, from chess.Square) []chess.Square {
	p := pos.Board.At(from)
	if p.IsEmpty() {
		return nil
	}

	switch p.Piece {
	case chess.Pawn:
		return pawnMoves(pos, from, p.Color)
	case chess.Knight:
		return stepMoves(pos, from, p.Color, knightOffsets, 2)
	case chess.Bishop:
		return bishopMoves(pos, from, p.Color)
	case chess.Rook:
		return rookMoves(pos, from, p.Color)
	case chess.Queen:
		return queenMoves(pos, from, p.Color)
	case chess.King:
		return stepMoves(pos, from, p.Color, kingOffsets, 1)
	}
	return nil
}

// pawnMoves returns forward pushes followed by the two diagonal captures.
func pawnMoves(pos *Position, from chess.Square, color chess.Color) []chess.Square {
	var moves []chess.Square
	dir := color.Direction()

	forwardOne := offset(from, 8*dir, 1)
	if forwardOne.Valid() && pos.Board.At(forwardOne).IsEmpty() {
		moves = append(moves, forwardOne)

		forwardTwo := offset(from, 8*dir, 2)
		if onPawnStart(from, color) && forwardTwo.Valid() && pos.Board.At(forwardTwo).IsEmpty() {
			moves = append(moves, forwardTwo)
		}
	}

	for _, step := range []int{9, 7} {
		to := offset(from, step*dir, 1)
		// A diagonal must land on an adjacent file; anything else wrapped an edge.
		if !to.Valid() || fileDistance(from, to) != 1 {
			continue
		}
		target := pos.Board.At(to)
		if (!target.IsEmpty() && target.Color != color) || to == pos.EnPassant {
			moves = append(moves, to)
		}
	}

	return moves
}

// onPawnStart reports whether a pawn of the given color stands on its
// starting rank (48-55 for First, 8-15 for Second).
func onPawnStart(sq chess.Square, color chess.Color) bool {
	if color == chess.First {
		return sq >= 48 && sq <= 55
	}
	return sq >= 8 && sq <= 15
}

// stepMoves handles the single-step pieces (knight and king). A candidate is
// dropped when it is off the board, more than maxFiles files away from the
// source, or occupied by a friendly piece.
func stepMoves(pos *Position, from chess.Square, color chess.Color, offsets []int, maxFiles int) []chess.Square {
	var moves []chess.Square
	for _, step := range offsets {
		to := offset(from, step, 1)
		if !to.Valid() {
			continue
		}
		if fileDistance(from, to) > maxFiles {
			continue
		}
		if isFriendly(pos, to, color) {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}

// isFriendly reports whether sq holds a piece of the given color.
func isFriendly(pos *Position, sq chess.Square, color chess.Color) bool {
	p := pos.Board.At(sq)
	return !p.IsEmpty() && p.Color == color
}
