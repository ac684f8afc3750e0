package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// SafeMoves is LegalMoves without the destinations that would leave the
// mover's own king in check. Each candidate is tried on a copy of pos.
//
// This is an opt-in extension; the default engine does not filter.
func SafeMoves(pos *Position, from chess.Square) ([]chess.Square, bool) {
	moves, ok := LegalMoves(pos, from)
	if !ok {
		return nil, false
	}

	color := pos.Board.At(from).Color
	safe := make([]chess.Square, 0, len(moves))
	for _, to := range moves {
		trial := *pos
		movePiece(&trial, from, to)
		if !IsKingInCheck(&trial, color) {
			safe = append(safe, to)
		}
	}
	return safe, true
}

// ApplySafeMove is ApplyMove restricted to SafeMoves.
func ApplySafeMove(pos *Position, from, to chess.Square) (MoveResult, bool) {
	moves, ok := SafeMoves(pos, from)
	if !ok || !slices.Contains(moves, to) {
		return MoveResult{}, false
	}
	return ApplyMove(pos, from, to)
}
