package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// MoveResult describes a move that was applied to a position.
type MoveResult struct {
	From       chess.Square
	To         chess.Square
	Moved      chess.Placement
	Captured   chess.Placement // Empty when nothing was taken
	CapturedOn chess.Square    // NoSquare when nothing was taken
	EnPassant  bool            // The capture removed a pawn behind To
	DoubleStep bool            // A pawn advanced two ranks and set the en passant target

	// MoverInCheck is whether the mover's king was attacked on the board as it
	// stood before the move. It is informational and never blocks the move.
	MoverInCheck bool
}

// ApplyMove plays from→to if to is one of LegalMoves(pos, from) and reports
// whether it did. An illegal request leaves pos untouched.
func ApplyMove(pos *Position, from, to chess.Square) (MoveResult, bool) {
	moves, ok := LegalMoves(pos, from)
	if !ok || !slices.Contains(moves, to) {
		return MoveResult{}, false
	}

	moverInCheck := IsKingInCheck(pos, pos.Board.At(from).Color)
	result := movePiece(pos, from, to)
	result.MoverInCheck = moverInCheck
	return result, true
}

// movePiece relocates a piece without any legality check, updating the en
// passant target, removing an en passant victim and flipping the turn.
func movePiece(pos *Position, from, to chess.Square) MoveResult {
	mover := pos.Board.At(from)
	result := MoveResult{
		From:       from,
		To:         to,
		Moved:      mover,
		CapturedOn: chess.NoSquare,
	}

	delta := abs(int(to - from))
	// The square one rank behind the destination, from the mover's point of view.
	behind := offset(to, -8*mover.Color.Direction(), 1)

	if mover.Piece == chess.Pawn && delta == 16 {
		pos.EnPassant = behind
		result.DoubleStep = true
	} else {
		pos.EnPassant = chess.NoSquare
	}

	target := pos.Board.At(to)
	switch {
	case mover.Piece == chess.Pawn && (delta == 7 || delta == 9) && target.IsEmpty():
		result.EnPassant = true
		result.Captured = pos.Board.At(behind)
		result.CapturedOn = behind
		pos.Board.Clear(behind)
	case !target.IsEmpty():
		result.Captured = target
		result.CapturedOn = to
	}

	pos.Board.Set(to, mover)
	pos.Board.Clear(from)
	pos.Turn = pos.Turn.Opposite()

	return result
}
