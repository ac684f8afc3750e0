package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Position captures all mutable game state: the squares, the side to move and
// the en passant target left by the previous ply.
//
// Generation and check queries take a *Position and only read it; ApplyMove is
// the one function that writes through it.
type Position struct {
	Board     chess.Board
	Turn      chess.Color
	EnPassant chess.Square // NoSquare unless the previous ply was a pawn double step
}

// NewPosition returns a position with First to move and no en passant target.
func NewPosition(board chess.Board) Position {
	return Position{
		Board:     board,
		Turn:      chess.First,
		EnPassant: chess.NoSquare,
	}
}

// HasEnPassant reports whether an en passant target is set.
func (p *Position) HasEnPassant() bool {
	return p.EnPassant.Valid()
}

// Validate checks the fields that cannot be expressed by the board itself.
func (p *Position) Validate() error {
	if p.Turn != chess.First && p.Turn != chess.Second {
		return fmt.Errorf("turn %d: %w", p.Turn, errors.ErrInvalidPlacement)
	}
	if p.EnPassant != chess.NoSquare && !p.EnPassant.Valid() {
		return fmt.Errorf("en passant square %d: %w", p.EnPassant, errors.ErrInvalidSquare)
	}
	return nil
}
