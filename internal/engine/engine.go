package engine

import (
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Engine owns one Position and is the interface the presentation layer uses.
//
// An Engine is not safe for concurrent use. Callers sequence mutations; the
// session manager does this for the HTTP server.
type Engine struct {
	pos             Position
	logger          zerolog.Logger
	filterSelfCheck bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for move diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSelfCheckFilter makes LegalMoves and Move exclude moves that leave the
// mover's king in check. Off by default.
func WithSelfCheckFilter(on bool) Option {
	return func(e *Engine) {
		e.filterSelfCheck = on
	}
}

// New creates an engine from a placement string with First to move.
func New(placement string, opts ...Option) (*Engine, error) {
	board, err := ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	return newEngine(NewPosition(board), opts), nil
}

// NewInitial creates an engine on the starting position.
func NewInitial(opts ...Option) *Engine {
	board, _ := ParsePlacement(InitialPlacement)
	return newEngine(NewPosition(board), opts)
}

// FromPosition creates an engine that resumes a previously captured position.
func FromPosition(pos Position, opts ...Option) (*Engine, error) {
	if err := pos.Validate(); err != nil {
		return nil, errors.Wrap(err, "restore position")
	}
	return newEngine(pos, opts), nil
}

func newEngine(pos Position, opts []Option) *Engine {
	e := &Engine{
		pos:    pos,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Board returns a copy of the squares.
func (e *Engine) Board() chess.Board {
	return e.pos.Board
}

// Turn returns the color to move next.
func (e *Engine) Turn() chess.Color {
	return e.pos.Turn
}

// EnPassant returns the en passant target, if any.
func (e *Engine) EnPassant() (chess.Square, bool) {
	return e.pos.EnPassant, e.pos.HasEnPassant()
}

// Position returns a copy of the full state.
func (e *Engine) Position() Position {
	return e.pos
}

// Placement returns the board in placement-string form.
func (e *Engine) Placement() string {
	return PlacementString(e.pos.Board)
}

// SelfCheckFilter reports whether the opt-in self-check filter is enabled.
func (e *Engine) SelfCheckFilter() bool {
	return e.filterSelfCheck
}

// LegalMoves returns the destinations for the piece on sq, or false when the
// square is empty or not the mover's.
func (e *Engine) LegalMoves(sq chess.Square) ([]chess.Square, bool) {
	if e.filterSelfCheck {
		return SafeMoves(&e.pos, sq)
	}
	return LegalMoves(&e.pos, sq)
}

// Move applies from→to. A move that is not among LegalMoves(from) is
// ignored and reported as false.
func (e *Engine) Move(from, to chess.Square) (MoveResult, bool) {
	apply := ApplyMove
	if e.filterSelfCheck {
		apply = ApplySafeMove
	}

	result, ok := apply(&e.pos, from, to)
	if !ok {
		e.logger.Debug().
			Stringer("from", from).
			Stringer("to", to).
			Stringer("turn", e.pos.Turn).
			Msg("move rejected")
		return result, false
	}

	e.logger.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Stringer("piece", result.Moved.Piece).
		Bool("mover_in_check", result.MoverInCheck).
		Bool("en_passant", result.EnPassant).
		Stringer("turn", e.pos.Turn).
		Msg("move applied")
	return result, true
}

// IsKingInCheck reports whether color's king is attacked on the current board.
func (e *Engine) IsKingInCheck(color chess.Color) bool {
	return IsKingInCheck(&e.pos, color)
}

// Summary digests the current position.
func (e *Engine) Summary() Summary {
	return Summarize(&e.pos)
}
