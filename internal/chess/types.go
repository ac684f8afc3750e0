// Package chess provides core chess types and operations.
package chess

import (
	"fmt"
	"strconv"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Color represents the side a piece belongs to.
//
// First moves toward decreasing square indices and Second toward increasing
// ones. In a placement string First pieces are written in lowercase and Second
// pieces in uppercase, which is the reverse of the usual FEN convention.
type Color int

const (
	First Color = iota
	Second
)

// String returns the string representation of a color.
func (c Color) String() string {
	if c == Second {
		return "Second"
	}
	return "First"
}

// Opposite returns the opposite color.
func (c Color) Opposite() Color {
	if c == First {
		return Second
	}
	return First
}

// Direction returns -1 for First and +1 for Second (for pawn direction).
func (c Color) Direction() int {
	if c == First {
		return -1
	}
	return 1
}

// Piece represents a chess piece type.
type Piece int

const (
	NoPiece Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Pieces lists every piece type in generation order.
var Pieces = []Piece{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (lowercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceFromLetter converts a placement letter of either case to a piece type.
// It returns NoPiece for anything that is not a piece letter.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPiece
	}
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// Square is a board index in [0, 64): rank*8 + file.
//
// Rank 0 is the last segment of a placement string, so in the initial
// position Second's back rank occupies squares 0-7 and First's 56-63.
type Square int

// NoSquare marks the absence of a square (e.g. no en passant target).
const NoSquare Square = -1

// NewSquare builds a square from zero-based rank and file.
func NewSquare(rank, file int) Square {
	return Square(rank*BoardSize + file)
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Rank returns the zero-based rank of the square.
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// File returns the zero-based file of the square.
func (s Square) File() int {
	return int(s) % BoardSize
}

// String returns the square name, e.g. "e2", or "-" for an invalid square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())})
}

// ParseSquare parses either a decimal index ("52") or a square name ("e7").
func ParseSquare(text string) (Square, error) {
	if len(text) == 2 && text[0] >= 'a' && text[0] <= 'h' && text[1] >= '1' && text[1] <= '8' {
		return NewSquare(int(text[1]-RankBase), int(text[0]-FileBase)), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	sq := Square(n)
	if !sq.Valid() {
		return NoSquare, fmt.Errorf("square %d out of range: %w", n, errors.ErrInvalidSquare)
	}
	return sq, nil
}
