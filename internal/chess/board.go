package chess

import "encoding/json"

// Placement is the content of one square: a colored piece, or nothing when
// Piece is NoPiece.
type Placement struct {
	Color Color
	Piece Piece
}

// Empty is the content of an unoccupied square.
var Empty = Placement{}

// Place creates a colored piece.
func Place(color Color, piece Piece) Placement {
	return Placement{Color: color, Piece: piece}
}

// IsEmpty reports whether the square holds no piece.
func (p Placement) IsEmpty() bool {
	return p.Piece == NoPiece
}

// Letter returns the placement letter: lowercase for First, uppercase for Second.
func (p Placement) Letter() byte {
	letter := p.Piece.Letter()
	if p.Color == Second && letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return letter
}

// MarshalJSON encodes an empty square as null and a piece as [color, piece].
func (p Placement) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{int(p.Color), int(p.Piece)})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (p *Placement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Empty
		return nil
	}
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	*p = Place(Color(pair[0]), Piece(pair[1]))
	return nil
}

// Board holds the 64 squares, indexed by Square.
// Boards are values: assigning one copies every square.
type Board [NumSquares]Placement

// At returns the content of a square, or Empty if the square is off the board.
func (b Board) At(sq Square) Placement {
	if !sq.Valid() {
		return Empty
	}
	return b[sq]
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Placement) {
	if sq.Valid() {
		b[sq] = p
	}
}

// Clear empties a square.
func (b *Board) Clear(sq Square) {
	b.Set(sq, Empty)
}

// Find returns the lowest square holding the given placement.
func (b Board) Find(p Placement) (Square, bool) {
	for sq := Square(0); sq < NumSquares; sq++ {
		if b[sq] == p {
			return sq, true
		}
	}
	return NoSquare, false
}

// Occupied returns the squares holding pieces of the given color, in index order.
func (b Board) Occupied(color Color) []Square {
	var squares []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if !b[sq].IsEmpty() && b[sq].Color == color {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Count returns the number of pieces on the board.
func (b Board) Count() int {
	n := 0
	for _, p := range b {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}
