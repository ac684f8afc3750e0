package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// Summary is a read-only digest of a position, indexed by color where it has
// one entry per side.
type Summary struct {
	Turn      chess.Color  `json:"turn"`
	EnPassant chess.Square `json:"enPassant"`
	InCheck   [2]bool      `json:"inCheck"`
	Mobility  [2]int       `json:"mobility"` // pseudo-legal moves available, turn ignored
	Pieces    [2]int       `json:"pieces"`
}

// Summarize computes a Summary for pos.
func Summarize(pos *Position) Summary {
	s := Summary{
		Turn:      pos.Turn,
		EnPassant: pos.EnPassant,
	}
	for _, color := range []chess.Color{chess.First, chess.Second} {
		s.InCheck[color] = IsKingInCheck(pos, color)
		for _, sq := range pos.Board.Occupied(color) {
			s.Pieces[color]++
			s.Mobility[color] += len(MovesFrom(pos, sq))
		}
	}
	return s
}
