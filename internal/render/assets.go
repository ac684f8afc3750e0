// Package render draws boards and names the piece images that go on them.
package render

import "github.com/lgbarn/chessboard-go/internal/chess"

// AssetName returns the image file name for a piece: a color letter ('w' for
// First, 'b' for Second), the piece letter and ".svg". Reversed images carry
// an extra 'r' prefix, e.g. "rbq.svg".
func AssetName(color chess.Color, piece chess.Piece, reversed bool) string {
	name := make([]byte, 0, 7)
	if reversed {
		name = append(name, 'r')
	}
	if color == chess.First {
		name = append(name, 'w')
	} else {
		name = append(name, 'b')
	}
	if piece != chess.NoPiece {
		name = append(name, piece.Letter())
	}
	return string(append(name, ".svg"...))
}

// Asset is one entry of the asset table.
type Asset struct {
	Color    chess.Color `json:"color"`
	Piece    chess.Piece `json:"piece"`
	Reversed bool        `json:"reversed"`
	Name     string      `json:"name"`
}

// Assets returns every asset name, upright images first, each group ordered
// by color then piece.
func Assets() []Asset {
	assets := make([]Asset, 0, 2*2*len(chess.Pieces))
	for _, reversed := range []bool{false, true} {
		for _, color := range []chess.Color{chess.First, chess.Second} {
			for _, piece := range chess.Pieces {
				assets = append(assets, Asset{
					Color:    color,
					Piece:    piece,
					Reversed: reversed,
					Name:     AssetName(color, piece, reversed),
				})
			}
		}
	}
	return assets
}
