// Package hashing provides Zobrist position keys and duplicate detection for
// batches of placements.
package hashing

import (
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// zobristSeed fixes the key table so hashes are stable across runs.
const zobristSeed = 0x9E3779B97F4A7C15

var (
	pieceKeys     [2][7][chess.NumSquares]uint64
	turnKey       uint64
	enPassantKeys [chess.NumSquares]uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for color := range pieceKeys {
		for _, piece := range chess.Pieces {
			for sq := range pieceKeys[color][piece] {
				pieceKeys[color][piece][sq] = r.Uint64()
			}
		}
	}
	turnKey = r.Uint64()
	for sq := range enPassantKeys {
		enPassantKeys[sq] = r.Uint64()
	}
}

// BoardHash returns the Zobrist key of the pieces alone.
func BoardHash(board *chess.Board) uint64 {
	var h uint64
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.At(sq)
		if p.IsEmpty() {
			continue
		}
		h ^= pieceKeys[p.Color][p.Piece][sq]
	}
	return h
}

// PositionHash extends BoardHash with the side to move and the en passant
// target, so two positions hash equal only when every field matches.
func PositionHash(pos *engine.Position) uint64 {
	h := BoardHash(&pos.Board)
	if pos.Turn == chess.Second {
		h ^= turnKey
	}
	if pos.HasEnPassant() {
		h ^= enPassantKeys[pos.EnPassant]
	}
	return h
}
