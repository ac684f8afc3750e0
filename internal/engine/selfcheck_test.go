package engine

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

func TestSafeMoves(t *testing.T) {
	board, err := ParsePlacement("4k3/4n3/8/8/8/8/8/4R2K")
	testutil.AssertNoError(t, err)
	pos := NewPosition(board)

	t.Run("pinned knight has no safe moves", func(t *testing.T) {
		unfiltered, _ := LegalMoves(&pos, 52)
		testutil.AssertEqual(t, len(unfiltered), 6)

		moves, ok := SafeMoves(&pos, 52)
		testutil.AssertTrue(t, ok)
		if moves == nil || len(moves) != 0 {
			t.Errorf("SafeMoves(52) = %v, want empty non-nil", moves)
		}
	})

	t.Run("king steps aside", func(t *testing.T) {
		moves, ok := SafeMoves(&pos, 60)
		testutil.AssertTrue(t, ok)
		testutil.AssertSquares(t, moves, []chess.Square{51, 53, 59, 61})
	})

	t.Run("absent square stays absent", func(t *testing.T) {
		moves, ok := SafeMoves(&pos, 4)
		testutil.AssertFalse(t, ok)
		testutil.AssertSquares(t, moves, nil)
	})

	t.Run("does not modify the position", func(t *testing.T) {
		before := pos
		SafeMoves(&pos, 52)
		SafeMoves(&pos, 60)
		testutil.AssertEqual(t, pos, before)
	})
}

func TestApplySafeMove(t *testing.T) {
	board, err := ParsePlacement("4k3/4n3/8/8/8/8/8/4R2K")
	testutil.AssertNoError(t, err)

	pos := NewPosition(board)
	before := pos
	_, ok := ApplySafeMove(&pos, 52, 37)
	testutil.AssertFalse(t, ok, "pinned knight move")
	testutil.AssertEqual(t, pos, before)

	result, ok := ApplySafeMove(&pos, 60, 59)
	testutil.AssertTrue(t, ok, "king move")
	testutil.AssertEqual(t, result.To, chess.Square(59))
	testutil.AssertEqual(t, pos.Turn, chess.Second)
}

func TestSafeMoves_EnPassantRemovesVictimOnTrialBoard(t *testing.T) {
	// Both pawns stand between the First king on 24 and the rook on 31.
	// Taking en passant empties the rank; a plain push keeps 27 as a shield.
	pos := positionWith(chess.First, 19, map[chess.Square]chess.Placement{
		24: testutil.FK,
		28: testutil.FP,
		27: testutil.SP,
		31: testutil.SR,
		7:  testutil.SK,
	})

	unfiltered, _ := LegalMoves(pos, 28)
	testutil.AssertSquares(t, unfiltered, []chess.Square{20, 19})

	moves, ok := SafeMoves(pos, 28)
	testutil.AssertTrue(t, ok)
	testutil.AssertSquares(t, moves, []chess.Square{20})
}
