package engine

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

// positionWith builds a position holding exactly the given pieces.
func positionWith(turn chess.Color, ep chess.Square, pieces map[chess.Square]chess.Placement) *Position {
	pos := NewPosition(testutil.BoardWith(pieces))
	pos.Turn = turn
	pos.EnPassant = ep
	return &pos
}

// initialPosition returns the starting position with First to move.
func initialPosition(t *testing.T) *Position {
	t.Helper()
	board, err := ParsePlacement(InitialPlacement)
	if err != nil {
		t.Fatalf("ParsePlacement(InitialPlacement) error: %v", err)
	}
	pos := NewPosition(board)
	return &pos
}

func TestLegalMoves_Absent(t *testing.T) {
	pos := initialPosition(t)

	tests := []struct {
		name string
		sq   chess.Square
	}{
		{"empty square", 30},
		{"piece of side not to move", 12},
		{"off board high", 64},
		{"off board low", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, ok := LegalMoves(pos, tt.sq)
			if ok || moves != nil {
				t.Errorf("LegalMoves(%d) = %v, %v; want nil, false", tt.sq, moves, ok)
			}
		})
	}
}

// TestLegalMoves_AbsentForEverySquare checks the absent result over the whole
// board for both sides to move.
func TestLegalMoves_AbsentForEverySquare(t *testing.T) {
	for _, turn := range []chess.Color{chess.First, chess.Second} {
		pos := initialPosition(t)
		pos.Turn = turn
		for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
			p := pos.Board.At(sq)
			_, ok := LegalMoves(pos, sq)
			wantOK := !p.IsEmpty() && p.Color == turn
			if ok != wantOK {
				t.Errorf("turn %v: LegalMoves(%d) ok = %v, want %v", turn, sq, ok, wantOK)
			}
		}
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name string
		pos  *Position
		from chess.Square
		want []chess.Square
	}{
		{
			name: "First start rank both steps",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{52: testutil.FP}),
			from: 52,
			want: []chess.Square{44, 36},
		},
		{
			name: "First two-step square blocked",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{52: testutil.FP, 36: testutil.SN}),
			from: 52,
			want: []chess.Square{44},
		},
		{
			name: "First one-step square blocked",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{52: testutil.FP, 44: testutil.FN}),
			from: 52,
			want: nil,
		},
		{
			name: "Second start rank both steps",
			pos:  positionWith(chess.Second, chess.NoSquare, map[chess.Square]chess.Placement{12: testutil.SP}),
			from: 12,
			want: []chess.Square{20, 28},
		},
		{
			name: "off start rank single step",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{36: testutil.FP}),
			from: 36,
			want: []chess.Square{28},
		},
		{
			name: "First captures both diagonals",
			pos: positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{
				36: testutil.FP, 27: testutil.SP, 29: testutil.SN,
			}),
			from: 36,
			want: []chess.Square{28, 27, 29},
		},
		{
			name: "Second captures both diagonals",
			pos: positionWith(chess.Second, chess.NoSquare, map[chess.Square]chess.Placement{
				28: testutil.SP, 37: testutil.FB, 35: testutil.FP,
			}),
			from: 28,
			want: []chess.Square{36, 37, 35},
		},
		{
			name: "no capture of friendly pieces",
			pos: positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{
				36: testutil.FP, 27: testutil.FP, 29: testutil.FN,
			}),
			from: 36,
			want: []chess.Square{28},
		},
		{
			name: "edge file does not wrap",
			pos: positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{
				48: testutil.FP, 39: testutil.SR, 41: testutil.SR,
			}),
			from: 48,
			want: []chess.Square{40, 32, 41},
		},
		{
			name: "en passant target",
			pos: positionWith(chess.First, 19, map[chess.Square]chess.Placement{
				28: testutil.FP, 27: testutil.SP,
			}),
			from: 28,
			want: []chess.Square{20, 19},
		},
		{
			name: "last rank has no forward square",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{3: testutil.FP}),
			from: 3,
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			moves, ok := LegalMoves(tt.pos, tt.from)
			if !ok {
				t.Fatalf("LegalMoves(%d) ok = false, want true", tt.from)
			}
			testutil.AssertSquares(t, moves, tt.want, "LegalMoves(%d)", tt.from)
		})
	}
}

func TestKnightMoves(t *testing.T) {
	tests := []struct {
		name string
		pos  *Position
		from chess.Square
		want []chess.Square
	}{
		{
			name: "corner 0",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{0: testutil.FN}),
			from: 0,
			want: []chess.Square{10, 17},
		},
		{
			name: "corner 63",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{63: testutil.FN}),
			from: 63,
			want: []chess.Square{46, 53},
		},
		{
			name: "centre",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{27: testutil.FN}),
			from: 27,
			want: []chess.Square{10, 12, 17, 21, 33, 37, 42, 44},
		},
		{
			name: "initial g-file knight skips friendly squares",
			pos:  initialPosition(t),
			from: 62,
			want: []chess.Square{45, 47},
		},
		{
			name: "captures enemy",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{0: testutil.FN, 10: testutil.SP, 17: testutil.FP}),
			from: 0,
			want: []chess.Square{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, ok := LegalMoves(tt.pos, tt.from)
			if !ok {
				t.Fatalf("LegalMoves(%d) ok = false, want true", tt.from)
			}
			testutil.AssertSameSquares(t, moves, tt.want, "LegalMoves(%d)", tt.from)
			for _, to := range moves {
				if d := fileDistance(tt.from, to); d > 2 {
					t.Errorf("knight %d -> %d has file distance %d", tt.from, to, d)
				}
			}
		})
	}
}

func TestBishopMoves(t *testing.T) {
	t.Run("open board in direction order", func(t *testing.T) {
		pos := positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{27: testutil.FB})
		moves, _ := LegalMoves(pos, 27)
		testutil.AssertSquares(t, moves, []chess.Square{34, 41, 48, 36, 45, 54, 63, 20, 13, 6, 18, 9, 0})
	})

	t.Run("friendly blocks exclusive, enemy inclusive", func(t *testing.T) {
		pos := positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{
			27: testutil.FB, 45: testutil.FP, 13: testutil.SP,
		})
		moves, _ := LegalMoves(pos, 27)
		testutil.AssertSquares(t, moves, []chess.Square{34, 41, 48, 36, 20, 13, 18, 9, 0})
	})

	t.Run("edge square does not wrap", func(t *testing.T) {
		pos := positionWith(chess.Second, chess.NoSquare, map[chess.Square]chess.Placement{7: testutil.SB})
		moves, _ := LegalMoves(pos, 7)
		testutil.AssertSquares(t, moves, []chess.Square{14, 21, 28, 35, 42, 49, 56})
	})
}

func TestRookMoves(t *testing.T) {
	t.Run("open board in direction order", func(t *testing.T) {
		pos := positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{27: testutil.FR})
		moves, _ := LegalMoves(pos, 27)
		testutil.AssertSquares(t, moves, []chess.Square{28, 29, 30, 31, 26, 25, 24, 35, 43, 51, 59, 19, 11, 3})
	})

	t.Run("friendly blocks exclusive, enemy inclusive", func(t *testing.T) {
		pos := positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{
			27: testutil.FR, 29: testutil.FN, 43: testutil.SQ,
		})
		moves, _ := LegalMoves(pos, 27)
		testutil.AssertSquares(t, moves, []chess.Square{28, 26, 25, 24, 35, 43, 19, 11, 3})
	})

	t.Run("initial corner rook is boxed in", func(t *testing.T) {
		moves, ok := LegalMoves(initialPosition(t), 56)
		if !ok || moves == nil || len(moves) != 0 {
			t.Errorf("LegalMoves(56) = %v, %v; want [], true", moves, ok)
		}
	})
}

func TestQueenMoves(t *testing.T) {
	pos := positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{27: testutil.FQ})
	moves, _ := LegalMoves(pos, 27)

	want := append(bishopMoves(pos, 27, chess.First), rookMoves(pos, 27, chess.First)...)
	testutil.AssertSquares(t, moves, want)
	if len(moves) != 27 {
		t.Errorf("queen on 27 has %d moves, want 27", len(moves))
	}
}

func TestKingMoves(t *testing.T) {
	tests := []struct {
		name string
		pos  *Position
		from chess.Square
		want []chess.Square
	}{
		{
			name: "corner 0",
			pos:  positionWith(chess.Second, chess.NoSquare, map[chess.Square]chess.Placement{0: testutil.SK}),
			from: 0,
			want: []chess.Square{1, 8, 9},
		},
		{
			name: "corner 7 does not wrap",
			pos:  positionWith(chess.Second, chess.NoSquare, map[chess.Square]chess.Placement{7: testutil.SK}),
			from: 7,
			want: []chess.Square{6, 14, 15},
		},
		{
			name: "initial king is boxed in",
			pos:  initialPosition(t),
			from: 60,
			want: nil,
		},
		{
			name: "walks next to an enemy rook",
			pos:  positionWith(chess.First, chess.NoSquare, map[chess.Square]chess.Placement{36: testutil.FK, 43: testutil.SR}),
			from: 36,
			want: []chess.Square{27, 28, 29, 35, 37, 43, 44, 45},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, ok := LegalMoves(tt.pos, tt.from)
			if !ok {
				t.Fatalf("LegalMoves(%d) ok = false, want true", tt.from)
			}
			testutil.AssertSquares(t, moves, tt.want, "LegalMoves(%d)", tt.from)
		})
	}
}

// TestMovesFrom_IgnoresTurn verifies the turn-free generator used by check detection.
func TestMovesFrom_IgnoresTurn(t *testing.T) {
	pos := initialPosition(t)
	testutil.AssertSquares(t, MovesFrom(pos, 12), []chess.Square{20, 28})
	if got := MovesFrom(pos, 30); got != nil {
		t.Errorf("MovesFrom(empty) = %v, want nil", got)
	}
}

// TestInitialMobility counts pseudo-legal moves in the starting position.
func TestInitialMobility(t *testing.T) {
	pos := initialPosition(t)
	total := 0
	for _, sq := range pos.Board.Occupied(chess.First) {
		moves, ok := LegalMoves(pos, sq)
		if !ok {
			t.Fatalf("LegalMoves(%d) ok = false for a First piece", sq)
		}
		total += len(moves)
	}
	if total != 20 {
		t.Errorf("First has %d moves in the initial position, want 20", total)
	}
}
