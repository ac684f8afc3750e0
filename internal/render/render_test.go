package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

func TestAssetName(t *testing.T) {
	tests := []struct {
		color    chess.Color
		piece    chess.Piece
		reversed bool
		want     string
	}{
		{chess.First, chess.Pawn, false, "wp.svg"},
		{chess.First, chess.King, false, "wk.svg"},
		{chess.Second, chess.Knight, false, "bn.svg"},
		{chess.Second, chess.Queen, true, "rbq.svg"},
		{chess.First, chess.Rook, true, "rwr.svg"},
		{chess.Second, chess.Bishop, false, "bb.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := AssetName(tt.color, tt.piece, tt.reversed)
			if got != tt.want {
				t.Errorf("AssetName(%v, %v, %v) = %q, want %q", tt.color, tt.piece, tt.reversed, got, tt.want)
			}
		})
	}
}

func TestAssets(t *testing.T) {
	assets := Assets()
	testutil.AssertEqual(t, len(assets), 24)
	testutil.AssertEqual(t, assets[0], Asset{Color: chess.First, Piece: chess.Pawn, Name: "wp.svg"})
	testutil.AssertEqual(t, assets[23], Asset{Color: chess.Second, Piece: chess.King, Reversed: true, Name: "rbk.svg"})

	seen := make(map[string]bool)
	for _, a := range assets {
		if seen[a.Name] {
			t.Errorf("duplicate asset name %q", a.Name)
		}
		seen[a.Name] = true
	}
}

func TestIsLight(t *testing.T) {
	tests := []struct {
		sq   chess.Square
		want bool
	}{
		{0, true},
		{1, false},
		{7, false},
		{8, false},
		{9, true},
		{63, true},
	}
	for _, tt := range tests {
		if got := IsLight(tt.sq); got != tt.want {
			t.Errorf("IsLight(%d) = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestWriteBoardSVG_Initial(t *testing.T) {
	board, err := engine.ParsePlacement(engine.InitialPlacement)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.AssetPrefix = "/chess-pieces/"
	opts.Title = "initial"
	testutil.AssertNoError(t, WriteBoardSVG(&buf, board, opts))

	out := buf.String()
	testutil.AssertEqual(t, strings.Count(out, "<rect"), 64, "square count")
	testutil.AssertEqual(t, strings.Count(out, "<image"), 32, "piece count")
	testutil.AssertEqual(t, strings.Count(out, "fill:"+LightColor), 32)
	testutil.AssertEqual(t, strings.Count(out, "fill:"+DarkColor), 32)
	testutil.AssertContains(t, out, `width="512"`)
	testutil.AssertContains(t, out, "<title>initial</title>")
	testutil.AssertContains(t, out, "/chess-pieces/bk.svg")
	testutil.AssertContains(t, out, "/chess-pieces/wq.svg")
	testutil.AssertEqual(t, strings.Count(out, "/chess-pieces/wp.svg"), 8)
	testutil.AssertContains(t, out, `data-square="60"`)
}

func TestWriteBoardSVG_Highlights(t *testing.T) {
	board, err := engine.ParsePlacement(engine.InitialPlacement)
	testutil.AssertNoError(t, err)

	opts := Options{
		SquareSize: 10,
		Selected:   52,
		Highlight:  []chess.Square{44, 36},
		Reversed:   true,
	}
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteBoardSVG(&buf, board, opts))

	out := buf.String()
	testutil.AssertEqual(t, strings.Count(out, "fill:"+SelectedColor), 1)
	testutil.AssertEqual(t, strings.Count(out, "fill:"+HighlightColor), 2)
	testutil.AssertContains(t, out, `width="80"`)
	testutil.AssertContains(t, out, "rwp.svg")
}

func TestWriteBoardSVG_DefaultSize(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteBoardSVG(&buf, chess.Board{}, Options{Selected: chess.NoSquare}))
	testutil.AssertContains(t, buf.String(), `width="512"`)
	testutil.AssertEqual(t, strings.Count(buf.String(), "<image"), 0)
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestWriteBoardSVG_WriteError(t *testing.T) {
	err := WriteBoardSVG(failingWriter{}, chess.Board{}, DefaultOptions())
	testutil.AssertErrorIs(t, err, errWrite)
}
