package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Square colors of the diagram.
const (
	LightColor     = "#ffffff"
	DarkColor      = "#166534"
	SelectedColor  = "#3b82f6"
	HighlightColor = "#93c5fd"
)

// DefaultSquareSize is the edge of one square in pixels.
const DefaultSquareSize = 64

// Options control WriteBoardSVG.
type Options struct {
	SquareSize  int            // Pixels per square; DefaultSquareSize when <= 0
	AssetPrefix string         // Prepended to AssetName in image links
	Selected    chess.Square   // Square drawn in SelectedColor; NoSquare for none
	Highlight   []chess.Square // Squares drawn in HighlightColor
	Reversed    bool           // Use the reversed piece images
	Title       string
}

// DefaultOptions returns options with no selection and the default size.
func DefaultOptions() Options {
	return Options{
		SquareSize: DefaultSquareSize,
		Selected:   chess.NoSquare,
	}
}

// WriteBoardSVG draws board as an 8x8 grid with square 0 in the top-left
// corner and square 63 in the bottom-right.
func WriteBoardSVG(w io.Writer, board chess.Board, opts Options) error {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}

	highlighted := make(map[chess.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		highlighted[sq] = true
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(size*chess.BoardSize, size*chess.BoardSize)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}

	canvas.Gid("squares")
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		x, y := squareOrigin(sq, size)
		canvas.Rect(x, y, size, size, fmt.Sprintf("fill:%s", squareFill(sq, opts.Selected, highlighted)))
	}
	canvas.Gend()

	canvas.Gid("pieces")
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.At(sq)
		if p.IsEmpty() {
			continue
		}
		x, y := squareOrigin(sq, size)
		canvas.Image(x, y, size, size, opts.AssetPrefix+AssetName(p.Color, p.Piece, opts.Reversed),
			fmt.Sprintf(`data-square="%d"`, int(sq)))
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

// IsLight reports whether sq is drawn in the light color.
func IsLight(sq chess.Square) bool {
	return int(sq)%2 == (int(sq)/chess.BoardSize)%2
}

func squareOrigin(sq chess.Square, size int) (int, int) {
	return sq.File() * size, sq.Rank() * size
}

// squareFill picks the fill for one square. Highlight wins over selection,
// which wins over the base color.
func squareFill(sq, selected chess.Square, highlighted map[chess.Square]bool) string {
	switch {
	case highlighted[sq]:
		return HighlightColor
	case sq == selected:
		return SelectedColor
	case IsLight(sq):
		return LightColor
	default:
		return DarkColor
	}
}

// errWriter keeps the first write error; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
