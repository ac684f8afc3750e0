// Package output formats boards and analysis reports for terminals and
// machine consumers.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

// FormatBoard draws board as text, top row first, with rank numbers on the
// left and file letters underneath. Empty squares are dots. When reversed
// the board is viewed from the other side.
func FormatBoard(board *chess.Board, reversed bool) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if reversed {
			rank = row
		}
		fmt.Fprintf(&sb, "%c ", chess.RankBase+rank)
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if reversed {
				file = chess.BoardSize - 1 - col
			}
			p := board.At(chess.NewSquare(rank, file))
			if p.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Letter())
			}
			if col < chess.BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for col := 0; col < chess.BoardSize; col++ {
		file := col
		if reversed {
			file = chess.BoardSize - 1 - col
		}
		sb.WriteByte(byte(chess.FileBase + file))
		if col < chess.BoardSize-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FormatResult renders one analysis result as a single line.
func FormatResult(r *worker.ProcessResult) string {
	if r.Error != nil {
		return fmt.Sprintf("line %d: error: %v", r.Line, r.Error)
	}

	s := r.Summary
	line := fmt.Sprintf("line %d: %s turn=%s ep=%s check=%s mobility=%d/%d pieces=%d/%d hash=%016x",
		r.Line, r.Placement, strings.ToLower(s.Turn.String()), s.EnPassant,
		formatCheck(s.InCheck), s.Mobility[chess.First], s.Mobility[chess.Second],
		s.Pieces[chess.First], s.Pieces[chess.Second], r.Hash)
	if r.Duplicate {
		line += " duplicate"
	}
	return line
}

func formatCheck(inCheck [2]bool) string {
	switch {
	case inCheck[chess.First] && inCheck[chess.Second]:
		return "both"
	case inCheck[chess.First]:
		return "first"
	case inCheck[chess.Second]:
		return "second"
	default:
		return "none"
	}
}

// Totals counts the records a writer has seen.
type Totals struct {
	Records    int `json:"records"`
	Errors     int `json:"errors"`
	Duplicates int `json:"duplicates"`
}

func (t *Totals) add(r *worker.ProcessResult) {
	t.Records++
	if r.Error != nil {
		t.Errors++
	}
	if r.Duplicate {
		t.Duplicates++
	}
}

// WriteTotals writes the closing summary line of a text report.
func WriteTotals(w io.Writer, t Totals) error {
	_, err := fmt.Fprintf(w, "%d records, %d errors, %d duplicates\n", t.Records, t.Errors, t.Duplicates)
	return err
}
