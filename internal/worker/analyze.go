package worker

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/hashing"
)

// ParseRecord reads "placement [first|second] [square]". The turn defaults
// to First and the en passant square to none; "-" leaves either unset.
func ParseRecord(text string) (engine.Position, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 3 {
		return engine.Position{}, fmt.Errorf("record %q: want 1 to 3 fields, got %d: %w",
			text, len(fields), errors.ErrInvalidPlacement)
	}

	board, err := engine.ParsePlacement(fields[0])
	if err != nil {
		return engine.Position{}, err
	}
	pos := engine.NewPosition(board)

	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "first", "-":
		case "second":
			pos.Turn = chess.Second
		default:
			return engine.Position{}, fmt.Errorf("turn %q: %w", fields[1], errors.ErrInvalidPlacement)
		}
	}
	if len(fields) > 2 && fields[2] != "-" {
		sq, err := chess.ParseSquare(fields[2])
		if err != nil {
			return engine.Position{}, err
		}
		pos.EnPassant = sq
	}
	return pos, nil
}

// Analyzer returns a ProcessFunc that parses and summarizes each record. When
// detector is non-nil every valid position is observed in it.
func Analyzer(detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Index: item.Index, Line: item.Line}

		pos, err := ParseRecord(item.Text)
		if err != nil {
			result.Error = err
			return result
		}

		result.Position = pos
		result.Placement = engine.PlacementString(pos.Board)
		result.Summary = engine.Summarize(&pos)
		result.Hash = hashing.PositionHash(&pos)
		if detector != nil {
			detector.Observe(result.Hash, item.Index)
		}
		return result
	}
}

// Collect drains results and returns them in input order. When detector is
// non-nil, results whose hash was first produced by a lower index are marked
// as duplicates of that record.
func Collect(results <-chan ProcessResult, detector *hashing.ThreadSafeDuplicateDetector) []ProcessResult {
	var out []ProcessResult
	for r := range results {
		i, _ := slices.BinarySearchFunc(out, r.Index, byIndex)
		out = slices.Insert(out, i, r)
	}

	if detector != nil {
		for i := range out {
			if out[i].Error != nil || !detector.IsDuplicate(out[i].Hash, out[i].Index) {
				continue
			}
			out[i].Duplicate = true
			first, _ := detector.FirstIndex(out[i].Hash)
			if j, ok := slices.BinarySearchFunc(out, first, byIndex); ok {
				out[i].FirstLine = out[j].Line
			}
		}
	}
	return out
}

func byIndex(r ProcessResult, index int) int {
	return r.Index - index
}
