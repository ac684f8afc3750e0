package output

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

// JSONSides holds one value per color.
type JSONSides[T any] struct {
	First  T `json:"first"`
	Second T `json:"second"`
}

func sides[T any](v [2]T) JSONSides[T] {
	return JSONSides[T]{First: v[chess.First], Second: v[chess.Second]}
}

// JSONRecord is one analysis result in JSON form.
type JSONRecord struct {
	Line      int              `json:"line"`
	Placement string           `json:"placement,omitempty"`
	Turn      string           `json:"turn,omitempty"`
	EnPassant string           `json:"enPassant,omitempty"`
	InCheck   *JSONSides[bool] `json:"inCheck,omitempty"`
	Mobility  *JSONSides[int]  `json:"mobility,omitempty"`
	Pieces    *JSONSides[int]  `json:"pieces,omitempty"`
	Hash      string           `json:"hash,omitempty"`
	Duplicate bool             `json:"duplicate,omitempty"`
	FirstLine int              `json:"firstLine,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// JSONReport holds every record of a batch run.
type JSONReport struct {
	Records []*JSONRecord `json:"records"`
	Totals  Totals        `json:"totals"`
}

// ResultToJSON converts an analysis result to its JSON form.
func ResultToJSON(r *worker.ProcessResult) *JSONRecord {
	rec := &JSONRecord{Line: r.Line}
	if r.Error != nil {
		rec.Error = r.Error.Error()
		return rec
	}

	s := r.Summary
	inCheck := sides(s.InCheck)
	mobility := sides(s.Mobility)
	pieces := sides(s.Pieces)

	rec.Placement = r.Placement
	rec.Turn = strings.ToLower(s.Turn.String())
	if s.EnPassant.Valid() {
		rec.EnPassant = s.EnPassant.String()
	}
	rec.InCheck = &inCheck
	rec.Mobility = &mobility
	rec.Pieces = &pieces
	rec.Hash = fmt.Sprintf("%016x", r.Hash)
	rec.Duplicate = r.Duplicate
	rec.FirstLine = r.FirstLine
	return rec
}
