package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

// ReportWriter is the interface for writing analysis results.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteResult writes a single result to the output.
	WriteResult(r *worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. Batch writers write pending output here.
	Close() error
}

// NewReportWriter returns the writer for config.ReportText or config.ReportJSON.
// When single is set JSON records are written one per line as they arrive.
func NewReportWriter(w io.Writer, format string, single, diagram bool) (ReportWriter, error) {
	switch format {
	case config.ReportText:
		return NewTextWriter(w, diagram), nil
	case config.ReportJSON:
		if single {
			return NewJSONWriterSingle(w), nil
		}
		return NewJSONWriter(w), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "report format %q", format)
	}
}

// TextWriter writes one line per result and a totals line on Close.
type TextWriter struct {
	w       io.Writer
	diagram bool
	totals  Totals
}

// NewTextWriter creates a new text writer. With diagram set each valid
// result is followed by a drawing of its board.
func NewTextWriter(w io.Writer, diagram bool) *TextWriter {
	return &TextWriter{
		w:       w,
		diagram: diagram,
	}
}

// WriteResult writes a result immediately.
func (tw *TextWriter) WriteResult(r *worker.ProcessResult) error {
	tw.totals.add(r)
	if _, err := fmt.Fprintln(tw.w, FormatResult(r)); err != nil {
		return err
	}
	if tw.diagram && r.Error == nil {
		if _, err := fmt.Fprintln(tw.w, FormatBoard(&r.Position.Board, false)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close writes the totals line.
func (tw *TextWriter) Close() error {
	return WriteTotals(tw.w, tw.totals)
}

// Totals returns the counts so far.
func (tw *TextWriter) Totals() Totals {
	return tw.totals
}

// JSONWriter writes results in JSON format.
// It buffers results and writes them as one report on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	records []*JSONRecord
	totals  Totals
	single  bool // If true, write each record immediately instead of batching
	written bool // A report has been written
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches records and writes them as a report on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		records: make([]*JSONRecord, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each record
// immediately, one compact object per line, and a totals object on Close.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteResult buffers a record (or writes it immediately in single mode).
func (jw *JSONWriter) WriteResult(r *worker.ProcessResult) error {
	jw.totals.add(r)
	rec := ResultToJSON(r)
	if jw.single {
		return json.NewEncoder(jw.w).Encode(rec)
	}
	jw.records = append(jw.records, rec)
	return nil
}

// Flush writes the buffered records as a report.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.records) == 0 {
		return nil
	}
	return jw.writeReport()
}

// Close writes any pending report. A batch writer that never wrote one
// writes an empty report; a single writer ends with its totals.
func (jw *JSONWriter) Close() error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(struct {
			Totals Totals `json:"totals"`
		}{jw.totals})
	}
	if jw.written && len(jw.records) == 0 {
		return nil
	}
	return jw.writeReport()
}

func (jw *JSONWriter) writeReport() error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONReport{Records: jw.records, Totals: jw.totals})

	jw.records = jw.records[:0]
	jw.written = true
	return err
}

// Totals returns the counts so far.
func (jw *JSONWriter) Totals() Totals {
	return jw.totals
}
