package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/output"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

func runAnalyze(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "-", `file with one record per line, "-" for stdin`)
	stream := fs.Bool("stream", false, "with -format json, write one object per line")
	diagram := fs.Bool("diagram", false, "with -format text, draw each board")
	af := newAnalyzeFlags(fs, cfg)
	if err := parseCommand(fs, cfg, af, args); err != nil {
		return err
	}

	r := stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}

	rw, err := output.NewReportWriter(stdout, cfg.Analyze.Format, *stream, *diagram)
	if err != nil {
		return err
	}

	start := time.Now()
	run, err := analyzeRecords(ctx, r, cfg.Analyze)
	if err != nil {
		return err
	}

	skipped := 0
	for i := range run.results {
		if af.unique && run.results[i].Duplicate {
			skipped++
			continue
		}
		if err := rw.WriteResult(&run.results[i]); err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	if err := rw.Close(); err != nil {
		return errors.Wrap(err, "write report")
	}

	event := logger.Info().
		Int("records", len(run.results)).
		Int("skipped", skipped).
		Int("workers", run.workers)
	if run.detector != nil {
		event = event.
			Int("unique", run.detector.UniqueCount()).
			Int("repeats", run.detector.DuplicateCount())
	}
	event.Dur("elapsed", time.Since(start)).Msg("analysis finished")
	return nil
}

// analysis is the outcome of one analyze run.
type analysis struct {
	results  []worker.ProcessResult // In input order
	workers  int
	detector *hashing.ThreadSafeDuplicateDetector // nil unless deduplicating
}

// analyzeRecords runs every record in r through a worker pool and returns
// the results in input order.
func analyzeRecords(ctx context.Context, r io.Reader, cfg *config.AnalyzeConfig) (*analysis, error) {
	numWorkers := cfg.Workers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}

	var detector *hashing.ThreadSafeDuplicateDetector
	if cfg.Dedupe {
		detector = hashing.NewThreadSafeDuplicateDetector()
	}

	pool := worker.NewPool(worker.Analyzer(detector),
		worker.WithWorkers(numWorkers),
		worker.WithBufferSize(numWorkers*4))
	pool.Start(ctx)

	readErr := make(chan error, 1)
	go func() {
		readErr <- submitRecords(ctx, r, pool)
		pool.Close()
	}()

	results := worker.Collect(pool.Results(), detector)
	if err := <-readErr; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis interrupted")
	}
	return &analysis{results: results, workers: pool.Workers(), detector: detector}, nil
}

// submitRecords feeds non-blank lines to the pool. Lines starting with '#'
// are comments.
func submitRecords(ctx context.Context, r io.Reader, pool *worker.Pool) error {
	scanner := bufio.NewScanner(r)
	index := 0
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !pool.Submit(ctx, worker.WorkItem{Index: index, Line: line, Text: text}) {
			return nil
		}
		index++
	}
	return errors.Wrap(scanner.Err(), "read input")
}
