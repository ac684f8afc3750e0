// Package worker analyzes placement records in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessboard-go/internal/engine"
)

// WorkItem is one input record to analyze.
type WorkItem struct {
	Index int    // Position in the input, used to restore order
	Line  int    // 1-based source line
	Text  string // Raw record: placement, optional turn, optional en passant square
}

// ProcessResult is the analysis of one WorkItem.
type ProcessResult struct {
	Index     int
	Line      int
	Placement string
	Position  engine.Position
	Summary   engine.Summary
	Hash      uint64
	Duplicate bool // An earlier record hashed to the same position
	FirstLine int  // Line of that earlier record, when Duplicate
	Error     error
}

// ProcessFunc analyzes a single record.
type ProcessFunc func(item WorkItem) ProcessResult

const (
	defaultWorkers = 1
	defaultBacklog = 10
)

// Pool runs a ProcessFunc over submitted records on a fixed set of
// goroutines. Results arrive in completion order; use Collect to restore
// input order.
type Pool struct {
	process ProcessFunc
	workers int
	backlog int

	items   chan WorkItem
	results chan ProcessResult
	wg      sync.WaitGroup
	stopped atomic.Bool
	done    chan struct{}
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets how many records and results may be queued.
// Values below 1 are ignored.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.backlog = size
		}
	}
}

// NewPool returns a pool that analyzes records with process.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		process: process,
		workers: defaultWorkers,
		backlog: defaultBacklog,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.items = make(chan WorkItem, p.backlog)
	p.results = make(chan ProcessResult, p.backlog)
	return p
}

// Start launches the workers. When ctx is done the pool stops: queued
// records are dropped and Submit refuses new ones.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-p.done:
		}
	}()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for item := range p.items {
		if p.stopped.Load() {
			continue
		}
		p.results <- p.process(item)
	}
}

// Submit queues a record, blocking while the backlog is full. It reports
// false, without queuing, once the pool is stopped or ctx is done.
func (p *Pool) Submit(ctx context.Context, item WorkItem) bool {
	if p.stopped.Load() {
		return false
	}
	select {
	case p.items <- item:
		return true
	case <-ctx.Done():
		p.Stop()
		return false
	}
}

// Stop drops queued records. Records already being analyzed still produce
// a result.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Stopped reports whether Stop was called or the start context ended.
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Close ends submission and waits for the workers. The Results channel is
// closed afterwards. Call it once, after the last Submit.
func (p *Pool) Close() {
	close(p.items)
	p.wg.Wait()
	close(p.results)
	close(p.done)
}

// Results returns the channel of analyzed records.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}
