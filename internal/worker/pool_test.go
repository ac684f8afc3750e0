package worker

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

// records returns n placements cycling through one to eight First pawns on
// their starting row, so records repeat every eight lines.
func records(n int) []string {
	out := make([]string, n)
	for i := range out {
		pawns := i%8 + 1
		row := strings.Repeat("p", pawns)
		if pawns < 8 {
			row += strconv.Itoa(8 - pawns)
		}
		out[i] = "4k3/" + row + "/8/8/8/8/8/4K3"
	}
	return out
}

// drain reads every result, keyed by index.
func drain(p *Pool) map[int]ProcessResult {
	got := make(map[int]ProcessResult)
	for r := range p.Results() {
		got[r.Index] = r
	}
	return got
}

// gated wraps process so that each call blocks until gate is closed. The
// first call is announced on started.
func gated(process ProcessFunc) (ProcessFunc, chan struct{}, <-chan struct{}) {
	gate := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	return func(item WorkItem) ProcessResult {
		once.Do(func() { close(started) })
		<-gate
		return process(item)
	}, gate, started
}

func TestPool_AnalyzesRecords(t *testing.T) {
	lines := records(24)
	pool := NewPool(Analyzer(nil), WithWorkers(4), WithBufferSize(3))
	pool.Start(context.Background())

	go func() {
		for i, line := range lines {
			pool.Submit(context.Background(), WorkItem{Index: i, Line: i + 1, Text: line})
		}
		pool.Close()
	}()

	got := drain(pool)
	testutil.AssertEqual(t, len(got), len(lines))
	for i, line := range lines {
		r := got[i]
		testutil.AssertNoError(t, r.Error)
		testutil.AssertEqual(t, r.Line, i+1)
		testutil.AssertEqual(t, r.Placement, line)
		testutil.AssertEqual(t, r.Summary.Pieces[0], i%8+2, "First pieces in record %d", i)
	}
	testutil.AssertFalse(t, pool.Stopped())
}

func TestPool_Options(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBacklog int
	}{
		{"defaults", nil, defaultWorkers, defaultBacklog},
		{"workers", []PoolOption{WithWorkers(4)}, 4, defaultBacklog},
		{"buffer", []PoolOption{WithBufferSize(50)}, defaultWorkers, 50},
		{"both", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"zero workers ignored", []PoolOption{WithWorkers(0)}, defaultWorkers, defaultBacklog},
		{"negative buffer ignored", []PoolOption{WithBufferSize(-5)}, defaultWorkers, defaultBacklog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(Analyzer(nil), tt.opts...)
			testutil.AssertEqual(t, pool.Workers(), tt.wantWorkers)
			testutil.AssertEqual(t, pool.backlog, tt.wantBacklog)
			testutil.AssertEqual(t, cap(pool.items), tt.wantBacklog)
		})
	}
}

func TestPool_StopDropsQueued(t *testing.T) {
	process, gate, started := gated(Analyzer(nil))
	pool := NewPool(process, WithWorkers(1), WithBufferSize(10))
	ctx := context.Background()
	pool.Start(ctx)

	for i := 0; i < 5; i++ {
		testutil.AssertTrue(t, pool.Submit(ctx, WorkItem{Index: i, Text: engine.InitialPlacement}))
	}
	<-started
	pool.Stop()
	testutil.AssertFalse(t, pool.Submit(ctx, WorkItem{Index: 5, Text: engine.InitialPlacement}), "Submit after Stop")

	close(gate)
	pool.Close()

	got := drain(pool)
	testutil.AssertEqual(t, len(got), 1, "only the record in progress completes")
	testutil.AssertNoError(t, got[0].Error)
}

func TestPool_StartContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(Analyzer(nil), WithWorkers(2))
	pool.Start(ctx)

	cancel()
	deadline := time.Now().Add(time.Second)
	for !pool.Stopped() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	testutil.AssertTrue(t, pool.Stopped(), "pool stops when its context ends")
	testutil.AssertFalse(t, pool.Submit(context.Background(), WorkItem{Text: engine.InitialPlacement}))

	pool.Close()
	testutil.AssertEqual(t, len(drain(pool)), 0)
}

func TestPool_SubmitUnblocksOnCancel(t *testing.T) {
	process, gate, started := gated(Analyzer(nil))
	pool := NewPool(process, WithWorkers(1), WithBufferSize(1))
	pool.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	testutil.AssertTrue(t, pool.Submit(ctx, WorkItem{Index: 0, Text: engine.InitialPlacement}))
	<-started
	testutil.AssertTrue(t, pool.Submit(ctx, WorkItem{Index: 1, Text: engine.InitialPlacement}))

	submitted := make(chan bool)
	go func() {
		submitted <- pool.Submit(ctx, WorkItem{Index: 2, Text: engine.InitialPlacement})
	}()
	cancel()

	select {
	case ok := <-submitted:
		testutil.AssertFalse(t, ok, "Submit on a full backlog after cancel")
	case <-time.After(time.Second):
		t.Fatal("Submit did not return after its context was cancelled")
	}
	testutil.AssertTrue(t, pool.Stopped())

	close(gate)
	pool.Close()
	drain(pool)
}

func TestPool_CloseDoesNotStop(t *testing.T) {
	pool := NewPool(Analyzer(nil))
	pool.Start(context.Background())
	pool.Close()

	testutil.AssertFalse(t, pool.Stopped())
	testutil.AssertEqual(t, len(drain(pool)), 0)
}

// TestPool_ConcurrentDedupe is meant for -race: many workers observe into
// one detector while records repeat every eight lines.
func TestPool_ConcurrentDedupe(t *testing.T) {
	lines := records(200)
	detector := hashing.NewThreadSafeDuplicateDetector()
	pool := NewPool(Analyzer(detector), WithWorkers(8), WithBufferSize(16))
	ctx := context.Background()
	pool.Start(ctx)

	go func() {
		for i, line := range lines {
			pool.Submit(ctx, WorkItem{Index: i, Line: i + 1, Text: line})
		}
		pool.Close()
	}()

	results := Collect(pool.Results(), detector)
	testutil.AssertEqual(t, len(results), len(lines))
	for i, r := range results {
		testutil.AssertEqual(t, r.Duplicate, i >= 8, "record %d", i)
	}
	testutil.AssertEqual(t, detector.UniqueCount(), 8)
}
