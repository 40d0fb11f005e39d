package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/parser"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(_ context.Context, item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index, Name: item.Name, Game: &chess.Game{}}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(_ context.Context, item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index, Name: item.Name, Game: &chess.Game{}}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4))
	pool.Start(context.Background())

	const numItems = 10
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i, Name: fmt.Sprintf("game%d.pgn", i)})
		}
		pool.Close()
	}()

	resultCount := collectResults(pool)
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32
	slowProcessFunc := func(_ context.Context, item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start(context.Background())

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	// Should have processed fewer than total due to early stop
	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(2))
	pool.Start(context.Background())

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestNewPool tests the functional options constructor.
func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
		{"nil logger ignored", []PoolOption{WithLogger(nil)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if pool.NumWorkers() != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", pool.NumWorkers(), tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
			if pool.logger == nil {
				t.Error("logger is nil")
			}
		})
	}
}

// TestRunOrder tests that Run returns results in item order.
func TestRunOrder(t *testing.T) {
	variableDelayFunc := func(_ context.Context, item WorkItem) ProcessResult {
		if item.Index%2 == 0 {
			time.Sleep(10 * time.Millisecond)
		}
		return ProcessResult{Index: item.Index, Name: item.Name}
	}

	const numItems = 10
	items := make([]WorkItem, numItems)
	for i := range items {
		items[i] = WorkItem{Index: i, Name: fmt.Sprintf("in%d", i)}
	}

	results := Run(context.Background(), items, variableDelayFunc, WithWorkers(4), WithBufferSize(2))
	if len(results) != numItems {
		t.Fatalf("received %d results; want %d", len(results), numItems)
	}
	for i, r := range results {
		if r.Index != i || r.Name != items[i].Name {
			t.Errorf("results[%d] = {%d %q}; want {%d %q}", i, r.Index, r.Name, i, items[i].Name)
		}
	}
}

// TestRunParses runs the parser through the pool the way the CLI does.
func TestRunParses(t *testing.T) {
	inputs := []string{
		"1. e4 e5 2. Nf3 *",
		"1. e4 0-0",
		"[Event \"x\"] 1-0",
	}
	items := make([]WorkItem, len(inputs))
	for i := range inputs {
		items[i] = WorkItem{Index: i, Name: fmt.Sprintf("in%d", i)}
	}

	parse := func(_ context.Context, item WorkItem) ProcessResult {
		game, err := parser.Parse(inputs[item.Index])
		return ProcessResult{Index: item.Index, Name: item.Name, Game: game, Err: err}
	}

	results := Run(context.Background(), items, parse, WithWorkers(3))
	if results[0].Err != nil || len(results[0].Game.Moves) != 2 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Err == nil || results[1].Game != nil {
		t.Errorf("results[1] = %+v; want error and no game", results[1])
	}
	if results[2].Err != nil || results[2].Game.Event() != "x" {
		t.Errorf("results[2] = %+v", results[2])
	}
}

// TestRunCancelled tests that a cancelled context skips processing.
func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed int32
	items := []WorkItem{{Index: 0}, {Index: 1}, {Index: 2}}
	results := Run(ctx, items, countingProcessFunc(&processed), WithWorkers(2))

	if got := atomic.LoadInt32(&processed); got != 0 {
		t.Errorf("processed = %d; want 0", got)
	}
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v; want context.Canceled", i, r.Err)
		}
	}
}

// TestRunStopOnError tests that a failure skips the items after it.
func TestRunStopOnError(t *testing.T) {
	var processed int32
	failFirst := func(_ context.Context, item WorkItem) ProcessResult {
		atomic.AddInt32(&processed, 1)
		if item.Index == 0 {
			return ProcessResult{Index: item.Index, Name: item.Name, Err: errors.New("bad input")}
		}
		return ProcessResult{Index: item.Index, Name: item.Name, Game: &chess.Game{}}
	}

	items := []WorkItem{{Index: 0, Name: "a"}, {Index: 1, Name: "b"}, {Index: 2, Name: "c"}}
	results := Run(context.Background(), items, failFirst, WithWorkers(1), WithStopOnError())

	if got := atomic.LoadInt32(&processed); got != 1 {
		t.Errorf("processed = %d; want 1", got)
	}
	if results[0].Err == nil || errors.Is(results[0].Err, ErrSkipped) {
		t.Errorf("results[0].Err = %v; want the processing error", results[0].Err)
	}
	for _, r := range results[1:] {
		if !errors.Is(r.Err, ErrSkipped) {
			t.Errorf("%s: Err = %v; want ErrSkipped", r.Name, r.Err)
		}
		if r.Game != nil {
			t.Errorf("%s: skipped item has a game", r.Name)
		}
	}

	// Without the option every item runs.
	atomic.StoreInt32(&processed, 0)
	results = Run(context.Background(), items, failFirst, WithWorkers(1))
	if got := atomic.LoadInt32(&processed); got != 3 {
		t.Errorf("processed = %d; want 3", got)
	}
	if results[2].Err != nil {
		t.Errorf("results[2].Err = %v", results[2].Err)
	}
}

// TestRunCancelledMidway tests that cancelling during a run stops the pool.
func TestRunCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var processed int32
	cancelFirst := func(_ context.Context, item WorkItem) ProcessResult {
		atomic.AddInt32(&processed, 1)
		cancel()
		return ProcessResult{Index: item.Index, Name: item.Name, Game: &chess.Game{}}
	}

	items := []WorkItem{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}}
	results := Run(ctx, items, cancelFirst, WithWorkers(1))

	if got := atomic.LoadInt32(&processed); got != 1 {
		t.Errorf("processed = %d; want 1", got)
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v", results[0].Err)
	}
	for i, r := range results[1:] {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v; want context.Canceled", i+1, r.Err)
		}
	}
}

// TestPoolLogging tests that each processed item is logged.
func TestPoolLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	items := []WorkItem{{Index: 0, Name: "a.pgn"}, {Index: 1, Name: "b.pgn"}}
	Run(context.Background(), items, noopProcessFunc(), WithLogger(zap.New(core)))

	entries := logs.FilterMessage("input processed").All()
	if len(entries) != len(items) {
		t.Fatalf("got %d log entries; want %d", len(entries), len(items))
	}
	names := map[any]bool{}
	for _, e := range entries {
		names[e.ContextMap()["name"]] = true
	}
	if !names["a.pgn"] || !names["b.pgn"] {
		t.Errorf("logged names = %v", names)
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start(context.Background())

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}
