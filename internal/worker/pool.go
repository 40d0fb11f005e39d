// Package worker provides a worker pool for parsing several inputs in parallel.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lgbarn/pgn-report-go/internal/chess"
)

// WorkItem represents one input to be parsed.
type WorkItem struct {
	Index int    // Original index for tracking
	Name  string // Input path, or "-" for standard input
}

// ProcessResult represents the result of processing an input.
// Exactly one of Game and Err is set.
type ProcessResult struct {
	Index int
	Name  string
	Game  *chess.Game
	Err   error
}

// ErrSkipped is the result error for items a stopped pool never processed.
var ErrSkipped = errors.New("skipped after an earlier failure")

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel parsing.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	logger      *zap.Logger
	wg          sync.WaitGroup
	stopOnError bool
	stopFlag    atomic.Bool // Early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithStopOnError stops the pool after the first result carrying an error.
// Items not yet started are drained without being processed.
func WithStopOnError() PoolOption {
	return func(p *Pool) {
		p.stopOnError = true
	}
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool creates a new worker pool using functional options.
// processFunc is required; other settings have sensible defaults.
// Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		if err := ctx.Err(); err != nil {
			p.resultChan <- ProcessResult{Index: item.Index, Name: item.Name, Err: err}
			continue
		}
		result := p.processFunc(ctx, item)
		p.logger.Debug("input processed",
			zap.Int("index", result.Index),
			zap.String("name", result.Name),
			zap.Error(result.Err),
		)
		if result.Err != nil && p.stopOnError {
			p.Stop()
		}
		p.resultChan <- result
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run processes every item on a fresh pool and returns the results in item
// order. The pool stops when ctx is done; items it never reached carry
// ctx.Err(), or ErrSkipped when the pool stopped on an error.
func Run(ctx context.Context, items []WorkItem, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	opts = append([]PoolOption{WithBufferSize(len(items))}, opts...)
	pool := NewPool(processFunc, opts...)
	pool.logger.Debug("starting pool",
		zap.Int("workers", pool.NumWorkers()),
		zap.Int("items", len(items)),
	)
	pool.Start(ctx)
	stop := context.AfterFunc(ctx, pool.Stop)
	defer stop()

	go func() {
		defer pool.Close()
		for _, item := range items {
			if pool.IsStopped() {
				return
			}
			pool.Submit(item)
		}
	}()

	results := make([]ProcessResult, len(items))
	done := make([]bool, len(items))
	byIndex := make(map[int]int, len(items))
	for i, item := range items {
		byIndex[item.Index] = i
	}
	for result := range pool.Results() {
		if i, ok := byIndex[result.Index]; ok {
			results[i] = result
			done[i] = true
		}
	}

	for i, item := range items {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = ErrSkipped
		}
		results[i] = ProcessResult{Index: item.Index, Name: item.Name, Err: err}
	}
	return results
}
