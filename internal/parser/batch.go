package parser

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tickbook/tickbook/internal/model"
)

// BatchResult is the joined outcome of one folder scan.
type BatchResult struct {
	Records []model.Record
	Errors  []model.ParseError
}

// ParseBatch fans out one parse per file and joins all of them before
// returning. Each goroutine writes only its own slot, so no parse observes
// another's state. The context cancels files not yet started; files already
// parsing run to completion (a single parse is fast and pure).
func ParseBatch(ctx context.Context, files []File) BatchResult {
	return ParseBatchProgress(ctx, files, nil)
}

// ParseBatchProgress is ParseBatch with a per-file completion callback, used
// by the CLI to drive a progress bar. onFile must be safe for concurrent use;
// it may be nil.
func ParseBatchProgress(ctx context.Context, files []File, onFile func()) BatchResult {
	records := make([]*model.Record, len(files))
	errors := make([]*model.ParseError, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			records[i], errors[i] = Parse(file)
			if onFile != nil {
				onFile()
			}
			return nil
		})
	}
	// Parse never returns a Go error; the only failure is cancellation.
	if err := g.Wait(); err != nil {
		slog.Debug("parse batch canceled", "error", err)
	}

	var result BatchResult
	for i := range files {
		if records[i] != nil {
			result.Records = append(result.Records, *records[i])
		}
		if errors[i] != nil {
			result.Errors = append(result.Errors, *errors[i])
		}
	}
	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Path < result.Records[j].Path
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	return result
}

// Batcher serializes batch results when scans can supersede each other: a
// newly submitted batch invalidates any still-running older one, and a stale
// batch's completion is discarded instead of overwriting newer results.
type Batcher struct {
	mu         sync.Mutex
	generation atomic.Int64
	latest     *BatchResult
}

// NewBatcher returns a Batcher with no completed batch.
func NewBatcher() *Batcher {
	return &Batcher{}
}

// Submit parses the files as a new batch generation. It returns the batch
// result and true when this batch is still current at completion; a batch
// superseded mid-flight returns its result and false, and Latest is left
// untouched.
func (b *Batcher) Submit(ctx context.Context, files []File) (BatchResult, bool) {
	generation := b.generation.Add(1)
	result := ParseBatch(ctx, files)
	return result, b.commit(generation, result)
}

// commit records a finished batch unless a newer generation has been claimed
// since it started.
func (b *Batcher) commit(generation int64, result BatchResult) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if generation != b.generation.Load() {
		slog.Debug("discarding stale parse batch",
			"generation", generation,
			"current", b.generation.Load())
		return false
	}
	b.latest = &result
	return true
}

// Latest returns the most recent non-superseded batch result, or nil if no
// batch has completed.
func (b *Batcher) Latest() *BatchResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}
