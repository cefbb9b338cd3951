package index

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex/internal/extract"
)

// taskResult carries one document's extraction outcome across the join
// barrier. Failure is a value here, not a propagated error: a corrupt
// document must not abort the batch.
type taskResult struct {
	doc  string
	occs []extract.Occurrence
	err  error
}

// Scheduler fans extraction out to a bounded worker pool and joins on
// the whole batch before returning. Workers share no mutable state;
// each produces an independent partial result.
type Scheduler struct {
	extractor extract.Extractor
	workers   int
}

// NewScheduler creates a scheduler with the given pool size
// (0 = NumCPU).
func NewScheduler(extractor extract.Extractor, workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{
		extractor: extractor,
		workers:   workers,
	}
}

// ExtractAll runs one extraction per document and waits for every
// outcome before returning. A document whose extraction fails is
// logged and reported with an empty occurrence set, so it still counts
// as processed; failures is the number of such documents. The returned
// map has exactly one entry per requested document.
//
// Only context cancellation produces a non-nil error, and then the
// partial results must be discarded.
func (s *Scheduler) ExtractAll(ctx context.Context, paths map[string]string, docs []string) (map[string][]extract.Occurrence, int, error) {
	partials := make(map[string][]extract.Occurrence, len(docs))
	if len(docs) == 0 {
		return partials, 0, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	results := make([]taskResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, s.workers)

	for i, doc := range docs {
		i, doc := i, doc

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			occs, err := s.extractor.Extract(gctx, paths[doc])
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = taskResult{doc: doc, occs: occs, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var failures int
	for _, res := range results {
		if res.err != nil {
			failures++
			slog.Warn("extraction failed, treating document as empty",
				slog.String("document", res.doc),
				slog.String("error", res.err.Error()))
			partials[res.doc] = nil
			continue
		}
		partials[res.doc] = res.occs
	}

	return partials, failures, nil
}
