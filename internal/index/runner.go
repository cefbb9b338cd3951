package index

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/docdex/docdex/internal/scanner"
)

// Store is the durable checkpoint for the index and manifest. Loads
// return empty values on cold start; saves replace the previous
// checkpoint atomically per file.
type Store interface {
	// LoadIndex returns the persisted index and whether a checkpoint
	// existed.
	LoadIndex() (*Index, bool, error)
	SaveIndex(*Index) error
	LoadManifest() (Manifest, error)
	SaveManifest(Manifest) error
}

// RunnerDeps contains the injected collaborators for Runner.
type RunnerDeps struct {
	// Scanner enumerates the folder's documents (required).
	Scanner *scanner.Scanner

	// Store persists the index and manifest (required).
	Store Store

	// Scheduler fans extraction out to workers (required).
	Scheduler *Scheduler
}

// Runner executes one incremental indexing run. It exclusively owns the
// in-memory index and manifest for the duration of the run; workers only
// ever produce immutable partial results.
type Runner struct {
	scanner   *scanner.Scanner
	store     Store
	scheduler *Scheduler
}

// NewRunner creates a Runner with injected dependencies.
func NewRunner(deps RunnerDeps) (*Runner, error) {
	if deps.Scanner == nil {
		return nil, fmt.Errorf("scanner is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if deps.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	return &Runner{
		scanner:   deps.Scanner,
		store:     deps.Store,
		scheduler: deps.Scheduler,
	}, nil
}

// RunnerResult contains the outcome of one run.
type RunnerResult struct {
	// Documents is the number of documents currently in the folder.
	Documents int

	// Added, Removed, Modified, Unchanged count the classified changes.
	Added     int
	Removed   int
	Modified  int
	Unchanged int

	// Tokens is the number of distinct tokens after the run.
	Tokens int

	// Warnings counts documents whose extraction failed and were
	// recorded as empty.
	Warnings int

	// ColdStart reports that no prior checkpoint existed and the whole
	// folder was indexed from scratch.
	ColdStart bool

	// Duration is the total run time.
	Duration time.Duration
}

// Run executes one run-to-completion pass: enumerate, classify, purge
// removals, extract additions and modifications in parallel, merge, and
// persist. Nothing is persisted unless the whole run succeeds; any
// returned error leaves the prior checkpoint untouched.
func (r *Runner) Run(ctx context.Context, folder string) (*RunnerResult, error) {
	start := time.Now()

	// Enumerate current documents and their on-disk timestamps.
	files, err := r.scanner.List(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate documents: %w", err)
	}

	current := make(map[string]int64, len(files))
	paths := make(map[string]string, len(files))
	for _, f := range files {
		current[f.Name] = f.ModTime.UnixNano()
		paths[f.Name] = f.AbsPath
	}

	// Load the checkpoint.
	idx, found, err := r.store.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	manifest, err := r.store.LoadManifest()
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	// Classify. With no prior checkpoint every current document is an
	// addition and the manifest starts fresh.
	var changes Changes
	coldStart := !found
	if coldStart {
		slog.Info("no index checkpoint found, building full index",
			slog.Int("documents", len(current)))
		idx = New()
		manifest = make(Manifest, len(current))
		for doc := range current {
			changes.Added = append(changes.Added, doc)
		}
		sort.Strings(changes.Added)
	} else {
		changes = Classify(current, manifest)
	}

	if !coldStart && changes.Total() == 0 {
		slog.Info("no document changes detected")
	} else {
		slog.Info("document changes classified",
			slog.Int("added", len(changes.Added)),
			slog.Int("removed", len(changes.Removed)),
			slog.Int("modified", len(changes.Modified)),
			slog.Int("unchanged", len(changes.Unchanged)))
	}

	// Purge removed documents and the stale postings of modified ones.
	// Modified documents are removal plus re-extraction, never an
	// in-place diff.
	idx.ApplyRemovals(append(append([]string{}, changes.Removed...), changes.Modified...))
	for _, doc := range changes.Removed {
		delete(manifest, doc)
	}

	// Extract added and modified documents in parallel and merge.
	toExtract := append(append([]string{}, changes.Added...), changes.Modified...)
	partials, failures, err := r.scheduler.ExtractAll(ctx, paths, toExtract)
	if err != nil {
		return nil, fmt.Errorf("extraction batch aborted: %w", err)
	}

	idx.ApplyAdditions(partials)

	// Every processed document enters the manifest, including failed or
	// zero-token ones: they are retried only when their timestamp
	// changes again.
	for doc := range partials {
		manifest[doc] = current[doc]
	}

	// Persist the checkpoint. A no-op run still re-saves identical
	// state, which must be byte-identical on disk.
	if err := r.store.SaveIndex(idx); err != nil {
		return nil, fmt.Errorf("failed to save index: %w", err)
	}
	if err := r.store.SaveManifest(manifest); err != nil {
		return nil, fmt.Errorf("failed to save manifest: %w", err)
	}

	return &RunnerResult{
		Documents: len(current),
		Added:     len(changes.Added),
		Removed:   len(changes.Removed),
		Modified:  len(changes.Modified),
		Unchanged: len(changes.Unchanged),
		Tokens:    idx.TokenCount(),
		Warnings:  failures,
		ColdStart: coldStart,
		Duration:  time.Since(start),
	}, nil
}
