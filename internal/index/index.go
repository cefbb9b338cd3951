// Package index implements the incremental inverted-index core:
// change classification against the manifest, parallel extraction
// scheduling, set-union merging, and the run orchestrator.
package index

import (
	"sort"

	"github.com/docdex/docdex/internal/extract"
)

// pageSet is the set of pages a token appears on within one document.
type pageSet map[int]struct{}

// Index is the in-memory inverted index: token -> document -> pages.
//
// Two invariants hold at every merge boundary: no token maps to an
// empty posting set, and no posting references a document that is not
// in the manifest.
type Index struct {
	tokens map[string]map[string]pageSet
}

// New creates an empty index.
func New() *Index {
	return &Index{
		tokens: make(map[string]map[string]pageSet),
	}
}

// Add inserts a single (document, page) pair into a token's postings.
// Re-adding an existing pair is a no-op.
func (ix *Index) Add(token, doc string, page int) {
	docs, ok := ix.tokens[token]
	if !ok {
		docs = make(map[string]pageSet)
		ix.tokens[token] = docs
	}
	pages, ok := docs[doc]
	if !ok {
		pages = make(pageSet)
		docs[doc] = pages
	}
	pages[page] = struct{}{}
}

// ApplyAdditions folds per-document partial results into the index with
// set-union semantics.
func (ix *Index) ApplyAdditions(partials map[string][]extract.Occurrence) {
	for doc, occs := range partials {
		for _, occ := range occs {
			ix.Add(occ.Token, doc, occ.Page)
		}
	}
}

// ApplyRemovals purges every posting that references one of the given
// documents. Tokens whose posting set becomes empty are deleted
// entirely, never left empty.
func (ix *Index) ApplyRemovals(docs []string) {
	if len(docs) == 0 {
		return
	}
	removed := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		removed[doc] = struct{}{}
	}

	for token, postings := range ix.tokens {
		for doc := range postings {
			if _, gone := removed[doc]; gone {
				delete(postings, doc)
			}
		}
		if len(postings) == 0 {
			delete(ix.tokens, token)
		}
	}
}

// TokenCount returns the number of distinct tokens.
func (ix *Index) TokenCount() int {
	return len(ix.tokens)
}

// Documents returns the set of document names referenced by any posting.
func (ix *Index) Documents() map[string]struct{} {
	docs := make(map[string]struct{})
	for _, postings := range ix.tokens {
		for doc := range postings {
			docs[doc] = struct{}{}
		}
	}
	return docs
}

// Pages returns a token's pages within one document, sorted ascending.
// Returns nil when the pair has no postings.
func (ix *Index) Pages(token, doc string) []int {
	postings, ok := ix.tokens[token]
	if !ok {
		return nil
	}
	pages, ok := postings[doc]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(pages))
	for page := range pages {
		out = append(out, page)
	}
	sort.Ints(out)
	return out
}

// Snapshot renders the index as token -> document -> pages ascending,
// the logical schema of the persisted index file.
func (ix *Index) Snapshot() map[string]map[string][]int {
	snap := make(map[string]map[string][]int, len(ix.tokens))
	for token, postings := range ix.tokens {
		docs := make(map[string][]int, len(postings))
		for doc := range postings {
			docs[doc] = ix.Pages(token, doc)
		}
		snap[token] = docs
	}
	return snap
}

// FromSnapshot rebuilds an index from its persisted form.
func FromSnapshot(snap map[string]map[string][]int) *Index {
	ix := New()
	for token, docs := range snap {
		for doc, pages := range docs {
			for _, page := range pages {
				ix.Add(token, doc, page)
			}
		}
	}
	return ix
}

// Manifest records each processed document's last observed modification
// timestamp in Unix nanoseconds. Its key set is the set of documents the
// index considers current, including documents that contributed zero
// tokens.
type Manifest map[string]int64

// Clone returns a copy of the manifest.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	for doc, mtime := range m {
		out[doc] = mtime
	}
	return out
}
