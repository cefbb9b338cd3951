// Package extract produces token occurrences from documents.
//
// Extractors are swappable per document type; the indexing core only
// sees the Extractor interface and never inspects document content
// itself.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Occurrence is a single (token, page) hit within one document.
// Page numbers are 1-based.
type Occurrence struct {
	Token string
	Page  int
}

// Extractor produces the token occurrences of a single document.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Occurrence, error)
}

// ByExtension routes each document to the extractor registered for its
// file extension (lower-cased, with dot).
type ByExtension struct {
	extractors map[string]Extractor
}

// NewByExtension creates an empty extension router.
func NewByExtension() *ByExtension {
	return &ByExtension{
		extractors: make(map[string]Extractor),
	}
}

// Register maps a file extension to an extractor. Later registrations
// for the same extension win.
func (b *ByExtension) Register(ext string, e Extractor) {
	b.extractors[strings.ToLower(ext)] = e
}

// Extract implements Extractor.
func (b *ByExtension) Extract(ctx context.Context, path string) ([]Occurrence, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := b.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for %q files", ext)
	}
	return e.Extract(ctx, path)
}
