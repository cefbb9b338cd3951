package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TextExtractor extracts tokens from plain-text documents. Pages are
// separated by form-feed characters; a file without form feeds is a
// single page.
type TextExtractor struct{}

// NewTextExtractor creates a plain-text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract implements Extractor.
func (e *TextExtractor) Extract(ctx context.Context, path string) ([]Occurrence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var occs []Occurrence
	for i, page := range strings.Split(string(data), "\f") {
		for _, token := range Tokenize(page) {
			occs = append(occs, Occurrence{Token: token, Page: i + 1})
		}
	}
	return occs, nil
}
