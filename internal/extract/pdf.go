package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts tokens from the native text layer of a PDF,
// page by page. Pages whose text layer yields no tokens are assumed to
// be image-only; when an OCR fallback is configured they are rasterized
// and recognized instead.
type PDFExtractor struct {
	ocr *OCR
}

// NewPDFExtractor creates a PDF extractor. ocr may be nil to disable
// the image-based fallback.
func NewPDFExtractor(ocr *OCR) *PDFExtractor {
	return &PDFExtractor{ocr: ocr}
}

// Extract implements Extractor.
func (e *PDFExtractor) Extract(ctx context.Context, path string) ([]Occurrence, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)

	var occs []Occurrence
	for num := 1; num <= r.NumPage(); num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tokens := e.pageTokens(r, num)
		if len(tokens) == 0 && e.ocr != nil {
			slog.Info("ocr fallback",
				slog.String("document", name),
				slog.Int("page", num))

			text, ocrErr := e.ocr.RecognizePage(ctx, path, num)
			if ocrErr != nil {
				slog.Warn("ocr fallback failed",
					slog.String("document", name),
					slog.Int("page", num),
					slog.String("error", ocrErr.Error()))
			} else {
				tokens = Tokenize(text)
			}
		}

		for _, token := range tokens {
			occs = append(occs, Occurrence{Token: token, Page: num})
		}
	}

	return occs, nil
}

// pageTokens reads one page's text layer. A malformed page contributes
// no tokens rather than failing the whole document.
func (e *PDFExtractor) pageTokens(r *pdf.Reader, num int) []string {
	page := r.Page(num)
	if page.V.IsNull() {
		return nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return nil
	}
	return Tokenize(text)
}
