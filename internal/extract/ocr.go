package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// OCR recognizes text on image-only PDF pages by rasterizing the page
// with pdftoppm and running the image through tesseract. Both binaries
// must be installed; missing binaries surface as a per-page recognition
// error, not a crash.
type OCR struct {
	// PDFToPPM is the rasterizer binary.
	PDFToPPM string
	// Tesseract is the recognition binary.
	Tesseract string
	// DPI is the rasterization resolution.
	DPI int
}

// NewOCR creates an OCR fallback with the given binaries and resolution.
func NewOCR(pdftoppm, tesseract string, dpi int) *OCR {
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	if tesseract == "" {
		tesseract = "tesseract"
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &OCR{PDFToPPM: pdftoppm, Tesseract: tesseract, DPI: dpi}
}

// RecognizePage rasterizes a single 1-based PDF page and returns the
// recognized text.
func (o *OCR) RecognizePage(ctx context.Context, path string, page int) (string, error) {
	tmp, err := os.MkdirTemp("", "docdex-ocr-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	prefix := filepath.Join(tmp, "page")
	raster := exec.CommandContext(ctx, o.PDFToPPM,
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-r", strconv.Itoa(o.DPI),
		"-png", path, prefix)
	if out, err := raster.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w: %s", err, out)
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for page %d", page)
	}

	recognize := exec.CommandContext(ctx, o.Tesseract, images[0], "stdout")
	out, err := recognize.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}

	return string(out), nil
}
