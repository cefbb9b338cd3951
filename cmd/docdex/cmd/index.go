package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/extract"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/logging"
	"github.com/docdex/docdex/internal/scanner"
	"github.com/docdex/docdex/internal/store"
	"github.com/docdex/docdex/internal/ui"
)

func newIndexCmd() *cobra.Command {
	var (
		workers int
		ocr     bool
	)

	cmd := &cobra.Command{
		Use:   "index [folder]",
		Short: "Update the inverted index for a folder",
		Long: `Index a folder of documents, incrementally.

Added and modified documents are extracted in parallel and merged into
the persisted index; removed documents are purged. Unchanged documents
are skipped entirely. The first run over a folder builds the full
index.

Use --ocr to recognize image-only PDF pages with pdftoppm + tesseract.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}
			return runIndexWith(cmd, folder, workers, ocr)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Extraction worker pool size (0 = number of CPUs)")
	cmd.Flags().BoolVar(&ocr, "ocr", false, "Enable OCR fallback for image-only PDF pages")

	return cmd
}

// runIndex runs an indexing pass with folder config only.
func runIndex(cmd *cobra.Command, folder string) error {
	return runIndexWith(cmd, folder, 0, false)
}

// runIndexWith wires the run: config, logging, lock, scanner, extractor,
// scheduler, store, runner.
func runIndexWith(cmd *cobra.Command, folder string, workers int, forceOCR bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("cannot access folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", folder)
	}

	cfg, err := config.Load(folder)
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if forceOCR {
		cfg.OCR.Enabled = true
	}

	// Re-install logging with the folder's settings.
	logCfg := logging.Config{
		Level:         cfg.Logging.Level,
		FilePath:      cfg.Logging.File,
		WriteToStderr: true,
	}
	if debugMode {
		logCfg.Level = "debug"
	}
	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dataDir := cfg.ResolveDataDir(folder)

	// Single-writer model: refuse to run concurrently with another
	// docdex against the same checkpoint.
	lock := store.NewRunLock(dataDir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	extractor := buildExtractor(cfg)
	deps := index.RunnerDeps{
		Scanner:   scanner.New(cfg.Extensions),
		Store:     store.New(dataDir),
		Scheduler: index.NewScheduler(extractor, cfg.EffectiveWorkers()),
	}
	runner, err := index.NewRunner(deps)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, folder)
	if err != nil {
		return err
	}

	renderer := ui.NewRenderer(cmd.OutOrStdout())
	renderer.Summary(ui.Stats{
		Documents: result.Documents,
		Added:     result.Added,
		Removed:   result.Removed,
		Modified:  result.Modified,
		Unchanged: result.Unchanged,
		Tokens:    result.Tokens,
		Warnings:  result.Warnings,
		ColdStart: result.ColdStart,
		Duration:  result.Duration,
	})

	return nil
}

// buildExtractor assembles the per-extension extractor set.
func buildExtractor(cfg *config.Config) extract.Extractor {
	var ocr *extract.OCR
	if cfg.OCR.Enabled {
		ocr = extract.NewOCR(cfg.OCR.PDFToPPM, cfg.OCR.Tesseract, cfg.OCR.DPI)
	}

	byExt := extract.NewByExtension()
	pdfExtractor := extract.NewPDFExtractor(ocr)
	textExtractor := extract.NewTextExtractor()

	for _, ext := range cfg.Extensions {
		switch ext {
		case ".pdf":
			byExt.Register(ext, pdfExtractor)
		default:
			byExt.Register(ext, textExtractor)
		}
	}
	return byExt
}
