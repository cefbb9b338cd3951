// Package config loads and validates docdex configuration.
//
// Configuration is optional: a run works with built-in defaults, and a
// .docdex.yaml in the indexed folder overrides them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-folder configuration file.
const ConfigFileName = ".docdex.yaml"

// DefaultDataDirName is the checkpoint directory inside the indexed folder.
const DefaultDataDirName = ".docdex"

// Config represents the complete docdex configuration.
type Config struct {
	// Extensions are the document file extensions to index (with dot,
	// case-insensitive).
	Extensions []string `yaml:"extensions"`

	// Workers is the extraction worker pool size (0 = NumCPU).
	Workers int `yaml:"workers"`

	// DataDir is the checkpoint directory. Relative paths are resolved
	// against the indexed folder.
	DataDir string `yaml:"data_dir"`

	OCR     OCRConfig `yaml:"ocr"`
	Logging LogConfig `yaml:"logging"`
}

// OCRConfig configures the image-based recognition fallback for PDF
// pages with no extractable text layer.
type OCRConfig struct {
	// Enabled turns the OCR fallback on. Requires the pdftoppm and
	// tesseract binaries on PATH (or explicit paths below).
	Enabled bool `yaml:"enabled"`

	// PDFToPPM is the rasterizer binary (default: pdftoppm).
	PDFToPPM string `yaml:"pdftoppm"`

	// Tesseract is the recognition binary (default: tesseract).
	Tesseract string `yaml:"tesseract"`

	// DPI is the rasterization resolution (default: 300).
	DPI int `yaml:"dpi"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Extensions: []string{".pdf", ".txt", ".md"},
		Workers:    0, // NumCPU
		DataDir:    DefaultDataDirName,
		OCR: OCRConfig{
			Enabled:   false,
			PDFToPPM:  "pdftoppm",
			Tesseract: "tesseract",
			DPI:       300,
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// Load returns the configuration for the given folder: defaults overlaid
// with the folder's .docdex.yaml if one exists.
func Load(folder string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(folder, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.OCR.PDFToPPM == "" {
		c.OCR.PDFToPPM = def.OCR.PDFToPPM
	}
	if c.OCR.Tesseract == "" {
		c.OCR.Tesseract = def.OCR.Tesseract
	}
	if c.OCR.DPI == 0 {
		c.OCR.DPI = def.OCR.DPI
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.OCR.DPI < 0 {
		return fmt.Errorf("ocr dpi must be >= 0, got %d", c.OCR.DPI)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// EffectiveWorkers returns the worker pool size to use.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// ResolveDataDir returns the absolute checkpoint directory for a folder.
func (c *Config) ResolveDataDir(folder string) string {
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(folder, c.DataDir)
}
