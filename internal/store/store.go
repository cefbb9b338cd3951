// Package store persists the inverted index and manifest checkpoint.
//
// Both files are JSON and every save is an atomic write-then-rename, so
// a crash mid-save never leaves a torn file and the previous checkpoint
// stays authoritative until a run completes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/docdex/docdex/internal/index"
)

const (
	// IndexFileName is the persisted inverted index.
	IndexFileName = "index.json"
	// ManifestFileName is the persisted document manifest.
	ManifestFileName = "manifest.json"
)

// Store reads and writes the checkpoint files in a data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on the
// first save, not here.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// IndexPath returns the index checkpoint path.
func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, IndexFileName)
}

// ManifestPath returns the manifest checkpoint path.
func (s *Store) ManifestPath() string {
	return filepath.Join(s.dir, ManifestFileName)
}

// LoadIndex returns the persisted index. The second return value is
// false when no checkpoint exists, the cold start case.
func (s *Store) LoadIndex() (*index.Index, bool, error) {
	data, err := os.ReadFile(s.IndexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return index.New(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read index checkpoint: %w", err)
	}

	var snap map[string]map[string][]int
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("corrupt index checkpoint %s: %w", s.IndexPath(), err)
	}

	return index.FromSnapshot(snap), true, nil
}

// SaveIndex atomically replaces the index checkpoint. Pages are written
// sorted ascending per document and keys in sorted order, so identical
// indexes always serialize to identical bytes.
func (s *Store) SaveIndex(ix *index.Index) error {
	data, err := json.MarshalIndent(ix.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return s.writeFile(s.IndexPath(), append(data, '\n'))
}

// LoadManifest returns the persisted manifest, empty if absent.
func (s *Store) LoadManifest() (index.Manifest, error) {
	data, err := os.ReadFile(s.ManifestPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(index.Manifest), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest index.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("corrupt manifest %s: %w", s.ManifestPath(), err)
	}
	if manifest == nil {
		manifest = make(index.Manifest)
	}
	return manifest, nil
}

// SaveManifest atomically replaces the manifest checkpoint.
func (s *Store) SaveManifest(manifest index.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return s.writeFile(s.ManifestPath(), append(data, '\n'))
}

// writeFile performs an atomic write-then-rename into the data dir.
func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
