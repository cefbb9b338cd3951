// Package scanner enumerates the documents of a single folder.
//
// Scanning is non-recursive: documents are identified by filename,
// unique within the folder, and nested directories are ignored.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo describes one candidate document in the indexed folder.
type FileInfo struct {
	// Name is the document's filename, its stable identity.
	Name string
	// AbsPath is the absolute path on disk.
	AbsPath string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the last modification time.
	ModTime time.Time
}

// Scanner discovers indexable documents by file extension.
type Scanner struct {
	extensions map[string]struct{}
}

// New creates a Scanner that accepts the given extensions (with dot,
// case-insensitive).
func New(extensions []string) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{extensions: exts}
}

// List enumerates the folder's documents with their modification
// timestamps. Failure to read the folder or to stat a matching document
// is fatal: the caller must not proceed with a partial view of the
// document set.
func (s *Scanner) List(folder string) ([]FileInfo, error) {
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder path: %w", err)
	}

	entries, err := os.ReadDir(absFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate folder: %w", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !s.matches(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		files = append(files, FileInfo{
			Name:    entry.Name(),
			AbsPath: filepath.Join(absFolder, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// matches reports whether a filename carries an accepted extension.
func (s *Scanner) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := s.extensions[ext]
	return ok
}
