package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// QueryFolderName returns the folder name used for a search query
func QueryFolderName(query string) string {
	return strings.ReplaceAll(query, " ", "-")
}

// Manager owns the destination folder of one run
type Manager struct {
	outputDir string
}

// NewManager creates <baseDir>/<query-with-hyphens> if needed.
// An empty baseDir means the current working directory.
func NewManager(baseDir, query string) (*Manager, error) {
	if baseDir == "" {
		baseDir = "."
	}
	outputDir := filepath.Join(baseDir, QueryFolderName(query))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{outputDir: outputDir}, nil
}

// Dir returns the destination folder
func (m *Manager) Dir() string {
	return m.outputDir
}

// Path returns the final location of a file named name
func (m *Manager) Path(name string) string {
	return filepath.Join(m.outputDir, name)
}

// Create opens a temporary file that becomes name once committed
func (m *Manager) Create(name string) (*File, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	tmp, err := os.CreateTemp(m.outputDir, "."+name+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	return &File{tmp: tmp, target: m.Path(name)}, nil
}

// File is a pending write. Exactly one of Commit or Abort should be called.
type File struct {
	tmp    *os.File
	target string
	done   bool
}

func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit closes the temporary file and renames it onto the target,
// replacing any existing file of the same name.
func (f *File) Commit() (string, error) {
	if f.done {
		return "", fmt.Errorf("file %s already finished", f.target)
	}
	f.done = true

	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		os.Remove(f.tmp.Name())
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return f.target, nil
}

// Abort discards the temporary file
func (f *File) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}
