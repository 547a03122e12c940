// Package metadata writes an attribution sidecar next to downloaded images.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"pexelsdl/pkg/pexels"
)

// Supported sidecar formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileBaseName is the sidecar name without extension
const FileBaseName = "metadata"

// PhotoMetadata describes one saved image
type PhotoMetadata struct {
	File         string    `json:"file" yaml:"file"`
	ID           int64     `json:"id" yaml:"id"`
	PageURL      string    `json:"page_url" yaml:"page_url"`
	Photographer string    `json:"photographer" yaml:"photographer"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	OriginalURL  string    `json:"original_url" yaml:"original_url"`
	FileSize     int64     `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}

// FromPhoto builds the entry for photo saved at path
func FromPhoto(photo *pexels.Photo, path string) *PhotoMetadata {
	meta := &PhotoMetadata{
		File:         filepath.Base(path),
		ID:           photo.ID,
		PageURL:      photo.PageURL,
		Photographer: photo.Photographer,
		Description:  photo.Description,
		OriginalURL:  photo.Original,
		DownloadedAt: time.Now(),
	}

	if info, err := os.Stat(path); err == nil {
		meta.FileSize = info.Size()
	}

	return meta
}

// Manifest is the sidecar for one run
type Manifest struct {
	Query        string           `json:"query" yaml:"query"`
	TotalResults int              `json:"total_results" yaml:"total_results"`
	Photos       []*PhotoMetadata `json:"photos" yaml:"photos"`
}

// NewManifest creates an empty manifest
func NewManifest(query string, totalResults int) *Manifest {
	return &Manifest{Query: query, TotalResults: totalResults}
}

// Add records a saved photo
func (m *Manifest) Add(photo *pexels.Photo, path string) {
	m.Photos = append(m.Photos, FromPhoto(photo, path))
}

// Path returns where the sidecar for format lives inside dir
func Path(dir, format string) string {
	format = strings.ToLower(format)
	if format == "" {
		format = FormatJSON
	}
	return filepath.Join(dir, FileBaseName+"."+format)
}

// Save writes the manifest into dir and returns the file path
func (m *Manifest) Save(dir, format string) (string, error) {
	path := Path(dir, format)

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case "." + FormatJSON:
		data, err = json.MarshalIndent(m, "", "  ")
	case "." + FormatYAML:
		data, err = yaml.Marshal(m)
	default:
		return "", fmt.Errorf("unsupported metadata format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	return path, nil
}

// Load reads a sidecar written by Save
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case "." + FormatJSON:
		err = json.Unmarshal(data, &m)
	case "." + FormatYAML, ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported metadata file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return &m, nil
}

// Exists reports whether a sidecar for format exists in dir
func Exists(dir, format string) bool {
	_, err := os.Stat(Path(dir, format))
	return err == nil
}
