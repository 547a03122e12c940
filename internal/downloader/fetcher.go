package downloader

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"pexelsdl/pkg/logger"
	"pexelsdl/pkg/storage"
	"pexelsdl/pkg/ui"
)

// PhotoDownloader streams a remote image into a writer
type PhotoDownloader interface {
	DownloadPhoto(url string, w io.Writer) (int64, error)
}

// PhotoStorage hands out pending files in the destination folder
type PhotoStorage interface {
	Create(name string) (*storage.File, error)
}

// FileName returns the local name of the n-th saved image
func FileName(n int, ext string) string {
	if ext == "" {
		return strconv.Itoa(n)
	}
	return strconv.Itoa(n) + "." + ext
}

// Fetcher downloads images one at a time into storage
type Fetcher struct {
	client  PhotoDownloader
	storage PhotoStorage
	logger  logger.Logger
}

// NewFetcher creates a Fetcher
func NewFetcher(client PhotoDownloader, store PhotoStorage, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Fetcher{
		client:  client,
		storage: store,
		logger:  log,
	}
}

// Fetch downloads url into the file name and returns its final path.
// On failure nothing is left under name.
func (f *Fetcher) Fetch(url, name string) (string, error) {
	start := time.Now()

	file, err := f.storage.Create(name)
	if err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}

	size, err := f.client.DownloadPhoto(url, file)
	if err != nil {
		file.Abort()
		return "", fmt.Errorf("download failed: %w", err)
	}

	path, err := file.Commit()
	if err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}

	f.logger.DebugWithFields("Photo saved", map[string]interface{}{
		"url":      url,
		"path":     path,
		"size":     size,
		"duration": time.Since(start),
	})

	return path, nil
}

// Download is the best-effort form of Fetch. Failures are reported on the
// status output and in the log, then returned as false; the caller moves on
// to the next image.
func (f *Fetcher) Download(url, name string) (string, bool) {
	path, err := f.Fetch(url, name)
	if err != nil {
		ui.Printf("Failed to download %s: %v\n", url, err)
		f.logger.ErrorWithFields("Failed to download photo", map[string]interface{}{
			"url":   url,
			"name":  name,
			"error": err.Error(),
		})
		return "", false
	}
	return path, true
}
