// Package archive bundles downloaded images into a timestamped zip file.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// TimestampLayout is the local-time prefix of every archive name
const TimestampLayout = "2006-01-02_15-04-05"

// DefaultDir is the archive directory, relative to the working directory
const DefaultDir = "downloads"

// ErrNoFiles is returned when there is nothing to archive
var ErrNoFiles = errors.New("no files to archive")

// ProgressFunc is called after each file has been added
type ProgressFunc func(done, total int)

// Info describes a finished archive
type Info struct {
	Path           string
	Files          []string
	OriginalSize   int64
	CompressedSize int64
	CreatedAt      time.Time
}

// CompressionRatio returns compressed size over original size
func (i *Info) CompressionRatio() float64 {
	if i.OriginalSize == 0 {
		return 0
	}
	return float64(i.CompressedSize) / float64(i.OriginalSize)
}

// ArchiveName returns <timestamp>_<query with underscores>.zip
func ArchiveName(now time.Time, query string) string {
	return fmt.Sprintf("%s_%s.zip", now.Format(TimestampLayout), strings.ReplaceAll(query, " ", "_"))
}

// Archiver writes zip files into Dir
type Archiver struct {
	Dir string
	// OnStart receives the archive file name before any file is added
	OnStart  func(name string, total int)
	Progress ProgressFunc
	// Now defaults to time.Now
	Now func() time.Time
}

// Create bundles files into a new archive named after query. Entries are
// stored under their base names only. If anything fails the partially
// written archive is removed.
func (a *Archiver) Create(files []string, query string) (*Info, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	dir := a.Dir
	if dir == "" {
		dir = DefaultDir
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	createdAt := now()
	name := ArchiveName(createdAt, query)
	outputPath := filepath.Join(dir, name)

	if a.OnStart != nil {
		a.OnStart(name, len(files))
	}

	info, err := a.write(outputPath, files)
	if err != nil {
		os.Remove(outputPath)
		return nil, err
	}
	info.CreatedAt = createdAt

	return info, nil
}

func (a *Archiver) write(outputPath string, files []string) (*Info, error) {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer outFile.Close()

	zipWriter := zip.NewWriter(outFile)
	defer zipWriter.Close()

	var originalSize int64
	for i, path := range files {
		size, err := addFile(zipWriter, path)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", path, err)
		}
		originalSize += size

		if a.Progress != nil {
			a.Progress(i+1, len(files))
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	fileInfo, err := outFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get archive info: %w", err)
	}

	return &Info{
		Path:           outputPath,
		Files:          files,
		OriginalSize:   originalSize,
		CompressedSize: fileInfo.Size(),
	}, nil
}

func addFile(zipWriter *zip.Writer, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return 0, err
	}

	return io.Copy(writer, file)
}
