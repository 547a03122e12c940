package pipeline

import (
	"errors"
	"fmt"

	"pexelsdl/internal/downloader"
	"pexelsdl/pkg/archive"
	"pexelsdl/pkg/auth"
	"pexelsdl/pkg/config"
	"pexelsdl/pkg/logger"
	"pexelsdl/pkg/metadata"
	"pexelsdl/pkg/pexels"
	"pexelsdl/pkg/storage"
	"pexelsdl/pkg/ui"
)

// ErrInvalidCount is returned when fewer than one photo is requested
var ErrInvalidCount = errors.New("number_of_photos must be a positive integer")

// Outcome is the final state of a run
type Outcome int

const (
	// OutcomeNoResults means the search returned no photos
	OutcomeNoResults Outcome = iota
	// OutcomeNothingDownloaded means every download attempt failed
	OutcomeNothingDownloaded
	// OutcomeArchived means the downloaded images were packaged
	OutcomeArchived
	// OutcomeArchiveFailed means images were saved but packaging failed
	OutcomeArchiveFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoResults:
		return "no_results"
	case OutcomeNothingDownloaded:
		return "nothing_downloaded"
	case OutcomeArchived:
		return "archived"
	case OutcomeArchiveFailed:
		return "archive_failed"
	default:
		return "unknown"
	}
}

// Report summarizes a run
type Report struct {
	Query        string
	Requested    int
	TotalResults int
	Attempts     int
	Downloaded   []string
	Failed       int
	ArchivePath  string
	MetadataPath string
	Outcome      Outcome
}

// Options controls where a run writes its output
type Options struct {
	// BaseDir holds the per-query folder; empty means the working directory
	BaseDir        string
	SaveMetadata   bool
	MetadataFormat string
}

// Pipeline wires search, download and archive together
type Pipeline struct {
	searcher   Searcher
	newFetcher FetcherFactory
	archiver   Archiver
	opts       Options
	logger     logger.Logger
}

// New builds a Pipeline backed by the Pexels API
func New(cfg *config.Config, apiKey auth.APIKey, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}

	client := pexels.NewClient(apiKey, pexels.Options{
		BaseURL:   cfg.Pexels.BaseURL,
		UserAgent: cfg.Pexels.UserAgent,
		Referer:   cfg.Pexels.Referer,
		Timeout:   cfg.Pexels.Timeout,
	}, log)

	archiver := &archive.Archiver{
		Dir: cfg.Output.ArchiveDirectory,
		OnStart: func(name string, total int) {
			ui.Printf("\nCreating zip archive: %s\n", name)
			ui.ArchiveProgress(0, total)
		},
		Progress: ui.ArchiveProgress,
	}

	newFetcher := func(store *storage.Manager) Fetcher {
		return downloader.NewFetcher(client, store, log)
	}

	return NewWithDeps(client, newFetcher, archiver, Options{
		BaseDir:        cfg.Output.BaseDirectory,
		SaveMetadata:   cfg.Output.SaveMetadata,
		MetadataFormat: cfg.Output.MetadataFormat,
	}, log)
}

// NewWithDeps builds a Pipeline from explicit components
func NewWithDeps(searcher Searcher, newFetcher FetcherFactory, archiver Archiver, opts Options, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Pipeline{
		searcher:   searcher,
		newFetcher: newFetcher,
		archiver:   archiver,
		opts:       opts,
		logger:     log,
	}
}

// Run searches for query and downloads up to count photos from the first
// result page. Only search and setup failures are returned as errors;
// download and archive failures are reflected in the report.
func (p *Pipeline) Run(query string, count int) (*Report, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	log := p.logger.WithFields(map[string]interface{}{
		"query": query,
		"count": count,
	})

	store, err := storage.NewManager(p.opts.BaseDir, query)
	if err != nil {
		log.WithError(err).Error("Failed to create destination folder")
		return nil, err
	}

	ui.Printf("Searching for '%s'...\n", query)
	result, err := p.searcher.Search(query, min(count, pexels.MaxPerPage))
	if err != nil {
		log.WithError(err).Error("Search failed")
		return nil, fmt.Errorf("search failed: %w", err)
	}

	report := &Report{
		Query:        query,
		Requested:    count,
		TotalResults: result.TotalResults,
	}

	if len(result.Photos) == 0 {
		ui.Println("No photos found.")
		log.Info("Search returned no photos")
		report.Outcome = OutcomeNoResults
		return report, nil
	}

	ui.Printf("Found %d results. Downloading %d photos...\n", result.TotalResults, count)

	fetcher := p.newFetcher(store)
	var manifest *metadata.Manifest
	if p.opts.SaveMetadata {
		manifest = metadata.NewManifest(query, result.TotalResults)
	}

	limit := min(count, len(result.Photos))
	for i := 0; i < limit; i++ {
		report.Attempts++
		position := i + 1

		photo, err := pexels.NewPhoto(result.Photos[i])
		if err != nil {
			log.WithError(err).WithField("position", position).Error("Skipping malformed photo record")
			ui.Printf("Failed to download photo %d\n", position)
			report.Failed++
			continue
		}

		ui.Printf("Downloading %d/%d: %s\n", position, count, photo.Original)
		name := downloader.FileName(len(report.Downloaded)+1, photo.Extension)

		path, ok := fetcher.Download(photo.Original, name)
		if !ok {
			ui.Printf("Failed to download photo %d\n", position)
			report.Failed++
			continue
		}

		ui.Printf("Saved to %s\n", path)
		logger.LogDownload(p.logger, query, position, photo.Original, nil)
		report.Downloaded = append(report.Downloaded, path)
		if manifest != nil {
			manifest.Add(photo, path)
		}
	}

	if len(report.Downloaded) == 0 {
		report.Outcome = OutcomeNothingDownloaded
		log.Warn("No images were downloaded")
		return report, nil
	}

	if manifest != nil {
		path, err := manifest.Save(store.Dir(), p.opts.MetadataFormat)
		if err != nil {
			log.WithError(err).Warn("Failed to write metadata")
			ui.PrintWarning("Failed to write metadata", err)
		} else {
			report.MetadataPath = path
		}
	}

	info, err := p.archiver.Create(report.Downloaded, query)
	if err != nil {
		log.WithError(err).Error("Failed to create archive")
		ui.Printf("\nError creating zip file: %v\n", err)
		report.Outcome = OutcomeArchiveFailed
		return report, nil
	}

	ui.Printf("Successfully created zip archive: %s\n", info.Path)
	log.InfoWithFields("Archive created", map[string]interface{}{
		"path":            info.Path,
		"files":           len(info.Files),
		"original_size":   info.OriginalSize,
		"compressed_size": info.CompressedSize,
	})

	report.ArchivePath = info.Path
	report.Outcome = OutcomeArchived
	return report, nil
}
