package pipeline

import (
	"pexelsdl/pkg/archive"
	"pexelsdl/pkg/pexels"
	"pexelsdl/pkg/storage"
)

// Searcher issues a single search request
type Searcher interface {
	Search(query string, perPage int) (*pexels.SearchResult, error)
}

// Fetcher saves one image under name, reporting success
type Fetcher interface {
	Download(url, name string) (string, bool)
}

// FetcherFactory binds a Fetcher to the run's destination folder
type FetcherFactory func(store *storage.Manager) Fetcher

// Archiver bundles the downloaded files
type Archiver interface {
	Create(files []string, query string) (*archive.Info, error)
}
