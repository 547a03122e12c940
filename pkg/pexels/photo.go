package pexels

import (
	"encoding/json"

	apierrors "pexelsdl/pkg/errors"
)

// Photo is the normalized descriptor of one search result
type Photo struct {
	ID           int64
	PageURL      string
	Photographer string
	Description  string

	Original   string
	Large2x    string
	Large      string
	Medium     string
	Small      string
	Compressed string

	// Extension is inferred from the original URL, without the dot
	Extension string
}

// NewPhoto maps one raw search record to a Photo. Every field except the
// alt text is required; the first missing one is reported by its dotted path.
func NewPhoto(raw json.RawMessage) (*Photo, error) {
	var r rawPhoto
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, apierrors.New(apierrors.ErrorTypeParsing, "failed to parse photo record: %v", err)
	}

	if r.ID == nil {
		return nil, missing("id")
	}
	if r.URL == nil {
		return nil, missing("url")
	}
	if r.Photographer == nil {
		return nil, missing("photographer")
	}
	if r.Src == nil {
		return nil, missing("src")
	}

	src := []struct {
		name  string
		value *string
	}{
		{"src.original", r.Src.Original},
		{"src.large2x", r.Src.Large2x},
		{"src.large", r.Src.Large},
		{"src.medium", r.Src.Medium},
		{"src.small", r.Src.Small},
		{"src.tiny", r.Src.Tiny},
	}
	for _, s := range src {
		if s.value == nil {
			return nil, missing(s.name)
		}
	}

	p := &Photo{
		ID:           *r.ID,
		PageURL:      *r.URL,
		Photographer: *r.Photographer,
		Original:     *r.Src.Original,
		Large2x:      *r.Src.Large2x,
		Large:        *r.Src.Large,
		Medium:       *r.Src.Medium,
		Small:        *r.Src.Small,
		Compressed:   *r.Src.Tiny,
	}
	if r.Alt != nil {
		p.Description = *r.Alt
	}
	p.Extension = ExtensionFromURL(p.Original)

	return p, nil
}

func missing(field string) error {
	return apierrors.New(apierrors.ErrorTypeMissingField, "missing required field %q", field)
}
