package pexels

import "encoding/json"

// searchResponse is the JSON body returned by the search endpoint
type searchResponse struct {
	TotalResults int               `json:"total_results"`
	Page         int               `json:"page"`
	PerPage      int               `json:"per_page"`
	Photos       []json.RawMessage `json:"photos"`
	NextPage     string            `json:"next_page,omitempty"`
}

// rawPhoto mirrors one entry of "photos". Pointer fields distinguish a
// missing key from an empty value.
type rawPhoto struct {
	ID           *int64  `json:"id"`
	URL          *string `json:"url"`
	Photographer *string `json:"photographer"`
	Alt          *string `json:"alt"`
	Src          *rawSrc `json:"src"`
}

// rawSrc holds the resolution-specific download URLs
type rawSrc struct {
	Original *string `json:"original"`
	Large2x  *string `json:"large2x"`
	Large    *string `json:"large"`
	Medium   *string `json:"medium"`
	Small    *string `json:"small"`
	Tiny     *string `json:"tiny"`
}
