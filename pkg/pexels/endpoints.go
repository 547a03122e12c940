package pexels

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the base URL of the Pexels v1 API
	BaseURL = "https://api.pexels.com/v1/"

	// SearchEndpoint is the photo search path, relative to BaseURL
	SearchEndpoint = "search"

	// DefaultPerPage is what the API returns when per_page is omitted
	DefaultPerPage = 15

	// MinPerPage and MaxPerPage bound the per_page parameter
	MinPerPage = 1
	MaxPerPage = 80

	// DefaultReferer satisfies hotlink protection on the image CDN
	DefaultReferer = "https://www.pexels.com/"
)

// ClampPerPage bounds n into the range the API accepts
func ClampPerPage(n int) int {
	if n < MinPerPage {
		return MinPerPage
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

// SearchURL constructs the URL for one page of search results
func SearchURL(base, query string, perPage, page int) string {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(ClampPerPage(perPage)))
	params.Set("page", strconv.Itoa(page))

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + SearchEndpoint + "?" + params.Encode()
}

// ExtensionFromURL returns everything after the last "." in the URL's path.
// Query strings and fragments are ignored. The result is not validated.
func ExtensionFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	// Only look at the trailing path segment
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}

	i := strings.LastIndex(p, ".")
	if i < 0 {
		return ""
	}
	return p[i+1:]
}
