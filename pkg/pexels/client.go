package pexels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pexelsdl/pkg/auth"
	apierrors "pexelsdl/pkg/errors"
	"pexelsdl/pkg/logger"
)

// DefaultUserAgent is a browser identity; the API and CDN reject some bare clients
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrNoSearch is returned by NextPage before any search has been issued
var ErrNoSearch = errors.New("no search has been issued")

// SearchResult is one page of search results
type SearchResult struct {
	TotalResults int
	Page         int
	PerPage      int
	Photos       []json.RawMessage
}

// Descriptors maps every record of the page, in order
func (r *SearchResult) Descriptors() ([]*Photo, error) {
	photos := make([]*Photo, 0, len(r.Photos))
	for i, raw := range r.Photos {
		p, err := NewPhoto(raw)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// Each maps records lazily, in page order, until fn returns false or a
// record fails to map. The sequence is finite and scoped to this page.
func (r *SearchResult) Each(fn func(*Photo) bool) error {
	for i, raw := range r.Photos {
		p, err := NewPhoto(raw)
		if err != nil {
			return fmt.Errorf("photo %d: %w", i+1, err)
		}
		if !fn(p) {
			return nil
		}
	}
	return nil
}

// Options configures a Client
type Options struct {
	BaseURL   string
	UserAgent string
	Referer   string
	// Timeout of 0 means requests never time out
	Timeout time.Duration
}

// Client talks to the Pexels search API and downloads images from its CDN.
// It keeps a page cursor so the last search can be advanced with NextPage.
type Client struct {
	httpClient *http.Client
	apiKey     auth.APIKey
	baseURL    string
	userAgent  string
	referer    string
	logger     logger.Logger

	query   string
	perPage int
	page    int
	last    *SearchResult
}

// NewClient creates a new Pexels API client
func NewClient(apiKey auth.APIKey, opts Options, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		referer:    opts.Referer,
		logger:     log,
		page:       1,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// do sends req and logs its outcome
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, apierrors.New(apierrors.ErrorTypeNetwork, "request failed: %v", err)
	}

	logger.LogRequest(c.logger, req.Method, req.URL.String(), resp.StatusCode,
		float64(duration.Microseconds())/1000)

	return resp, nil
}

// Search issues one authenticated request for the given query.
// It resets the page cursor to 1 and remembers the query for NextPage.
func (c *Client) Search(query string, perPage int) (*SearchResult, error) {
	c.query = query
	c.perPage = ClampPerPage(perPage)
	c.page = 1
	return c.fetchPage()
}

// NextPage advances the cursor and re-issues the last search
func (c *Client) NextPage() (*SearchResult, error) {
	if c.last == nil {
		return nil, ErrNoSearch
	}
	c.page++
	return c.fetchPage()
}

func (c *Client) fetchPage() (*SearchResult, error) {
	url := SearchURL(c.baseURL, c.query, c.perPage, c.page)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, apierrors.New(apierrors.ErrorTypeUnknown, "failed to create request: %v", err)
	}
	req.Header.Set("Authorization", c.apiKey.String())
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.FromStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.New(apierrors.ErrorTypeNetwork, "failed to read response body: %v", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse search response", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return nil, apierrors.New(apierrors.ErrorTypeParsing, "failed to parse JSON: %v", err)
	}

	result := &SearchResult{
		TotalResults: sr.TotalResults,
		Page:         c.page,
		PerPage:      c.perPage,
		Photos:       sr.Photos,
	}
	c.last = result

	c.logger.DebugWithFields("search page received", map[string]interface{}{
		"query":         c.query,
		"page":          c.page,
		"total_results": sr.TotalResults,
		"photos":        len(sr.Photos),
	})

	return result, nil
}

// Page returns the current page cursor
func (c *Client) Page() int {
	return c.page
}

// TotalResults returns the match count reported by the last search
func (c *Client) TotalResults() int {
	if c.last == nil {
		return 0
	}
	return c.last.TotalResults
}

// Photos returns the raw records of the last search page
func (c *Client) Photos() []json.RawMessage {
	if c.last == nil {
		return nil
	}
	return c.last.Photos
}

// DownloadPhoto streams the image at photoURL into w. The request is
// unauthenticated and carries a browser identity plus a Referer header.
func (c *Client) DownloadPhoto(photoURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequest(http.MethodGet, photoURL, nil)
	if err != nil {
		return 0, apierrors.New(apierrors.ErrorTypeUnknown, "failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.referer)

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &apierrors.Error{
			Type:    apierrors.ErrorTypeUnknown,
			Message: "image download failed",
			Code:    resp.StatusCode,
			Reason:  http.StatusText(resp.StatusCode),
		}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, apierrors.New(apierrors.ErrorTypeNetwork, "failed to read image body: %v", err)
	}

	return n, nil
}
