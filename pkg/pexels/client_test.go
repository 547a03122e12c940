package pexels

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pexelsdl/pkg/auth"
	apierrors "pexelsdl/pkg/errors"
	"pexelsdl/pkg/logger"
)

const testKey = "test-api-key-123456"

type requestLog struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, r.Clone(r.Context()))
}

func (l *requestLog) all() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.requests...)
}

// newSearchServer serves total photos spread over pages of the requested size
func newSearchServer(t *testing.T, total int) (*httptest.Server, *requestLog) {
	t.Helper()
	requests := &requestLog{}

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.add(r)

		if r.Header.Get("Authorization") != testKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		var photos []interface{}
		for i := (page-1)*perPage + 1; i <= page*perPage && i <= total; i++ {
			photos = append(photos, photoJSON(i, server.URL, "jpeg"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"total_results": total,
			"page":          page,
			"per_page":      perPage,
			"photos":        photos,
		})
	}))
	t.Cleanup(server.Close)

	return server, requests
}

func newTestClient(server *httptest.Server, key string) (*Client, *logger.TestLogger) {
	log := logger.NewTestLogger()
	return NewClient(auth.APIKey(key), Options{BaseURL: server.URL + "/v1/"}, log), log
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("k", Options{}, logger.NewTestLogger())

	assert.Equal(t, BaseURL, c.baseURL)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, DefaultReferer, c.referer)
	assert.Equal(t, time.Duration(0), c.httpClient.Timeout)
	assert.Equal(t, 1, c.Page())
	assert.Zero(t, c.TotalResults())
	assert.Nil(t, c.Photos())
}

func TestSearch(t *testing.T) {
	server, requests := newSearchServer(t, 5)
	client, _ := newTestClient(server, testKey)

	result, err := client.Search("cats", 3)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalResults)
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Photos, 3)
	assert.Equal(t, 5, client.TotalResults())
	assert.Len(t, client.Photos(), 3)

	require.Len(t, requests.all(), 1)
	req := requests.all()[0]
	assert.Equal(t, "/v1/search", req.URL.Path)
	assert.Equal(t, "cats", req.URL.Query().Get("query"))
	assert.Equal(t, "3", req.URL.Query().Get("per_page"))
	assert.Equal(t, "1", req.URL.Query().Get("page"))
	assert.Equal(t, testKey, req.Header.Get("Authorization"))
	assert.Contains(t, req.Header.Get("User-Agent"), "Mozilla")

	photos, err := result.Descriptors()
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, int64(1), photos[0].ID)
	assert.Equal(t, int64(3), photos[2].ID)
}

func TestSearchClampsPerPage(t *testing.T) {
	server, requests := newSearchServer(t, 200)
	client, _ := newTestClient(server, testKey)

	result, err := client.Search("dogs", 150)
	require.NoError(t, err)
	assert.Len(t, result.Photos, MaxPerPage)
	assert.Equal(t, "80", requests.all()[0].URL.Query().Get("per_page"))
}

func TestNextPage(t *testing.T) {
	server, requests := newSearchServer(t, 5)
	client, _ := newTestClient(server, testKey)

	_, err := client.NextPage()
	assert.ErrorIs(t, err, ErrNoSearch)

	_, err = client.Search("cats", 2)
	require.NoError(t, err)

	second, err := client.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 2, client.Page())
	assert.Equal(t, 2, second.Page)

	photos, err := second.Descriptors()
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, int64(3), photos[0].ID)

	require.Len(t, requests.all(), 2)
	assert.Equal(t, "cats", requests.all()[1].URL.Query().Get("query"))
	assert.Equal(t, "2", requests.all()[1].URL.Query().Get("page"))

	// A fresh search resets the cursor
	_, err = client.Search("birds", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, client.Page())
}

func TestSearchEmpty(t *testing.T) {
	server, _ := newSearchServer(t, 0)
	client, _ := newTestClient(server, testKey)

	result, err := client.Search("rare thing", 5)
	require.NoError(t, err)
	assert.Zero(t, result.TotalResults)
	assert.Empty(t, result.Photos)
}

func TestSearchErrors(t *testing.T) {
	statusServer := func(code int) *httptest.Server {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		t.Cleanup(s.Close)
		return s
	}

	tests := []struct {
		name     string
		code     int
		wantType apierrors.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, apierrors.ErrorTypeAuth},
		{"forbidden", http.StatusForbidden, apierrors.ErrorTypeForbidden},
		{"server error", http.StatusInternalServerError, apierrors.ErrorTypeUnknown},
		{"too many requests", http.StatusTooManyRequests, apierrors.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(statusServer(tt.code), testKey)
			_, err := client.Search("cats", 1)
			require.Error(t, err)
			assert.True(t, apierrors.IsType(err, tt.wantType))
			assert.Equal(t, tt.code, apierrors.StatusCode(err))
		})
	}

	t.Run("wrong key", func(t *testing.T) {
		server, _ := newSearchServer(t, 5)
		client, _ := newTestClient(server, "wrong")
		_, err := client.Search("cats", 1)
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeAuth))
	})

	t.Run("invalid json", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer s.Close()

		client, log := newTestClient(s, testKey)
		_, err := client.Search("cats", 1)
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeParsing))
		assert.True(t, log.HasMessage("failed to parse search response"))
	})

	t.Run("network error", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		s.Close()

		client, log := newTestClient(s, testKey)
		_, err := client.Search("cats", 1)
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNetwork))
		assert.True(t, log.HasError())
	})
}

func TestEach(t *testing.T) {
	result := &SearchResult{Photos: nil}
	for i := 1; i <= 4; i++ {
		result.Photos = append(result.Photos, mustRaw(photoJSON(i, "https://images.pexels.com", "jpeg")))
	}

	var seen []int64
	err := result.Each(func(p *Photo) bool {
		seen = append(seen, p.ID)
		return len(seen) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, seen)

	broken := photoJSON(5, "https://images.pexels.com", "jpeg")
	delete(broken, "photographer")
	result.Photos = append(result.Photos, mustRaw(broken))

	count := 0
	err = result.Each(func(p *Photo) bool {
		count++
		return true
	})
	assert.Equal(t, 4, count)
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeMissingField))

	_, err = result.Descriptors()
	assert.Error(t, err)
}

func TestDownloadPhoto(t *testing.T) {
	payload := []byte("\xff\xd8\xff fake jpeg bytes")

	requests := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.add(r)
		if r.URL.Path == "/missing.jpeg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client, _ := newTestClient(server, testKey)

	var buf bytes.Buffer
	n, err := client.DownloadPhoto(server.URL+"/photo.jpeg", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, buf.Bytes())

	got := requests.all()[0]
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Equal(t, DefaultReferer, got.Header.Get("Referer"))
	assert.Contains(t, got.Header.Get("User-Agent"), "Mozilla")

	_, err = client.DownloadPhoto(server.URL+"/missing.jpeg", &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierrors.StatusCode(err))

	_, err = client.DownloadPhoto("://bad url", &bytes.Buffer{})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestDownloadPhotoWriteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	client, _ := newTestClient(server, testKey)
	_, err := client.DownloadPhoto(server.URL+"/a.jpg", failingWriter{})
	assert.Error(t, err)
}
