package newsfeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"newscurator/internal/infra/newsfeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headlinesBody = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "title": "New vaccine shows promise",
      "description": "A phase 3 trial reports strong results.",
      "content": "Full trial content here. [+1234 chars]",
      "url": "https://example.com/vaccine",
      "urlToImage": "https://example.com/vaccine.jpg"
    },
    {
      "title": "Hospitals expand capacity",
      "description": "Capacity grows nationwide.",
      "content": "",
      "url": "https://example.com/hospitals",
      "urlToImage": ""
    }
  ]
}`

func TestNewsAPI_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, "health", r.URL.Query().Get("category"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		_, _ = w.Write([]byte(headlinesBody))
	}))
	defer srv.Close()

	src := newsfeed.NewNewsAPI(srv.URL, "test-key", srv.Client(), nil)
	articles, err := src.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, 1, articles[0].ID)
	assert.Equal(t, 2, articles[1].ID)
	assert.Equal(t, "New vaccine shows promise", articles[0].Title)
	assert.Equal(t, "https://example.com/vaccine", articles[0].URL)
	assert.Empty(t, articles[1].Content)
}

func TestNewsAPI_Fetch_ErrorStatusField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
	}))
	defer srv.Close()

	src := newsfeed.NewNewsAPI(srv.URL, "bad-key", srv.Client(), nil)
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestNewsAPI_Fetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(headlinesBody))
	}))
	defer srv.Close()

	src := newsfeed.NewNewsAPI(srv.URL, "key", srv.Client(), nil)
	articles, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, int32(2), calls.Load(), "a 502 must be retried")
}

func TestNewsAPI_Fetch_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	src := newsfeed.NewNewsAPI(srv.URL, "bad-key", srv.Client(), nil)
	_, err := src.Fetch(context.Background())

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a 401 is permanent and must not be retried")
}
