package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"newscurator/internal/domain/entity"
	"newscurator/internal/infra/fetcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlePage(paragraphs int) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Trial results</title></head><body><article>`)
	for i := 0; i < paragraphs; i++ {
		b.WriteString("<p>The randomized trial enrolled thousands of adults across many sites ")
		b.WriteString("and followed them for two full years with careful monitoring.</p>")
	}
	b.WriteString(`</article></body></html>`)
	return b.String()
}

func TestExpander_ExpandsTruncatedContent(t *testing.T) {
	var fetched atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched.Add(1)
		_, _ = w.Write([]byte(articlePage(8)))
	}))
	defer srv.Close()

	e := fetcher.NewExpander(srv.Client(), 400, nil)
	article := entity.Article{
		ID:      1,
		Title:   "Trial results",
		Content: "The randomized trial enrolled... [+1800 chars]",
		URL:     srv.URL + "/article",
	}

	expanded := e.Expand(context.Background(), article)

	assert.Equal(t, int32(1), fetched.Load())
	require.Greater(t, len(expanded.Content), 400)
	assert.Contains(t, expanded.Content, "randomized trial")
	assert.Equal(t, article.ID, expanded.ID)
}

func TestExpander_SkipsLongEnoughContent(t *testing.T) {
	var fetched atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched.Add(1)
	}))
	defer srv.Close()

	e := fetcher.NewExpander(srv.Client(), 100, nil)
	article := entity.Article{
		ID:      2,
		Content: strings.Repeat("long enough body. ", 20),
		URL:     srv.URL,
	}

	expanded := e.Expand(context.Background(), article)

	assert.Equal(t, int32(0), fetched.Load(), "content above the threshold must not trigger a fetch")
	assert.Equal(t, article.Content, expanded.Content)
}

func TestExpander_SkipsArticlesWithoutURL(t *testing.T) {
	e := fetcher.NewExpander(nil, 400, nil)
	article := entity.Article{ID: 3, Content: "short"}

	assert.Equal(t, article, e.Expand(context.Background(), article))
}

func TestExpander_FetchFailureKeepsTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := fetcher.NewExpander(srv.Client(), 400, nil)
	article := entity.Article{ID: 4, Content: "truncated body", URL: srv.URL}

	expanded := e.Expand(context.Background(), article)
	assert.Equal(t, "truncated body", expanded.Content)
}
