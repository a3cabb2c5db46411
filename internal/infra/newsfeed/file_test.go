package newsfeed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"newscurator/internal/infra/newsfeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock-news.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "title": "Sleep study", "description": "Eight hours matter.", "content": "Full body.", "url": "https://example.com/1"},
		{"title": "No explicit id", "description": "Gets a sequential one."}
	]`), 0o600))

	src := newsfeed.NewFile(path)
	articles, err := src.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, 1, articles[0].ID)
	assert.Equal(t, "Sleep study", articles[0].Title)
	assert.Equal(t, 2, articles[1].ID, "missing ids are filled sequentially")
}

func TestFile_Fetch_MissingFile(t *testing.T) {
	src := newsfeed.NewFile(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFile_Fetch_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o600))

	src := newsfeed.NewFile(path)
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
