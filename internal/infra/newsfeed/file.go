package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"newscurator/internal/domain/entity"
)

// File serves a fixed batch of articles from a local JSON file. It backs
// development and demos when no NewsAPI key is configured.
type File struct {
	path string
}

// NewFile creates a file-backed source reading from path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name implements Source.
func (f *File) Name() string { return "file" }

// Fetch decodes the JSON article list. Articles without an explicit id get
// 1-based sequential ids in file order.
func (f *File) Fetch(_ context.Context) ([]entity.Article, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read mock news file: %w", err)
	}

	var articles []entity.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parse mock news file %s: %w", f.path, err)
	}

	for i := range articles {
		if articles[i].ID == 0 {
			articles[i].ID = i + 1
		}
	}
	return articles, nil
}
