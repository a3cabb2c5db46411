// Package entity defines the core domain types shared by the summarization
// gateway and the client driver: articles supplied by a news source and the
// summary results produced for them.
package entity

import "strings"

// Article is a single news item supplied by a news source.
// IDs are assigned sequentially within a fetched batch (1-based) and are
// unique only inside that batch. The driver never mutates an article; it
// only derives a summary keyed by the article's ID.
type Article struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
}

// SummarizableText returns the text the driver submits for summarization:
// the article content if present and non-empty, otherwise the description.
// The result is trimmed; an empty return means the article has nothing to
// summarize.
func (a Article) SummarizableText() string {
	if text := strings.TrimSpace(a.Content); text != "" {
		return text
	}
	return strings.TrimSpace(a.Description)
}
