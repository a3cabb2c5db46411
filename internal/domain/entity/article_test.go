package entity_test

import (
	"testing"

	"newscurator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestArticle_SummarizableText(t *testing.T) {
	tests := []struct {
		name    string
		article entity.Article
		want    string
	}{
		{
			name:    "content preferred over description",
			article: entity.Article{Content: "full content", Description: "short blurb"},
			want:    "full content",
		},
		{
			name:    "description used when content empty",
			article: entity.Article{Description: "short blurb"},
			want:    "short blurb",
		},
		{
			name:    "whitespace-only content falls back to description",
			article: entity.Article{Content: "   \n\t", Description: "short blurb"},
			want:    "short blurb",
		},
		{
			name:    "both empty yields empty",
			article: entity.Article{Title: "headline only"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.SummarizableText())
		})
	}
}

func TestEligibleForSummary(t *testing.T) {
	assert.False(t, entity.EligibleForSummary(""))
	assert.False(t, entity.EligibleForSummary("short"))
	assert.False(t, entity.EligibleForSummary("                              "))
	assert.True(t, entity.EligibleForSummary("this sentence is comfortably longer than thirty characters"))

	// Exactly at the boundary counts as eligible.
	boundary := make([]byte, entity.MinSummarizeLength)
	for i := range boundary {
		boundary[i] = 'a'
	}
	assert.True(t, entity.EligibleForSummary(string(boundary)))
}
