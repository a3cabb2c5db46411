package entity

import "strings"

// MinSummarizeLength is the minimum trimmed input length eligible for
// summarization. Shorter input is rejected at the gateway boundary with a
// warning result instead of being sent to any provider.
const MinSummarizeLength = 30

// SummaryResult is the outcome of a summarization request. It is constructed
// fresh per request and never stored.
//
// Summary is always present. Source names the provider that produced the
// summary, or a marker for the input-validation and emergency-fallback
// paths. Model and Note are provider-specific annotations.
type SummaryResult struct {
	Summary string `json:"summary"`
	Source  string `json:"source,omitempty"`
	Model   string `json:"model,omitempty"`
	Note    string `json:"note,omitempty"`
}

// EligibleForSummary reports whether the given text is long enough to be
// sent to a summarization provider.
func EligibleForSummary(text string) bool {
	return len(strings.TrimSpace(text)) >= MinSummarizeLength
}
