package entity

// Summary slot status markers. A reader always sees one of these or a real
// summary; a slot is never blank.
const (
	// StatusPending fills every slot before its article is summarized.
	StatusPending = "⏳ Generating summary..."

	// StatusNoContent marks articles with neither content nor description.
	StatusNoContent = "⚠️ No content available for summary"

	// StatusFailed marks an article whose summarization call failed. It
	// affects only that article; the batch continues.
	StatusFailed = "⚠️ Failed to generate summary"

	// StatusBackendDown fills every slot when the gateway health check
	// fails. No summarization call is made for the batch.
	StatusBackendDown = "❌ Backend server not connected. Please ensure backend is running on port 8080."
)
