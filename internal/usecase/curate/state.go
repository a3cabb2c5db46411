// Package curate implements the client-side summarization batch driver: a
// health-gated, sequentially paced walk over a batch of articles that keeps
// a per-article summary state map current at every step.
package curate

import "sync"

// Update is one published state transition: article ArticleID's summary
// slot now holds Summary. Summary is either a real summary or one of the
// entity status markers.
type Update struct {
	ArticleID int
	Summary   string
}

// State is the per-article summary map for the current batch. Every batch
// run gets a new generation; writes tagged with a superseded generation are
// discarded so a stale run can never overwrite a newer batch's slots.
type State struct {
	mu         sync.RWMutex
	generation int
	summaries  map[int]string
}

// NewState creates an empty state store.
func NewState() *State {
	return &State{summaries: make(map[int]string)}
}

// NextGeneration starts a new batch: the summary map is reset and a fresh
// generation token returned. Any writer still holding an older token is
// silently ignored from here on.
func (s *State) NextGeneration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.summaries = make(map[int]string)
	return s.generation
}

// Set records a summary for an article under the given generation. It
// reports whether the write was applied; false means the generation is
// stale and the write was dropped.
func (s *State) Set(generation, articleID int, summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.summaries[articleID] = summary
	return true
}

// Get returns the current summary slot for an article.
func (s *State) Get(articleID int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[articleID]
	return summary, ok
}

// Snapshot returns a copy of the current summary map.
func (s *State) Snapshot() map[int]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]string, len(s.summaries))
	for id, summary := range s.summaries {
		out[id] = summary
	}
	return out
}
