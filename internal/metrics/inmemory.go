package metrics

import (
	"sync"
	"time"
)

// InMemory is a Recorder that keeps counters in process memory.
// Useful for tests and for the development stats endpoint.
type InMemory struct {
	mu sync.Mutex

	Signups         int64
	Logins          map[string]int64
	ArticlesSaved   int64
	ArticlesCreated int64
	SaveConflicts   int64
	ArticlesUnsaved int64
	SessionsCreated int64
	AssistantReplies map[string]int64

	assistantDurations []time.Duration
}

// NewInMemory creates an in-memory Recorder.
func NewInMemory() *InMemory {
	return &InMemory{
		Logins:           make(map[string]int64),
		AssistantReplies: make(map[string]int64),
	}
}

func (m *InMemory) IncSignup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signups++
}

func (m *InMemory) IncLogin(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logins[status]++
}

func (m *InMemory) IncArticleSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSaved++
}

func (m *InMemory) IncArticleCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCreated++
}

func (m *InMemory) IncSaveConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveConflicts++
}

func (m *InMemory) IncArticleUnsaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesUnsaved++
}

func (m *InMemory) IncSessionCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCreated++
}

func (m *InMemory) IncAssistantReply(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssistantReplies[status]++
}

func (m *InMemory) ObserveAssistantDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assistantDurations = append(m.assistantDurations, duration)
}

// AssistantDurations returns a copy of observed assistant latencies.
func (m *InMemory) AssistantDurations() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.assistantDurations))
	copy(out, m.assistantDurations)
	return out
}
