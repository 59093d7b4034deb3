// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncSignup()
	IncLogin(status string) // status: "success" or "failed"

	// Saved-article metrics
	IncArticleSaved()
	IncArticleCreated() // articles created lazily during a save
	IncSaveConflict()
	IncArticleUnsaved()

	// Chat metrics
	IncSessionCreated()
	IncAssistantReply(status string) // status: "success" or "failed"
	ObserveAssistantDuration(duration time.Duration)
}
