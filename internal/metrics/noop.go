package metrics

import "time"

// Noop is a Recorder that discards all events.
// Used when no metrics backend is configured.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) IncSignup()                                    {}
func (n *Noop) IncLogin(status string)                        {}
func (n *Noop) IncArticleSaved()                              {}
func (n *Noop) IncArticleCreated()                            {}
func (n *Noop) IncSaveConflict()                              {}
func (n *Noop) IncArticleUnsaved()                            {}
func (n *Noop) IncSessionCreated()                            {}
func (n *Noop) IncAssistantReply(status string)               {}
func (n *Noop) ObserveAssistantDuration(duration time.Duration) {}
