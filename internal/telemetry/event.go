// Package telemetry keeps an in-process log of what a catch-up did.
package telemetry

import "time"

type EventType string

const (
	EventResearchStarted   EventType = "research_started"
	EventResearchCompleted EventType = "research_completed"
	EventTrialStarted      EventType = "trial_started"
	EventTrialAdvanced     EventType = "trial_advanced"
	EventTrialStopped      EventType = "trial_stopped"
	EventTrialFinished     EventType = "trial_finished"
	EventScheduledFired    EventType = "scheduled_event_fired"
)

// Event is one recorded step. At is the simulated instant, which during
// catch-up is usually well before the wall clock.
type Event struct {
	Seq      int           `json:"seq"`
	Type     EventType     `json:"type"`
	At       time.Time     `json:"at"`
	Metadata EventMetadata `json:"metadata,omitempty"`
}

type EventMetadata map[string]any

func (m EventMetadata) str(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func (m EventMetadata) num(key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
