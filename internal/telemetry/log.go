package telemetry

import (
	"sync"
	"time"
)

// Recorder receives events as the world changes.
type Recorder interface {
	Record(typ EventType, at time.Time, md EventMetadata)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Record(EventType, time.Time, EventMetadata) {}

// Log keeps the events of one invocation in the order they were recorded.
type Log struct {
	mu     sync.Mutex
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Record(typ EventType, at time.Time, md EventMetadata) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, Event{
		Seq:      len(l.events) + 1,
		Type:     typ,
		At:       at,
		Metadata: md,
	})
}

// Events returns the recorded events of the given types, or all of them
// when no type is given.
func (l *Log) Events(types ...EventType) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	want := make(map[EventType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	out := make([]Event, 0, len(l.events))
	for _, ev := range l.events {
		if len(want) > 0 && !want[ev.Type] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Summary folds the whole log into Stats.
func (l *Log) Summary() Stats {
	return CalculateStats(l.Events())
}
