package game

import (
	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/trial"
)

const (
	DefaultEventOffset int64 = 1_000_000
	DefaultEventLabel        = "foo"
)

// Scheduler reports the next scheduled event relative to the trial's last
// update. The offset must be positive.
type Scheduler interface {
	NextEvent(t trial.Trial) (offset int64, label string)
}

// FixedScheduler always schedules the same event a fixed time ahead.
type FixedScheduler struct {
	Offset int64
	Label  string
}

func (s FixedScheduler) NextEvent(trial.Trial) (int64, string) {
	return s.Offset, s.Label
}

// CatalogScheduler fires the catalog's events at their offsets from trial
// start, then defers to Fallback.
type CatalogScheduler struct {
	Events   []catalog.Event
	Fallback Scheduler
}

func (s CatalogScheduler) NextEvent(t trial.Trial) (int64, string) {
	for _, ev := range s.Events {
		at := t.StartTS + ev.After
		if at > t.LastUpdateTS {
			return at - t.LastUpdateTS, ev.Label
		}
	}
	return s.Fallback.NextEvent(t)
}

// NewScheduler builds the scheduler for a catalog: its events first, then a
// fixed far-off placeholder.
func NewScheduler(cat *catalog.Catalog, offset int64, label string) Scheduler {
	fallback := FixedScheduler{Offset: offset, Label: label}
	events := cat.Events()
	if len(events) == 0 {
		return fallback
	}
	return CatalogScheduler{Events: events, Fallback: fallback}
}
