package telemetry

import "time"

// Stats summarises a run.
type Stats struct {
	Events            int               `json:"events"`
	Counts            map[EventType]int `json:"counts"`
	From              time.Time         `json:"from"`
	To                time.Time         `json:"to"`
	ResearchStarted   int               `json:"research_started"`
	ResearchCompleted []string          `json:"research_completed"`
	ScheduledFired    []string          `json:"scheduled_fired"`
	TrialSteps        int               `json:"trial_steps"`
	SimulatedSeconds  int64             `json:"simulated_seconds"`
	GrowthFactor      float64           `json:"growth_factor"`
	TrialsStarted     int               `json:"trials_started"`
	TrialsStopped     int               `json:"trials_stopped"`
	Outcome           string            `json:"outcome,omitempty"`
}

// CalculateStats folds events, in order, into a run summary. From and To
// span the simulated instants covered.
func CalculateStats(events []Event) Stats {
	s := Stats{
		Events:       len(events),
		Counts:       make(map[EventType]int),
		GrowthFactor: 1,
	}

	for _, ev := range events {
		s.Counts[ev.Type]++
		if s.From.IsZero() || ev.At.Before(s.From) {
			s.From = ev.At
		}
		if ev.At.After(s.To) {
			s.To = ev.At
		}

		md := ev.Metadata
		switch ev.Type {
		case EventResearchStarted:
			s.ResearchStarted++
		case EventResearchCompleted:
			if id, ok := md.str("modifier"); ok {
				s.ResearchCompleted = append(s.ResearchCompleted, id)
			}
		case EventScheduledFired:
			if label, ok := md.str("label"); ok {
				s.ScheduledFired = append(s.ScheduledFired, label)
			}
		case EventTrialAdvanced:
			s.TrialSteps++
			if secs, ok := md.num("seconds"); ok {
				s.SimulatedSeconds += int64(secs)
			}
			from, okFrom := md.num("from_mass")
			to, okTo := md.num("to_mass")
			if okFrom && okTo && from > 0 {
				s.GrowthFactor *= to / from
			}
		case EventTrialStarted:
			s.TrialsStarted++
		case EventTrialStopped:
			s.TrialsStopped++
		case EventTrialFinished:
			if outcome, ok := md.str("outcome"); ok {
				s.Outcome = outcome
			}
		}
	}
	return s
}
