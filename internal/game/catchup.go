package game

import (
	"fmt"

	"github.com/cbosoft/greygoo/internal/telemetry"
)

const maxUnease = 100.0

func clampUnease(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxUnease {
		return maxUnease
	}
	return v
}

// CatchUpReport lists what changed while bringing the world up to now.
type CatchUpReport struct {
	Now       int64
	Completed []string
	Fired     []FiredEvent
	Steps     int
}

// CatchUp runs research catch-up, then trial catch-up, against one now.
// Calling it again with the same now changes nothing.
func (w *World) CatchUp(now int64) (CatchUpReport, error) {
	rep := CatchUpReport{Now: now, Completed: w.CatchUpResearch(now)}
	fired, steps, err := w.CatchUpTrial(now)
	rep.Fired = fired
	rep.Steps = steps
	return rep, err
}

// CatchUpResearch promotes every research entry due at or before now.
func (w *World) CatchUpResearch(now int64) []string {
	var done []string
	pending := w.state.ModifiersInProgress[:0]
	for _, r := range w.state.ModifiersInProgress {
		if r.CompleteAt > now {
			pending = append(pending, r)
			continue
		}
		if !w.active[r.ID] {
			w.active[r.ID] = true
			w.state.ActiveModifiers = append(w.state.ActiveModifiers, r.ID)
		}
		done = append(done, r.ID)
		w.record(telemetry.EventResearchCompleted, r.CompleteAt, telemetry.EventMetadata{"modifier": r.ID})
		w.logger.Info("research complete", "modifier", r.ID)
	}
	w.state.ModifiersInProgress = pending
	return done
}

// CatchUpTrial advances the running trial to now, stopping at every
// scheduled event on the way so no event is jumped over. Stats are
// recomputed before each step. Once a trial has succeeded or failed no
// more events fire and its mass is held, but unease and inspiration keep
// accruing until it is stopped.
func (w *World) CatchUpTrial(now int64) ([]FiredEvent, int, error) {
	t := w.state.TrialInProgress
	if t == nil {
		return nil, 0, nil
	}
	if now < t.LastUpdateTS {
		w.logger.Warn("clock is behind the last trial update, skipping catch-up",
			"now", now, "last_update", t.LastUpdateTS)
		return nil, 0, nil
	}

	var fired []FiredEvent
	steps := 0
	for !w.trialDone() {
		offset, label := w.scheduler.NextEvent(*t)
		if offset <= 0 {
			return fired, steps, fmt.Errorf("%w: got %d for %q", ErrInvalidEventOffset, offset, label)
		}
		at := t.LastUpdateTS + offset
		if at > now {
			break
		}
		if err := w.advance(at); err != nil {
			return fired, steps, err
		}
		steps++

		ev := FiredEvent{Label: label, TS: at}
		fired = append(fired, ev)
		w.state.FiredEvents = append(w.state.FiredEvents, ev)
		w.record(telemetry.EventScheduledFired, at, telemetry.EventMetadata{"label": label})
		w.logger.Info("scheduled event", "label", label, "ts", at)
	}

	if t.LastUpdateTS < now {
		if err := w.advance(now); err != nil {
			return fired, steps, err
		}
		steps++
	}
	return fired, steps, nil
}

func (w *World) trialDone() bool {
	st, ok := w.TrialStatus()
	return !ok || st.Terminal()
}

// advance moves the trial to until and applies the time-driven co-effects on
// unease and inspiration. A finished trial keeps its final mass.
func (w *World) advance(until int64) error {
	t := w.state.TrialInProgress
	stats := w.Stats()
	from, fromMass := t.LastUpdateTS, t.BotMass
	finished := w.trialDone()

	periods, err := t.AdvanceTo(until, stats, w.cat.Tau)
	if err != nil {
		return err
	}
	if finished {
		t.BotMass = fromMass
	}
	w.state.PopulationUnease = clampUnease(w.state.PopulationUnease + stats.UneaseGain*periods)
	w.state.ScientificInspiration += stats.InspirationGain * periods

	w.logger.Debug("trial advanced",
		"from", from, "to", until, "mass", t.BotMass,
		"growth", stats.GrowthRate, "death", stats.DeathRate)
	w.record(telemetry.EventTrialAdvanced, until, telemetry.EventMetadata{
		"seconds":   until - from,
		"from_mass": fromMass,
		"to_mass":   t.BotMass,
	})

	if st, _ := w.TrialStatus(); !finished && st.Terminal() {
		w.record(telemetry.EventTrialFinished, until, telemetry.EventMetadata{"outcome": st.Phase.String()})
		w.logger.Info("trial finished", "outcome", st.Phase.String(), "mass", st.Mass)
	}
	return nil
}
