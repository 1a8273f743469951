package game

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/modifier"
	"github.com/cbosoft/greygoo/internal/telemetry"
	"github.com/cbosoft/greygoo/internal/trial"
)

// Options configure a World. Zero fields fall back to defaults.
type Options struct {
	Scheduler Scheduler
	Baseline  *trial.Stats
	Logger    *log.Logger
	Telemetry telemetry.Recorder
}

// World owns the mutable state of one game for one invocation. The catalog
// is shared and never mutated.
type World struct {
	state     *State
	cat       *catalog.Catalog
	scheduler Scheduler
	baseline  trial.Stats
	logger    *log.Logger
	telemetry telemetry.Recorder
	active    map[string]bool
}

func NewWorld(st *State, cat *catalog.Catalog, opts Options) *World {
	if st == nil {
		st = NewState()
	}
	st.Normalize()

	w := &World{
		state:     st,
		cat:       cat,
		scheduler: opts.Scheduler,
		baseline:  DefaultBaseline(),
		logger:    opts.Logger,
		telemetry: opts.Telemetry,
		active:    make(map[string]bool, len(st.ActiveModifiers)),
	}
	if w.scheduler == nil {
		w.scheduler = NewScheduler(cat, DefaultEventOffset, DefaultEventLabel)
	}
	if opts.Baseline != nil {
		w.baseline = *opts.Baseline
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	if w.telemetry == nil {
		w.telemetry = telemetry.Discard{}
	}

	// Drop duplicate ids left by hand-edited saves.
	dedup := st.ActiveModifiers[:0]
	for _, id := range st.ActiveModifiers {
		if w.active[id] {
			continue
		}
		w.active[id] = true
		dedup = append(dedup, id)
		if _, ok := cat.Get(id); !ok {
			w.logger.Warn("active modifier not in catalog, ignoring its effects", "modifier", id)
		}
	}
	st.ActiveModifiers = dedup

	return w
}

// State exposes the underlying persisted state, e.g. for saving.
func (w *World) State() *State { return w.state }

func (w *World) Catalog() *catalog.Catalog { return w.cat }

func (w *World) Trial() *trial.Trial { return w.state.TrialInProgress }

func (w *World) PopulationUnease() float64 { return w.state.PopulationUnease }

func (w *World) ScientificInspiration() float64 { return w.state.ScientificInspiration }

func (w *World) HasModifier(id string) bool { return w.active[id] }

func (w *World) TrialMass() (float64, bool) {
	if w.state.TrialInProgress == nil {
		return 0, false
	}
	return w.state.TrialInProgress.BotMass, true
}

var _ modifier.View = (*World)(nil)

// Stats aggregates the active modifiers against the current world.
func (w *World) Stats() trial.Stats {
	return Aggregate(w.state.ActiveModifiers, w.cat, w, w.baseline)
}

// TrialStatus reports the status of the running trial, if any.
func (w *World) TrialStatus() (trial.Status, bool) {
	t := w.state.TrialInProgress
	if t == nil {
		return trial.Status{}, false
	}
	return t.Status(w.cat.WorldMass, w.cat.FailureMass), true
}

func (w *World) record(typ telemetry.EventType, ts int64, md telemetry.EventMetadata) {
	w.telemetry.Record(typ, time.Unix(ts, 0).UTC(), md)
}

// Unlocked reports whether every prerequisite of id is active. Once true it
// stays true, since modifiers are never deactivated.
func (w *World) Unlocked(id string) bool {
	def, ok := w.cat.Get(id)
	if !ok {
		return false
	}
	return def.Unlocked(w.active)
}

func (w *World) researching(id string) bool {
	for _, r := range w.state.ModifiersInProgress {
		if r.ID == id {
			return true
		}
	}
	return false
}

// PotentialModifiers lists modifiers that could be researched right now,
// sorted by id.
func (w *World) PotentialModifiers() []modifier.Definition {
	var out []modifier.Definition
	for _, id := range w.cat.IDs() {
		if w.active[id] || w.researching(id) {
			continue
		}
		def, _ := w.cat.Get(id)
		if def.Unlocked(w.active) {
			out = append(out, def)
		}
	}
	return out
}

// Research lists in-progress research ordered by completion time.
func (w *World) Research() []Research {
	out := append([]Research(nil), w.state.ModifiersInProgress...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompleteAt < out[j].CompleteAt })
	return out
}

// StartResearch schedules research into id, completing at now plus its time
// cost.
func (w *World) StartResearch(id string, now int64) (Research, error) {
	def, ok := w.cat.Get(id)
	switch {
	case !ok:
		return Research{}, fmt.Errorf("%w: %q", ErrUnknownModifier, id)
	case w.active[id]:
		return Research{}, fmt.Errorf("%w: %q", ErrAlreadyActive, id)
	case w.researching(id):
		return Research{}, fmt.Errorf("%w: %q", ErrAlreadyResearching, id)
	case !def.Unlocked(w.active):
		return Research{}, &LockedError{ID: id, Missing: def.Missing(w.active)}
	}

	r := Research{ID: id, CompleteAt: now + def.TimeCost}
	w.state.ModifiersInProgress = append(w.state.ModifiersInProgress, r)
	w.record(telemetry.EventResearchStarted, now, telemetry.EventMetadata{
		"modifier":    id,
		"complete_at": r.CompleteAt,
	})
	w.logger.Info("research started", "modifier", id, "complete_at", r.CompleteAt)
	return r, nil
}

// StartTrial begins a new trial using the current aggregated stats.
func (w *World) StartTrial(now int64) (*trial.Trial, error) {
	if w.state.TrialInProgress != nil {
		return nil, trial.ErrTrialInProgress
	}
	stats := w.Stats()
	t := trial.Start(stats, now)
	w.state.TrialInProgress = t
	w.state.FiredEvents = nil
	w.record(telemetry.EventTrialStarted, now, telemetry.EventMetadata{"initial_mass": t.BotMass})
	w.logger.Info("trial started", "initial_mass", t.BotMass)
	return t, nil
}

// StopReport describes a cancelled trial.
type StopReport struct {
	Mass    float64
	Elapsed int64
	Status  trial.Status
}

// StopTrial discards the trial, whatever its status.
func (w *World) StopTrial(now int64) (StopReport, error) {
	t := w.state.TrialInProgress
	if t == nil {
		return StopReport{}, trial.ErrNoTrial
	}
	st, _ := w.TrialStatus()
	rep := StopReport{Mass: t.BotMass, Elapsed: now - t.StartTS, Status: st}
	if rep.Elapsed < 0 {
		rep.Elapsed = 0
	}
	w.state.TrialInProgress = nil
	w.state.FiredEvents = nil
	w.record(telemetry.EventTrialStopped, now, telemetry.EventMetadata{
		"mass":    rep.Mass,
		"elapsed": rep.Elapsed,
		"outcome": st.Phase.String(),
	})
	w.logger.Info("trial stopped", "mass", rep.Mass, "elapsed", rep.Elapsed)
	return rep, nil
}
