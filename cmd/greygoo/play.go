package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cbosoft/greygoo/internal/game"
	"github.com/cbosoft/greygoo/internal/render"
	"github.com/cbosoft/greygoo/internal/telemetry"
	"github.com/cbosoft/greygoo/internal/trial"
)

type playFlags struct {
	list       bool
	check      bool
	research   string
	startTrial bool
	stopTrial  bool
}

// runPlay is the default command: catch up, do at most one thing, save.
func (a *app) runPlay(cmd *cobra.Command, f playFlags) error {
	tel := telemetry.NewLog()
	eng, release, err := a.engine(tel)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn("closing store", "err", err)
		}
	}()

	ctx := cmd.Context()
	w, rep, err := eng.Load(ctx)
	if err != nil {
		return err
	}
	now := rep.Now

	p := a.printer()
	p.Completed(rep.Completed)
	p.Fired(rep.Fired)

	switch {
	case f.list:
		p.Potential(w.PotentialModifiers())
	case f.research != "":
		if err := a.research(p, w, f.research, now); err != nil {
			return err
		}
	case f.startTrial:
		if _, err := w.StartTrial(now); errors.Is(err, trial.ErrTrialInProgress) {
			p.Warn("A trial is already in progress.")
		} else if err != nil {
			return err
		}
		p.Trial(w, now, true)
	case f.stopTrial:
		stopped, err := w.StopTrial(now)
		switch {
		case errors.Is(err, trial.ErrNoTrial):
			p.Warn("No trial in progress.")
		case err != nil:
			return err
		default:
			p.Stopped(stopped)
		}
	default:
		p.Research(w.Research(), now, true)
		p.Accumulators(w)
		p.Trial(w, now, true)
	}

	if err := eng.Save(ctx, w); err != nil {
		return err
	}
	a.logSummary(tel)
	return nil
}

func (a *app) research(p *render.Printer, w *game.World, name string, now int64) error {
	r, err := w.StartResearch(name, now)
	var locked *game.LockedError
	switch {
	case err == nil:
		p.Info("Researching %s, done in %s.", r.ID, render.Duration(r.CompleteAt-now))
	case errors.As(err, &locked):
		p.Warn("Cannot research %q, as it is locked by %s.", name, render.Join(locked.Missing))
	case errors.Is(err, game.ErrUnknownModifier):
		s, ok := w.Suggest(name)
		p.Warn("No modifier named %q.%s", name, render.Suggestion(s, ok))
	case errors.Is(err, game.ErrAlreadyActive):
		p.Warn("%q is already active.", name)
	case errors.Is(err, game.ErrAlreadyResearching):
		p.Warn("%q is already being researched.", name)
	default:
		return err
	}
	return nil
}

func (a *app) logSummary(tel *telemetry.Log) {
	if tel.Len() == 0 {
		return
	}
	s := tel.Summary()
	a.logger.Debug("run summary",
		"events", s.Events,
		"research_completed", len(s.ResearchCompleted),
		"scheduled_fired", len(s.ScheduledFired),
		"trial_steps", s.TrialSteps,
		"simulated_seconds", s.SimulatedSeconds,
		"growth_factor", s.GrowthFactor,
		"outcome", s.Outcome)
}
