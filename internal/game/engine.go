package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/telemetry"
	"github.com/cbosoft/greygoo/internal/trial"
)

// Engine wires persistence and time around a World: load, catch up, act, save.
type Engine struct {
	Repo      StateRepository
	Catalog   *catalog.Catalog
	Clock     Clock
	Scheduler Scheduler
	Baseline  *trial.Stats
	Logger    *log.Logger
	Telemetry telemetry.Recorder
}

func (e Engine) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Now reads the clock once, as epoch seconds.
func (e Engine) Now() int64 {
	return Epoch(e.Clock)
}

// Load reads the persisted state and brings it up to now.
func (e Engine) Load(ctx context.Context) (*World, CatchUpReport, error) {
	st, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, CatchUpReport{}, fmt.Errorf("load state: %w", err)
	}

	w := NewWorld(st, e.Catalog, Options{
		Scheduler: e.Scheduler,
		Baseline:  e.Baseline,
		Logger:    e.logger(),
		Telemetry: e.Telemetry,
	})

	now := e.Now()
	rep, err := w.CatchUp(now)
	if err != nil {
		return nil, rep, fmt.Errorf("catch up: %w", err)
	}
	e.logger().Debug("caught up", "now", now,
		"completed", len(rep.Completed), "fired", len(rep.Fired), "steps", rep.Steps)
	return w, rep, nil
}

func (e Engine) Save(ctx context.Context, w *World) error {
	if err := e.Repo.Save(ctx, w.State()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
