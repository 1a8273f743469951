package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/config"
	"github.com/cbosoft/greygoo/internal/game"
	"github.com/cbosoft/greygoo/internal/render"
	"github.com/cbosoft/greygoo/internal/store"
	"github.com/cbosoft/greygoo/internal/telemetry"
)

// app carries what every command needs once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer
	clock  game.Clock

	configPath string
	envPath    string

	cfg    *config.Config
	logger *log.Logger
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", a.configPath, err)
	}
	if err := config.FromEnv(cfg, a.envPath); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("log_level %q: %w", cfg.LogLevel, err)
	}
	a.logger = log.NewWithOptions(a.errOut, log.Options{
		Level:  level,
		Prefix: "greygoo",
	})
	return nil
}

func (a *app) color() bool {
	switch a.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) printer() *render.Printer {
	return render.NewPrinter(a.out, a.color())
}

// engine loads the catalog and opens the state store. The returned function
// releases the store.
func (a *app) engine(tel telemetry.Recorder) (game.Engine, func() error, error) {
	cat, err := catalog.Load(a.cfg.CatalogPath)
	if err != nil {
		return game.Engine{}, nil, err
	}
	for _, w := range cat.Warnings() {
		a.logger.Warn(w, "catalog", a.cfg.CatalogPath)
	}

	repo, release, err := store.Open(a.cfg.Store, a.cfg.StatePath, a.cfg.SQLitePath)
	if err != nil {
		return game.Engine{}, nil, err
	}

	baseline := a.cfg.Baseline.Stats()
	return game.Engine{
		Repo:      repo,
		Catalog:   cat,
		Clock:     a.clock,
		Scheduler: game.NewScheduler(cat, a.cfg.Events.Offset, a.cfg.Events.Label),
		Baseline:  &baseline,
		Logger:    a.logger,
		Telemetry: tel,
	}, release, nil
}

// savedFiles lists what a backup should hold for the configured store.
func (a *app) savedFiles() []string {
	state := a.cfg.StatePath
	if a.cfg.Store == store.KindSQLite {
		state = a.cfg.SQLitePath
	}
	return []string{state, a.cfg.CatalogPath}
}
