// Package trial models one run of exponential bot growth toward world
// domination.
package trial

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoTrial         = errors.New("no trial in progress")
	ErrTrialInProgress = errors.New("a trial is already in progress")
	ErrTimeReversed    = errors.New("cannot advance a trial backwards in time")
)

// Stats are the aggregated per-tau rates a trial advances with.
type Stats struct {
	InitialMass     float64
	GrowthRate      float64
	DeathRate       float64
	UneaseGain      float64
	InspirationGain float64
}

// Base is the per-tau compounding factor.
func (s Stats) Base() float64 { return 1 + s.GrowthRate - s.DeathRate }

// Rising reports whether the swarm grows under these stats.
func (s Stats) Rising() bool { return s.Base() > 1 }

type Trial struct {
	BotMass      float64 `json:"bot_mass"`
	StartTS      int64   `json:"start_ts"`
	LastUpdateTS int64   `json:"last_update_ts"`
}

func Start(stats Stats, now int64) *Trial {
	return &Trial{
		BotMass:      stats.InitialMass,
		StartTS:      now,
		LastUpdateTS: now,
	}
}

type Phase int

const (
	InProgress Phase = iota
	Success
	Failure
)

func (p Phase) String() string {
	switch p {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "in_progress"
	}
}

type Status struct {
	Phase Phase
	Mass  float64
}

func (s Status) Terminal() bool { return s.Phase != InProgress }

// Status classifies the trial: success once the swarm outweighs the world,
// failure once it has shrunk to failureMass or below.
func (t *Trial) Status(worldMass, failureMass float64) Status {
	switch {
	case t.BotMass >= worldMass:
		return Status{Phase: Success, Mass: t.BotMass}
	case t.BotMass <= failureMass:
		return Status{Phase: Failure, Mass: t.BotMass}
	default:
		return Status{Phase: InProgress, Mass: t.BotMass}
	}
}

// Elapsed is the number of seconds since the trial started, as of its last update.
func (t *Trial) Elapsed() int64 { return t.LastUpdateTS - t.StartTS }

// AdvanceTo applies closed-form compounding from the last update up to until
// and returns the number of tau periods that elapsed. Splitting an interval
// into several calls gives the same mass as one call, for constant stats.
func (t *Trial) AdvanceTo(until int64, stats Stats, tau float64) (float64, error) {
	if t == nil {
		return 0, ErrNoTrial
	}
	if until < t.LastUpdateTS {
		return 0, fmt.Errorf("%w: %d < %d", ErrTimeReversed, until, t.LastUpdateTS)
	}
	if tau <= 0 {
		return 0, fmt.Errorf("tau must be > 0, got %v", tau)
	}

	periods := float64(until-t.LastUpdateTS) / tau
	t.LastUpdateTS = until
	if periods == 0 {
		return 0, nil
	}

	base := stats.Base()
	if base <= 0 {
		t.BotMass = 0
		return periods, nil
	}
	t.BotMass *= math.Pow(base, periods)
	return periods, nil
}

// MassAt projects the mass at ts without mutating t. Times before the last
// update return the current mass.
func (t *Trial) MassAt(ts int64, stats Stats, tau float64) float64 {
	c := *t
	_, _ = c.AdvanceTo(ts, stats, tau)
	return c.BotMass
}

// TimeToReach estimates the seconds from the last update until the mass
// reaches target, or false if it never will under these stats.
func (t *Trial) TimeToReach(target float64, stats Stats, tau float64) (int64, bool) {
	if t.BotMass >= target {
		return 0, true
	}
	base := stats.Base()
	if base <= 1 || t.BotMass <= 0 {
		return 0, false
	}
	periods := math.Log(target/t.BotMass) / math.Log(base)
	return int64(math.Ceil(periods * tau)), true
}
