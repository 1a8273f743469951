package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbosoft/greygoo/internal/trial"
)

// Research is a modifier being researched, persisted as an [id, ts] pair.
type Research struct {
	ID         string
	CompleteAt int64
}

func (r Research) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.ID, r.CompleteAt})
}

func (r *Research) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("research entry: want [id, ts], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.ID); err != nil {
		return fmt.Errorf("research entry id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.CompleteAt); err != nil {
		return fmt.Errorf("research entry ts: %w", err)
	}
	return nil
}

// FiredEvent records a scheduled event reached during catch-up.
type FiredEvent struct {
	Label string `json:"label"`
	TS    int64  `json:"ts"`
}

// State is the persisted world.
type State struct {
	ActiveModifiers       []string     `json:"active_modifiers"`
	ModifiersInProgress   []Research   `json:"modifiers_in_progress"`
	TrialInProgress       *trial.Trial `json:"trial_in_progress"`
	PopulationUnease      float64      `json:"population_unease"`
	ScientificInspiration float64      `json:"scientific_inspiration"`
	FiredEvents           []FiredEvent `json:"fired_events,omitempty"`
}

// NewState is the state of a brand new game.
func NewState() *State {
	return &State{
		ActiveModifiers:     []string{},
		ModifiersInProgress: []Research{},
	}
}

// Normalize fills nil slices so a state decoded from sparse JSON behaves
// like NewState.
func (s *State) Normalize() {
	if s.ActiveModifiers == nil {
		s.ActiveModifiers = []string{}
	}
	if s.ModifiersInProgress == nil {
		s.ModifiersInProgress = []Research{}
	}
	s.PopulationUnease = clampUnease(s.PopulationUnease)
}

func (s *State) Clone() *State {
	c := *s
	c.ActiveModifiers = append([]string{}, s.ActiveModifiers...)
	c.ModifiersInProgress = append([]Research{}, s.ModifiersInProgress...)
	c.FiredEvents = append([]FiredEvent(nil), s.FiredEvents...)
	if s.TrialInProgress != nil {
		t := *s.TrialInProgress
		c.TrialInProgress = &t
	}
	return &c
}

// StateRepository handles persistence of the world state
type StateRepository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
}
