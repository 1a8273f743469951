package game

import (
	"context"
	"errors"
	"sync"
)

// MemoryStateRepo keeps a copy of the state in memory.
type MemoryStateRepo struct {
	mu    sync.RWMutex
	state *State
}

func NewMemoryStateRepo(initial *State) *MemoryStateRepo {
	if initial == nil {
		initial = NewState()
	}
	return &MemoryStateRepo{state: initial.Clone()}
}

func (r *MemoryStateRepo) Load(ctx context.Context) (*State, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state == nil {
		return nil, errors.New("state not initialized")
	}
	return r.state.Clone(), nil
}

func (r *MemoryStateRepo) Save(ctx context.Context, s *State) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil {
		return errors.New("state cannot be nil")
	}
	r.state = s.Clone()
	return nil
}
