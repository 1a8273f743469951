// Package store persists the world state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cbosoft/greygoo/internal/game"
)

// FileRepo persists the state as an indented JSON document.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) Path() string { return r.path }

// Load reads the state file. A missing file is a new game; anything else
// that goes wrong is returned.
func (r *FileRepo) Load(ctx context.Context) (*game.State, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return game.NewState(), nil
		}
		return nil, err
	}

	var st game.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	st.Normalize()
	return &st, nil
}

// Save writes to a temporary file and renames it over the old state.
func (r *FileRepo) Save(ctx context.Context, st *game.State) error {
	_ = ctx
	if st == nil {
		return errors.New("state cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
