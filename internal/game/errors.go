package game

import (
	"errors"
	"fmt"
	"strings"
)

// User-request outcomes. None of these change the world.
var (
	ErrUnknownModifier    = errors.New("no such modifier")
	ErrAlreadyActive      = errors.New("modifier already active")
	ErrAlreadyResearching = errors.New("modifier already being researched")
	ErrLocked             = errors.New("modifier is locked")

	ErrInvalidEventOffset = errors.New("scheduled event offset must be positive")
)

// LockedError names the prerequisites still missing.
type LockedError struct {
	ID      string
	Missing []string
}

func (e *LockedError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("cannot research %q, as it is locked by %s", e.ID, strings.Join(quoted, ", "))
}

func (e *LockedError) Unwrap() error { return ErrLocked }
