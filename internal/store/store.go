package store

import (
	"fmt"

	"github.com/cbosoft/greygoo/internal/game"
)

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open returns the repository for kind and a function releasing it.
func Open(kind, jsonPath, sqlitePath string) (game.StateRepository, func() error, error) {
	switch kind {
	case "", KindJSON:
		return NewFileRepo(jsonPath), func() error { return nil }, nil
	case KindSQLite:
		r, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want %q or %q)", kind, KindJSON, KindSQLite)
	}
}
