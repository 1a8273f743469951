package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbosoft/greygoo/internal/catalog"
)

const testCatalogJSON = `{
  "world_mass": 1e6,
  "tau": 300,
  "modifiers": {
    "A": {"description": "root", "time_cost": "1h"},
    "B": {"description": "needs A", "time_cost": "2h", "locked_by": ["A"]},
    "C": {"description": "needs A and B", "time_cost": "1d", "locked_by": ["A", "B"]},
    "fast": {
      "description": "faster growth",
      "time_cost": "1m",
      "effects": {"default": {"growth_rate_mult": 1.05}}
    },
    "calm": {
      "description": "unease control",
      "time_cost": "1m",
      "effects": {
        "default": {"unease_gain_mult": 2},
        "quiet": {"unease_gain_mult": 0, "condition": "population unease greater than 50"}
      }
    },
    "big": {
      "description": "mass dependent",
      "time_cost": "1m",
      "effects": {
        "default": {"growth_rate_mult": 1.1},
        "swarm": {"growth_rate_mult": 1.2, "condition": "trial bot mass greater than 10"}
      }
    }
  }
}`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalogJSON), catalog.FormatJSON)
	require.NoError(t, err)
	return c
}

func newTestWorld(t *testing.T, st *State) *World {
	t.Helper()
	return NewWorld(st, testCatalog(t), Options{})
}
