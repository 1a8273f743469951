package game

import (
	"sort"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/modifier"
	"github.com/cbosoft/greygoo/internal/trial"
)

// DefaultBaseline holds the per-tau rates before any modifier.
func DefaultBaseline() trial.Stats {
	return trial.Stats{
		InitialMass:     1,
		GrowthRate:      1,
		DeathRate:       1,
		UneaseGain:      0.01,
		InspirationGain: 0.01,
	}
}

// Aggregate folds every active modifier's resolved effect into base. Ids are
// applied in sorted order; ids missing from the catalog are skipped.
func Aggregate(active []string, cat *catalog.Catalog, v modifier.View, base trial.Stats) trial.Stats {
	ids := append([]string(nil), active...)
	sort.Strings(ids)

	s := base
	for _, id := range ids {
		def, ok := cat.Get(id)
		if !ok {
			continue
		}
		m := modifier.Effective(def.Effects, v)
		s.InitialMass *= m.InitialMass
		s.GrowthRate *= m.GrowthRate
		s.DeathRate *= m.DeathRate
		s.UneaseGain *= m.UneaseGain
		s.InspirationGain *= m.InspirationGain
	}
	return s
}
