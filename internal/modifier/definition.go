package modifier

// Multipliers scale the five aggregated stats. The zero value is not the
// identity; use Identity() when no effect applies.
type Multipliers struct {
	InitialMass     float64 `json:"initial_mass_mult" yaml:"initial_mass_mult"`
	GrowthRate      float64 `json:"growth_rate_mult" yaml:"growth_rate_mult"`
	DeathRate       float64 `json:"death_rate_mult" yaml:"death_rate_mult"`
	UneaseGain      float64 `json:"unease_gain_mult" yaml:"unease_gain_mult"`
	InspirationGain float64 `json:"inspiration_gain_mult" yaml:"inspiration_gain_mult"`
}

func Identity() Multipliers {
	return Multipliers{
		InitialMass:     1,
		GrowthRate:      1,
		DeathRate:       1,
		UneaseGain:      1,
		InspirationGain: 1,
	}
}

// DefaultEffect is the effect name used as the fallback baseline when no
// conditional effect triggers.
const DefaultEffect = "default"

type EffectRule struct {
	Name      string
	Mult      Multipliers
	Condition Condition
}

// Definition is the static, catalog-owned description of a researchable modifier.
type Definition struct {
	ID          string
	Description string
	LockedBy    []string
	TimeCost    int64 // seconds
	MassCost    float64
	Effects     map[string]EffectRule
}

// Unlocked reports whether every prerequisite is present in active.
func (d Definition) Unlocked(active map[string]bool) bool {
	for _, id := range d.LockedBy {
		if !active[id] {
			return false
		}
	}
	return true
}

// Missing returns the prerequisites not yet in active, in declaration order.
func (d Definition) Missing(active map[string]bool) []string {
	var out []string
	for _, id := range d.LockedBy {
		if !active[id] {
			out = append(out, id)
		}
	}
	return out
}
