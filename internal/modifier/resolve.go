package modifier

import "sort"

// View is the read-only slice of world state that conditions inspect.
type View interface {
	HasModifier(id string) bool
	// TrialMass returns the bot mass of the running trial, if any.
	TrialMass() (float64, bool)
	PopulationUnease() float64
}

// Resolve picks the single effect that applies to v. The "default" effect is
// the starting candidate; every other effect whose condition holds replaces
// it, visiting names in lexicographic order, so the last triggered name wins.
// ok is false when nothing applies.
func Resolve(effects map[string]EffectRule, v View) (rule EffectRule, ok bool) {
	if def, found := effects[DefaultEffect]; found {
		rule, ok = def, true
	}

	names := make([]string, 0, len(effects))
	for name := range effects {
		if name != DefaultEffect {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		e := effects[name]
		if e.Condition.Holds(v) {
			rule, ok = e, true
		}
	}
	return rule, ok
}

// Effective returns the multipliers of the resolved effect, or Identity().
func Effective(effects map[string]EffectRule, v View) Multipliers {
	if rule, ok := Resolve(effects, v); ok {
		return rule.Mult
	}
	return Identity()
}
