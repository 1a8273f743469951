package catalog

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a catalog, shared by the JSON and YAML formats.
type File struct {
	WorldMass   float64                 `json:"world_mass" yaml:"world_mass" jsonschema:"description=Mass in grams a trial must reach to succeed"`
	Tau         float64                 `json:"tau" yaml:"tau" jsonschema:"description=Seconds over which growth and death rates compound once"`
	FailureMass float64                 `json:"failure_mass,omitempty" yaml:"failure_mass,omitempty" jsonschema:"description=A trial fails once its bot mass is at or below this"`
	Events      []EventFile             `json:"events,omitempty" yaml:"events,omitempty"`
	Modifiers   map[string]ModifierFile `json:"modifiers" yaml:"modifiers"`
}

// EventFile schedules a labelled event some time after a trial starts.
type EventFile struct {
	After string `json:"after" yaml:"after" jsonschema:"description=Offset from trial start such as 2h or 3d"`
	Label string `json:"label" yaml:"label"`
}

type ModifierFile struct {
	Description string                `json:"description" yaml:"description"`
	Effects     map[string]EffectFile `json:"effects,omitempty" yaml:"effects,omitempty"`
	TimeCost    string                `json:"time_cost" yaml:"time_cost" jsonschema:"pattern=^(\\d+[wdhms])+$"`
	MassCost    float64               `json:"mass_cost,omitempty" yaml:"mass_cost,omitempty"`
	LockedBy    []string              `json:"locked_by,omitempty" yaml:"locked_by,omitempty"`
}

// EffectFile multipliers default to 1 when omitted.
type EffectFile struct {
	InitialMassMult     float64 `json:"initial_mass_mult" yaml:"initial_mass_mult"`
	GrowthRateMult      float64 `json:"growth_rate_mult" yaml:"growth_rate_mult"`
	DeathRateMult       float64 `json:"death_rate_mult" yaml:"death_rate_mult"`
	UneaseGainMult      float64 `json:"unease_gain_mult" yaml:"unease_gain_mult"`
	InspirationGainMult float64 `json:"inspiration_gain_mult" yaml:"inspiration_gain_mult"`
	Condition           string  `json:"condition,omitempty" yaml:"condition,omitempty"`
}

type effectAlias EffectFile

func defaultEffect() effectAlias {
	return effectAlias{
		InitialMassMult:     1,
		GrowthRateMult:      1,
		DeathRateMult:       1,
		UneaseGainMult:      1,
		InspirationGainMult: 1,
	}
}

func (e *EffectFile) UnmarshalJSON(b []byte) error {
	raw := defaultEffect()
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = EffectFile(raw)
	return nil
}

func (e *EffectFile) UnmarshalYAML(node *yaml.Node) error {
	raw := defaultEffect()
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*e = EffectFile(raw)
	return nil
}
