// Package catalog loads the static game content: world parameters, the
// scheduled event list and the researchable modifiers.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cbosoft/greygoo/internal/modifier"
)

// ErrContent marks malformed catalog content. It is never recoverable.
var ErrContent = errors.New("catalog content error")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from the file extension; JSON is the default.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type Event struct {
	After int64 // seconds after trial start
	Label string
}

// Catalog is immutable once built and safe to share.
type Catalog struct {
	WorldMass   float64
	Tau         float64
	FailureMass float64

	events   []Event
	defs     map[string]modifier.Definition
	ids      []string
	warnings []string
}

func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(b, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte, format Format) (*Catalog, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContent, err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContent, err)
		}
	}
	return New(f)
}

// New validates f and parses every time cost and condition up front.
func New(f File) (*Catalog, error) {
	if f.WorldMass <= 0 {
		return nil, fmt.Errorf("%w: world_mass must be > 0", ErrContent)
	}
	if f.Tau <= 0 {
		return nil, fmt.Errorf("%w: tau must be > 0", ErrContent)
	}
	if f.FailureMass < 0 || f.FailureMass >= f.WorldMass {
		return nil, fmt.Errorf("%w: failure_mass must be in [0, world_mass)", ErrContent)
	}

	c := &Catalog{
		WorldMass:   f.WorldMass,
		Tau:         f.Tau,
		FailureMass: f.FailureMass,
		defs:        make(map[string]modifier.Definition, len(f.Modifiers)),
	}

	for i, ef := range f.Events {
		after, err := modifier.ParseTimeCost(ef.After)
		if err != nil {
			return nil, fmt.Errorf("%w: event %d: %w", ErrContent, i, err)
		}
		if after <= 0 {
			return nil, fmt.Errorf("%w: event %d: offset must be > 0", ErrContent, i)
		}
		if strings.TrimSpace(ef.Label) == "" {
			return nil, fmt.Errorf("%w: event %d: label is required", ErrContent, i)
		}
		c.events = append(c.events, Event{After: after, Label: ef.Label})
	}
	sort.SliceStable(c.events, func(i, j int) bool { return c.events[i].After < c.events[j].After })
	for i := 1; i < len(c.events); i++ {
		if prev, ev := c.events[i-1], c.events[i]; prev.After == ev.After {
			return nil, fmt.Errorf("%w: events %q and %q are both %ds after trial start",
				ErrContent, prev.Label, ev.Label, ev.After)
		}
	}

	for id, mf := range f.Modifiers {
		d, err := buildDefinition(id, mf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContent, err)
		}
		c.defs[id] = d
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)

	for _, id := range c.ids {
		d := c.defs[id]
		for _, pre := range d.LockedBy {
			if _, ok := c.defs[pre]; !ok {
				c.warnings = append(c.warnings, fmt.Sprintf("modifier %q is locked by unknown modifier %q", id, pre))
			}
		}
		names := make([]string, 0, len(d.Effects))
		for name := range d.Effects {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if cond := d.Effects[name].Condition; cond.Kind == modifier.Never {
				c.warnings = append(c.warnings, fmt.Sprintf("modifier %q effect %q: unrecognised condition %q never triggers", id, name, cond.Text))
			}
		}
	}

	return c, nil
}

func buildDefinition(id string, mf ModifierFile) (modifier.Definition, error) {
	cost, err := modifier.ParseTimeCost(mf.TimeCost)
	if err != nil {
		return modifier.Definition{}, fmt.Errorf("modifier %q: %w", id, err)
	}

	d := modifier.Definition{
		ID:          id,
		Description: mf.Description,
		LockedBy:    append([]string(nil), mf.LockedBy...),
		TimeCost:    cost,
		MassCost:    mf.MassCost,
		Effects:     make(map[string]modifier.EffectRule, len(mf.Effects)),
	}
	for name, ef := range mf.Effects {
		cond, err := modifier.ParseCondition(ef.Condition)
		if err != nil {
			return modifier.Definition{}, fmt.Errorf("modifier %q effect %q: %w", id, name, err)
		}
		d.Effects[name] = modifier.EffectRule{
			Name: name,
			Mult: modifier.Multipliers{
				InitialMass:     ef.InitialMassMult,
				GrowthRate:      ef.GrowthRateMult,
				DeathRate:       ef.DeathRateMult,
				UneaseGain:      ef.UneaseGainMult,
				InspirationGain: ef.InspirationGainMult,
			},
			Condition: cond,
		}
	}
	if err := d.Validate(); err != nil {
		return modifier.Definition{}, err
	}
	return d, nil
}

func (c *Catalog) Get(id string) (modifier.Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// IDs returns every modifier id in sorted order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Events returns the scheduled events ordered by offset.
func (c *Catalog) Events() []Event {
	return append([]Event(nil), c.events...)
}

// Warnings lists content problems that do not stop the catalog from loading.
func (c *Catalog) Warnings() []string {
	return append([]string(nil), c.warnings...)
}
