package modifier

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	Unconditional Kind = iota
	HasModifier
	TrialMassCompare
	UneaseCompare
	// Never is used for condition text this version does not understand.
	Never
)

func (k Kind) String() string {
	switch k {
	case Unconditional:
		return "unconditional"
	case HasModifier:
		return "has_modifier"
	case TrialMassCompare:
		return "trial_mass"
	case UneaseCompare:
		return "unease"
	default:
		return "never"
	}
}

type Op string

const (
	Less    Op = "less"
	Greater Op = "greater"
)

func (o Op) compare(v, threshold float64) bool {
	if o == Greater {
		return v > threshold
	}
	return v < threshold
}

// Condition is parsed once at catalog load and evaluated many times.
type Condition struct {
	Kind      Kind
	Modifier  string
	Op        Op
	Threshold float64
	Text      string
}

var (
	reHasModifier = regexp.MustCompile(`^has modifier (.+)$`)
	reTrialMass   = regexp.MustCompile(`^trial bot mass (less|greater) than (\S+)$`)
	reUnease      = regexp.MustCompile(`^population unease (less|greater) than (\S+)$`)
)

// ParseCondition turns condition text into a Condition. An empty string is
// unconditional and unrecognised text yields a Never condition. The only
// error is a comparison whose operand is not a number.
func ParseCondition(text string) (Condition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Condition{Kind: Unconditional}, nil
	}

	if m := reHasModifier.FindStringSubmatch(text); m != nil {
		return Condition{Kind: HasModifier, Modifier: m[1], Text: text}, nil
	}

	kind := Never
	var m []string
	if m = reTrialMass.FindStringSubmatch(text); m != nil {
		kind = TrialMassCompare
	} else if m = reUnease.FindStringSubmatch(text); m != nil {
		kind = UneaseCompare
	}
	if kind == Never {
		return Condition{Kind: Never, Text: text}, nil
	}

	threshold, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: bad operand %q: %w", text, m[2], err)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return Condition{}, fmt.Errorf("condition %q: operand %q is not a finite number", text, m[2])
	}
	return Condition{Kind: kind, Op: Op(m[1]), Threshold: threshold, Text: text}, nil
}

// Holds evaluates the condition against the current world view.
func (c Condition) Holds(v View) bool {
	switch c.Kind {
	case Unconditional:
		return true
	case HasModifier:
		return v.HasModifier(c.Modifier)
	case TrialMassCompare:
		mass, ok := v.TrialMass()
		if !ok {
			return false
		}
		return c.Op.compare(mass, c.Threshold)
	case UneaseCompare:
		return c.Op.compare(v.PopulationUnease(), c.Threshold)
	default:
		return false
	}
}
