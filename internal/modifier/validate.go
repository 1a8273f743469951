package modifier

import "fmt"

func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("modifier id is required")
	}
	if d.TimeCost < 0 {
		return fmt.Errorf("modifier %q: time cost must be >= 0", d.ID)
	}
	if d.MassCost < 0 {
		return fmt.Errorf("modifier %q: mass cost must be >= 0", d.ID)
	}
	for _, id := range d.LockedBy {
		if id == d.ID {
			return fmt.Errorf("modifier %q cannot be locked by itself", d.ID)
		}
	}
	for name, e := range d.Effects {
		if name == "" {
			return fmt.Errorf("modifier %q: effect name is required", d.ID)
		}
		if e.Condition.Kind == HasModifier && e.Condition.Modifier == "" {
			return fmt.Errorf("modifier %q effect %q: has modifier needs an id", d.ID, name)
		}
	}
	return nil
}
