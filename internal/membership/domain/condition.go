package domain

// BoundKey is the closed set of condition keys. Keeping the set closed
// means evaluation is exhaustive; an unknown key is a caller error, not
// something to silently ignore.
type BoundKey string

const (
	BoundMinChild  BoundKey = "minChild"
	BoundMaxChild  BoundKey = "maxChild"
	BoundMinAdult  BoundKey = "minAdult"
	BoundMaxAdult  BoundKey = "maxAdult"
	BoundMinSenior BoundKey = "minSenior"
	BoundMaxSenior BoundKey = "maxSenior"
)

// Condition is a sparse set of integer bounds per member class. An absent
// bound imposes no constraint on that side; clearing a bound removes it
// rather than setting it to zero, since an empty "max" means unlimited.
type Condition struct {
	MinChild  *int `json:"minChild,omitempty"`
	MaxChild  *int `json:"maxChild,omitempty"`
	MinAdult  *int `json:"minAdult,omitempty"`
	MaxAdult  *int `json:"maxAdult,omitempty"`
	MinSenior *int `json:"minSenior,omitempty"`
	MaxSenior *int `json:"maxSenior,omitempty"`
}

// SetBound replaces one bound; a nil value clears it.
func (c *Condition) SetBound(key BoundKey, value *int) error {
	switch key {
	case BoundMinChild:
		c.MinChild = value
	case BoundMaxChild:
		c.MaxChild = value
	case BoundMinAdult:
		c.MinAdult = value
	case BoundMaxAdult:
		c.MaxAdult = value
	case BoundMinSenior:
		c.MinSenior = value
	case BoundMaxSenior:
		c.MaxSenior = value
	default:
		return ErrInvalidBound
	}
	return nil
}

// Matches reports whether every bound present in the condition is
// satisfied by the household counts.
func (c Condition) Matches(hh Household) bool {
	checks := []struct {
		min, max *int
		count    int
	}{
		{c.MinChild, c.MaxChild, hh.ChildCount},
		{c.MinAdult, c.MaxAdult, hh.AdultCount},
		{c.MinSenior, c.MaxSenior, hh.SeniorCount},
	}
	for _, chk := range checks {
		if chk.min != nil && chk.count < *chk.min {
			return false
		}
		if chk.max != nil && chk.count > *chk.max {
			return false
		}
	}
	return true
}
