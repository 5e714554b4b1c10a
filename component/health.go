package component

import "fmt"

// DamageOutcome reports whether an actor survived a hit.
type DamageOutcome int

const (
	Alive DamageOutcome = iota
	Lethal
)

func (o DamageOutcome) String() string {
	if o == Lethal {
		return "lethal"
	}
	return "alive"
}

// Health is the hit-point ledger shared by every actor.
type Health struct {
	Max     int
	Current int

	// Strict rejects non-positive damage with ErrInvalidArgument instead of
	// ignoring it.
	Strict bool

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) (*Health, error) {
	h := &Health{}
	if err := h.Reset(max); err != nil {
		return nil, err
	}
	return h, nil
}

// Reset sets max and current to max. Used only at spawn.
func (h *Health) Reset(max int) error {
	if h == nil {
		return fmt.Errorf("health: reset nil ledger: %w", ErrConfiguration)
	}
	if max <= 0 {
		return fmt.Errorf("health: max must be positive, got %d: %w", max, ErrConfiguration)
	}
	h.Max = max
	h.Current = max
	return nil
}

// IsAlive reports whether the ledger still has hit points.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// ApplyDamage decrements Current by amount, never below zero, and reports
// Lethal iff the result is zero. Damage against an empty ledger changes
// nothing and fires no callbacks. OnDeath fires exactly once, on the hit that
// empties the ledger.
func (h *Health) ApplyDamage(amount int) (DamageOutcome, error) {
	if h == nil {
		return Lethal, nil
	}
	if amount <= 0 {
		if h.Strict {
			return h.outcome(), fmt.Errorf("health: damage must be positive, got %d: %w", amount, ErrInvalidArgument)
		}
		return h.outcome(), nil
	}
	if h.Current <= 0 {
		return Lethal, nil
	}

	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current == 0 && h.OnDeath != nil {
		h.OnDeath(h)
	}
	return h.outcome(), nil
}

func (h *Health) outcome() DamageOutcome {
	if h.Current <= 0 {
		return Lethal
	}
	return Alive
}

// CurrentHP returns the current health value.
func (h *Health) CurrentHP() int {
	if h == nil {
		return 0
	}
	return h.Current
}

// MaxHP returns the maximum health value.
func (h *Health) MaxHP() int {
	if h == nil {
		return 0
	}
	return h.Max
}

// Fraction returns Current/Max in [0,1], for health bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
