package match

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/whattodo/internal/model"
)

// Modes holds one comparison mode per field, indexed by model.Field.
type Modes [model.FieldCount]Mode

// Mode returns the mode for f.
func (m Modes) Mode(f model.Field) Mode {
	if !f.Valid() {
		return Exclusive
	}
	return m[f]
}

// AllExclusive returns modes with every field set to Exclusive.
func AllExclusive() Modes {
	var out Modes
	for i := range out {
		out[i] = Exclusive
	}
	return out
}

// DefaultModes returns the modes every policy starts from: price and weather are
// thresholds, time and group size must match exactly.
func DefaultModes() Modes {
	var m Modes
	m[model.FieldPrice] = Inclusive
	m[model.FieldWeather] = Inclusive
	m[model.FieldTime] = Exclusive
	m[model.FieldPeople] = Exclusive
	return m
}

// Policy is the shared, mutable comparison configuration. Every field always has a
// mode; changes are announced to listeners registered with OnChange.
type Policy struct {
	listeners listeners
	modes     Modes
	mu        sync.RWMutex
}

// NewPolicy returns a policy with DefaultModes and the given overrides applied.
func NewPolicy(overrides map[model.Field]Mode) (*Policy, error) {
	modes := DefaultModes()
	for f, m := range overrides {
		if !f.Valid() {
			return nil, fmt.Errorf("policy override for unknown field %d", int(f))
		}
		if !m.Valid() {
			return nil, fmt.Errorf("policy override for %s: invalid mode %d", f, int(m))
		}
		modes[f] = m
	}
	return &Policy{modes: modes}, nil
}

// Mode returns the current mode for f.
func (p *Policy) Mode(f model.Field) Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modes.Mode(f)
}

// Snapshot returns a copy of every field's mode.
func (p *Policy) Snapshot() Modes {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modes
}

// Set changes the mode for f. Listeners are notified only when the mode changes.
func (p *Policy) Set(f model.Field, m Mode) error {
	if !f.Valid() {
		return fmt.Errorf("unknown field %d", int(f))
	}
	if !m.Valid() {
		return fmt.Errorf("invalid mode %d for %s", int(m), f)
	}

	p.mu.Lock()
	changed := p.modes[f] != m
	p.modes[f] = m
	p.mu.Unlock()

	if changed {
		slog.Debug("comparison mode changed", "field", f.Name(), "mode", m.String())
		p.listeners.notify()
	}
	return nil
}

// Apply replaces every field's mode at once and notifies a single time.
func (p *Policy) Apply(m Modes) error {
	for _, f := range model.Fields() {
		if !m[f].Valid() {
			return fmt.Errorf("invalid mode %d for %s", int(m[f]), f)
		}
	}

	p.mu.Lock()
	changed := p.modes != m
	p.modes = m
	p.mu.Unlock()

	if changed {
		p.listeners.notify()
	}
	return nil
}

// Toggle flips the mode for f and returns the new mode.
func (p *Policy) Toggle(f model.Field) (Mode, error) {
	next := Inclusive
	if p.Mode(f) == Inclusive {
		next = Exclusive
	}
	return next, p.Set(f, next)
}

// OnChange registers fn to run after every mode change. The returned func unregisters it.
func (p *Policy) OnChange(fn func()) (cancel func()) {
	return p.listeners.add(fn)
}
