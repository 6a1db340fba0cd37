package match

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/whattodo/internal/model"
)

// ErrInvalidSelection is returned when a filter value is not in its field's enumeration.
var ErrInvalidSelection = errors.New("invalid filter selection")

// Selection holds one filter value per field, indexed by model.Field. model.Unset
// leaves a field unconstrained.
type Selection [model.FieldCount]model.Ordinal

// EmptySelection returns a selection with every field unset.
func EmptySelection() Selection {
	var s Selection
	for i := range s {
		s[i] = model.Unset
	}
	return s
}

// Get returns the value for f, or model.Unset.
func (s Selection) Get(f model.Field) model.Ordinal {
	if !f.Valid() {
		return model.Unset
	}
	return s[f]
}

// String renders the selection as "priceRange=CHEAP weather=ANY ...".
func (s Selection) String() string {
	parts := make([]string, 0, model.FieldCount)
	for _, f := range model.Fields() {
		parts = append(parts, f.Name()+"="+f.Label(s[f]))
	}
	return strings.Join(parts, " ")
}

// FilterState is the mutable filter for one filtering session. It computes nothing
// itself; every successful Set, Unset or Clear notifies listeners.
type FilterState struct {
	listeners listeners
	values    Selection
	mu        sync.RWMutex
}

// NewFilterState returns a filter with every field unset.
func NewFilterState() *FilterState {
	return &FilterState{values: EmptySelection()}
}

// Get returns the current value for f, or model.Unset.
func (fs *FilterState) Get(f model.Field) model.Ordinal {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.values.Get(f)
}

// Snapshot returns a copy of the current selection.
func (fs *FilterState) Snapshot() Selection {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.values
}

// Set selects o for f. Passing model.Unset clears the field.
func (fs *FilterState) Set(f model.Field, o model.Ordinal) error {
	if !f.Valid() {
		return fmt.Errorf("%w: unknown field %d", ErrInvalidSelection, int(f))
	}
	if o.IsSet() && !f.Contains(o) {
		return fmt.Errorf("%w: %s has no value %d", ErrInvalidSelection, f.Name(), int(o))
	}
	if !o.IsSet() {
		o = model.Unset
	}

	fs.mu.Lock()
	fs.values[f] = o
	fs.mu.Unlock()

	slog.Debug("filter changed", "field", f.Name(), "value", f.Label(o))
	fs.listeners.notify()
	return nil
}

// Unset removes the constraint on f.
func (fs *FilterState) Unset(f model.Field) error {
	return fs.Set(f, model.Unset)
}

// Apply replaces the whole selection at once and notifies a single time.
func (fs *FilterState) Apply(s Selection) error {
	for _, f := range model.Fields() {
		if o := s[f]; o.IsSet() && !f.Contains(o) {
			return fmt.Errorf("%w: %s has no value %d", ErrInvalidSelection, f.Name(), int(o))
		}
	}
	for i := range s {
		if !s[i].IsSet() {
			s[i] = model.Unset
		}
	}

	fs.mu.Lock()
	fs.values = s
	fs.mu.Unlock()

	fs.listeners.notify()
	return nil
}

// Clear unsets every field.
func (fs *FilterState) Clear() {
	_ = fs.Apply(EmptySelection())
}

// OnChange registers fn to run after every change. The returned func unregisters it.
func (fs *FilterState) OnChange(fn func()) (cancel func()) {
	return fs.listeners.add(fn)
}
