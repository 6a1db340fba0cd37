// Package match scores and ranks activities against a live filter.
//
// A FilterState and a Policy are the two mutable inputs. Score is a pure function of
// one activity, a Selection and a Modes snapshot. The Engine joins the store's live
// snapshots with both inputs and republishes a complete Ranking on every change.
package match

import (
	"fmt"
	"strings"

	"github.com/Veraticus/whattodo/internal/model"
)

// Mode is how a field's filter value is compared with an activity's value.
type Mode int

const (
	// Inclusive treats the filter value as a bound: the activity may be less demanding.
	Inclusive Mode = iota
	// Exclusive requires the activity's value to equal the filter value.
	Exclusive
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the two modes.
func (m Mode) Valid() bool {
	return m == Inclusive || m == Exclusive
}

// ParseMode parses "inclusive" or "exclusive" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inclusive":
		return Inclusive, nil
	case "exclusive":
		return Exclusive, nil
	default:
		return Inclusive, fmt.Errorf("unknown comparison mode %q (want inclusive or exclusive)", s)
	}
}

// Matches reports whether an activity's value satisfies a filter value for field f.
// An unset filter value always matches.
func Matches(f model.Field, mode Mode, record, filter model.Ordinal) bool {
	if !filter.IsSet() {
		return true
	}

	switch mode {
	case Exclusive:
		return record == filter
	case Inclusive:
		if f.Order() == model.DescendingDemand {
			return record >= filter
		}
		return record <= filter
	default:
		return false
	}
}
