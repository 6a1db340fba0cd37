package match

import (
	"github.com/Veraticus/whattodo/internal/model"
)

// MaxScore is the score of an activity that satisfies every set filter value.
const MaxScore = model.FieldCount

// Result is one activity's score against a selection. It is derived, never stored.
type Result struct {
	Activity   model.Activity
	Mismatches []model.Field
	Score      int
}

// Mismatched reports whether f is in the mismatch set.
func (r Result) Mismatched(f model.Field) bool {
	for _, m := range r.Mismatches {
		if m == f {
			return true
		}
	}
	return false
}

// MismatchNames returns the names of the mismatched fields in field order.
func (r Result) MismatchNames() []string {
	names := make([]string, len(r.Mismatches))
	for i, f := range r.Mismatches {
		names[i] = f.Name()
	}
	return names
}

// Score evaluates a single activity. Each set field that fails its comparison costs
// one point and is recorded as a mismatch.
func Score(a model.Activity, sel Selection, modes Modes) Result {
	r := Result{Activity: a, Score: MaxScore}
	for _, f := range model.Fields() {
		want := sel[f]
		if !want.IsSet() {
			continue
		}
		if !Matches(f, modes[f], a.Ordinal(f), want) {
			r.Score--
			r.Mismatches = append(r.Mismatches, f)
		}
	}
	return r
}
