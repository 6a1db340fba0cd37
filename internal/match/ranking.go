package match

import (
	"sort"

	"github.com/Veraticus/whattodo/internal/model"
)

// Ranking is a complete, published result set. Generation increases with every
// recomputation of the engine that produced it; zero means nothing was computed yet.
type Ranking struct {
	Results    []Result
	Selection  Selection
	Modes      Modes
	Generation int64
}

// Len returns the number of ranked activities.
func (r Ranking) Len() int {
	return len(r.Results)
}

// Top returns the best result, or false when the ranking is empty.
func (r Ranking) Top() (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	return r.Results[0], true
}

// FullMatches returns the results that satisfy every set filter value.
func (r Ranking) FullMatches() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Score == MaxScore {
			out = append(out, res)
		}
	}
	return out
}

// Rank scores every activity and orders them by descending score. Activities with
// equal scores keep their order in the input.
func Rank(activities []model.Activity, sel Selection, modes Modes) []Result {
	results := make([]Result, len(activities))
	for i, a := range activities {
		results[i] = Score(a, sel, modes)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
