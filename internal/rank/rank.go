package rank

import (
	"sort"

	"github.com/avelichko/jobsift/internal/model"
)

// Apply orders a batch for shipping and applies the ship gate. Rows are
// stably sorted by fit score descending, then employer and title ascending;
// rows scoring under minScore are dropped and the result is capped at
// maxRows. The input slice is left untouched.
func Apply(rows []model.Posting, minScore, maxRows int) []model.Posting {
	ordered := make([]model.Posting, len(rows))
	copy(ordered, rows)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.FitScore != b.FitScore {
			return a.FitScore > b.FitScore
		}
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.Title < b.Title
	})

	kept := ordered[:0]
	for _, r := range ordered {
		if r.FitScore >= minScore {
			kept = append(kept, r)
		}
	}
	if len(kept) > maxRows {
		kept = kept[:maxRows]
	}
	return kept
}
