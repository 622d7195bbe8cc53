package scoring

import (
	"sort"

	"github.com/dbv-club/championship-system/models"
)

// UnitTotal computes the total of a single unit from its raw events.
// Pure: same inputs always yield the same total, regardless of slice
// order. Totals never go below zero.
func UnitTotal(evaluations []models.Evaluation, demerits []models.Demerit, progress *models.ClassProgress) int {
	total := 0
	for _, e := range evaluations {
		total += e.Points
	}
	for _, d := range demerits {
		total += d.Points
	}
	total += ClassProgressPoints(progress)
	if total < 0 {
		total = 0
	}
	return total
}

// RankedUnit pairs a unit with its computed total, after ranking.
type RankedUnit struct {
	UnitID   int
	Total    int
	Position int
}

// Rank orders per-unit totals by total descending, ties broken by
// ascending unit id, and assigns dense 1-based positions. Every entry
// of totals appears in the output exactly once.
func Rank(totals map[int]int) []RankedUnit {
	ranked := make([]RankedUnit, 0, len(totals))
	for unitID, total := range totals {
		ranked = append(ranked, RankedUnit{UnitID: unitID, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].UnitID < ranked[j].UnitID
	})
	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
