package planner

import (
	"sort"
	"time"
)

// Rank orders results by total time, keeping input order on ties, with every unavailable
// result after every available one. A non-nil threshold drops available results whose total
// exceeds it. The best route is the first available result left.
func Rank(results []Result, now time.Time, threshold *time.Duration) Outcome {
	ranked := make([]Result, 0, len(results))
	for _, r := range results {
		if total, ok := r.Total(); ok && threshold != nil && total > *threshold {
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ti, oki := ranked[i].Total()
		tj, okj := ranked[j].Total()
		if oki != okj {
			return oki
		}
		return oki && ti < tj
	})

	bestPos := 0
	if len(ranked) > 0 && ranked[0].Available {
		bestPos = 1
	}
	return Outcome{
		Now:       now,
		Results:   ranked,
		Threshold: threshold,
		bestPos:   bestPos,
	}
}
