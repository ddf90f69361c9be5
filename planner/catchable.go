package planner

import "time"

// FilterCatchable keeps the trips that board at or after now+walkToStation, preserving order.
func FilterCatchable(trips []ExtractedTrip, walkToStation time.Duration, now time.Time) []ExtractedTrip {
	earliest := now.Add(walkToStation)
	out := make([]ExtractedTrip, 0, len(trips))
	for _, t := range trips {
		if !t.Board.Before(earliest) {
			out = append(out, t)
		}
	}
	return out
}
