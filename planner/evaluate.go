package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
)

// Mode selects which catchable trips of a route are reported.
type Mode int

const (
	// SelectBest reports the single catchable trip arriving earliest.
	SelectBest Mode = iota
	// SelectUpcoming reports catchable trips in boarding order, up to Policy.Limit.
	SelectUpcoming
)

// Policy controls how many results a route contributes.
type Policy struct {
	Mode Mode
	// Limit caps SelectUpcoming; zero or negative means no cap.
	Limit int
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "best":
		return SelectBest, nil
	case "", "upcoming":
		return SelectUpcoming, nil
	}
	return SelectBest, fmt.Errorf("unknown selection policy %q", s)
}

func (m Mode) String() string {
	if m == SelectBest {
		return "best"
	}
	return "upcoming"
}

// EvaluateRoute maps the catchable trips of route to Results according to policy.
// With no catchable trip it returns exactly one unavailable Result.
func EvaluateRoute(route Route, catchable []ExtractedTrip, now time.Time, policy Policy) []Result {
	if len(catchable) == 0 {
		return []Result{Unavailable(route, ReasonNoTrains)}
	}

	var selected []ExtractedTrip
	switch policy.Mode {
	case SelectBest:
		best := catchable[0]
		for _, t := range catchable[1:] {
			if t.Arrive.Before(best.Arrive) {
				best = t
			}
		}
		selected = []ExtractedTrip{best}
	default:
		selected = make([]ExtractedTrip, len(catchable))
		copy(selected, catchable)
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Board.Before(selected[j].Board)
		})
		if policy.Limit > 0 && len(selected) > policy.Limit {
			selected = selected[:policy.Limit]
		}
	}

	results := make([]Result, 0, len(selected))
	for _, t := range selected {
		office := t.Arrive.Add(route.WalkToOffice)
		results = append(results, Result{
			Route:         route.Name,
			Label:         route.Label,
			Color:         route.Color,
			Available:     true,
			TripID:        t.TripID,
			Board:         t.Board,
			Arrive:        t.Arrive,
			OfficeArrival: office,
			total:         office.Sub(now),
			leaveIn:       t.Board.Add(-route.WalkToStation).Sub(now),
		})
	}
	return results
}

// Unavailable builds the sentinel Result for a route with nothing to report.
func Unavailable(route Route, reason Reason) Result {
	return Result{
		Route:  route.Name,
		Label:  route.Label,
		Color:  route.Color,
		Reason: reason,
	}
}

// EvaluateFeed runs extraction, the catchability filter and evaluation for one route.
func EvaluateFeed(route Route, feed *gtfsrt.Feed, now time.Time, policy Policy) []Result {
	trips := ExtractTrips(feed, route.OriginStop, route.DestStop)
	catchable := FilterCatchable(trips, route.WalkToStation, now)
	return EvaluateRoute(route, catchable, now, policy)
}
