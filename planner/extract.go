package planner

import (
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
)

// ExtractTrips returns one ExtractedTrip per trip update that has a predicted event at both
// origin and dest and boards strictly before it arrives. Trips missing either stop or with
// out-of-order times are dropped without error. When a stop repeats within a trip, the last
// event scanned wins.
func ExtractTrips(feed *gtfsrt.Feed, origin, dest string) []ExtractedTrip {
	if feed == nil {
		return nil
	}
	var trips []ExtractedTrip
	for _, tu := range feed.TripUpdates {
		var board, arrive time.Time
		for _, ev := range tu.StopTimes {
			if !ev.Predicted() {
				continue
			}
			switch ev.StopID {
			case origin:
				board = firstSet(ev.Departure, ev.Arrival)
			case dest:
				arrive = firstSet(ev.Arrival, ev.Departure)
			}
		}
		if board.IsZero() || arrive.IsZero() || !board.Before(arrive) {
			continue
		}
		trips = append(trips, ExtractedTrip{
			TripID:  tu.TripID,
			RouteID: tu.RouteID,
			Board:   board,
			Arrive:  arrive,
		})
	}
	return trips
}

func firstSet(preferred, fallback time.Time) time.Time {
	if !preferred.IsZero() {
		return preferred
	}
	return fallback
}
