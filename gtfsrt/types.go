package gtfsrt

import "time"

// Feed is a decoded snapshot of one GTFS-RT trip-updates feed.
type Feed struct {
	// Timestamp is the feed header timestamp, zero if the producer did not set one.
	Timestamp   time.Time
	TripUpdates []TripUpdate
}

// TripUpdate is one vehicle journey with its predicted stop-time events, in feed order.
type TripUpdate struct {
	TripID    string
	RouteID   string
	StopTimes []StopTimeEvent
}

// StopTimeEvent is a predicted arrival and/or departure at a stop.
// A zero Arrival or Departure means that instant is not predicted.
type StopTimeEvent struct {
	StopID    string
	Arrival   time.Time
	Departure time.Time
}

// Predicted reports whether the event carries at least one instant.
func (e StopTimeEvent) Predicted() bool {
	return !e.Arrival.IsZero() || !e.Departure.IsZero()
}
