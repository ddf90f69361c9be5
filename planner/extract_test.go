package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt/gtfsrttest"
)

func TestExtractTrips_PrefersDepartureAtOriginAndArrivalAtDestination(t *testing.T) {
	feed := gtfsrttest.Feed(gtfsrttest.Trip{TripID: "T1", RouteID: "F", Stops: []gtfsrttest.Stop{
		{StopID: "O", Arrival: 990, Departure: 1000},
		{StopID: "X", Arrival: 1200, Departure: 1210},
		{StopID: "D", Arrival: 1500, Departure: 1530},
	}})

	trips := ExtractTrips(feed, "O", "D")

	require.Len(t, trips, 1)
	assert.Equal(t, ExtractedTrip{TripID: "T1", RouteID: "F", Board: time.Unix(1000, 0), Arrive: time.Unix(1500, 0)}, trips[0])
}

func TestExtractTrips_FallsBackToOtherInstant(t *testing.T) {
	feed := gtfsrttest.Feed(gtfsrttest.Trip{TripID: "T1", Stops: []gtfsrttest.Stop{
		{StopID: "O", Arrival: 1000},
		{StopID: "D", Departure: 1500},
	}})

	trips := ExtractTrips(feed, "O", "D")

	require.Len(t, trips, 1)
	assert.Equal(t, time.Unix(1000, 0), trips[0].Board)
	assert.Equal(t, time.Unix(1500, 0), trips[0].Arrive)
}

func TestExtractTrips_DropsInvalidTrips(t *testing.T) {
	tests := []struct {
		name string
		trip gtfsrttest.Trip
	}{
		{
			name: "destination before origin",
			trip: gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 100}, {StopID: "D", Arrival: 50}}},
		},
		{
			name: "destination equals origin",
			trip: gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 100}, {StopID: "D", Arrival: 100}}},
		},
		{
			name: "missing destination",
			trip: gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 100}, {StopID: "X", Arrival: 200}}},
		},
		{
			name: "missing origin",
			trip: gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{{StopID: "D", Arrival: 200}}},
		},
		{
			name: "origin not predicted",
			trip: gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{{StopID: "O"}, {StopID: "D", Arrival: 200}}},
		},
		{
			name: "no stops",
			trip: gtfsrttest.Trip{TripID: "T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ExtractTrips(gtfsrttest.Feed(tt.trip), "O", "D"))
		})
	}
}

func TestExtractTrips_LastEventForRepeatedStopWins(t *testing.T) {
	feed := gtfsrttest.Feed(gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{
		{StopID: "O", Departure: 100},
		{StopID: "O", Departure: 300},
		{StopID: "D", Arrival: 200},
	}})

	// The second origin event moves boarding after arrival, so the trip is dropped.
	assert.Empty(t, ExtractTrips(feed, "O", "D"))
}

func TestExtractTrips_UnpredictedRepeatDoesNotClearEarlierEvent(t *testing.T) {
	feed := gtfsrttest.Feed(gtfsrttest.Trip{TripID: "T", Stops: []gtfsrttest.Stop{
		{StopID: "O", Departure: 100},
		{StopID: "O"},
		{StopID: "D", Arrival: 200},
	}})

	trips := ExtractTrips(feed, "O", "D")
	require.Len(t, trips, 1)
	assert.Equal(t, time.Unix(100, 0), trips[0].Board)
}

func TestExtractTrips_NilFeedAndManyTrips(t *testing.T) {
	assert.Empty(t, ExtractTrips(nil, "O", "D"))

	feed := gtfsrttest.Feed(
		gtfsrttest.Trip{TripID: "A", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 100}, {StopID: "D", Arrival: 200}}},
		gtfsrttest.Trip{TripID: "B", Stops: []gtfsrttest.Stop{{StopID: "D", Arrival: 50}}},
		gtfsrttest.Trip{TripID: "C", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 300}, {StopID: "D", Arrival: 400}}},
	)
	trips := ExtractTrips(feed, "O", "D")
	require.Len(t, trips, 2)
	assert.Equal(t, "A", trips[0].TripID)
	assert.Equal(t, "C", trips[1].TripID)
	for _, tr := range trips {
		assert.True(t, tr.Board.Before(tr.Arrive))
	}
}
