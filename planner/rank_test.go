package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt/gtfsrttest"
)

func available(route string, total time.Duration) Result {
	return Result{Route: route, Available: true, total: total}
}

func routeNames(o Outcome) []string {
	names := make([]string, 0, len(o.Results))
	for _, r := range o.Results {
		names = append(names, r.Route)
	}
	return names
}

func TestRank_SortsAscendingWithUnavailableLast(t *testing.T) {
	results := []Result{
		Unavailable(Route{Name: "G"}, ReasonNoTrains),
		available("F", 20*time.Minute),
		Unavailable(Route{Name: "L"}, ReasonFeedError),
		available("A", 12*time.Minute),
		available("C", 99*time.Minute),
	}

	o := Rank(results, time.Unix(0, 0), nil)

	assert.Equal(t, []string{"A", "F", "C", "G", "L"}, routeNames(o))
	best, ok := o.Best()
	require.True(t, ok)
	assert.Equal(t, "A", best.Route)
	assert.Equal(t, "A", o.BestRoute())
}

func TestRank_TieKeepsConfiguredOrder(t *testing.T) {
	results := []Result{
		available("first", 15*time.Minute),
		available("second", 15*time.Minute),
	}

	o := Rank(results, time.Unix(0, 0), nil)

	assert.Equal(t, []string{"first", "second"}, routeNames(o))
	assert.Equal(t, "first", o.BestRoute())
}

func TestRank_Threshold(t *testing.T) {
	threshold := 30 * time.Minute
	results := []Result{
		available("slow", 45*time.Minute),
		available("edge", 30*time.Minute),
		Unavailable(Route{Name: "none"}, ReasonNoTrains),
	}

	o := Rank(results, time.Unix(0, 0), &threshold)

	assert.Equal(t, []string{"edge", "none"}, routeNames(o))
	assert.Equal(t, "edge", o.BestRoute())
	require.NotNil(t, o.Threshold)
	assert.Equal(t, threshold, *o.Threshold)
}

func TestRank_NoBestWhenEverythingUnavailableOrFiltered(t *testing.T) {
	threshold := 10 * time.Minute

	tests := []struct {
		name      string
		results   []Result
		threshold *time.Duration
	}{
		{name: "empty", results: nil},
		{name: "all unavailable", results: []Result{Unavailable(Route{Name: "A"}, ReasonNoTrains), Unavailable(Route{Name: "B"}, ReasonNoTrains)}},
		{name: "all over threshold", results: []Result{available("A", 11*time.Minute)}, threshold: &threshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Rank(tt.results, time.Unix(0, 0), tt.threshold)
			_, ok := o.Best()
			assert.False(t, ok)
			assert.Empty(t, o.BestRoute())
		})
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	results := []Result{available("B", 2*time.Minute), available("A", time.Minute)}
	Rank(results, time.Unix(0, 0), nil)
	assert.Equal(t, "B", results[0].Route)
}

func TestOutcome_Top(t *testing.T) {
	o := Rank([]Result{available("A", time.Minute), available("B", 2*time.Minute), available("C", 3*time.Minute)}, time.Unix(0, 0), nil)

	top := o.Top(2)
	assert.Equal(t, []string{"A", "B"}, routeNames(top))
	assert.Equal(t, "A", top.BestRoute())
	assert.Len(t, o.Results, 3)

	assert.Equal(t, 0, top.BestIndex())
	assert.Empty(t, o.Top(0).BestRoute())
	assert.Equal(t, -1, o.Top(0).BestIndex())
	assert.Len(t, o.Top(10).Results, 3)
}

func TestPipeline_RouteWithoutDestinationNeverWins(t *testing.T) {
	routeB := Route{Name: "B", OriginStop: "O", DestStop: "NOWHERE", WalkToStation: time.Minute}
	feed := gtfsrttest.Feed(gtfsrttest.Trip{TripID: "T1", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 800}, {StopID: "D", Arrival: 1500}}})
	now := time.Unix(900, 0)

	var results []Result
	results = append(results, EvaluateFeed(routeA, feed, now, Policy{Mode: SelectBest})...)
	results = append(results, EvaluateFeed(routeB, feed, now, Policy{Mode: SelectBest})...)

	o := Rank(results, now, nil)

	require.Len(t, o.Results, 2)
	assert.False(t, o.Results[0].Available)
	assert.False(t, o.Results[1].Available)
	assert.Empty(t, o.BestRoute())
}

func TestPipeline_EqualTotalsFirstConfiguredRouteWins(t *testing.T) {
	first := Route{Name: "first", OriginStop: "O1", DestStop: "D1"}
	second := Route{Name: "second", OriginStop: "O2", DestStop: "D2"}
	feed := gtfsrttest.Feed(
		gtfsrttest.Trip{TripID: "S", Stops: []gtfsrttest.Stop{{StopID: "O2", Departure: 1000}, {StopID: "D2", Arrival: 1800}}},
		gtfsrttest.Trip{TripID: "F", Stops: []gtfsrttest.Stop{{StopID: "O1", Departure: 1100}, {StopID: "D1", Arrival: 1800}}},
	)
	now := time.Unix(900, 0)

	var results []Result
	for _, r := range []Route{first, second} {
		results = append(results, EvaluateFeed(r, feed, now, Policy{Mode: SelectBest})...)
	}
	o := Rank(results, now, nil)

	total, ok := o.Results[0].Total()
	require.True(t, ok)
	assert.Equal(t, 15*time.Minute, total)
	assert.Equal(t, "first", o.BestRoute())
}

func TestPipeline_Idempotent(t *testing.T) {
	feed := gtfsrttest.Feed(
		gtfsrttest.Trip{TripID: "T1", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 1000}, {StopID: "D", Arrival: 1500}}},
		gtfsrttest.Trip{TripID: "T2", Stops: []gtfsrttest.Stop{{StopID: "O", Departure: 1200}, {StopID: "D", Arrival: 1400}}},
	)
	now := time.Unix(900, 0)
	run := func() Outcome {
		return Rank(EvaluateFeed(routeA, feed, now, Policy{Mode: SelectUpcoming}), now, nil)
	}

	assert.Equal(t, run(), run())
}

func TestOutcome_ZeroValueHasNoBest(t *testing.T) {
	o := Outcome{Results: []Result{Unavailable(Route{Name: "B"}, ReasonNoTrains)}}

	_, ok := o.Best()
	assert.False(t, ok)
	assert.Equal(t, -1, o.BestIndex())
	assert.Empty(t, o.BestRoute())

	o = Outcome{Results: []Result{available("A", time.Minute)}}
	_, ok = o.Best()
	assert.False(t, ok, "only Rank selects a best result")
}

func TestOutcome_ReassignedResultsNeverYieldUnavailableBest(t *testing.T) {
	o := Rank([]Result{available("A", time.Minute)}, time.Unix(0, 0), nil)
	require.Equal(t, "A", o.BestRoute())

	o.Results = []Result{Unavailable(Route{Name: "B"}, ReasonFeedError)}

	assert.Equal(t, -1, o.BestIndex())
	assert.Empty(t, o.BestRoute())
}
