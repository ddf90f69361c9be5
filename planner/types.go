package planner

import "time"

// Route is one configured way to the office: a feed, an origin and destination stop and the
// walks on either side.
type Route struct {
	Name          string
	Label         string
	FeedID        string
	OriginStop    string
	DestStop      string
	WalkToStation time.Duration
	WalkToOffice  time.Duration
	Color         [3]uint8
}

// ExtractedTrip is a trip that serves the origin stop strictly before the destination stop.
type ExtractedTrip struct {
	TripID  string
	RouteID string
	Board   time.Time
	Arrive  time.Time
}

// Reason explains why a Result is unavailable.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNoTrains  Reason = "no trains"
	ReasonFeedError Reason = "feed error"
)

// Result is one evaluated option for a route. Unavailable results carry no times; their
// numeric accessors report ok=false so they can never be mistaken for a real value.
type Result struct {
	Route     string
	Label     string
	Color     [3]uint8
	Available bool
	Reason    Reason

	TripID        string
	Board         time.Time
	Arrive        time.Time
	OfficeArrival time.Time

	total   time.Duration
	leaveIn time.Duration
}

// Total returns the time from now until arrival at the office.
func (r Result) Total() (time.Duration, bool) {
	if !r.Available {
		return 0, false
	}
	return r.total, true
}

// LeaveIn returns the time from now until the rider has to start walking.
func (r Result) LeaveIn() (time.Duration, bool) {
	if !r.Available {
		return 0, false
	}
	return r.leaveIn, true
}

// TotalMinutes is Total truncated to whole minutes.
func (r Result) TotalMinutes() (int, bool) {
	d, ok := r.Total()
	return wholeMinutes(d), ok
}

// LeaveInMinutes is LeaveIn truncated to whole minutes.
func (r Result) LeaveInMinutes() (int, bool) {
	d, ok := r.LeaveIn()
	return wholeMinutes(d), ok
}

func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

// Outcome is the ranked result of one evaluation cycle.
type Outcome struct {
	Now       time.Time
	Results   []Result
	Threshold *time.Duration

	// bestPos is the 1-based position of the best result; 0 means none.
	bestPos int
}

// Best returns the best available result, if any.
func (o Outcome) Best() (Result, bool) {
	i := o.BestIndex()
	if i < 0 {
		return Result{}, false
	}
	return o.Results[i], true
}

// BestIndex returns the index of the best result in Results, or -1.
func (o Outcome) BestIndex() int {
	i := o.bestPos - 1
	if i < 0 || i >= len(o.Results) || !o.Results[i].Available {
		return -1
	}
	return i
}

// BestRoute returns the name of the best route, or "" when no route is available.
func (o Outcome) BestRoute() string {
	if r, ok := o.Best(); ok {
		return r.Route
	}
	return ""
}

// Top returns a copy of the outcome truncated to its first n results.
// The best result stays reachable only if it is within the first n.
func (o Outcome) Top(n int) Outcome {
	if n < 0 || n >= len(o.Results) {
		return o
	}
	out := o
	out.Results = o.Results[:n]
	if out.bestPos > n {
		out.bestPos = 0
	}
	return out
}
