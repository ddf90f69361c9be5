package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
)

// Sink receives one outcome per cycle.
type Sink interface {
	Name() string
	Publish(ctx context.Context, o planner.Outcome) error
}

// Multi publishes to every sink in order. A failing sink does not stop the others; all
// failures are joined into the returned error.
type Multi struct {
	Sinks   []Sink
	OnError func(name string, err error)
}

func (m Multi) Name() string { return "multi" }

func (m Multi) Publish(ctx context.Context, o planner.Outcome) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.Publish(ctx, o); err != nil {
			if m.OnError != nil {
				m.OnError(s.Name(), err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Null discards every outcome.
type Null struct{}

func (Null) Name() string { return "null" }

func (Null) Publish(context.Context, planner.Outcome) error { return nil }

func unavailableText(r planner.Result) string {
	if r.Reason == planner.ReasonFeedError {
		return "no data (feed error)"
	}
	return string(planner.ReasonNoTrains)
}
