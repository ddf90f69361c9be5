package poller

import (
	"context"
	"time"

	"github.com/bluele/gcache"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/sink"
)

// Fetcher returns the decoded feed for a feed id. gtfsrt.Source implements it.
type Fetcher interface {
	Fetch(ctx context.Context, feedID string) (*gtfsrt.Feed, error)
}

// Metrics receives per-cycle observations. metrics.Collector implements it.
type Metrics interface {
	CycleObserve(d time.Duration)
	FeedFetched(feedID string, d time.Duration, err error)
	OutcomeObserve(o planner.Outcome)
	SinkFailed(name string)
}

// Options configures a Loop.
type Options struct {
	Routes     []planner.Route
	Fetcher    Fetcher
	Sinks      []sink.Sink
	Interval   time.Duration
	Policy     planner.Policy
	Threshold  *time.Duration
	MaxFeedAge time.Duration
	Metrics    Metrics          // optional
	Now        func() time.Time // defaults to time.Now
}

// Loop runs evaluation cycles and owns the per-cycle feed cache.
type Loop struct {
	routes     []planner.Route
	fetcher    Fetcher
	out        sink.Multi
	interval   time.Duration
	policy     planner.Policy
	threshold  *time.Duration
	maxFeedAge time.Duration
	metrics    Metrics
	now        func() time.Time

	// feeds holds the fetch result per feed id for the current cycle only.
	feeds gcache.Cache
}

type fetched struct {
	feedID string
	feed   *gtfsrt.Feed
	err    error
}

// New creates a Loop from opts.
func New(opts Options) *Loop {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	size := len(opts.Routes)
	if size < 1 {
		size = 1
	}
	l := &Loop{
		routes:     opts.Routes,
		fetcher:    opts.Fetcher,
		interval:   opts.Interval,
		policy:     opts.Policy,
		threshold:  opts.Threshold,
		maxFeedAge: opts.MaxFeedAge,
		metrics:    opts.Metrics,
		now:        now,
		feeds:      gcache.New(size).Simple().Build(),
	}
	l.out = sink.Multi{Sinks: opts.Sinks, OnError: l.sinkFailed}
	return l
}

// Run executes cycles until ctx is cancelled, sleeping Interval between the end of one cycle
// and the start of the next.
func (l *Loop) Run(ctx context.Context) error {
	log.Info().
		Int("routes", len(l.routes)).
		Dur("interval", l.interval).
		Str("policy", l.policy.Mode.String()).
		Msg("poll loop started")

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("poll loop stopped")
			return nil
		case <-timer.C:
		}
		l.RunCycle(ctx)
		timer.Reset(l.interval)
	}
}

// RunCycle performs one fetch, evaluate, rank and publish pass and returns the outcome.
func (l *Loop) RunCycle(ctx context.Context) planner.Outcome {
	start := time.Now()
	now := l.now()

	l.feeds.Purge()
	l.fetchAll(ctx, now)

	var results []planner.Result
	for _, route := range l.routes {
		results = append(results, l.evaluate(route, now)...)
	}

	outcome := planner.Rank(results, now, l.threshold)

	// Sink failures are reported through OnError.
	_ = l.out.Publish(ctx, outcome)

	if l.metrics != nil {
		l.metrics.OutcomeObserve(outcome)
		l.metrics.CycleObserve(time.Since(start))
	}

	log.Info().
		Str("best", outcome.BestRoute()).
		Int("results", len(outcome.Results)).
		Dur("took", time.Since(start)).
		Msg("cycle complete")

	return outcome
}

func (l *Loop) fetchAll(ctx context.Context, now time.Time) {
	seen := make(map[string]bool, len(l.routes))
	p := pool.NewWithResults[fetched]()
	for _, route := range l.routes {
		if seen[route.FeedID] {
			continue
		}
		seen[route.FeedID] = true
		feedID := route.FeedID
		p.Go(func() fetched {
			started := time.Now()
			feed, err := l.fetcher.Fetch(ctx, feedID)
			if err == nil {
				err = gtfsrt.CheckFresh(feed, now, l.maxFeedAge)
			}
			if l.metrics != nil {
				l.metrics.FeedFetched(feedID, time.Since(started), err)
			}
			return fetched{feedID: feedID, feed: feed, err: err}
		})
	}
	for _, f := range p.Wait() {
		_ = l.feeds.Set(f.feedID, f)
	}
}

func (l *Loop) evaluate(route planner.Route, now time.Time) []planner.Result {
	v, err := l.feeds.Get(route.FeedID)
	if err != nil {
		log.Warn().Err(err).Str("route", route.Name).Str("feed", route.FeedID).Msg("feed missing from cycle cache")
		return []planner.Result{planner.Unavailable(route, planner.ReasonFeedError)}
	}
	f := v.(fetched)
	if f.err != nil {
		log.Warn().Err(f.err).Str("route", route.Name).Str("feed", route.FeedID).Msg("feed unavailable")
		return []planner.Result{planner.Unavailable(route, planner.ReasonFeedError)}
	}

	results := planner.EvaluateFeed(route, f.feed, now, l.policy)
	log.Debug().
		Str("route", route.Name).
		Str("feed", route.FeedID).
		Int("results", len(results)).
		Bool("available", results[0].Available).
		Msg("route evaluated")
	return results
}

func (l *Loop) sinkFailed(name string, err error) {
	log.Error().Err(err).Str("sink", name).Msg("sink publish failed")
	if l.metrics != nil {
		l.metrics.SinkFailed(name)
	}
}
