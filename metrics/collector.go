package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
)

type Collector struct {
	reg    *prometheus.Registry
	health *health

	Cycles        prometheus.Counter
	CycleDuration prometheus.Histogram

	FeedFetches   *prometheus.CounterVec // labels: feed, result=ok|error
	FetchDuration prometheus.Histogram

	RoutesAvailable   prometheus.Gauge
	RoutesUnavailable prometheus.Gauge
	BestAvailable     prometheus.Gauge
	BestTotalMinutes  prometheus.Gauge

	SinkErrors *prometheus.CounterVec // label: sink

	PollInterval prometheus.Gauge // seconds
}

func NewCollector(pollInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg:    reg,
		health: newHealth(),
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_cycles_total",
			Help: "Total evaluation cycles run.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "commute_cycle_duration_seconds",
			Help:    "Duration of one fetch, evaluate and publish cycle.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commute_feed_fetches_total",
			Help: "Feed fetches by feed id and result.",
		}, []string{"feed", "result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "commute_feed_fetch_duration_seconds",
			Help:    "Duration to fetch and decode one feed.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		RoutesAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_results_available",
			Help: "Available results in the last outcome.",
		}),
		RoutesUnavailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_results_unavailable",
			Help: "Unavailable results in the last outcome.",
		}),
		BestAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_best_available",
			Help: "1 if the last outcome had a best route, 0 otherwise.",
		}),
		BestTotalMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_best_total_minutes",
			Help: "Total door-to-office minutes of the last best route.",
		}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commute_sink_errors_total",
			Help: "Output sink failures by sink.",
		}, []string{"sink"}),
		PollInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_poll_interval_seconds",
			Help: "Configured sleep between cycles in seconds.",
		}),
	}

	reg.MustRegister(
		c.Cycles, c.CycleDuration,
		c.FeedFetches, c.FetchDuration,
		c.RoutesAvailable, c.RoutesUnavailable, c.BestAvailable, c.BestTotalMinutes,
		c.SinkErrors, c.PollInterval,
	)

	c.PollInterval.Set(pollInterval.Seconds())

	return c
}

func (c *Collector) CycleObserve(d time.Duration) {
	c.Cycles.Inc()
	c.CycleDuration.Observe(d.Seconds())
}

func (c *Collector) FeedFetched(feedID string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.FeedFetches.WithLabelValues(feedID, result).Inc()
	c.FetchDuration.Observe(d.Seconds())
}

func (c *Collector) OutcomeObserve(o planner.Outcome) {
	c.health.observe(o)

	available, unavailable := 0, 0
	for _, r := range o.Results {
		if r.Available {
			available++
		} else {
			unavailable++
		}
	}
	c.RoutesAvailable.Set(float64(available))
	c.RoutesUnavailable.Set(float64(unavailable))

	best, ok := o.Best()
	if !ok {
		c.BestAvailable.Set(0)
		return
	}
	c.BestAvailable.Set(1)
	if total, ok := best.Total(); ok {
		c.BestTotalMinutes.Set(total.Minutes())
	}
}

func (c *Collector) SinkFailed(name string) {
	c.SinkErrors.WithLabelValues(name).Inc()
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics and /health on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	mux.Handle("/health", c.health)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server error")
		}
	}()
	log.Info().Str("addr", addr).Msg("metrics listening")
	return srv
}
