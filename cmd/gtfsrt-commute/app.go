package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/config"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/metrics"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/poller"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/sink"
)

// app holds everything built from the config that has to be released on exit.
type app struct {
	loop    *poller.Loop
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func runCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(c.String("config"), true)
	if err != nil {
		return err
	}
	defer a.close()

	return a.loop.Run(ctx)
}

func onceCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(c.String("config"), false)
	if err != nil {
		return err
	}
	defer a.close()

	a.loop.RunCycle(ctx)
	return nil
}

func build(path string, serveMetrics bool) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	routes, err := cfg.PlannerRoutes()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{}
	sinks := openSinks(cfg, loc, a)

	var m poller.Metrics
	if serveMetrics && cfg.Metrics.Addr != "" {
		collector := metrics.NewCollector(cfg.PollInterval())
		srv := collector.Serve(cfg.Metrics.Addr)
		a.closers = append(a.closers, func() { shutdown(srv) })
		m = collector
	}

	source := gtfsrt.NewSource(gtfsrt.NewClient(cfg.FetchTimeout(), cfg.Fetch.APIKey), cfg.BaseURL())

	a.loop = poller.New(poller.Options{
		Routes:     routes,
		Fetcher:    source,
		Sinks:      sinks,
		Interval:   cfg.PollInterval(),
		Policy:     policy,
		Threshold:  cfg.Threshold(),
		MaxFeedAge: cfg.MaxFeedAge(),
		Metrics:    m,
	})
	return a, nil
}

// openSinks builds the configured outputs. Optional outputs that cannot be opened are logged
// and skipped; the console is the fallback when nothing else is available.
func openSinks(cfg *config.AppConfig, loc *time.Location, a *app) []sink.Sink {
	var sinks []sink.Sink

	matrix, err := sink.OpenMatrix(cfg.Display.Kind, os.Stdout, cfg.Display.Cols, cfg.Display.Rows)
	switch {
	case err == nil:
		display := sink.NewDisplay(matrix, sink.DisplayOptions{
			RowHeight:  cfg.Display.RowHeight,
			MaxEntries: cfg.Display.MaxEntries,
			Brightness: cfg.Display.Brightness,
		})
		sinks = append(sinks, display)
		a.closers = append(a.closers, func() { _ = display.Close() })
		log.Info().Str("kind", cfg.Display.Kind).Int("entries", display.Entries()).Msg("display enabled")
	case cfg.Display.Kind != sink.MatrixNone:
		log.Warn().Err(err).Str("kind", cfg.Display.Kind).Msg("display unavailable, continuing without it")
	}

	if cfg.NATS.URL != "" {
		ns, err := sink.NewNATS(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NATS.URL).Msg("nats unavailable, continuing without it")
		} else {
			sinks = append(sinks, ns)
			a.closers = append(a.closers, ns.Close)
		}
	}

	if cfg.ConsoleEnabled() || len(sinks) == 0 {
		sinks = append(sinks, sink.NewConsole(os.Stdout, loc, sink.ConsoleFormat(cfg.Console.Format)))
	}
	return sinks
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("metrics server shutdown")
	}
}
