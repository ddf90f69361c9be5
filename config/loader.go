package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
)

// DefaultPaths are searched in order when Load is called with an empty path.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

const (
	defaultTimeoutMS   = 10000
	defaultRows        = 32
	defaultCols        = 64
	defaultRowHeight   = 7
	defaultMaxEntries  = 9
	defaultBrightness  = 100
	defaultNATSSubject = "commute.outcome"
	maxLabelLength     = 4
)

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	data, used, err := readFirst(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", used, err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", used, err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", used, err)
	}
	return &cfg, nil
}

func readFirst(path string) ([]byte, string, error) {
	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	var err error
	for _, p := range paths {
		var data []byte
		data, err = os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
	}
	return nil, "", fmt.Errorf("read config: %w", err)
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("MTA_API_KEY"); v != "" {
		cfg.Fetch.APIKey = v
	}
	if v := os.Getenv("COMMUTE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("COMMUTE_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("TZ"); v != "" && cfg.Timezone == "" {
		cfg.Timezone = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Fetch.BaseURL == nil {
		base := gtfsrt.MTABaseURL
		cfg.Fetch.BaseURL = &base
	}
	if cfg.Fetch.TimeoutMS == 0 {
		cfg.Fetch.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Selection.Policy == "" {
		cfg.Selection.Policy = planner.SelectUpcoming.String()
	}
	if cfg.Console.Enabled == nil {
		enabled := true
		cfg.Console.Enabled = &enabled
	}
	if cfg.Console.Format == "" {
		cfg.Console.Format = "lines"
	}
	if cfg.Display.Kind == "" {
		cfg.Display.Kind = "none"
	}
	if cfg.Display.Rows == 0 {
		cfg.Display.Rows = defaultRows
	}
	if cfg.Display.Cols == 0 {
		cfg.Display.Cols = defaultCols
	}
	if cfg.Display.RowHeight == 0 {
		cfg.Display.RowHeight = defaultRowHeight
	}
	if cfg.Display.MaxEntries == 0 {
		cfg.Display.MaxEntries = defaultMaxEntries
	}
	if cfg.Display.Brightness == 0 {
		cfg.Display.Brightness = defaultBrightness
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = defaultNATSSubject
	}
}

// PollInterval is the sleep between two cycles.
func (c *AppConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Threshold is the maximum acceptable total time, nil when unset.
func (c *AppConfig) Threshold() *time.Duration {
	if c.MaxArrivalMinutes == nil {
		return nil
	}
	d := minutes(*c.MaxArrivalMinutes)
	return &d
}

// BaseURL is the prefix feed ids are appended to. An explicit empty value is kept so every
// feed id is used as a location of its own.
func (c *AppConfig) BaseURL() string {
	if c.Fetch.BaseURL == nil {
		return gtfsrt.MTABaseURL
	}
	return *c.Fetch.BaseURL
}

// FetchTimeout bounds one feed fetch.
func (c *AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutMS) * time.Millisecond
}

// MaxFeedAge is the oldest acceptable feed header, zero when the check is disabled.
func (c *AppConfig) MaxFeedAge() time.Duration {
	return time.Duration(c.Fetch.MaxFeedAgeSeconds) * time.Second
}

// ConsoleEnabled reports whether the text reporter is on.
func (c *AppConfig) ConsoleEnabled() bool {
	return c.Console.Enabled == nil || *c.Console.Enabled
}

// Location is the time zone clock times are printed in.
func (c *AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy converts the selection section into a planner.Policy.
func (c *AppConfig) Policy() (planner.Policy, error) {
	mode, err := planner.ParseMode(c.Selection.Policy)
	if err != nil {
		return planner.Policy{}, err
	}
	return planner.Policy{Mode: mode, Limit: c.Selection.Limit}, nil
}

// PlannerRoutes converts the configured routes, in order.
func (c *AppConfig) PlannerRoutes() ([]planner.Route, error) {
	if len(c.Routes) == 0 {
		return nil, errors.New("no routes configured")
	}
	routes := make([]planner.Route, 0, len(c.Routes))
	for _, rc := range c.Routes {
		if rc.WalkToStationMin == nil || rc.WalkToOfficeMin == nil {
			return nil, fmt.Errorf("route %s: walking times are required", rc.Name)
		}
		routes = append(routes, planner.Route{
			Name:          rc.Name,
			Label:         label(rc),
			FeedID:        rc.FeedID,
			OriginStop:    rc.OriginStop,
			DestStop:      rc.DestStop,
			WalkToStation: minutes(*rc.WalkToStationMin),
			WalkToOffice:  minutes(*rc.WalkToOfficeMin),
			Color:         color(rc.Color),
		})
	}
	return routes, nil
}

func label(rc RouteConfig) string {
	if rc.Label != "" {
		return rc.Label
	}
	l := strings.ToUpper(strings.TrimSpace(rc.Name))
	if r := []rune(l); len(r) > maxLabelLength {
		l = string(r[:maxLabelLength])
	}
	return l
}

func color(c []int) [3]uint8 {
	if len(c) != 3 {
		return [3]uint8{255, 255, 255}
	}
	return [3]uint8{uint8(c[0]), uint8(c[1]), uint8(c[2])}
}

func minutes(m float64) time.Duration {
	return time.Duration(math.Round(m * float64(time.Minute)))
}
