package config

// RouteConfig describes one way to the office.
type RouteConfig struct {
	Name             string   `yaml:"name" validate:"required"`
	Label            string   `yaml:"label" validate:"omitempty,max=4"`
	FeedID           string   `yaml:"feedID" validate:"required"`
	OriginStop       string   `yaml:"originStop" validate:"required"`
	DestStop         string   `yaml:"destStop" validate:"required,nefield=OriginStop"`
	WalkToStationMin *float64 `yaml:"walkToStationMin" validate:"required,gte=0"`
	WalkToOfficeMin  *float64 `yaml:"walkToOfficeMin" validate:"required,gte=0"`
	Color            []int    `yaml:"color" validate:"omitempty,len=3,dive,gte=0,lte=255"`
}

// FetchConfig contains GTFS-Realtime fetch configuration
type FetchConfig struct {
	BaseURL           *string `yaml:"baseURL" validate:"omitempty,url"` // absent: MTA endpoint; "": feed ids are locations
	TimeoutMS         int     `yaml:"timeoutMS" validate:"gte=0"`
	APIKey            string  `yaml:"apiKey"`
	MaxFeedAgeSeconds int     `yaml:"maxFeedAgeSeconds" validate:"gte=0"`
}

// SelectionConfig picks how many trips each route reports.
type SelectionConfig struct {
	Policy string `yaml:"policy" validate:"omitempty,oneof=best upcoming"`
	Limit  int    `yaml:"limit" validate:"gte=0"`
}

// ConsoleConfig controls the text reporter.
type ConsoleConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Format  string `yaml:"format" validate:"omitempty,oneof=lines table"`
}

// DisplayConfig controls the pixel display sink.
type DisplayConfig struct {
	Kind       string `yaml:"kind" validate:"omitempty,oneof=none terminal"`
	Rows       int    `yaml:"rows" validate:"gte=0"`
	Cols       int    `yaml:"cols" validate:"gte=0"`
	RowHeight  int    `yaml:"rowHeight" validate:"gte=0"`
	MaxEntries int    `yaml:"maxEntries" validate:"gte=0"`
	Brightness int    `yaml:"brightness" validate:"gte=0,lte=100"`
}

// MetricsConfig contains the Prometheus endpoint address; empty disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// NATSConfig contains the optional NATS outcome sink; empty URL disables it.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	PollIntervalSeconds int             `yaml:"pollIntervalSeconds" validate:"required,gt=0"`
	MaxArrivalMinutes   *float64        `yaml:"maxArrivalMinutes" validate:"omitempty,gt=0"`
	Timezone            string          `yaml:"timezone"`
	Fetch               FetchConfig     `yaml:"fetch"`
	Selection           SelectionConfig `yaml:"selection"`
	Console             ConsoleConfig   `yaml:"console"`
	Display             DisplayConfig   `yaml:"display"`
	Metrics             MetricsConfig   `yaml:"metrics"`
	NATS                NATSConfig      `yaml:"nats"`
	Routes              []RouteConfig   `yaml:"routes" validate:"required,min=1,dive"`
}
