// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file (config.yml by default) and validated using struct
// tags. A .env file, when present, is loaded into the environment first; MTA_API_KEY,
// COMMUTE_METRICS_ADDR, COMMUTE_NATS_URL and TZ override the corresponding file values.
package config
