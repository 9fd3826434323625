package config

import "time"

// Config holds runtime settings for the profile client.
type Config struct {
	// APIBaseURL is the root of the profile API, without a trailing slash.
	APIBaseURL string
	// DatabasePath is the SQLite file holding the session token.
	DatabasePath string
	// RequestTimeout bounds each API call. Zero means no timeout.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the client probes GET /health.
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000"
	c.DatabasePath = "profile.db"
	c.RequestTimeout = 0
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
