package config

import "time"

// Config holds runtime settings for the Stockroom client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST endpoint.
//   - APIKey: project API key sent with every backend request.
//   - StaleAfter: how long cached data stays fresh after a full refetch.
//   - LocalDBPath: path of the on-device SQLite database (demo dataset).
type Config struct {
	ServerBaseURL string
	APIKey        string
	StaleAfter    time.Duration
	LocalDBPath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.APIKey = ""
	c.StaleAfter = 60 * time.Second
	c.LocalDBPath = "stockroom.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
