package config

import "time"

// Config holds runtime settings for the MediAlert app.
//
// Fields:
//   - DataDir: directory holding the embedded store database.
//   - MinReminderDelay: smallest gap between saving a medication and its
//     first reminder firing.
//   - Verbose: enables debug-level logging.
type Config struct {
	DataDir          string
	MinReminderDelay time.Duration
	Verbose          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "medialert-data"
	c.MinReminderDelay = 5 * time.Minute
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
