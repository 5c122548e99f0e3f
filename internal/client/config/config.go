package config

import "time"

// Config holds runtime settings for the questionnaire CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the questionnaire HTTP API.
//   - StoragePath: SQLite file that mirrors the session (token and user).
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - StartPath: route opened right after startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	StoragePath    string
	RequestTimeout time.Duration
	StartPath      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StoragePath = "questionnaire.db"
	c.RequestTimeout = 10 * time.Second
	c.StartPath = "/"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c/-config is present in args) and command-line flags. Later
// sources take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
