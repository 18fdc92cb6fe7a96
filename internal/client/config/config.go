package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/feedbackboard/internal/flagx"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// Config holds runtime settings for the feedback board CLI.
type Config struct {
	// APIBaseURL is the root every API path is appended to.
	APIBaseURL string `env:"API_URL"`
	// SessionDBPath is the SQLite file holding the session. Empty keeps the
	// session in memory for the life of the process.
	SessionDBPath  string        `env:"SESSION_DB"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// RateLimit caps outbound requests per second; 0 disables the cap.
	RateLimit float64 `env:"RATE_LIMIT"`
	LogLevel  string  `env:"LOG_LEVEL"`
	// LogFile receives log output; "-" means stderr.
	LogFile string `env:"LOG_FILE"`

	// ShowVersion is set by -v and is never read from files.
	ShowVersion bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 0
	c.LogLevel = "warn"
	c.LogFile = "feedbackboard.log"
}

// LoadConfig builds a Config from defaults, the JSON file named by -c, the
// environment and finally the flags in args. environ is in os.Environ form.
func LoadConfig(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api url %q must be an absolute http(s) URL", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return errors.New("config: request timeout must not be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("config: rate limit must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
