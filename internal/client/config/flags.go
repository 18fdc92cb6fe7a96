package config

import (
	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/feedbackboard/internal/flagx"
)

// parseFlags overlays cfg with the flags in args. Arguments that are not
// flags of this package are dropped before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("feedbackboard", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a JSON config file")
	fs.StringVarP(&cfg.APIBaseURL, "api-url", "a", cfg.APIBaseURL, "base URL of the API")
	fs.StringVarP(&cfg.SessionDBPath, "session-db", "s", cfg.SessionDBPath, "session database file; empty keeps the session in memory")
	fs.DurationVarP(&cfg.RequestTimeout, "timeout", "t", cfg.RequestTimeout, "per-request timeout")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "outbound requests per second, 0 for no limit")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, `log destination, "-" for stderr`)
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "print build information and exit")

	return fs.Parse(flagx.FilterArgs(args, flagx.Allowed(fs)))
}
