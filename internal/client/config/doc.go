// Package config loads runtime configuration for the feedback board CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. Environment variables prefixed FEEDBACKBOARD_. A .env file in the
//     working directory is read too; the real environment wins over it.
//  4. Command-line flags, which override everything else. Flags this
//     package does not define are ignored.
//
// Supported flags
//
//	-a, --api-url string       base URL of the API
//	-s, --session-db string    session database file; empty keeps the session in memory
//	-t, --timeout duration     per-request timeout
//	    --rate-limit float     outbound requests per second, 0 for no limit
//	-l, --log-level string     debug, info, warn or error
//	    --log-file string      log destination, "-" for stderr
//	-v, --version              print build information and exit
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080",
//	  "session_db": "session.db",
//	  "request_timeout": "10s",
//	  "rate_limit": 5,
//	  "log_level": "info",
//	  "log_file": "feedbackboard.log"
//	}
//
// # Environment
//
//	FEEDBACKBOARD_API_URL, FEEDBACKBOARD_SESSION_DB,
//	FEEDBACKBOARD_REQUEST_TIMEOUT, FEEDBACKBOARD_RATE_LIMIT,
//	FEEDBACKBOARD_LOG_LEVEL, FEEDBACKBOARD_LOG_FILE
package config
