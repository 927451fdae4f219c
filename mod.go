// Package zilliqa is the root of a client library for the Zilliqa chain. It
// holds the resources shared by every package: the global logger and the list
// of prometheus collectors.
//
// The logging level is read from the LLVL environment variable and defaults to
// info.
package zilliqa

import (
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "LLVL"

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(levelFromEnv(os.Getenv(EnvLogLevel)))

// PromCollectors exposes the prometheus collectors created by the library. A
// user can register them on its own registry or use the default one.
var PromCollectors []prometheus.Collector

func levelFromEnv(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "no", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
