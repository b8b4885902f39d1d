// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when BDB_LOGLEVEL is unset or unrecognized.
const DefaultLevel = "WARNING"

var levels = map[string]zerolog.Level{
	"DEBUG":    zerolog.DebugLevel,
	"INFO":     zerolog.InfoLevel,
	"WARNING":  zerolog.WarnLevel,
	"ERROR":    zerolog.ErrorLevel,
	"CRITICAL": zerolog.FatalLevel,
}

// ParseLevel maps a BDB_LOGLEVEL name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	lvl, ok := levels[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return zerolog.WarnLevel, fmt.Errorf("unknown log level %q, expected one of DEBUG, INFO, WARNING, ERROR, CRITICAL", name)
	}
	return lvl, nil
}

// Init configures the global logger and returns it.
func Init(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if format != "json" {
		// Use ConsoleWriter for human-readable, colorized output in development
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	if err != nil {
		l.Warn().Err(err).Str("fallback", DefaultLevel).Msg("Invalid BDB_LOGLEVEL")
	}

	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l
}
