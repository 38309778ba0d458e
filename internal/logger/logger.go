package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger instance
var Logger zerolog.Logger

// New builds a logger writing to out. The service name is stamped on every
// line so the server, worker and dashboard processes can be told apart when
// their logs are aggregated.
func New(service, level, format string, out io.Writer) zerolog.Logger {
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(parseLogLevel(level)).
		With().
		Timestamp().
		Caller().
		Str("service", service).
		Logger()
}

// Init installs a logger on stdout as the process-wide logger. Each binary
// calls it once at startup with its service name.
func Init(service, level, format string) {
	zerolog.SetGlobalLevel(parseLogLevel(level))

	Logger = New(service, level, format, os.Stdout)
	log.Logger = Logger
}

// parseLogLevel maps a configured level string onto a zerolog level,
// accepting the "warning" spelling and falling back to info.
func parseLogLevel(level string) zerolog.Level {
	name := strings.ToLower(level)
	if name == "warning" {
		name = "warn"
	}

	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// GetLogger returns the configured logger instance
func GetLogger() zerolog.Logger {
	return Logger
}
