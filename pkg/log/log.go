// Package log builds the zerolog loggers of the bitmath command.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/wcharczuk/bitmath/pkg/config"
)

// Version is stamped into every log line.
var Version = "dev"

// FromConfig builds a logger writing to stderr. The "auto" format is pretty
// on a terminal and json otherwise.
func FromConfig(conf config.Log) zerolog.Logger {
	return fromConfig(conf, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
}

func fromConfig(conf config.Log, out io.Writer, terminal bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil {
		panic("invalid logging level: " + conf.Level)
	}

	format := strings.ToLower(conf.Format)
	if format == "auto" {
		format = "json"
		if terminal {
			format = "pretty"
		}
	}

	switch format {
	case "json":
		return zerolog.
			New(out).
			With().
			Timestamp().
			Str("version", Version).
			Logger().
			Level(level)
	case "pretty":
		return zerolog.
			New(consoleWriter(out)).
			With().
			Timestamp().
			Str("version", Version).
			Logger().
			Level(level)
	default:
		panic("invalid logging format: " + conf.Format)
	}
}

// NewDefault is the logger used before configuration is loaded.
func NewDefault() zerolog.Logger {
	return zerolog.
		New(consoleWriter(os.Stderr)).
		With().
		Timestamp().
		Str("version", Version).
		Logger().
		Level(zerolog.InfoLevel)
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:          out,
		TimeFormat:   time.RFC3339,
		TimeLocation: time.UTC,
	}
}
