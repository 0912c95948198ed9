package config

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger builds the root logger. Unknown levels fall back to info.
func (c LogConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}

	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
