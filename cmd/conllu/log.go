package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// newLogger writes human readable logs to w.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log_level %q: %w", level, err)
	}

	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nil
}
