// Package logging builds the logr.Logger handed to the driver packages.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where log lines go and how many of them.
type Options struct {
	// Verbosity is the highest logr V level printed. 1 traces every module
	// command, 2 adds reassembly progress.
	Verbosity int
	// File, when set, receives the log through a rotating writer instead of
	// stderr.
	File string
}

// New returns a logger and a function releasing its writer.
func New(opts Options) (logr.Logger, func() error) {
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	zerologr.SetMaxV(opts.Verbosity)

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}
		w = lj
		closer = lj.Close
	} else if isTerminal() {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    os.Getenv("NO_COLOR") != "",
			TimeFormat: time.RFC3339,
		}
	}

	// SetMaxV maps the V level onto the zerolog global level; the logger
	// itself must not be stricter than that
	zl := zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
	return zerologr.New(&zl), closer
}

func isTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
