// Package logging builds the loggers of the svg2png command and carries
// them through context.Context.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/newpsoft/godotsvg/config"
	"github.com/newpsoft/godotsvg/errors"
	"github.com/newpsoft/godotsvg/observability"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger writing to w and filtering messages below level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the logger described by cfg. Logs go to stderr unless
// cfg.File is set, in which case they go to a size-rotated file. verbose
// forces the debug level. The returned io.Closer releases the log file.
func Open(cfg config.LogConfig, stderr io.Writer, verbose bool) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}
	if verbose {
		level = log.DebugLevel
	}

	if cfg.File == "" {
		return New(stderr, level), nopCloser{}, nil
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
	}
	return New(lj, level), lj, nil
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Hooks logs conversion events: starts at debug level, outcomes at info
// level with the elapsed time.
type Hooks struct {
	Logger *log.Logger
}

var _ observability.ConversionHooks = Hooks{}

func (h Hooks) OnConvertStart(c observability.Conversion) {
	h.Logger.Debug("converting", "source", c.Source, "name", c.Name, "width", c.Width, "height", c.Height)
}

func (h Hooks) OnConvertComplete(c observability.Conversion, size int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("conversion failed",
			"source", c.Source,
			"name", c.Name,
			"code", errors.GetCode(err),
			"reason", errors.UserMessage(err),
			"duration", duration.Round(time.Millisecond))
		return
	}
	h.Logger.Infof("Converted %s (%d bytes, %s)", c.Name, size, duration.Round(time.Millisecond))
}
