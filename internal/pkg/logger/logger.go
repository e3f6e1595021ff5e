// Package logger owns the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is attached to every log line
const ServiceName = "tcasystem"

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

var base zerolog.Logger

// Config represents logger configuration
type Config struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Format is FormatJSON or FormatText
	Format string
	// Output defaults to os.Stdout
	Output io.Writer
}

// ParseLevel resolves a level name, falling back to info
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Configure replaces the global logger and returns it
func Configure(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, FormatText) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	base = zerolog.New(out).With().Timestamp().Str("service", ServiceName).Logger()
	log.Logger = base
	return base
}

// Get returns the configured global logger
func Get() zerolog.Logger { return base }

func Debug() *zerolog.Event { return base.Debug() }
func Info() *zerolog.Event  { return base.Info() }
func Warn() *zerolog.Event  { return base.Warn() }
func Error() *zerolog.Event { return base.Error() }

// WithComponent returns a child logger tagged with the component name
func WithComponent(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

func init() {
	Configure(Config{Level: "info", Format: FormatText})
}
