// Package logging builds the zerolog loggers used by the binaries. The local
// game owns its terminal, so its output goes to a file only; the SSH server
// also mirrors to its console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// formatUTC renders an event timestamp as RFC3339 in UTC.
func formatUTC(i any) string {
	s, ok := i.(string)
	if !ok {
		return fmt.Sprint(i)
	}
	ts, err := time.Parse(zerolog.TimeFieldFormat, s)
	if err != nil {
		return s
	}
	return ts.UTC().Format(time.RFC3339)
}

// New returns a logger writing uncoloured console lines with UTC timestamps.
func New(out io.Writer, level string) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         true,
		FormatTimestamp: formatUTC,
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Setup opens (or appends to) <dir>/<name>.log and returns a logger writing
// to it, and to console when it is non-nil. The caller closes the returned
// file when done.
func Setup(level, dir, name string, console io.Writer) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	var out io.Writer = f
	if console != nil {
		out = zerolog.MultiLevelWriter(f, console)
	}
	logger := New(out, level)
	logger.Info().Str("loglevel", logger.GetLevel().String()).Str("file", path).Msg("Logging set up")
	return logger, f, nil
}

// Sampled limits a chatty per-frame logger to a short burst every period,
// then one entry in n.
func Sampled(l zerolog.Logger, burst uint32, period time.Duration, n uint32) zerolog.Logger {
	return l.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       burst,
		Period:      period,
		NextSampler: &zerolog.BasicSampler{N: n},
	})
}
