package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options selects where and how logs are written.
type Options struct {
	// File receives the log lines. Empty disables logging.
	File string
	// Pretty writes human-readable lines instead of JSON.
	Pretty bool
	// Level is a zerolog level name; empty means debug.
	Level string
}

// Logger is a zerolog logger that owns its output file.
type Logger struct {
	zerolog.Logger
	f *os.File
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// New opens the log file described by opts. Every line carries a
// timestamp, the caller and a session id unique to this process.
func New(opts Options) (*Logger, error) {
	if opts.File == "" {
		return Nop(), nil
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	level := zerolog.DebugLevel
	if opts.Level != "" {
		if level, err = zerolog.ParseLevel(strings.ToLower(opts.Level)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	var w io.Writer = f
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: f, NoColor: true}
	}
	return &Logger{Logger: newLogger(w, level), f: f}, nil
}

// NewWriter logs to w; used by tests and callers that manage the output.
func NewWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{Logger: newLogger(w, level)}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Caller().
		Str("session", uuid.NewString()).
		Logger()
}

// NewFromEnv returns a logger if BATATA_LOG is set to a truthy value or if
// BATATA_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./batata.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("BATATA_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("BATATA_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return Nop()
	}
	if lf == "" {
		lf = filepath.Join(".", "batata.log")
	}
	l, err := New(Options{File: lf, Level: os.Getenv("BATATA_LOG_LEVEL")})
	if err != nil {
		return Nop()
	}
	return l
}

// Close flushes and closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
