package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls the output of every logger created by New.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

var (
	mu      sync.RWMutex
	current = Options{Level: "info", Out: os.Stderr}
)

// Configure sets the level, format and destination of loggers created
// afterwards. Format "console" or APP_ENV=dev selects the human readable
// writer; anything else emits JSON lines. Logs default to stderr so they
// never mix with driver replies.
func Configure(opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	if opts.Level == "" {
		opts.Level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	mu.Lock()
	current = opts
	mu.Unlock()
	return nil
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger tagged with the provided component.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	opts := current
	mu.RUnlock()
	return &ZerologLogger{log: build(opts, component)}
}

func build(opts Options, component string) zerolog.Logger {
	var w io.Writer = opts.Out
	if strings.EqualFold(opts.Format, "console") || strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		w = zerolog.ConsoleWriter{Out: opts.Out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
