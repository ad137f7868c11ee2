// Package logging builds the zap logger shared by the CLI, the TUI and the
// sync pipeline.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is where debug logs go when no path is given.
const DefaultPath = "homedash-debug.log"

// Options configures New.
type Options struct {
	// Debug enables logging. When false New returns a no-op logger.
	Debug bool
	// Path is the log file, truncated on open. Defaults to DefaultPath.
	Path string
	// Level is one of debug, info, warn, error. Defaults to debug.
	Level string
	// Output overrides Path. Used by tests.
	Output io.Writer
}

// New returns a JSON-lines logger and a function that flushes and closes
// its sink. Callers should defer the close function.
func New(opts Options) (*zap.Logger, func() error, error) {
	if !opts.Debug {
		return zap.NewNop(), func() error { return nil }, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		sink    zapcore.WriteSyncer
		closeFn = func() error { return nil }
	)
	if opts.Output != nil {
		sink = zapcore.AddSync(opts.Output)
	} else {
		path := opts.Path
		if path == "" {
			path = DefaultPath
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating debug log: %w", err)
		}
		sink = zapcore.AddSync(f)
		closeFn = f.Close
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, level)
	logger := zap.New(core, zap.AddCaller()).Named("homedash")

	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}

// ParseLevel maps a level name to a zap level. Empty means debug.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.DebugLevel, fmt.Errorf("unknown log level %q", s)
	}
}
