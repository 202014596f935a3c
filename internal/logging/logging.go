// Package logging builds the zap logger shared by the launchers. Logs go to
// stderr so a capture-mode launcher's stdout carries only the child's output.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Level  string    // debug, info, warn, error (default warn)
	Format string    // console or json (default console)
	Output io.Writer // destination, normally stderr
}

// New creates a structured logger writing to opts.Output.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", opts.Format)
	}

	if opts.Output == nil {
		return nil, fmt.Errorf("build logger: no output")
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(opts.Output), level)
	return zap.New(core), nil
}
