// Package genlog builds the one *zap.Logger every stage of the pipeline
// is handed through its constructor, per SPEC_FULL's ambient-stack
// section. There is no package-level logger here and nothing in this
// repository calls zap.L() or zap.ReplaceGlobals: every stage (gateway,
// reasoning, orchestrator) takes a *zap.Logger field and callers wire it
// from the single instance New returns at the composition root, the same
// discipline rupor-github-fb2cng's config.LoggingConfig.Prepare applies
// for its EPUB/KEPUB converter, condensed to this module's two
// destinations (console, optional file) instead of its three-tier
// console/file/panic-capture setup.
package genlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the closed set of verbosities a deployment may select, mirroring
// the log-level names used elsewhere in the ambient stack (not a stage
// kind — just a small enum local to logger construction).
type Level string

const (
	LevelNone  Level = "none"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Options configures New. Destination is an optional file path; when
// empty, only the console core is built.
type Options struct {
	Level       Level
	Destination string
	JSON        bool // true selects a JSON encoder for machine-readable log shipping
}

// New builds a *zap.Logger per opts. It never panics and never installs
// itself as a global: the returned value is the only handle to it.
func New(opts Options) (*zap.Logger, error) {
	if opts.Level == LevelNone {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if opts.Level == LevelDebug {
		level = zapcore.DebugLevel
	}
	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level })

	var encoder zapcore.Encoder
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(ec)
	} else {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(ec)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), enabler)}

	if opts.Destination != "" {
		f, err := os.OpenFile(opts.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("genlog: opening %s: %w", opts.Destination, err)
		}
		fileEncoder := zapcore.NewJSONEncoder(ec)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), enabler))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
