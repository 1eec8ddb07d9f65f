package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-csv2labels/internal/config"
)

// newLogger builds the JSON diagnostics log. The level comes from the config
// file unless -v (debug) or -q (errors only) is given; the log goes to the
// configured file or --log-file, else to stderr. The returned func flushes
// and closes the sink.
func newLogger(f commonFlags, cfg config.LogConfig, stderr io.Writer) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, nil, fmt.Errorf("%w: log level: %v", ErrUsage, err)
		}
	}
	switch {
	case f.verbose:
		level = zapcore.DebugLevel
	case f.quiet:
		level = zapcore.ErrorLevel
	}

	sink := zapcore.AddSync(stderr)
	closeSink := func() {}
	path := f.logFile
	if path == "" {
		path = cfg.File
	}
	if path != "" {
		ws, closeFn, err := zap.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		sink, closeSink = ws, closeFn
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)).
		Named("csv2labels")
	return logger, func() {
		_ = logger.Sync()
		closeSink()
	}, nil
}
