package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docsignal/pdf-outline/internal/config"
	"github.com/docsignal/pdf-outline/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// newLogger builds a console logger at the configured level. Output
// goes to stderr so the JSON outlines on disk stay the only artifacts.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	return zapCfg.Build()
}

func run() int {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("pdf-outline starting",
		zap.String("version", version),
		zap.String("build_time", buildTime),
		zap.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor := pipeline.NewProcessor(pipeline.DefaultProcessorConfig(), logger)
	runner := pipeline.NewRunner(cfg, processor, logger)

	batch, err := runner.Run(ctx)
	if err != nil {
		logger.Error("batch aborted", zap.Error(err))
		return 1
	}

	if failed := batch.Failed(); len(failed) > 0 {
		for _, f := range failed {
			logger.Error("document failed",
				zap.String("file", f.Input),
				zap.Error(f.Err))
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
