package main

import (
	"fmt"
	"io"
	"os"

	"github.com/planbiir/tracefilter/internal/config"
	"github.com/planbiir/tracefilter/log"
)

// setupLogger builds the process logger and installs it as the default.
// The returned logger owns the log file, if any; call Close when done.
func setupLogger(args *config.CliArgs) (*log.Logger, error) {
	if args.LogConfig != "" {
		cfg, err := log.LoadConfig(args.LogConfig)
		if err != nil {
			return nil, fmt.Errorf("load log config: %w", err)
		}
		logger, err := log.NewFromConfig(cfg, log.AddCallerSkip(1))
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		log.ResetDefault(logger)
		return logger, nil
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if args.LogFile != "" {
		f, err := os.OpenFile(args.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, file = f, f
	}

	lvl := parseLogLevel(args.LogLevel, log.InfoLevel)
	var logger *log.Logger
	switch args.LogFormat {
	case "json":
		logger = log.New(out, lvl, log.WithCaller(true), log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(out, lvl, log.WithCaller(true), log.AddCallerSkip(1))
	}
	if file != nil {
		logger.CloseWith(file)
	}

	log.ResetDefault(logger)
	return logger, nil
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}
