// Package main is the entry point for the hammer viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/hammerview/internal/config"
	"github.com/Faultbox/hammerview/internal/logger"
	"github.com/Faultbox/hammerview/internal/viewer"
)

func init() {
	// The GL context is bound to the thread that created it.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// --write-config dumps the merged settings instead of starting the viewer
	if path, err := config.WriteRequested(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	} else if path != "" {
		fmt.Printf("Wrote config to %s\n", path)
		return 0
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, logger.FileConfig{
		Path:       cfg.Logging.LogFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Hammer Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		return 1
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
