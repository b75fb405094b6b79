package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/oukeidos/vaani/internal/auth"
	"github.com/oukeidos/vaani/internal/cleanup"
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/files"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/prompt"
	"github.com/oukeidos/vaani/internal/services"
)

var (
	isTerminal    = term.IsTerminal
	getKey        = auth.GetKey
	getEnvKey     = auth.GetEnvKey
	getStatus     = auth.GetStatus
	promptForKey  = auth.PromptForAPIKey
	saveKey       = auth.SaveKey
	deleteKey     = auth.DeleteKey
	buildServices = services.Build
	newPrompter   = prompt.Default
	initLogger    = logger.Init
)

// loadConfig runs the shared startup sequence: .env, config file, environment
// overrides, logging. It does not validate, so callers can apply flags first.
func loadConfig(root *rootOptions) (config.Config, error) {
	if err := config.LoadDotEnv(root.envFile); err != nil {
		return config.Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	path, explicit := root.configPath, root.configPath != ""
	if !explicit {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return cfg, err
	}

	if err := setupLogging(root, cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// finalizeConfig normalizes cfg and validates it, logging any adjustments.
func finalizeConfig(cfg config.Config) (config.Config, error) {
	cfg, notes := cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Config adjusted", "note", note)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(root *rootOptions, level string) error {
	logLevel := logger.ParseLevel(level)
	if root.debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if root.logFile != "" {
		if err := files.RejectSymlinkPath(root.logFile); err != nil {
			return err
		}
		f, err := os.OpenFile(root.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register("log file", f.Close)
		logFileW = f
	}
	initLogger(logLevel, logFileW)
	return nil
}

func stdinIsTerminal() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
