package cmdutil

import (
	"context"
	"fmt"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/telemetry"
	"github.com/marmos91/fileengine/pkg/config"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

// ServiceName identifies fectl in traces and profiles.
const ServiceName = "fectl"

var (
	// Cfg is the configuration loaded by Setup.
	Cfg *config.Config

	shutdowns []func(context.Context) error
)

// Setup loads the configuration, then initializes logging and tracing.
// Shutdown releases what Setup started.
func Setup(ctx context.Context, version string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	tracing, _ := telemetry.FromConfig(cfg.Telemetry, ServiceName, version)
	shutdown, err := telemetry.Init(ctx, tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	shutdowns = append(shutdowns, shutdown)

	Cfg = cfg
	logger.Debug("configuration loaded",
		logger.Address(cfg.Server.Address),
		logger.User(cfg.Identity.User),
		logger.Tenant(cfg.Identity.Tenant))
	return nil
}

// Shutdown flushes telemetry started by Setup.
func Shutdown(ctx context.Context) {
	for i := len(shutdowns) - 1; i >= 0; i-- {
		if err := shutdowns[i](ctx); err != nil {
			logger.Warn("shutdown error", logger.Err(err))
		}
	}
	shutdowns = nil
}

// Client connects to the configured FileService. The caller closes it.
func Client() (*fileengine.Client, error) {
	if Cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return NewClient(Cfg)
}

// SkipSetupAnnotation marks commands that run without configuration, such
// as version and config init.
const SkipSetupAnnotation = "fectl/skip-setup"

// SkipSetup reports whether cmd or one of its parents opts out of Setup.
func SkipSetup(annotations ...map[string]string) bool {
	for _, a := range annotations {
		if a[SkipSetupAnnotation] == "true" {
			return true
		}
	}
	return false
}

// WithClient connects with Client, runs fn and closes the connection.
func WithClient(fn func(*fileengine.Client) error) error {
	client, err := Client()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	return fn(client)
}
