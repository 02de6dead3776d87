package config

import (
	"strings"
	"time"

	"github.com/marmos91/fileengine/internal/bytesize"
)

const (
	// DefaultServerAddress is the FileService address used when none is configured.
	DefaultServerAddress = "localhost:50051"

	// DefaultCallTimeout bounds each RPC whose context has no deadline.
	DefaultCallTimeout = 30 * time.Second

	// DefaultSandboxCapacity is the per-tenant quota of the sandbox.
	DefaultSandboxCapacity = bytesize.GiB
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values ("", 0, nil) are replaced with defaults; explicit values are
// preserved. Booleans whose default is true (server.insecure,
// telemetry.insecure) are only set by GetDefaultConfig, since false is a
// meaningful explicit value.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyServerDefaults(&cfg.Server)
	applyIdentityDefaults(&cfg.Identity)
	applySandboxDefaults(&cfg.Sandbox, &cfg.Server)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	// stdout belongs to command output (ls, get, stat)
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Standard OTLP gRPC port
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	// Standard Pyroscope port
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}

	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// applyServerDefaults sets FileService connection defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Address == "" {
		cfg.Address = DefaultServerAddress
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
}

// applyIdentityDefaults sets the session identity defaults.
func applyIdentityDefaults(cfg *IdentityConfig) {
	if cfg.User == "" {
		cfg.User = "user"
	}
	if cfg.Roles == nil {
		cfg.Roles = []string{}
	}
	if cfg.Claims == nil {
		cfg.Claims = []any{}
	}
}

// applySandboxDefaults makes the sandbox listen where the client connects.
func applySandboxDefaults(cfg *SandboxConfig, server *ServerConfig) {
	if cfg.Listen == "" {
		cfg.Listen = server.Address
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultSandboxCapacity
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{
			Insecure: true,
		},
		Server: ServerConfig{
			Insecure: true,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
