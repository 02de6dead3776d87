package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fileengine/internal/bytesize"
	"github.com/marmos91/fileengine/pkg/authctx"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("FromFile", func(t *testing.T) {
		path := writeConfig(t, `
logging:
  level: debug
server:
  address: files.internal:7000
  call_timeout: 5s
identity:
  user: alice
  tenant: acme
  roles: [admin, user]
  claims:
    - read
    - {region: eu}
    - [dept, sales]
sandbox:
  capacity: 512Mi
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.Equal(t, "stderr", cfg.Logging.Output)
		assert.Equal(t, "files.internal:7000", cfg.Server.Address)
		assert.Equal(t, 5*time.Second, cfg.Server.CallTimeout)
		assert.Equal(t, "files.internal:7000", cfg.Sandbox.Listen)
		assert.Equal(t, 512*bytesize.MiB, cfg.Sandbox.Capacity)

		defaults, err := cfg.Identity.Defaults()
		require.NoError(t, err)
		assert.Equal(t, "alice", defaults.User)
		assert.Equal(t, "acme", defaults.Tenant)
		assert.Equal(t, []string{"admin", "user"}, defaults.Roles)

		desc, err := authctx.NewSession(defaults).Resolve(authctx.Overrides{})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"read": "read", "region": "eu", "dept": "sales"}, desc.Claims)
	})

	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
		assert.True(t, cfg.Server.Insecure)
		assert.Equal(t, "user", cfg.Identity.User)
	})

	t.Run("EnvironmentOverridesFile", func(t *testing.T) {
		path := writeConfig(t, "server:\n  address: files.internal:7000\n")
		t.Setenv("FILEENGINE_SERVER_ADDRESS", "other.internal:8000")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "other.internal:8000", cfg.Server.Address)
	})

	t.Run("EnvironmentWithoutFile", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("FILEENGINE_IDENTITY_USER", "bob")
		t.Setenv("FILEENGINE_SERVER_CALL_TIMEOUT", "2s")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "bob", cfg.Identity.User)
		assert.Equal(t, 2*time.Second, cfg.Server.CallTimeout)
		assert.True(t, cfg.Server.Insecure)
	})

	t.Run("InvalidClaimShape", func(t *testing.T) {
		path := writeConfig(t, "identity:\n  claims:\n    - [a, b, c]\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, authctx.ErrInvalidClaimShape)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, "server: [unclosed\n")

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fectl config init")
	})

	t.Run("MissingDefaultFile", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := MustLoad("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no configuration file found")
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
	assert.Len(t, cfg.Telemetry.Profiling.ProfileTypes, 6)
	assert.Zero(t, cfg.Metrics.Port)
	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
	assert.Equal(t, DefaultCallTimeout, cfg.Server.CallTimeout)
	assert.False(t, cfg.Server.Insecure)
	assert.NotNil(t, cfg.Identity.Roles)
	assert.NotNil(t, cfg.Identity.Claims)
	assert.Equal(t, DefaultSandboxCapacity, cfg.Sandbox.Capacity)

	t.Run("PreservesExplicitValues", func(t *testing.T) {
		cfg := &Config{
			Logging: LoggingConfig{Level: "warn", Output: "/var/log/fectl.log"},
			Metrics: MetricsConfig{Enabled: true},
			Server:  ServerConfig{Address: "a:1", CallTimeout: time.Second},
			Sandbox: SandboxConfig{Listen: "0.0.0.0:9000"},
		}
		ApplyDefaults(cfg)

		assert.Equal(t, "WARN", cfg.Logging.Level)
		assert.Equal(t, "/var/log/fectl.log", cfg.Logging.Output)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.Equal(t, time.Second, cfg.Server.CallTimeout)
		assert.Equal(t, "0.0.0.0:9000", cfg.Sandbox.Listen)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(GetDefaultConfig()))

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"InvalidLogLevel", func(c *Config) { c.Logging.Level = "TRACE" }, "oneof"},
		{"InvalidLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "Logging.Format"},
		{"MissingAddress", func(c *Config) { c.Server.Address = "" }, "Server.Address"},
		{"AddressWithoutPort", func(c *Config) { c.Server.Address = "localhost" }, "hostname_port"},
		{"NegativeTimeout", func(c *Config) { c.Server.CallTimeout = -time.Second }, "CallTimeout"},
		{"SampleRateAboveOne", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "SampleRate"},
		{"MetricsPortOutOfRange", func(c *Config) { c.Metrics.Port = 70000 }, "max"},
		{"UnknownProfileType", func(c *Config) { c.Telemetry.Profiling.ProfileTypes = []string{"heap"} }, "ProfileTypes"},
		{"TelemetryWithoutEndpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, "Telemetry.Endpoint"},
		{"InvalidClaim", func(c *Config) { c.Identity.Claims = []any{42} }, "Identity.Claims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := GetDefaultConfig()
	cfg.Identity.User = "alice"
	cfg.Identity.Roles = []string{"admin"}
	cfg.Identity.Claims = []any{"read", []any{"dept", "sales"}}

	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, loaded.Server)
	assert.Equal(t, cfg.Logging, loaded.Logging)
	assert.Equal(t, cfg.Telemetry, loaded.Telemetry)

	want, err := cfg.Identity.Defaults()
	require.NoError(t, err)
	got, err := loaded.Identity.Defaults()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInitConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := InitConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfigPath(), path)
	assert.True(t, DefaultConfigExists())

	_, err = InitConfig("", false)
	assert.ErrorIs(t, err, ErrConfigExists)

	_, err = InitConfig("", true)
	assert.NoError(t, err)
}

func TestSchema(t *testing.T) {
	out, err := Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out, &schema))
	assert.Equal(t, "FileEngine Client Configuration", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"logging", "telemetry", "metrics", "server", "identity", "sandbox"} {
		assert.Contains(t, props, key)
	}

	server := props["server"].(map[string]any)["properties"].(map[string]any)
	assert.Contains(t, server, "call_timeout")
}
