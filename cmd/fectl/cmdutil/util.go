// Package cmdutil provides shared utilities for fectl commands.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"google.golang.org/grpc"

	"github.com/marmos91/fileengine/internal/cli/output"
	"github.com/marmos91/fileengine/internal/cli/prompt"
	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/telemetry"
	"github.com/marmos91/fileengine/pkg/authctx"
	"github.com/marmos91/fileengine/pkg/config"
	"github.com/marmos91/fileengine/pkg/fileengine"
	"github.com/marmos91/fileengine/pkg/metrics"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values. Empty values leave the
// configuration untouched.
type GlobalFlags struct {
	ConfigFile string
	Server     string
	User       string
	Tenant     string
	Roles      []string
	Claims     []string
	Output     string
	NoColor    bool
	Verbose    bool

	// TenantSet, RolesSet and ClaimsSet record flags given explicitly, so
	// that an empty value still overrides the configuration.
	TenantSet bool
	RolesSet  bool
	ClaimsSet bool
}

// ErrOperationFailed is returned by commands whose operation reported
// failure. The server's reason is in the debug log.
var ErrOperationFailed = errors.New("operation failed (run with --verbose for details)")

// Failed wraps ErrOperationFailed with what was attempted.
func Failed(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrOperationFailed)
}

// LoadConfig loads the configuration file and applies the global flags.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(Flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := ApplyFlags(cfg, Flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with the non-empty flags of f.
func ApplyFlags(cfg *config.Config, f *GlobalFlags) error {
	if f.Server != "" {
		cfg.Server.Address = f.Server
	}
	if f.User != "" {
		cfg.Identity.User = f.User
	}
	if f.Tenant != "" || f.TenantSet {
		cfg.Identity.Tenant = f.Tenant
	}
	if roles := listFlag(f.Roles); len(roles) > 0 || f.RolesSet {
		cfg.Identity.Roles = append([]string{}, roles...)
	}
	if values := listFlag(f.Claims); len(values) > 0 || f.ClaimsSet {
		claims, err := ParseClaimFlags(values)
		if err != nil {
			return err
		}
		cfg.Identity.Claims = claims
	}
	if f.Verbose {
		cfg.Logging.Level = "DEBUG"
	}
	return config.Validate(cfg)
}

// listFlag treats a repeatable flag given once as "" as an empty list.
func listFlag(values []string) []string {
	if len(values) == 1 && values[0] == "" {
		return nil
	}
	return values
}

// ParseClaimFlags turns --claim values into configuration claims: "name" is
// a flag claim, "key=value" a pair.
func ParseClaimFlags(values []string) ([]any, error) {
	claims := make([]any, 0, len(values))
	for _, v := range values {
		key, value, isPair := strings.Cut(v, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid claim %q: empty key", v)
		}
		if isPair {
			claims = append(claims, []any{key, value})
		} else {
			claims = append(claims, key)
		}
	}
	return claims, nil
}

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if Flags.NoColor {
		logger.SetColor(false)
	}
	return nil
}

var (
	clientMetricsOnce sync.Once
	clientRPCMetrics  *metrics.RPCMetrics
)

// ClientMetrics returns the RPC metrics of the fectl client, registered once
// in the process registry, or nil when metrics are disabled.
func ClientMetrics(cfg *config.Config) *metrics.RPCMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	clientMetricsOnce.Do(func() {
		clientRPCMetrics = metrics.NewRPCMetrics(metrics.InitRegistry())
	})
	return clientRPCMetrics
}

// ClientOptions returns the client options implied by cfg: call timeout,
// TLS, the tracing stats handler and the metrics interceptor.
func ClientOptions(cfg *config.Config) []fileengine.Option {
	opts := []fileengine.Option{
		fileengine.WithCallTimeout(cfg.Server.CallTimeout),
		fileengine.WithDialOptions(grpc.WithStatsHandler(telemetry.ClientHandler())),
		fileengine.WithUnaryInterceptors(metrics.UnaryClientInterceptor(ClientMetrics(cfg))),
	}
	if !cfg.Server.Insecure {
		opts = append(opts, fileengine.WithTLS(nil))
	}
	return opts
}

// NewClient connects to the configured FileService as the configured
// identity.
func NewClient(cfg *config.Config, extra ...fileengine.Option) (*fileengine.Client, error) {
	defaults, err := cfg.Identity.Defaults()
	if err != nil {
		return nil, err
	}
	return NewClientAs(cfg, defaults, extra...)
}

// NewClientAs is NewClient with an explicit identity.
func NewClientAs(cfg *config.Config, defaults authctx.Defaults, extra ...fileengine.Option) (*fileengine.Client, error) {
	client, err := fileengine.New(cfg.Server.Address, defaults, append(ClientOptions(cfg), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Printer returns a printer for the --output and --no-color flags on w.
func Printer(w io.Writer) (*output.Printer, error) {
	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(w, format, colorEnabled(w)), nil
}

func colorEnabled(w io.Writer) bool {
	if Flags.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// RunWithConfirmation asks before running fn unless force is set. Declining
// or interrupting prints "Aborted." and returns nil.
func RunWithConfirmation(w io.Writer, label string, force bool, fn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(label, force)
	if err != nil {
		if prompt.IsAborted(err) {
			_, _ = fmt.Fprintln(w, "\nAborted.")
			return nil
		}
		return err
	}
	if !confirmed {
		_, _ = fmt.Fprintln(w, "Aborted.")
		return nil
	}
	return fn()
}

// EmptyOr returns value, or fallback when value is empty.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// BoolToYesNo converts a boolean to "yes" or "no".
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
