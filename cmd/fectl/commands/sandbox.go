package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/sandbox"
	"github.com/marmos91/fileengine/internal/telemetry"
	"github.com/marmos91/fileengine/pkg/config"
	"github.com/marmos91/fileengine/pkg/metrics"
)

var sandboxListen string

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory FileService",
	Long: `Run an in-memory FileService for development and tests.

The sandbox keeps everything in memory and loses it on exit. It listens on
sandbox.listen (default: the configured server address) and, when metrics
are enabled, serves /health and /metrics on metrics.port. Each tenant may
store up to sandbox.capacity bytes (default: 1Gi).

Examples:
  fectl sandbox
  fectl sandbox --listen 127.0.0.1:50052`,
	Args: cobra.NoArgs,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().StringVar(&sandboxListen, "listen", "", "gRPC listen address (overrides config)")
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg := cmdutil.Cfg
	listen := cfg.Sandbox.Listen
	if sandboxListen != "" {
		listen = sandboxListen
	}

	_, profiling := telemetry.FromConfig(cfg.Telemetry, cmdutil.ServiceName+"-sandbox", Version)
	stopProfiling, err := telemetry.InitProfiling(profiling)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("profiler shutdown error", logger.Err(err))
		}
	}()

	srv := newSandboxServer(cfg, listen)
	logger.Info("sandbox: starting",
		logger.Address(listen),
		"capacity", cfg.Sandbox.Capacity.String(),
		"metrics", srv.MetricsAddr != "",
		"profiling", profiling.Enabled)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sandbox listening on %s (Ctrl+C to stop)\n", listen)

	if err := srv.Serve(cmd.Context()); err != nil {
		return err
	}
	logger.Info("sandbox: stopped")
	return nil
}

// newSandboxServer builds a sandbox with metrics wired when enabled in cfg.
func newSandboxServer(cfg *config.Config, listen string) *sandbox.Server {
	var (
		metricsAddr string
		rpcMetrics  *metrics.RPCMetrics
	)
	if cfg.Metrics.Enabled {
		metricsAddr = net.JoinHostPort("", fmt.Sprint(cfg.Metrics.Port))
		rpcMetrics = metrics.NewServerRPCMetrics(metrics.InitRegistry())
	}
	return sandbox.NewServer(listen, metricsAddr, rpcMetrics, sandbox.WithCapacity(int64(cfg.Sandbox.Capacity)))
}
