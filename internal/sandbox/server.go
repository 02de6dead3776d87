package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/telemetry"
	"github.com/marmos91/fileengine/pkg/fileservice"
	"github.com/marmos91/fileengine/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server serves a Service over gRPC and, when MetricsAddr is set, exposes
// /health and /metrics over HTTP.
type Server struct {
	// Listen is the gRPC listen address (e.g., "localhost:50051")
	Listen string

	// MetricsAddr is the HTTP listen address; empty disables HTTP
	MetricsAddr string

	Service *Service

	// RPCMetrics records per-method counters; nil disables them
	RPCMetrics *metrics.RPCMetrics

	started time.Time
}

// NewServer creates a server over a fresh Store configured by opts.
func NewServer(listen, metricsAddr string, rpcMetrics *metrics.RPCMetrics, opts ...StoreOption) *Server {
	return &Server{
		Listen:      listen,
		MetricsAddr: metricsAddr,
		Service:     NewService(NewStore(opts...)),
		RPCMetrics:  rpcMetrics,
	}
}

// NewGRPCServer returns a grpc.Server with the FileService registered, the
// wire codec and tracing stats handler installed and the metrics and log
// context interceptors chained.
func (s *Server) NewGRPCServer() *grpc.Server {
	gs := grpc.NewServer(
		fileservice.ServerOption(),
		grpc.StatsHandler(telemetry.ServerHandler()),
		grpc.ChainUnaryInterceptor(
			metrics.UnaryServerInterceptor(s.RPCMetrics),
			telemetry.UnaryServerInterceptor(),
		),
	)
	fileservice.RegisterFileServiceServer(gs, s.Service)
	return gs
}

// Serve listens on Listen and blocks until ctx is cancelled or serving fails.
func (s *Server) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Listen, err)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener serves gRPC on lis until ctx is cancelled. The HTTP endpoint,
// if configured, runs alongside and is shut down with it.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	s.started = time.Now()
	gs := s.NewGRPCServer()
	log := logger.With("component", "sandbox")

	var httpSrv *http.Server
	errCh := make(chan error, 2)

	if s.MetricsAddr != "" {
		httpSrv = &http.Server{
			Addr:              s.MetricsAddr,
			Handler:           s.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("HTTP listening", logger.Address(s.MetricsAddr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("HTTP server error: %w", err)
			}
		}()
	}

	go func() {
		log.Info("gRPC listening", logger.Address(lis.Addr().String()))
		if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	s.shutdown(log, gs, httpSrv)
	return serveErr
}

func (s *Server) shutdown(log *slog.Logger, gs *grpc.Server, httpSrv *http.Server) {
	stopped := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(stopped)
	}()

	timer := time.NewTimer(shutdownTimeout)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		log.Warn("graceful stop timed out, forcing")
		gs.Stop()
	}

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Warn("HTTP shutdown error", logger.Err(err))
		}
	}
	log.Info("stopped")
}

// Router returns the HTTP routes of the sandbox:
//   - GET /health: liveness and uptime
//   - GET /metrics: Prometheus exposition (404 while metrics are disabled)
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", s.handleHealth)
	})
	r.Handle("/metrics", metrics.Handler())
	return r
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Service:   fileservice.ServiceName,
		StartedAt: s.started,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("failed to encode health response", logger.Err(err))
	}
}
