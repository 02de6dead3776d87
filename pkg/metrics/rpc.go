package metrics

import (
	"context"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// RPCMetrics counts and times FileService RPCs by method and gRPC status.
// A nil *RPCMetrics records nothing.
type RPCMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRPCMetrics registers the client RPC metrics on reg. It returns nil
// when reg is nil.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	return newRPCMetrics(reg, "fileengine_rpc")
}

// NewServerRPCMetrics registers the sandbox server's RPC metrics on reg. It
// returns nil when reg is nil.
func NewServerRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	return newRPCMetrics(reg, "fileengine_sandbox_rpc")
}

func newRPCMetrics(reg prometheus.Registerer, prefix string) *RPCMetrics {
	if reg == nil {
		return nil
	}

	return &RPCMetrics{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of FileService RPCs by method and gRPC status code",
			},
			[]string{"method", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_duration_seconds",
				Help: "Duration of FileService RPCs in seconds",
				Buckets: []float64{
					0.001, // 1ms - local sandbox
					0.005,
					0.01,
					0.05,
					0.1,
					0.5,
					1,
					5, // large PutFile/GetVersion payloads
					30,
				},
			},
			[]string{"method"},
		),
	}
}

// Record records one finished RPC. fullMethod may be "/pkg.Service/Method"
// or a bare method name.
func (m *RPCMetrics) Record(fullMethod string, d time.Duration, err error) {
	if m == nil {
		return
	}
	method := path.Base(fullMethod)
	m.requests.WithLabelValues(method, status.Code(err).String()).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

// UnaryClientInterceptor records every outgoing RPC on m. With a nil m it
// only forwards the call.
func UnaryClientInterceptor(m *RPCMetrics) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		m.Record(method, time.Since(start), err)
		return err
	}
}

// UnaryServerInterceptor records every served RPC on m.
func UnaryServerInterceptor(m *RPCMetrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.Record(info.FullMethod, time.Since(start), err)
		return resp, err
	}
}
