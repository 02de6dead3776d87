package telemetry

import (
	"context"
	"path"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"
	"google.golang.org/grpc/stats"

	"github.com/marmos91/fileengine/internal/logger"
)

// Attribute keys added to FileService RPC spans on top of the otelgrpc
// semantic conventions.
const (
	AttrOperation = "fileengine.operation" // adapter operation: mkdir, put, dir, ...
	AttrUser      = "enduser.id"
	AttrTenant    = "fileengine.tenant"
)

// OperationAttributes returns the adapter operation and identity carried by
// the LogContext of ctx, if any.
func OperationAttributes(ctx context.Context) []attribute.KeyValue {
	lc := logger.FromContext(ctx)
	if lc == nil {
		return nil
	}
	var attrs []attribute.KeyValue
	if lc.Operation != "" {
		attrs = append(attrs, attribute.String(AttrOperation, lc.Operation))
	}
	if lc.User != "" {
		attrs = append(attrs, attribute.String(AttrUser, lc.User))
	}
	if lc.Tenant != "" {
		attrs = append(attrs, attribute.String(AttrTenant, lc.Tenant))
	}
	return attrs
}

// ClientHandler traces outgoing RPCs with otelgrpc and propagates the trace
// context in the request metadata. Install it with grpc.WithStatsHandler.
func ClientHandler() stats.Handler {
	return &rpcHandler{Handler: otelgrpc.NewClientHandler(otelgrpc.WithTracerProvider(TracerProvider()))}
}

// ServerHandler continues the caller's trace in a server span. Install it
// with grpc.StatsHandler.
func ServerHandler() stats.Handler {
	return &rpcHandler{Handler: otelgrpc.NewServerHandler(otelgrpc.WithTracerProvider(TracerProvider()))}
}

// rpcHandler tags otelgrpc spans with the operation attributes and records
// the RPC error as a span event.
type rpcHandler struct {
	stats.Handler
}

func (h *rpcHandler) TagRPC(ctx context.Context, info *stats.RPCTagInfo) context.Context {
	ctx = h.Handler.TagRPC(ctx, info)
	if attrs := OperationAttributes(ctx); len(attrs) > 0 {
		SetAttributes(ctx, attrs...)
	}
	return ctx
}

func (h *rpcHandler) HandleRPC(ctx context.Context, s stats.RPCStats) {
	if end, ok := s.(*stats.End); ok && end.Error != nil {
		RecordError(ctx, end.Error)
	}
	h.Handler.HandleRPC(ctx, s)
}

// UnaryServerInterceptor exposes the trace ids of the server span to the
// *Ctx log functions. It expects ServerHandler to be installed.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		lc := logger.NewLogContext(path.Base(info.FullMethod)).WithTrace(TraceID(ctx), SpanID(ctx))
		return handler(logger.WithContext(ctx, lc), req)
	}
}
