package telemetry

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/config"
)

// recordSpans installs an in-memory tracer for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	setProvider(tp)

	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		setProvider(nil)
		otel.SetTextMapPropagator(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "fectl", cfg.ServiceName)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestFromConfig(t *testing.T) {
	file := config.GetDefaultConfig().Telemetry
	file.Enabled = true
	file.Profiling.Enabled = true

	tracing, profiling := FromConfig(file, "fectl", "1.2.3")
	assert.True(t, tracing.Enabled)
	assert.Equal(t, "1.2.3", tracing.ServiceVersion)
	assert.Equal(t, file.Endpoint, tracing.Endpoint)
	assert.True(t, profiling.Enabled)
	assert.Equal(t, file.Profiling.ProfileTypes, profiling.ProfileTypes)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))
	assert.False(t, IsEnabled())

	_, span := StartSpan(ctx, "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestSampler(t *testing.T) {
	assert.True(t, strings.HasPrefix(sampler(1).Description(), "ParentBased{root:AlwaysOnSampler"))
	assert.True(t, strings.HasPrefix(sampler(0).Description(), "ParentBased{root:AlwaysOffSampler"))
	assert.True(t, strings.HasPrefix(sampler(0.25).Description(), "ParentBased{root:TraceIDRatioBased"))
}

func TestRecordError(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "op")
	RecordError(ctx, nil)
	RecordError(ctx, errors.New("boom"))
	SetAttributes(ctx, attribute.String("k", "v"))
	assert.NotEmpty(t, TraceID(ctx))
	assert.NotEmpty(t, SpanID(ctx))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

// healthServer fails every check and keeps the context it was called with.
type healthServer struct {
	healthpb.UnimplementedHealthServer
	ctx context.Context
}

func (h *healthServer) Check(ctx context.Context, _ *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	h.ctx = ctx
	return nil, status.Error(grpccodes.PermissionDenied, "denied")
}

func spanOfKind(spans []sdktrace.ReadOnlySpan, kind trace.SpanKind) sdktrace.ReadOnlySpan {
	for _, s := range spans {
		if s.SpanKind() == kind {
			return s
		}
	}
	return nil
}

func TestRPCHandlers(t *testing.T) {
	rec := recordSpans(t)

	lis := bufconn.Listen(1 << 20)
	health := &healthServer{}
	gs := grpc.NewServer(
		grpc.StatsHandler(ServerHandler()),
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor()),
	)
	healthpb.RegisterHealthServer(gs, health)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(ClientHandler()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	lc := logger.NewLogContext("mkdir").WithIdentity("alice", "acme")
	ctx := logger.WithContext(context.Background(), lc)
	_, err = healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.Equal(t, grpccodes.PermissionDenied, status.Code(err))

	require.Eventually(t, func() bool { return len(rec.Ended()) == 2 }, 5*time.Second, 10*time.Millisecond)
	spans := rec.Ended()

	client := spanOfKind(spans, trace.SpanKindClient)
	require.NotNil(t, client)
	assert.Equal(t, "grpc.health.v1.Health/Check", client.Name())
	attrs := attrMap(client.Attributes())
	assert.Equal(t, "mkdir", attrs[AttrOperation].AsString())
	assert.Equal(t, "alice", attrs[AttrUser].AsString())
	assert.Equal(t, "acme", attrs[AttrTenant].AsString())
	assert.Equal(t, "Check", attrs["rpc.method"].AsString())
	assert.Equal(t, codes.Error, client.Status().Code)
	var events []string
	for _, e := range client.Events() {
		events = append(events, e.Name)
	}
	assert.Contains(t, events, "exception")

	server := spanOfKind(spans, trace.SpanKindServer)
	require.NotNil(t, server)
	assert.Equal(t, client.SpanContext().TraceID(), server.SpanContext().TraceID())
	assert.Equal(t, client.SpanContext().SpanID(), server.Parent().SpanID())

	handlerLC := logger.FromContext(health.ctx)
	require.NotNil(t, handlerLC)
	assert.Equal(t, "Check", handlerLC.Operation)
	assert.Equal(t, server.SpanContext().TraceID().String(), handlerLC.TraceID)
	assert.Equal(t, server.SpanContext().SpanID().String(), handlerLC.SpanID)
}

func TestOperationAttributes(t *testing.T) {
	assert.Empty(t, OperationAttributes(context.Background()))

	ctx := logger.WithContext(context.Background(), logger.NewLogContext("put"))
	attrs := attrMap(OperationAttributes(ctx))
	assert.Len(t, attrs, 1)
	assert.Equal(t, "put", attrs[AttrOperation].AsString())
}

func TestTracerProvider(t *testing.T) {
	setProvider(nil)
	assert.False(t, IsEnabled())
	_, span := TracerProvider().Tracer("x").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())

	recordSpans(t)
	assert.True(t, IsEnabled())
	_, span = TracerProvider().Tracer("x").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestProfiling(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		shutdown, err := InitProfiling(ProfilingConfig{})
		require.NoError(t, err)
		assert.NoError(t, shutdown())
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := InitProfiling(ProfilingConfig{Enabled: true, ProfileTypes: []string{"heap"}})
		assert.ErrorContains(t, err, "heap")
	})

	t.Run("Names", func(t *testing.T) {
		names := ProfileTypeNames()
		assert.Len(t, names, 10)
		assert.IsIncreasing(t, names)
	})
}
