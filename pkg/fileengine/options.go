package fileengine

import (
	"crypto/tls"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/marmos91/fileengine/pkg/authctx"
)

// ============================================================================
// Client options
// ============================================================================

type options struct {
	creds        credentials.TransportCredentials
	interceptors []grpc.UnaryClientInterceptor
	dialOptions  []grpc.DialOption
	callTimeout  time.Duration
}

func defaultOptions() options {
	return options{creds: insecure.NewCredentials()}
}

// Option configures a Client.
type Option func(*options)

// WithTLS uses TLS instead of the default insecure channel. A nil config uses
// the system roots.
func WithTLS(cfg *tls.Config) Option {
	return func(o *options) {
		if cfg == nil {
			cfg = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		o.creds = credentials.NewTLS(cfg)
	}
}

// WithUnaryInterceptors chains interceptors around every RPC, in order.
func WithUnaryInterceptors(interceptors ...grpc.UnaryClientInterceptor) Option {
	return func(o *options) {
		o.interceptors = append(o.interceptors, interceptors...)
	}
}

// WithDialOptions appends raw gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dialOptions = append(o.dialOptions, opts...)
	}
}

// WithCallTimeout bounds each RPC whose context has no deadline. Zero
// disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(o *options) {
		o.callTimeout = d
	}
}

// ============================================================================
// Per-call options
// ============================================================================

type callOptions struct {
	overrides authctx.Overrides
	identity  *authctx.Descriptor
	newName   string
}

// CallOption overrides the identity of one operation, or sets an
// operation-specific argument.
type CallOption func(*callOptions)

// WithUser sends user instead of the session default.
func WithUser(user string) CallOption {
	return func(o *callOptions) {
		o.overrides.User = authctx.Some(user)
	}
}

// WithTenant sends tenant instead of the session default. An empty tenant is
// sent as empty.
func WithTenant(tenant string) CallOption {
	return func(o *callOptions) {
		o.overrides.Tenant = authctx.Some(tenant)
	}
}

// WithRoles sends roles instead of the session default. An empty, non-nil
// list is sent as empty.
func WithRoles(roles ...string) CallOption {
	return func(o *callOptions) {
		if roles == nil {
			roles = []string{}
		}
		o.overrides.Roles = authctx.Some(roles)
	}
}

// WithClaims sends claims instead of the session default.
func WithClaims(claims ...authctx.Claim) CallOption {
	return func(o *callOptions) {
		if claims == nil {
			claims = []authctx.Claim{}
		}
		o.overrides.Claims = authctx.Some(claims)
	}
}

// WithIdentity sends d as is, bypassing the session and the other identity
// options.
func WithIdentity(d authctx.Descriptor) CallOption {
	return func(o *callOptions) {
		o.identity = &d
	}
}

// WithNewName makes Move rename the entity after moving it.
func WithNewName(name string) CallOption {
	return func(o *callOptions) {
		o.newName = name
	}
}

func collectCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
