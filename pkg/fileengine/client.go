// Package fileengine is a client for the FileEngine file service.
//
// A Client exposes filesystem-like operations (directories, files, versions,
// metadata and permissions) over the fileservice.FileService gRPC API. Every
// operation resolves an authentication descriptor from the client's session
// defaults and the per-call options, sends one request (or a short fixed
// sequence for Dir, Remove and Move), and shapes the response into a plain
// value.
//
// Operations never return errors. A transport failure or a server-side
// rejection yields the operation's failure value (false, ("", false), nil)
// and is logged: transport failures at WARN, rejections at DEBUG with the
// server's error text. OpenWriter is the only method returning an error.
package fileengine

import (
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/authctx"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

var (
	// ErrStreamingWriteUnsupported is returned by OpenWriter: the service has
	// no streaming upload, use Put instead.
	ErrStreamingWriteUnsupported = errors.New("fileengine: streaming write is not supported, use Put")

	// ErrEmptyAddress is returned by New when no server address is given.
	ErrEmptyAddress = errors.New("fileengine: server address is required")
)

// Client is a FileEngine client bound to one connection and one session.
// It is safe for concurrent use.
type Client struct {
	svc     fileservice.FileServiceClient
	session *authctx.Session
	opts    options

	conn      *grpc.ClientConn
	closeOnce sync.Once

	mu       sync.RWMutex
	resolver any
}

// New connects to the FileService at address. The connection is created
// lazily by gRPC: New does not fail when the server is down, the first
// operation does.
func New(address string, defaults authctx.Defaults, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(o.creds)}
	if len(o.interceptors) > 0 {
		dialOpts = append(dialOpts, grpc.WithChainUnaryInterceptor(o.interceptors...))
	}
	dialOpts = append(dialOpts, o.dialOptions...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", address, err)
	}

	c := newClient(fileservice.NewFileServiceClient(conn), defaults, o)
	c.conn = conn

	logger.Debug("fileengine client created",
		logger.Address(address),
		logger.User(c.session.Defaults().User),
		logger.Tenant(c.session.Defaults().Tenant))
	return c, nil
}

// NewWithService wraps an existing FileServiceClient. Close does not touch
// the transport of svc.
func NewWithService(svc fileservice.FileServiceClient, defaults authctx.Defaults, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newClient(svc, defaults, o)
}

func newClient(svc fileservice.FileServiceClient, defaults authctx.Defaults, o options) *Client {
	return &Client{
		svc:     svc,
		session: authctx.NewSession(defaults),
		opts:    o,
	}
}

// Close releases the connection. It is idempotent: calls after the first
// return nil. Operations on a closed client return their failure value.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}

// Session returns the client's session.
func (c *Client) Session() *authctx.Session {
	return c.session
}

// SetUserInformation replaces the default user, roles and claims. Empty
// arguments keep the current defaults.
func (c *Client) SetUserInformation(user string, roles []string, claims []authctx.Claim) {
	c.session.SetIdentity(user, roles, claims)
}

// SetPermissionResolver stores r. The client does not consult it; it is kept
// for callers that attach a resolver to the client and read it back.
func (c *Client) SetPermissionResolver(r any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolver = r
}

// PermissionResolver returns the value stored by SetPermissionResolver.
func (c *Client) PermissionResolver() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolver
}
