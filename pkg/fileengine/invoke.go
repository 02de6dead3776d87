package fileengine

import (
	"context"
	"slices"
	"time"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/internal/telemetry"
	"github.com/marmos91/fileengine/pkg/authctx"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// operation is one public call in flight: its resolved identity, the
// request-level auth message and the fields attached to its log lines.
type operation struct {
	c     *Client
	ctx   context.Context
	name  string
	desc  authctx.Descriptor
	auth  *fileservice.AuthenticationContext
	opts  callOptions
	attrs []any
	start time.Time
}

// begin resolves the descriptor of an operation. It fails only on a claim
// with an invalid shape, which is logged; no RPC is made in that case.
func (c *Client) begin(ctx context.Context, name string, opts []CallOption, attrs ...any) (*operation, bool) {
	co := collectCallOptions(opts)

	var desc authctx.Descriptor
	if co.identity != nil {
		desc = cloneDescriptor(*co.identity)
	} else {
		d, err := c.session.Resolve(co.overrides)
		if err != nil {
			logger.Warn("fileengine: invalid call identity",
				append([]any{logger.Operation(name), logger.Err(err)}, attrs...)...)
			return nil, false
		}
		desc = d
	}

	lc := logger.NewLogContext(name).
		WithIdentity(desc.User, desc.Tenant).
		WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
	ctx = logger.WithContext(ctx, lc)
	logger.DebugCtx(ctx, "fileengine: identity resolved",
		append([]any{logger.Roles(desc.Roles), logger.Claims(desc.ClaimKeys())}, attrs...)...)

	return &operation{
		c:     c,
		ctx:   ctx,
		name:  name,
		desc:  desc,
		auth:  authMessage(desc),
		opts:  co,
		attrs: attrs,
		start: lc.StartTime,
	}, true
}

func cloneDescriptor(d authctx.Descriptor) authctx.Descriptor {
	out := authctx.Descriptor{User: d.User, Tenant: d.Tenant, Roles: slices.Clone(d.Roles)}
	if out.Roles == nil {
		out.Roles = []string{}
	}
	out.Claims = make(map[string]string, len(d.Claims))
	for k, v := range d.Claims {
		out.Claims[k] = v
	}
	return out
}

func authMessage(d authctx.Descriptor) *fileservice.AuthenticationContext {
	return &fileservice.AuthenticationContext{
		User:   d.User,
		Roles:  d.Roles,
		Tenant: d.Tenant,
		Claims: d.Claims,
	}
}

// rpcContext applies the client's per-call timeout when ctx has no deadline.
func (o *operation) rpcContext() (context.Context, context.CancelFunc) {
	if o.c.opts.callTimeout <= 0 {
		return o.ctx, func() {}
	}
	if _, ok := o.ctx.Deadline(); ok {
		return o.ctx, func() {}
	}
	return context.WithTimeout(o.ctx, o.c.opts.callTimeout)
}

// transport issues one RPC. The boolean is false when the RPC itself failed
// (connection, deadline, status error); the response is not inspected.
func transport[R any](o *operation, method string, rpc func(ctx context.Context) (R, error)) (R, bool) {
	ctx, cancel := o.rpcContext()
	defer cancel()

	resp, err := rpc(ctx)
	if err != nil {
		logger.WarnCtx(o.ctx, "fileengine: rpc failed",
			append([]any{logger.Method(method), logger.Err(err), logger.DurationMs(logger.Duration(o.start))}, o.attrs...)...)
		var zero R
		return zero, false
	}
	return resp, true
}

// accepted reports whether the server accepted the request, logging the
// server's error text when it did not.
func accepted(o *operation, method string, resp fileservice.Reply) bool {
	ok, msg := resp.Outcome()
	if !ok {
		logger.DebugCtx(o.ctx, "fileengine: request rejected",
			append([]any{logger.Method(method), logger.ErrMsg(msg)}, o.attrs...)...)
	}
	return ok
}

// call is transport followed by accepted.
func call[R fileservice.Reply](o *operation, method string, rpc func(ctx context.Context) (R, error)) (R, bool) {
	resp, ok := transport(o, method, rpc)
	if !ok {
		return resp, false
	}
	if !accepted(o, method, resp) {
		return resp, false
	}
	logger.DebugCtx(o.ctx, "fileengine: "+o.name,
		append([]any{logger.Method(method), logger.DurationMs(logger.Duration(o.start))}, o.attrs...)...)
	return resp, true
}
