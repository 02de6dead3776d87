package fileengine

import (
	"context"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// GrantPermission grants perm on resourceUID to principal.
func (c *Client) GrantPermission(ctx context.Context, resourceUID, principal string, perm Permission, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "grant_permission", opts,
		logger.UID(resourceUID), logger.Principal(principal), logger.Permission(perm.String()))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodGrantPermission, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.GrantPermission(ctx, &fileservice.GrantPermissionRequest{
			Auth:        o.auth,
			ResourceUID: resourceUID,
			Principal:   principal,
			Permission:  perm,
		})
	})
	return ok
}

// RevokePermission revokes perm on resourceUID from principal.
func (c *Client) RevokePermission(ctx context.Context, resourceUID, principal string, perm Permission, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "revoke_permission", opts,
		logger.UID(resourceUID), logger.Principal(principal), logger.Permission(perm.String()))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodRevokePermission, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.RevokePermission(ctx, &fileservice.RevokePermissionRequest{
			Auth:        o.auth,
			ResourceUID: resourceUID,
			Principal:   principal,
			Permission:  perm,
		})
	})
	return ok
}

// CheckPermission reports whether the caller holds perm on resourceUID. The
// server's answer is read directly; only a transport failure is turned into
// false.
func (c *Client) CheckPermission(ctx context.Context, resourceUID string, perm Permission, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "check_permission", opts, logger.UID(resourceUID), logger.Permission(perm.String()))
	if !ok {
		return false
	}

	resp, ok := transport(o, fileservice.MethodCheckPermission, func(ctx context.Context) (*fileservice.CheckPermissionResponse, error) {
		return c.svc.CheckPermission(ctx, &fileservice.CheckPermissionRequest{
			Auth:               o.auth,
			ResourceUID:        resourceUID,
			RequiredPermission: perm,
		})
	})
	if !ok {
		return false
	}
	return resp.HasPermission
}

// ============================================================================
// Legacy role API
//
// The service replaced roles with per-principal grants. These methods keep
// the old surface compiling and never contact the server.
// ============================================================================

// AssignEntityToPermissions always returns false.
//
// Deprecated: use GrantPermission.
func (c *Client) AssignEntityToPermissions(_ context.Context, _, _ string) bool {
	return false
}

// CreatePermissionRole always returns false.
//
// Deprecated: use GrantPermission.
func (c *Client) CreatePermissionRole(_ context.Context, _ string, _ RoleFlags) bool {
	return false
}

// UpdatePermissionRole always returns false.
//
// Deprecated: use GrantPermission and RevokePermission.
func (c *Client) UpdatePermissionRole(_ context.Context, _ string, _ RoleFlags) bool {
	return false
}

// DeletePermissionRole always returns false.
//
// Deprecated: use RevokePermission.
func (c *Client) DeletePermissionRole(_ context.Context, _ string) bool {
	return false
}

// RemoveEntityFromPermissions always returns false.
//
// Deprecated: use RevokePermission.
func (c *Client) RemoveEntityFromPermissions(_ context.Context, _, _ string) bool {
	return false
}

// GetPermissionRoles always returns nil.
//
// Deprecated: roles are no longer exposed by the service.
func (c *Client) GetPermissionRoles(_ context.Context) []string {
	return nil
}

// GetEntityPermissions always returns nil.
//
// Deprecated: grants are no longer listable; use CheckPermission.
func (c *Client) GetEntityPermissions(_ context.Context, _ string) []string {
	return nil
}
