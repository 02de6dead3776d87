package fileengine

import (
	"context"
	"math"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// requestTenant is the tenant sent in the body of tenant-scoped requests: a
// non-empty WithTenant override, else the session tenant.
func (c *Client) requestTenant(o *operation) string {
	if o.opts.identity != nil && o.opts.identity.Tenant != "" {
		return o.opts.identity.Tenant
	}
	if t := o.opts.overrides.Tenant.Value(); t != "" {
		return t
	}
	return c.session.Defaults().Tenant
}

// StorageUsage returns the storage accounting of the tenant.
func (c *Client) StorageUsage(ctx context.Context, opts ...CallOption) *StorageUsage {
	o, ok := c.begin(ctx, "storage_usage", opts)
	if !ok {
		return nil
	}

	tenant := c.requestTenant(o)
	resp, ok := call(o, fileservice.MethodGetStorageUsage, func(ctx context.Context) (*fileservice.StorageUsageResponse, error) {
		return c.svc.GetStorageUsage(ctx, &fileservice.StorageUsageRequest{Auth: o.auth, Tenant: tenant})
	})
	if !ok {
		return nil
	}
	return &StorageUsage{
		TotalSpace:      resp.TotalSpace,
		UsedSpace:       resp.UsedSpace,
		AvailableSpace:  resp.AvailableSpace,
		UsagePercentage: resp.UsagePercentage,
	}
}

// TriggerSync asks the server to synchronize the tenant's storage.
func (c *Client) TriggerSync(ctx context.Context, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "trigger_sync", opts)
	if !ok {
		return false
	}

	tenant := c.requestTenant(o)
	_, ok = call(o, fileservice.MethodTriggerSync, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.TriggerSync(ctx, &fileservice.TriggerSyncRequest{Auth: o.auth, Tenant: tenant})
	})
	return ok
}

// UndeleteFile restores a soft-deleted uid.
func (c *Client) UndeleteFile(ctx context.Context, uid string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "undelete", opts, logger.UID(uid))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodUndeleteFile, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.UndeleteFile(ctx, &fileservice.UndeleteFileRequest{Auth: o.auth, UID: uid})
	})
	return ok
}

// RestoreToVersion makes version the current content of uid and returns the
// version the server reports as restored.
func (c *Client) RestoreToVersion(ctx context.Context, uid, version string, opts ...CallOption) (string, bool) {
	o, ok := c.begin(ctx, "restore_to_version", opts, logger.UID(uid), logger.Version(version))
	if !ok {
		return "", false
	}

	resp, ok := call(o, fileservice.MethodRestoreToVersion, func(ctx context.Context) (*fileservice.RestoreToVersionResponse, error) {
		return c.svc.RestoreToVersion(ctx, &fileservice.RestoreToVersionRequest{Auth: o.auth, UID: uid, VersionTimestamp: version})
	})
	if !ok {
		return "", false
	}
	return resp.RestoredVersion, true
}

// PurgeOldVersions deletes all but the keep newest versions of uid.
func (c *Client) PurgeOldVersions(ctx context.Context, uid string, keep int, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "purge_old_versions", opts, logger.UID(uid), "keep", keep)
	if !ok {
		return false
	}
	if keep < 0 || keep > math.MaxInt32 {
		logger.DebugCtx(o.ctx, "fileengine: keep count out of range", logger.UID(uid), "keep", keep)
		return false
	}

	_, ok = call(o, fileservice.MethodPurgeOldVersions, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.PurgeOldVersions(ctx, &fileservice.PurgeOldVersionsRequest{Auth: o.auth, UID: uid, KeepCount: int32(keep)})
	})
	return ok
}
