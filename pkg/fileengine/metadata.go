package fileengine

import (
	"context"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// SetMetadata sets key to value on the current version of uid.
func (c *Client) SetMetadata(ctx context.Context, uid, key, value string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "set_metadata", opts, logger.UID(uid), logger.Key(key))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodSetMetadata, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.SetMetadata(ctx, &fileservice.SetMetadataRequest{Auth: o.auth, UID: uid, Key: key, Value: value})
	})
	return ok
}

// GetMetadata returns the value of key on the current version of uid.
func (c *Client) GetMetadata(ctx context.Context, uid, key string, opts ...CallOption) (string, bool) {
	o, ok := c.begin(ctx, "get_metadata", opts, logger.UID(uid), logger.Key(key))
	if !ok {
		return "", false
	}

	resp, ok := call(o, fileservice.MethodGetMetadata, func(ctx context.Context) (*fileservice.MetadataValueResponse, error) {
		return c.svc.GetMetadata(ctx, &fileservice.GetMetadataRequest{Auth: o.auth, UID: uid, Key: key})
	})
	if !ok {
		return "", false
	}
	return resp.Value, true
}

// GetAllMetadata returns every metadata entry of the current version of uid.
// It returns nil on failure and an empty map when there is none.
func (c *Client) GetAllMetadata(ctx context.Context, uid string, opts ...CallOption) map[string]string {
	o, ok := c.begin(ctx, "get_all_metadata", opts, logger.UID(uid))
	if !ok {
		return nil
	}

	resp, ok := call(o, fileservice.MethodGetAllMetadata, func(ctx context.Context) (*fileservice.MetadataMapResponse, error) {
		return c.svc.GetAllMetadata(ctx, &fileservice.GetAllMetadataRequest{Auth: o.auth, UID: uid})
	})
	if !ok {
		return nil
	}
	return nonNilMap(resp.Metadata)
}

// DeleteMetadata removes key from the current version of uid.
func (c *Client) DeleteMetadata(ctx context.Context, uid, key string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "delete_metadata", opts, logger.UID(uid), logger.Key(key))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodDeleteMetadata, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.DeleteMetadata(ctx, &fileservice.DeleteMetadataRequest{Auth: o.auth, UID: uid, Key: key})
	})
	return ok
}

// GetMetadataForVersion returns the value of key on one version of uid.
func (c *Client) GetMetadataForVersion(ctx context.Context, uid, version, key string, opts ...CallOption) (string, bool) {
	o, ok := c.begin(ctx, "get_metadata_for_version", opts, logger.UID(uid), logger.Version(version), logger.Key(key))
	if !ok {
		return "", false
	}

	resp, ok := call(o, fileservice.MethodGetMetadataForVersion, func(ctx context.Context) (*fileservice.MetadataValueResponse, error) {
		return c.svc.GetMetadataForVersion(ctx, &fileservice.GetMetadataForVersionRequest{
			Auth:             o.auth,
			UID:              uid,
			VersionTimestamp: version,
			Key:              key,
		})
	})
	if !ok {
		return "", false
	}
	return resp.Value, true
}

// GetAllMetadataForVersion returns every metadata entry of one version of uid.
func (c *Client) GetAllMetadataForVersion(ctx context.Context, uid, version string, opts ...CallOption) map[string]string {
	o, ok := c.begin(ctx, "get_all_metadata_for_version", opts, logger.UID(uid), logger.Version(version))
	if !ok {
		return nil
	}

	resp, ok := call(o, fileservice.MethodGetAllMetadataForVersion, func(ctx context.Context) (*fileservice.MetadataMapResponse, error) {
		return c.svc.GetAllMetadataForVersion(ctx, &fileservice.GetAllMetadataForVersionRequest{Auth: o.auth, UID: uid, VersionTimestamp: version})
	})
	if !ok {
		return nil
	}
	return nonNilMap(resp.Metadata)
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
