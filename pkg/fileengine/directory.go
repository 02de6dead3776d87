package fileengine

import (
	"context"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// Mkdir creates a directory named name under parentUID and returns its uid.
func (c *Client) Mkdir(ctx context.Context, parentUID, name string, opts ...CallOption) (string, bool) {
	o, ok := c.begin(ctx, "mkdir", opts, logger.ParentUID(parentUID), logger.Name(name))
	if !ok {
		return "", false
	}

	resp, ok := call(o, fileservice.MethodMakeDirectory, func(ctx context.Context) (*fileservice.CreateResponse, error) {
		return c.svc.MakeDirectory(ctx, &fileservice.MakeDirectoryRequest{Auth: o.auth, ParentUID: parentUID, Name: name})
	})
	if !ok {
		return "", false
	}
	return resp.UID, true
}

// MkdirPath would create every directory of path. The service has no path
// resolution, so it always fails without contacting the server.
func (c *Client) MkdirPath(_ context.Context, path string, _ ...CallOption) (string, bool) {
	logger.Debug("fileengine: path operations are not supported", logger.Operation("mkdir_path"), "path", path)
	return "", false
}

// Dir lists the children of the directory uid, including soft-deleted ones
// when showDeleted is set. Regular files are enriched with their latest
// version and modification time; enrichment is best-effort and a failure
// leaves those fields empty without failing the listing.
//
// A failed listing returns nil; an empty directory returns an empty slice.
func (c *Client) Dir(ctx context.Context, uid string, showDeleted bool, opts ...CallOption) []DirEntry {
	o, ok := c.begin(ctx, "dir", opts, logger.UID(uid))
	if !ok {
		return nil
	}

	method := fileservice.MethodListDirectory
	list := func(ctx context.Context) (*fileservice.ListDirectoryResponse, error) {
		return c.svc.ListDirectory(ctx, &fileservice.ListDirectoryRequest{Auth: o.auth, UID: uid})
	}
	if showDeleted {
		method = fileservice.MethodListDirectoryWithDeleted
		list = func(ctx context.Context) (*fileservice.ListDirectoryResponse, error) {
			return c.svc.ListDirectoryWithDeleted(ctx, &fileservice.ListDirectoryWithDeletedRequest{Auth: o.auth, UID: uid})
		}
	}

	resp, ok := call(o, method, list)
	if !ok {
		return nil
	}

	entries := make([]DirEntry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		if e == nil {
			continue
		}
		entry := DirEntry{
			UID:         e.UID,
			Name:        e.Name,
			Type:        e.Type,
			IsContainer: e.Type == Directory,
			Size:        e.Size,
			Deleted:     e.Deleted,
			Creator:     o.desc.User,
		}
		if e.Type == RegularFile {
			c.enrichFile(o, &entry)
		}
		entries = append(entries, entry)
	}

	logger.DebugCtx(o.ctx, "fileengine: dir listed", logger.UID(uid), logger.Entries(len(entries)))
	return entries
}

// enrichFile fills the version fields of a regular file entry using the
// listing's own identity.
func (c *Client) enrichFile(o *operation, entry *DirEntry) {
	versions, ok := c.listVersions(o, entry.UID)
	if !ok || len(versions) == 0 {
		return
	}
	entry.Version = versions[0]
	entry.UploadingUser = o.desc.User

	if info, ok := c.stat(o, entry.UID); ok {
		entry.Mtime = info.Modified
	}
}

// IsDir reports whether uid is a directory. Any failure reports false.
func (c *Client) IsDir(ctx context.Context, uid string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "is_dir", opts, logger.UID(uid))
	if !ok {
		return false
	}
	info, ok := c.stat(o, uid)
	return ok && info.IsDir()
}

// EntityExists reports whether uid exists. The server's answer is read
// directly; only a transport failure is turned into false.
func (c *Client) EntityExists(ctx context.Context, uid string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "exists", opts, logger.UID(uid))
	if !ok {
		return false
	}

	resp, ok := transport(o, fileservice.MethodExists, func(ctx context.Context) (*fileservice.ExistsResponse, error) {
		return c.svc.Exists(ctx, &fileservice.ExistsRequest{Auth: o.auth, UID: uid})
	})
	if !ok {
		return false
	}
	return resp.Exists
}
