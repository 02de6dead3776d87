package fileengine

import (
	"context"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// Move moves srcUID under dstParentUID. With WithNewName the entity is then
// renamed with the same identity, and the result is the rename's; the
// rename is not attempted when the move fails.
func (c *Client) Move(ctx context.Context, srcUID, dstParentUID string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "move", opts, logger.UID(srcUID), logger.ParentUID(dstParentUID))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodMove, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.Move(ctx, &fileservice.MoveRequest{Auth: o.auth, SourceUID: srcUID, DestinationParentUID: dstParentUID})
	})
	if !ok {
		return false
	}

	if o.opts.newName == "" {
		return true
	}
	return c.rename(o, srcUID, o.opts.newName)
}

// Copy copies srcUID under dstParentUID.
func (c *Client) Copy(ctx context.Context, srcUID, dstParentUID string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "copy", opts, logger.UID(srcUID), logger.ParentUID(dstParentUID))
	if !ok {
		return false
	}

	_, ok = call(o, fileservice.MethodCopy, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.Copy(ctx, &fileservice.CopyRequest{Auth: o.auth, SourceUID: srcUID, DestinationParentUID: dstParentUID})
	})
	return ok
}

// Remove deletes uid, as a directory or a file depending on its type. The
// type is read with Stat first; if Stat cannot reach the server nothing is
// removed, and if the server rejects the Stat uid is removed as a file.
func (c *Client) Remove(ctx context.Context, uid string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "remove", opts, logger.UID(uid))
	if !ok {
		return false
	}

	st, ok := transport(o, fileservice.MethodStat, func(ctx context.Context) (*fileservice.StatResponse, error) {
		return c.svc.Stat(ctx, &fileservice.StatRequest{Auth: o.auth, UID: uid})
	})
	if !ok {
		return false
	}

	if st.Success && st.Info != nil && st.Info.Type == Directory {
		_, ok = call(o, fileservice.MethodRemoveDirectory, func(ctx context.Context) (*fileservice.OperationResponse, error) {
			return c.svc.RemoveDirectory(ctx, &fileservice.RemoveDirectoryRequest{Auth: o.auth, UID: uid})
		})
		return ok
	}

	_, ok = call(o, fileservice.MethodRemoveFile, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.RemoveFile(ctx, &fileservice.RemoveFileRequest{Auth: o.auth, UID: uid})
	})
	return ok
}

// Rename gives uid a new name in place.
func (c *Client) Rename(ctx context.Context, uid, newName string, opts ...CallOption) bool {
	o, ok := c.begin(ctx, "rename", opts, logger.UID(uid), logger.Name(newName))
	if !ok {
		return false
	}
	return c.rename(o, uid, newName)
}

func (c *Client) rename(o *operation, uid, newName string) bool {
	_, ok := call(o, fileservice.MethodRename, func(ctx context.Context) (*fileservice.OperationResponse, error) {
		return c.svc.Rename(ctx, &fileservice.RenameRequest{Auth: o.auth, UID: uid, NewName: newName})
	})
	return ok
}
