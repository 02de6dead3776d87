package fileengine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// Touch creates an empty file named name under parentUID and returns its uid.
func (c *Client) Touch(ctx context.Context, parentUID, name string, opts ...CallOption) (string, bool) {
	o, ok := c.begin(ctx, "touch", opts, logger.ParentUID(parentUID), logger.Name(name))
	if !ok {
		return "", false
	}

	resp, ok := call(o, fileservice.MethodTouch, func(ctx context.Context) (*fileservice.CreateResponse, error) {
		return c.svc.Touch(ctx, &fileservice.TouchRequest{Auth: o.auth, ParentUID: parentUID, Name: name})
	})
	if !ok {
		return "", false
	}
	return resp.UID, true
}

// Put stores payload as a new version of uid. See PutResult for how the
// returned version is chosen.
func (c *Client) Put(ctx context.Context, uid string, payload []byte, opts ...CallOption) (PutResult, bool) {
	o, ok := c.begin(ctx, "put", opts, logger.UID(uid), logger.Bytes(len(payload)))
	if !ok {
		return PutResult{}, false
	}

	resp, ok := call(o, fileservice.MethodPutFile, func(ctx context.Context) (*fileservice.PutFileResponse, error) {
		return c.svc.PutFile(ctx, &fileservice.PutFileRequest{Auth: o.auth, UID: uid, Data: payload})
	})
	if !ok {
		return PutResult{}, false
	}
	return putResult(resp.VersionTimestamp, time.Now()), true
}

// PutString stores s, encoded as UTF-8, as a new version of uid.
func (c *Client) PutString(ctx context.Context, uid, s string, opts ...CallOption) (PutResult, bool) {
	return c.Put(ctx, uid, []byte(s), opts...)
}

// OpenWriter always fails with ErrStreamingWriteUnsupported.
func (c *Client) OpenWriter(_ context.Context, uid string, _ ...CallOption) (io.WriteCloser, error) {
	return nil, fmt.Errorf("open writer for %s: %w", uid, ErrStreamingWriteUnsupported)
}

func putResult(serverVersion string, now time.Time) PutResult {
	if serverVersion != "" {
		ts, ok := ParseVersionTime(serverVersion)
		if !ok {
			ts = now
		}
		return PutResult{Version: serverVersion, Timestamp: ts, ServerAssigned: true}
	}
	return PutResult{Version: formatUnixSeconds(now), Timestamp: now}
}

func formatUnixSeconds(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}

// ParseVersionTime reads a version marker as unix seconds (with an optional
// fraction of up to nine digits) or RFC 3339.
func ParseVersionTime(v string) (time.Time, bool) {
	if t, ok := parseUnixSeconds(v); ok {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseUnixSeconds parses "<sec>[.<frac>]" as integers so that fractions
// keep full nanosecond precision. Digits past the ninth are truncated.
func parseUnixSeconds(v string) (time.Time, bool) {
	secPart, frac, hasFrac := strings.Cut(v, ".")
	if secPart == "" || strings.ContainsAny(secPart, "+-") {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	if !hasFrac {
		return time.Unix(sec, 0), true
	}
	if frac == "" || strings.Trim(frac, "0123456789") != "" {
		return time.Time{}, false
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	nsec, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, nsec), true
}

// Get returns the content of uid, back versions behind the latest (0 is the
// latest). It fails when back is negative or not smaller than the number of
// versions; no content is fetched then.
func (c *Client) Get(ctx context.Context, uid string, back int, opts ...CallOption) (*bytes.Reader, bool) {
	o, ok := c.begin(ctx, "get", opts, logger.UID(uid), logger.Back(back))
	if !ok {
		return nil, false
	}

	versions, ok := c.listVersions(o, uid)
	if !ok {
		return nil, false
	}
	if back < 0 || back >= len(versions) {
		logger.DebugCtx(o.ctx, "fileengine: version out of range",
			logger.UID(uid), logger.Back(back), "versions", len(versions))
		return nil, false
	}

	version := versions[back]
	resp, ok := call(o, fileservice.MethodGetVersion, func(ctx context.Context) (*fileservice.GetVersionResponse, error) {
		return c.svc.GetVersion(ctx, &fileservice.GetVersionRequest{Auth: o.auth, UID: uid, VersionTimestamp: version})
	})
	if !ok {
		return nil, false
	}
	return bytes.NewReader(resp.Data), true
}

// Revisions lists the versions of uid in the order returned by the server,
// newest first. The service does not record who wrote a version; User is the
// resolved user of this call.
func (c *Client) Revisions(ctx context.Context, uid string, opts ...CallOption) []Revision {
	o, ok := c.begin(ctx, "revisions", opts, logger.UID(uid))
	if !ok {
		return nil
	}

	versions, ok := c.listVersions(o, uid)
	if !ok {
		return nil
	}

	name := revisionName(uid)
	revs := make([]Revision, len(versions))
	for i, v := range versions {
		revs[i] = Revision{Version: v, Name: name, User: o.desc.User}
	}
	return revs
}

func (c *Client) listVersions(o *operation, uid string) ([]string, bool) {
	resp, ok := call(o, fileservice.MethodListVersions, func(ctx context.Context) (*fileservice.ListVersionsResponse, error) {
		return c.svc.ListVersions(ctx, &fileservice.ListVersionsRequest{Auth: o.auth, UID: uid})
	})
	if !ok {
		return nil, false
	}
	if resp.Versions == nil {
		return []string{}, true
	}
	return resp.Versions, true
}

func (c *Client) stat(o *operation, uid string) (*FileInfo, bool) {
	resp, ok := call(o, fileservice.MethodStat, func(ctx context.Context) (*fileservice.StatResponse, error) {
		return c.svc.Stat(ctx, &fileservice.StatRequest{Auth: o.auth, UID: uid})
	})
	if !ok || resp.Info == nil {
		return nil, false
	}
	return fileInfoFromWire(resp.Info), true
}

// Stat describes uid.
func (c *Client) Stat(ctx context.Context, uid string, opts ...CallOption) *FileInfo {
	o, ok := c.begin(ctx, "stat", opts, logger.UID(uid))
	if !ok {
		return nil
	}
	info, _ := c.stat(o, uid)
	return info
}

// FileMtime returns the modification time of uid.
func (c *Client) FileMtime(ctx context.Context, uid string, opts ...CallOption) (time.Time, bool) {
	info := c.Stat(ctx, uid, opts...)
	if info == nil {
		return time.Time{}, false
	}
	return info.Modified, true
}

// FolderCreated returns the creation time of uid.
func (c *Client) FolderCreated(ctx context.Context, uid string, opts ...CallOption) (time.Time, bool) {
	info := c.Stat(ctx, uid, opts...)
	if info == nil {
		return time.Time{}, false
	}
	return info.Created, true
}

// FileName returns the name of uid as a one-element slice, or nil.
func (c *Client) FileName(ctx context.Context, uid string, opts ...CallOption) []string {
	info := c.Stat(ctx, uid, opts...)
	if info == nil {
		return nil
	}
	return []string{info.Name}
}

// GetParent is not supported by the service and always returns "".
func (c *Client) GetParent(_ context.Context, _ string, _ ...CallOption) string {
	return ""
}

// PathToUID is not supported by the service and always fails.
func (c *Client) PathToUID(_ context.Context, _ string, _ ...CallOption) (string, bool) {
	return "", false
}

// UIDToPath is not supported by the service and always returns nil.
func (c *Client) UIDToPath(_ context.Context, _ string, _ ...CallOption) []string {
	return nil
}
