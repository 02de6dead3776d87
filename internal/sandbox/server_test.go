package sandbox

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/marmos91/fileengine/pkg/authctx"
	"github.com/marmos91/fileengine/pkg/fileengine"
	"github.com/marmos91/fileengine/pkg/fileservice"
	"github.com/marmos91/fileengine/pkg/metrics"
)

// startSandbox serves a fresh sandbox over an in-memory listener and returns
// a client connected to it as defaults.
func startSandbox(t *testing.T, defaults authctx.Defaults, rpcMetrics *metrics.RPCMetrics) *fileengine.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := &Server{Service: NewService(NewStore()), RPCMetrics: rpcMetrics}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, lis) }()

	client, err := fileengine.New("passthrough:///bufnet", defaults,
		fileengine.WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		})))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		cancel()
		assert.NoError(t, <-done)
	})
	return client
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestClientAgainstSandbox(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := startSandbox(t, authctx.Defaults{
		User:   "root",
		Tenant: "acme",
		Roles:  []string{"admin", "superuser"},
		Claims: authctx.Flags("demo"),
	}, metrics.NewServerRPCMetrics(reg))
	ctx := context.Background()

	home, ok := c.Mkdir(ctx, "", "home")
	require.True(t, ok)
	archive, ok := c.Mkdir(ctx, "", "archive")
	require.True(t, ok)

	file, ok := c.Touch(ctx, home, "notes.txt")
	require.True(t, ok)

	_, ok = c.Touch(ctx, home, "notes.txt")
	assert.False(t, ok, "duplicate name")

	first, ok := c.PutString(ctx, file, "first draft")
	require.True(t, ok)
	assert.True(t, first.ServerAssigned)
	second, ok := c.PutString(ctx, file, "second draft")
	require.True(t, ok)

	t.Run("Get", func(t *testing.T) {
		r, ok := c.Get(ctx, file, 0)
		require.True(t, ok)
		assert.Equal(t, "second draft", readAll(t, r))

		r, ok = c.Get(ctx, file, 1)
		require.True(t, ok)
		assert.Equal(t, "first draft", readAll(t, r))

		_, ok = c.Get(ctx, file, 2)
		assert.False(t, ok)
	})

	t.Run("Revisions", func(t *testing.T) {
		revs := c.Revisions(ctx, file)
		require.Len(t, revs, 2)
		assert.Equal(t, second.Version, revs[0].Version)
		assert.Equal(t, first.Version, revs[1].Version)
		assert.Equal(t, "root", revs[0].User)
	})

	t.Run("Dir", func(t *testing.T) {
		entries := c.Dir(ctx, home, false)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes.txt", entries[0].Name)
		assert.Equal(t, second.Version, entries[0].Version)
		assert.Equal(t, "root", entries[0].UploadingUser)
		assert.False(t, entries[0].Mtime.IsZero())

		root := c.Dir(ctx, "", false)
		assert.Len(t, root, 2)
		assert.True(t, c.IsDir(ctx, home))
		assert.False(t, c.IsDir(ctx, file))
	})

	t.Run("Metadata", func(t *testing.T) {
		require.True(t, c.SetMetadata(ctx, file, "owner", "ops"))
		v, ok := c.GetMetadata(ctx, file, "owner")
		require.True(t, ok)
		assert.Equal(t, "ops", v)
		assert.Equal(t, map[string]string{"owner": "ops"}, c.GetAllMetadata(ctx, file))

		// versions written before the key was set do not carry it
		_, ok = c.GetMetadataForVersion(ctx, file, second.Version, "owner")
		assert.False(t, ok)
		assert.Equal(t, map[string]string{}, c.GetAllMetadataForVersion(ctx, file, second.Version))

		require.True(t, c.DeleteMetadata(ctx, file, "owner"))
		_, ok = c.GetMetadata(ctx, file, "owner")
		assert.False(t, ok)
	})

	t.Run("Permissions", func(t *testing.T) {
		assert.True(t, c.CheckPermission(ctx, file, fileengine.PermWrite))

		guest := []fileengine.CallOption{fileengine.WithUser("guest"), fileengine.WithRoles()}
		assert.False(t, c.CheckPermission(ctx, file, fileengine.PermRead, guest...))
		require.True(t, c.GrantPermission(ctx, file, "guest", fileengine.PermRead))
		assert.True(t, c.CheckPermission(ctx, file, fileengine.PermRead, guest...))
		require.True(t, c.RevokePermission(ctx, file, "guest", fileengine.PermRead))
		assert.False(t, c.CheckPermission(ctx, file, fileengine.PermRead, guest...))
	})

	t.Run("MoveWithRename", func(t *testing.T) {
		require.True(t, c.Move(ctx, file, archive, fileengine.WithNewName("notes-2024.txt")))
		info := c.Stat(ctx, file)
		require.NotNil(t, info)
		assert.Equal(t, archive, info.ParentUID)
		assert.Equal(t, []string{"notes-2024.txt"}, c.FileName(ctx, file))
		assert.Empty(t, c.Dir(ctx, home, false))
	})

	t.Run("CopyAndRemove", func(t *testing.T) {
		require.True(t, c.Copy(ctx, archive, home))
		assert.Len(t, c.Dir(ctx, home, false), 1)

		require.True(t, c.Remove(ctx, file))
		assert.False(t, c.EntityExists(ctx, file))
		assert.Empty(t, c.Dir(ctx, archive, false))

		deleted := c.Dir(ctx, archive, true)
		require.Len(t, deleted, 1)
		assert.True(t, deleted[0].Deleted)

		require.True(t, c.UndeleteFile(ctx, file))
		assert.True(t, c.EntityExists(ctx, file))
		assert.False(t, c.UndeleteFile(ctx, file))
	})

	t.Run("VersionMaintenance", func(t *testing.T) {
		restored, ok := c.RestoreToVersion(ctx, file, first.Version)
		require.True(t, ok)
		assert.NotEqual(t, first.Version, restored)

		r, ok := c.Get(ctx, file, 0)
		require.True(t, ok)
		assert.Equal(t, "first draft", readAll(t, r))

		require.True(t, c.PurgeOldVersions(ctx, file, 1))
		assert.Len(t, c.Revisions(ctx, file), 1)
	})

	t.Run("Tenant", func(t *testing.T) {
		usage := c.StorageUsage(ctx)
		require.NotNil(t, usage)
		assert.Equal(t, DefaultCapacity, usage.TotalSpace)
		assert.Positive(t, usage.UsedSpace)

		assert.True(t, c.TriggerSync(ctx))
		assert.False(t, c.EntityExists(ctx, file, fileengine.WithTenant("globex")))
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, ok := c.Mkdir(ctx, "", "anon", fileengine.WithUser(""))
		assert.False(t, ok)
	})

	series, err := testutil.GatherAndCount(reg, "fileengine_sandbox_rpc_requests_total")
	require.NoError(t, err)
	assert.Positive(t, series)
}

func TestServeAborted(t *testing.T) {
	c := startSandbox(t, authctx.Defaults{User: "alice"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := c.Mkdir(ctx, "", "x")
	assert.False(t, ok)

	_, ok = c.Mkdir(context.Background(), "", "x")
	assert.True(t, ok)
}

func TestServiceRejections(t *testing.T) {
	svc := NewService(NewStore())
	ctx := context.Background()

	resp, err := svc.Stat(ctx, &fileservice.StatRequest{UID: "x"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "authentication required", resp.Error)

	auth := &fileservice.AuthenticationContext{User: "alice", Tenant: "acme"}
	resp, err = svc.Stat(ctx, &fileservice.StatRequest{Auth: auth, UID: "x"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "not found")

	usage, err := svc.GetStorageUsage(ctx, &fileservice.StorageUsageRequest{Auth: auth})
	require.NoError(t, err)
	assert.True(t, usage.Success)
	assert.Equal(t, DefaultCapacity, usage.AvailableSpace)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Stat(cancelled, &fileservice.StatRequest{Auth: auth, UID: "x"})
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	srv := NewServer("localhost:0", "localhost:0", nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, fileservice.ServiceName, health.Service)
}
