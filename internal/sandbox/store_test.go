package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fileengine/pkg/fileservice"
)

var (
	alice = Identity{User: "alice", Tenant: "acme", Roles: []string{"user"}}
	bob   = Identity{User: "bob", Tenant: "acme", Roles: []string{"editors"}}
	admin = Identity{User: "carol", Tenant: "acme", Roles: []string{"admin"}}
	other = Identity{User: "dave", Tenant: "globex"}
)

// frozenClock returns the same instant on every call.
func frozenClock() func() time.Time {
	t := time.Unix(1700000000, 0)
	return func() time.Time { return t }
}

func newTestStore(t *testing.T, opts ...StoreOption) (*Store, context.Context) {
	t.Helper()
	return NewStore(append([]StoreOption{WithClock(frozenClock())}, opts...)...), context.Background()
}

func mustCreate(t *testing.T, s *Store, id Identity, parent, name string, typ fileservice.FileType) string {
	t.Helper()
	uid, err := s.Create(context.Background(), id, parent, name, typ)
	require.NoError(t, err)
	return uid
}

func names(entries []*fileservice.DirectoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestCreate(t *testing.T) {
	s, ctx := newTestStore(t)

	dir := mustCreate(t, s, alice, "", "docs", fileservice.FileTypeDirectory)
	file := mustCreate(t, s, alice, dir, "a.txt", fileservice.FileTypeRegular)

	t.Run("NameConflict", func(t *testing.T) {
		_, err := s.Create(ctx, alice, dir, "a.txt", fileservice.FileTypeRegular)
		assert.Equal(t, ErrAlreadyExists, CodeOf(err))
	})

	t.Run("SameNameOtherTenant", func(t *testing.T) {
		_, err := s.Create(ctx, other, "", "docs", fileservice.FileTypeDirectory)
		assert.NoError(t, err)
	})

	t.Run("ParentIsFile", func(t *testing.T) {
		_, err := s.Create(ctx, alice, file, "x", fileservice.FileTypeRegular)
		assert.Equal(t, ErrNotDirectory, CodeOf(err))
	})

	t.Run("MissingParent", func(t *testing.T) {
		_, err := s.Create(ctx, alice, "nope", "x", fileservice.FileTypeRegular)
		assert.Equal(t, ErrNotFound, CodeOf(err))
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := s.Create(ctx, alice, "", "", fileservice.FileTypeDirectory)
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := s.Stat(ctx, alice, file)
		require.NoError(t, err)
		assert.Equal(t, "a.txt", info.Name)
		assert.Equal(t, "alice", info.Owner)
		assert.Equal(t, dir, info.ParentUID)
		assert.Equal(t, int64(1700000000), info.CreatedAt)
		assert.Empty(t, info.Version)
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		_, err := s.Stat(ctx, other, file)
		assert.Equal(t, ErrNotFound, CodeOf(err))
	})
}

func TestRemoveAndUndelete(t *testing.T) {
	s, ctx := newTestStore(t)
	dir := mustCreate(t, s, alice, "", "d", fileservice.FileTypeDirectory)
	file := mustCreate(t, s, alice, dir, "f", fileservice.FileTypeRegular)

	assert.Equal(t, ErrIsDirectory, CodeOf(s.Remove(ctx, alice, dir, fileservice.FileTypeRegular)))
	assert.Equal(t, ErrNotDirectory, CodeOf(s.Remove(ctx, alice, file, fileservice.FileTypeDirectory)))
	assert.Equal(t, ErrNotDeleted, CodeOf(s.Undelete(ctx, alice, file)))

	require.NoError(t, s.Remove(ctx, alice, file, fileservice.FileTypeRegular))

	exists, err := s.Exists(ctx, alice, file)
	require.NoError(t, err)
	assert.False(t, exists)

	live, err := s.List(ctx, alice, dir, false)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := s.List(ctx, alice, dir, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)

	t.Run("UndeleteBlockedByNewSibling", func(t *testing.T) {
		newer := mustCreate(t, s, alice, dir, "f", fileservice.FileTypeRegular)
		assert.Equal(t, ErrAlreadyExists, CodeOf(s.Undelete(ctx, alice, file)))
		require.NoError(t, s.Remove(ctx, alice, newer, fileservice.FileTypeRegular))
	})

	require.NoError(t, s.Undelete(ctx, alice, file))
	exists, _ = s.Exists(ctx, alice, file)
	assert.True(t, exists)
}

func TestListSortedByName(t *testing.T) {
	s, ctx := newTestStore(t)
	for _, n := range []string{"b", "c", "a"} {
		mustCreate(t, s, alice, "", n, fileservice.FileTypeRegular)
	}

	entries, err := s.List(ctx, alice, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(entries))

	entries, err = s.List(ctx, other, "", false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVersions(t *testing.T) {
	s, ctx := newTestStore(t)
	file := mustCreate(t, s, alice, "", "f", fileservice.FileTypeRegular)

	require.NoError(t, s.SetMetadata(ctx, alice, file, "stage", "draft"))
	v1, err := s.Put(ctx, alice, file, []byte("one"))
	require.NoError(t, err)
	require.NoError(t, s.SetMetadata(ctx, alice, file, "stage", "final"))
	v2, err := s.Put(ctx, alice, file, []byte("two!"))
	require.NoError(t, err)

	t.Run("MonotonicMarkers", func(t *testing.T) {
		// the clock is frozen, markers still advance
		assert.Equal(t, "1700000000.000000", v1)
		assert.Equal(t, "1700000000.000001", v2)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		versions, err := s.Versions(ctx, alice, file)
		require.NoError(t, err)
		assert.Equal(t, []string{v2, v1}, versions)

		info, err := s.Stat(ctx, alice, file)
		require.NoError(t, err)
		assert.Equal(t, v2, info.Version)
		assert.Equal(t, int64(4), info.Size)
	})

	t.Run("Content", func(t *testing.T) {
		data, err := s.GetVersion(ctx, alice, file, v1)
		require.NoError(t, err)
		assert.Equal(t, "one", string(data))

		_, err = s.GetVersion(ctx, alice, file, "0.1")
		assert.Equal(t, ErrNotFound, CodeOf(err))
	})

	t.Run("MetadataSnapshots", func(t *testing.T) {
		v, err := s.VersionMetadata(ctx, alice, file, v1, "stage")
		require.NoError(t, err)
		assert.Equal(t, "draft", v)

		m, err := s.AllVersionMetadata(ctx, alice, file, v2)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"stage": "final"}, m)

		_, err = s.VersionMetadata(ctx, alice, file, v1, "missing")
		assert.Equal(t, ErrNotFound, CodeOf(err))
	})

	t.Run("Restore", func(t *testing.T) {
		v3, err := s.Restore(ctx, alice, file, v1)
		require.NoError(t, err)
		assert.Equal(t, "1700000000.000002", v3)

		data, err := s.GetVersion(ctx, alice, file, v3)
		require.NoError(t, err)
		assert.Equal(t, "one", string(data))

		_, err = s.Restore(ctx, alice, file, "nope")
		assert.Equal(t, ErrNotFound, CodeOf(err))
	})

	t.Run("Purge", func(t *testing.T) {
		assert.Equal(t, ErrInvalidArgument, CodeOf(s.Purge(ctx, alice, file, -1)))
		require.NoError(t, s.Purge(ctx, alice, file, 1))

		versions, err := s.Versions(ctx, alice, file)
		require.NoError(t, err)
		assert.Len(t, versions, 1)

		require.NoError(t, s.Purge(ctx, alice, file, 5))
		versions, _ = s.Versions(ctx, alice, file)
		assert.Len(t, versions, 1)
	})

	t.Run("DirectoryHasNoContent", func(t *testing.T) {
		dir := mustCreate(t, s, alice, "", "d", fileservice.FileTypeDirectory)
		_, err := s.Put(ctx, alice, dir, []byte("x"))
		assert.Equal(t, ErrIsDirectory, CodeOf(err))
	})
}

func TestMoveAndCopy(t *testing.T) {
	s, ctx := newTestStore(t)
	src := mustCreate(t, s, alice, "", "src", fileservice.FileTypeDirectory)
	sub := mustCreate(t, s, alice, src, "sub", fileservice.FileTypeDirectory)
	file := mustCreate(t, s, alice, sub, "f", fileservice.FileTypeRegular)
	_, err := s.Put(ctx, alice, file, []byte("data"))
	require.NoError(t, err)
	dst := mustCreate(t, s, alice, "", "dst", fileservice.FileTypeDirectory)

	t.Run("MoveIntoDescendant", func(t *testing.T) {
		assert.Equal(t, ErrInvalidArgument, CodeOf(s.Move(ctx, alice, src, sub)))
		assert.Equal(t, ErrInvalidArgument, CodeOf(s.Move(ctx, alice, src, src)))
	})

	t.Run("MoveOntoFile", func(t *testing.T) {
		assert.Equal(t, ErrNotDirectory, CodeOf(s.Move(ctx, alice, src, file)))
	})

	t.Run("CopyTree", func(t *testing.T) {
		_, err := s.Copy(ctx, bob, src, dst)
		require.NoError(t, err)

		entries, err := s.List(ctx, alice, dst, false)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		copied := entries[0].UID
		assert.NotEqual(t, src, copied)

		info, err := s.Stat(ctx, alice, copied)
		require.NoError(t, err)
		assert.Equal(t, "bob", info.Owner)

		subs, err := s.List(ctx, alice, copied, false)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		files, err := s.List(ctx, alice, subs[0].UID, false)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, int64(4), files[0].Size)

		_, err = s.Copy(ctx, alice, src, dst)
		assert.Equal(t, ErrAlreadyExists, CodeOf(err))
	})

	t.Run("MoveAndRename", func(t *testing.T) {
		require.NoError(t, s.Move(ctx, alice, file, ""))
		info, err := s.Stat(ctx, alice, file)
		require.NoError(t, err)
		assert.Empty(t, info.ParentUID)

		assert.Equal(t, ErrAlreadyExists, CodeOf(s.Rename(ctx, alice, file, "src")))
		assert.Equal(t, ErrInvalidArgument, CodeOf(s.Rename(ctx, alice, file, "")))
		require.NoError(t, s.Rename(ctx, alice, file, "g"))
	})
}

func TestMetadata(t *testing.T) {
	s, ctx := newTestStore(t)
	file := mustCreate(t, s, alice, "", "f", fileservice.FileTypeRegular)

	require.NoError(t, s.SetMetadata(ctx, alice, file, "k", "v"))
	assert.Equal(t, ErrInvalidArgument, CodeOf(s.SetMetadata(ctx, alice, file, "", "v")))

	v, err := s.GetMetadata(ctx, alice, file, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	m, err := s.AllMetadata(ctx, alice, file)
	require.NoError(t, err)
	m["mutated"] = "x"
	m, _ = s.AllMetadata(ctx, alice, file)
	assert.Equal(t, map[string]string{"k": "v"}, m)

	require.NoError(t, s.DeleteMetadata(ctx, alice, file, "k"))
	assert.Equal(t, ErrNotFound, CodeOf(s.DeleteMetadata(ctx, alice, file, "k")))
	_, err = s.GetMetadata(ctx, alice, file, "k")
	assert.Equal(t, ErrNotFound, CodeOf(err))
}

func TestPermissions(t *testing.T) {
	s, ctx := newTestStore(t)
	file := mustCreate(t, s, alice, "", "f", fileservice.FileTypeRegular)

	check := func(id Identity, perm fileservice.Permission) bool {
		t.Helper()
		ok, err := s.Check(ctx, id, file, perm)
		require.NoError(t, err)
		return ok
	}

	assert.True(t, check(admin, fileservice.PermissionDelete))
	assert.True(t, check(Identity{User: "root", Tenant: "acme"}, fileservice.PermissionDelete))
	assert.False(t, check(bob, fileservice.PermissionRead))

	require.NoError(t, s.Grant(ctx, admin, file, "editors", fileservice.PermissionRead))
	assert.True(t, check(bob, fileservice.PermissionRead))
	assert.False(t, check(bob, fileservice.PermissionWrite))

	require.NoError(t, s.Revoke(ctx, admin, file, "editors", fileservice.PermissionRead))
	require.NoError(t, s.Revoke(ctx, admin, file, "editors", fileservice.PermissionRead))
	assert.False(t, check(bob, fileservice.PermissionRead))

	assert.Equal(t, ErrInvalidArgument, CodeOf(s.Grant(ctx, admin, file, "", fileservice.PermissionRead)))
	_, err := s.Check(ctx, other, file, fileservice.PermissionRead)
	assert.Equal(t, ErrNotFound, CodeOf(err))
}

func TestUsage(t *testing.T) {
	s, ctx := newTestStore(t, WithCapacity(10))
	file := mustCreate(t, s, alice, "", "f", fileservice.FileTypeRegular)

	_, err := s.Put(ctx, alice, file, []byte("12345"))
	require.NoError(t, err)
	_, err = s.Put(ctx, alice, file, []byte("123456"))
	assert.Equal(t, ErrInvalidArgument, CodeOf(err))

	u, err := s.Usage(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(10), u.Total)
	assert.Equal(t, int64(5), u.Used)
	assert.Equal(t, int64(5), u.Available())
	assert.InDelta(t, 50.0, u.Percentage(), 1e-9)

	u, err = s.Usage(ctx, "globex")
	require.NoError(t, err)
	assert.Zero(t, u.Used)
	assert.Zero(t, Usage{}.Percentage())
}

func TestCancelledContext(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, alice, "", "x", fileservice.FileTypeDirectory)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, CodeOf(err))
}
