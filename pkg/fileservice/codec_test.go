package fileservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestAuthenticationContextEncoding(t *testing.T) {
	req := &StatRequest{
		Auth: &AuthenticationContext{
			User:   "alice",
			Roles:  []string{"superuser", "admin"},
			Tenant: "acme",
			Claims: map[string]string{"b": "2", "a": "1"},
		},
		UID: "uid-1",
	}

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, Marshal(req), Marshal(req))
	})

	t.Run("Decodes", func(t *testing.T) {
		var got StatRequest
		require.NoError(t, Unmarshal(Marshal(req), &got))
		assert.Equal(t, *req, got)
	})

	t.Run("RolesKeepOrder", func(t *testing.T) {
		var got StatRequest
		require.NoError(t, Unmarshal(Marshal(req), &got))
		assert.Equal(t, []string{"superuser", "admin"}, got.Auth.Roles)
	})
}

func TestZeroValuesAreOmitted(t *testing.T) {
	assert.Empty(t, Marshal(&OperationResponse{}))
	assert.Empty(t, Marshal(&FileInfo{}))
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, 42, protowire.BytesType)
	b = protowire.AppendString(b, "future field")
	b = protowire.AppendTag(b, 43, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 7)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "boom")

	var got OperationResponse
	require.NoError(t, Unmarshal(b, &got))
	assert.True(t, got.Success)
	assert.Equal(t, "boom", got.Error)
}

func TestMismatchedWireTypeIsSkipped(t *testing.T) {
	var b []byte
	// success sent as a string is ignored rather than misread
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "yes")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "err")

	var got OperationResponse
	require.NoError(t, Unmarshal(b, &got))
	assert.False(t, got.Success)
	assert.Equal(t, "err", got.Error)
}

func TestTruncatedInputFails(t *testing.T) {
	full := Marshal(&CreateResponse{Success: true, UID: "0123456789"})
	var got CreateResponse
	assert.Error(t, Unmarshal(full[:len(full)-3], &got))
}

func TestNegativeInt32(t *testing.T) {
	in := &PurgeOldVersionsRequest{UID: "u", KeepCount: -1}
	var got PurgeOldVersionsRequest
	require.NoError(t, Unmarshal(Marshal(in), &got))
	assert.Equal(t, int32(-1), got.KeepCount)
}

func TestNestedMessages(t *testing.T) {
	t.Run("ListDirectory", func(t *testing.T) {
		in := &ListDirectoryResponse{
			Success: true,
			Entries: []*DirectoryEntry{
				{UID: "d1", Name: "docs", Type: FileTypeDirectory},
				{UID: "f1", Name: "a.txt", Type: FileTypeRegular, Size: 12, Deleted: true},
			},
		}
		var got ListDirectoryResponse
		require.NoError(t, Unmarshal(Marshal(in), &got))
		assert.Equal(t, in.Entries, got.Entries)
	})

	t.Run("StatWithInfo", func(t *testing.T) {
		in := &StatResponse{Success: true, Info: &FileInfo{UID: "f1", Type: FileTypeDirectory, ModifiedAt: 1700000000}}
		var got StatResponse
		require.NoError(t, Unmarshal(Marshal(in), &got))
		require.NotNil(t, got.Info)
		assert.Equal(t, FileTypeDirectory, got.Info.Type)
		assert.Equal(t, int64(1700000000), got.Info.ModifiedAt)
	})

	t.Run("MetadataMap", func(t *testing.T) {
		in := &MetadataMapResponse{Success: true, Metadata: map[string]string{"k": "v", "empty": ""}}
		var got MetadataMapResponse
		require.NoError(t, Unmarshal(Marshal(in), &got))
		assert.Equal(t, in.Metadata, got.Metadata)
	})

	t.Run("StorageUsage", func(t *testing.T) {
		in := &StorageUsageResponse{Success: true, TotalSpace: 100, UsedSpace: 25, AvailableSpace: 75, UsagePercentage: 25.5}
		var got StorageUsageResponse
		require.NoError(t, Unmarshal(Marshal(in), &got))
		assert.Equal(t, *in, got)
	})
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "proto", c.Name())

	_, err := c.Marshal("not a message")
	assert.Error(t, err)
	assert.Error(t, c.Unmarshal(nil, new(int)))
}

func TestPermissionNames(t *testing.T) {
	assert.Equal(t, "LIST_DELETED", PermissionListDeleted.String())
	assert.Equal(t, "Permission(42)", Permission(42).String())

	p, err := ParsePermission("restore_to_version")
	require.NoError(t, err)
	assert.Equal(t, PermissionRestoreToVersion, p)

	_, err = ParsePermission("fly")
	assert.Error(t, err)
}
