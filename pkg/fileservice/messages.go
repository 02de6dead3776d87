package fileservice

import (
	"fmt"
	"strings"
)

// FileType is the kind of a filesystem entity.
type FileType int32

const (
	FileTypeRegular   FileType = 0
	FileTypeDirectory FileType = 1
	FileTypeSymlink   FileType = 2
)

func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "REGULAR_FILE"
	case FileTypeDirectory:
		return "DIRECTORY"
	case FileTypeSymlink:
		return "SYMLINK"
	default:
		return fmt.Sprintf("FileType(%d)", int32(t))
	}
}

// MarshalText renders the type by name in JSON and YAML output.
func (t FileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names written by MarshalText.
func (t *FileType) UnmarshalText(b []byte) error {
	for _, v := range []FileType{FileTypeRegular, FileTypeDirectory, FileTypeSymlink} {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown file type %q", b)
}

// Permission is a right that can be granted on a resource.
type Permission int32

const (
	PermissionRead                Permission = 0
	PermissionWrite               Permission = 1
	PermissionDelete              Permission = 2
	PermissionListDeleted         Permission = 3
	PermissionUndelete            Permission = 4
	PermissionViewVersions        Permission = 5
	PermissionRetrieveBackVersion Permission = 6
	PermissionRestoreToVersion    Permission = 7
	PermissionExecute             Permission = 8
)

var permissionNames = map[Permission]string{
	PermissionRead:                "READ",
	PermissionWrite:               "WRITE",
	PermissionDelete:              "DELETE",
	PermissionListDeleted:         "LIST_DELETED",
	PermissionUndelete:            "UNDELETE",
	PermissionViewVersions:        "VIEW_VERSIONS",
	PermissionRetrieveBackVersion: "RETRIEVE_BACK_VERSION",
	PermissionRestoreToVersion:    "RESTORE_TO_VERSION",
	PermissionExecute:             "EXECUTE",
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Permission(%d)", int32(p))
}

// ParsePermission converts a permission name such as "READ" or "list_deleted"
// into its value.
func ParsePermission(s string) (Permission, error) {
	for p, name := range permissionNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown permission %q", s)
}

// ============================================================================
// Shared messages
// ============================================================================

// AuthenticationContext carries the caller identity on every request.
type AuthenticationContext struct {
	User   string
	Roles  []string
	Tenant string
	Claims map[string]string
}

func (m *AuthenticationContext) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.User)
	b = appendRepeatedString(b, 2, m.Roles)
	b = appendString(b, 3, m.Tenant)
	return appendStringMap(b, 4, m.Claims)
}

func (m *AuthenticationContext) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readString(&m.User)
		case 2:
			return f.appendString(&m.Roles)
		case 3:
			return f.readString(&m.Tenant)
		case 4:
			return f.readStringMapEntry(&m.Claims)
		}
		return nil
	})
}

// FileInfo describes one entity as returned by Stat.
type FileInfo struct {
	UID         string
	Name        string
	Type        FileType
	Size        int64
	CreatedAt   int64
	ModifiedAt  int64
	Version     string
	Owner       string
	Permissions int32
	ParentUID   string
}

func (m *FileInfo) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UID)
	b = appendString(b, 2, m.Name)
	b = appendInt32(b, 3, int32(m.Type))
	b = appendInt64(b, 4, m.Size)
	b = appendInt64(b, 5, m.CreatedAt)
	b = appendInt64(b, 6, m.ModifiedAt)
	b = appendString(b, 7, m.Version)
	b = appendString(b, 8, m.Owner)
	b = appendInt32(b, 9, m.Permissions)
	return appendString(b, 10, m.ParentUID)
}

func (m *FileInfo) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readString(&m.UID)
		case 2:
			return f.readString(&m.Name)
		case 3:
			return f.readInt32((*int32)(&m.Type))
		case 4:
			return f.readInt64(&m.Size)
		case 5:
			return f.readInt64(&m.CreatedAt)
		case 6:
			return f.readInt64(&m.ModifiedAt)
		case 7:
			return f.readString(&m.Version)
		case 8:
			return f.readString(&m.Owner)
		case 9:
			return f.readInt32(&m.Permissions)
		case 10:
			return f.readString(&m.ParentUID)
		}
		return nil
	})
}

// DirectoryEntry is one child returned by a directory listing.
type DirectoryEntry struct {
	UID     string
	Name    string
	Type    FileType
	Size    int64
	Deleted bool
}

func (m *DirectoryEntry) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UID)
	b = appendString(b, 2, m.Name)
	b = appendInt32(b, 3, int32(m.Type))
	b = appendInt64(b, 4, m.Size)
	return appendBool(b, 5, m.Deleted)
}

func (m *DirectoryEntry) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readString(&m.UID)
		case 2:
			return f.readString(&m.Name)
		case 3:
			return f.readInt32((*int32)(&m.Type))
		case 4:
			return f.readInt64(&m.Size)
		case 5:
			return f.readBool(&m.Deleted)
		}
		return nil
	})
}

// readAuth decodes field 1, the auth context, of every request.
func readAuth(f *field, dst **AuthenticationContext) error {
	if *dst == nil {
		*dst = &AuthenticationContext{}
	}
	return f.readMessage(*dst)
}

func appendAuth(b []byte, auth *AuthenticationContext) []byte {
	if auth == nil {
		return b
	}
	return appendMessage(b, 1, auth)
}

// ============================================================================
// Requests
// ============================================================================

// MakeDirectoryRequest creates a directory named Name under ParentUID.
type MakeDirectoryRequest struct {
	Auth      *AuthenticationContext
	ParentUID string
	Name      string
}

func (m *MakeDirectoryRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.ParentUID)
	return appendString(b, 3, m.Name)
}

func (m *MakeDirectoryRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.ParentUID)
		case 3:
			return f.readString(&m.Name)
		}
		return nil
	})
}

type RemoveDirectoryRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *RemoveDirectoryRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *RemoveDirectoryRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

// ListDirectoryRequest lists the live children of UID.
type ListDirectoryRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *ListDirectoryRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *ListDirectoryRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

// ListDirectoryWithDeletedRequest lists the children of UID, soft-deleted ones included.
type ListDirectoryWithDeletedRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *ListDirectoryWithDeletedRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *ListDirectoryWithDeletedRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

// TouchRequest creates an empty file named Name under ParentUID.
type TouchRequest struct {
	Auth      *AuthenticationContext
	ParentUID string
	Name      string
}

func (m *TouchRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.ParentUID)
	return appendString(b, 3, m.Name)
}

func (m *TouchRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.ParentUID)
		case 3:
			return f.readString(&m.Name)
		}
		return nil
	})
}

type RemoveFileRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *RemoveFileRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *RemoveFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

// PutFileRequest stores Data as a new version of UID.
type PutFileRequest struct {
	Auth *AuthenticationContext
	UID  string
	Data []byte
}

func (m *PutFileRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendBytes(b, 3, m.Data)
}

func (m *PutFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readBytes(&m.Data)
		}
		return nil
	})
}

// GetVersionRequest fetches the content of one version of UID.
type GetVersionRequest struct {
	Auth             *AuthenticationContext
	UID              string
	VersionTimestamp string
}

func (m *GetVersionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.VersionTimestamp)
}

func (m *GetVersionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.VersionTimestamp)
		}
		return nil
	})
}

type ListVersionsRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *ListVersionsRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *ListVersionsRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

type StatRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *StatRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *StatRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

type ExistsRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *ExistsRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *ExistsRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

type RenameRequest struct {
	Auth    *AuthenticationContext
	UID     string
	NewName string
}

func (m *RenameRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.NewName)
}

func (m *RenameRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.NewName)
		}
		return nil
	})
}

type MoveRequest struct {
	Auth                 *AuthenticationContext
	SourceUID            string
	DestinationParentUID string
}

func (m *MoveRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.SourceUID)
	return appendString(b, 3, m.DestinationParentUID)
}

func (m *MoveRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.SourceUID)
		case 3:
			return f.readString(&m.DestinationParentUID)
		}
		return nil
	})
}

type CopyRequest struct {
	Auth                 *AuthenticationContext
	SourceUID            string
	DestinationParentUID string
}

func (m *CopyRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.SourceUID)
	return appendString(b, 3, m.DestinationParentUID)
}

func (m *CopyRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.SourceUID)
		case 3:
			return f.readString(&m.DestinationParentUID)
		}
		return nil
	})
}

type SetMetadataRequest struct {
	Auth  *AuthenticationContext
	UID   string
	Key   string
	Value string
}

func (m *SetMetadataRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	b = appendString(b, 3, m.Key)
	return appendString(b, 4, m.Value)
}

func (m *SetMetadataRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.Key)
		case 4:
			return f.readString(&m.Value)
		}
		return nil
	})
}

type GetMetadataRequest struct {
	Auth *AuthenticationContext
	UID  string
	Key  string
}

func (m *GetMetadataRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.Key)
}

func (m *GetMetadataRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.Key)
		}
		return nil
	})
}

type GetAllMetadataRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *GetAllMetadataRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *GetAllMetadataRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

type DeleteMetadataRequest struct {
	Auth *AuthenticationContext
	UID  string
	Key  string
}

func (m *DeleteMetadataRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.Key)
}

func (m *DeleteMetadataRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.Key)
		}
		return nil
	})
}

// GetMetadataForVersionRequest reads one metadata key as of a version of UID.
type GetMetadataForVersionRequest struct {
	Auth             *AuthenticationContext
	UID              string
	VersionTimestamp string
	Key              string
}

func (m *GetMetadataForVersionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	b = appendString(b, 3, m.VersionTimestamp)
	return appendString(b, 4, m.Key)
}

func (m *GetMetadataForVersionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.VersionTimestamp)
		case 4:
			return f.readString(&m.Key)
		}
		return nil
	})
}

type GetAllMetadataForVersionRequest struct {
	Auth             *AuthenticationContext
	UID              string
	VersionTimestamp string
}

func (m *GetAllMetadataForVersionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.VersionTimestamp)
}

func (m *GetAllMetadataForVersionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.VersionTimestamp)
		}
		return nil
	})
}

type GrantPermissionRequest struct {
	Auth        *AuthenticationContext
	ResourceUID string
	Principal   string
	Permission  Permission
}

func (m *GrantPermissionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.ResourceUID)
	b = appendString(b, 3, m.Principal)
	return appendInt32(b, 4, int32(m.Permission))
}

func (m *GrantPermissionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.ResourceUID)
		case 3:
			return f.readString(&m.Principal)
		case 4:
			return f.readInt32((*int32)(&m.Permission))
		}
		return nil
	})
}

type RevokePermissionRequest struct {
	Auth        *AuthenticationContext
	ResourceUID string
	Principal   string
	Permission  Permission
}

func (m *RevokePermissionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.ResourceUID)
	b = appendString(b, 3, m.Principal)
	return appendInt32(b, 4, int32(m.Permission))
}

func (m *RevokePermissionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.ResourceUID)
		case 3:
			return f.readString(&m.Principal)
		case 4:
			return f.readInt32((*int32)(&m.Permission))
		}
		return nil
	})
}

// CheckPermissionRequest asks whether the caller holds RequiredPermission on ResourceUID.
type CheckPermissionRequest struct {
	Auth               *AuthenticationContext
	ResourceUID        string
	RequiredPermission Permission
}

func (m *CheckPermissionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.ResourceUID)
	return appendInt32(b, 3, int32(m.RequiredPermission))
}

func (m *CheckPermissionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.ResourceUID)
		case 3:
			return f.readInt32((*int32)(&m.RequiredPermission))
		}
		return nil
	})
}

// StorageUsageRequest asks for the storage usage of Tenant.
type StorageUsageRequest struct {
	Auth   *AuthenticationContext
	Tenant string
}

func (m *StorageUsageRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.Tenant)
}

func (m *StorageUsageRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.Tenant)
		}
		return nil
	})
}

// PurgeOldVersionsRequest keeps the newest KeepCount versions of UID.
type PurgeOldVersionsRequest struct {
	Auth      *AuthenticationContext
	UID       string
	KeepCount int32
}

func (m *PurgeOldVersionsRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendInt32(b, 3, m.KeepCount)
}

func (m *PurgeOldVersionsRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readInt32(&m.KeepCount)
		}
		return nil
	})
}

type TriggerSyncRequest struct {
	Auth   *AuthenticationContext
	Tenant string
}

func (m *TriggerSyncRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.Tenant)
}

func (m *TriggerSyncRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.Tenant)
		}
		return nil
	})
}

type UndeleteFileRequest struct {
	Auth *AuthenticationContext
	UID  string
}

func (m *UndeleteFileRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	return appendString(b, 2, m.UID)
}

func (m *UndeleteFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		}
		return nil
	})
}

type RestoreToVersionRequest struct {
	Auth             *AuthenticationContext
	UID              string
	VersionTimestamp string
}

func (m *RestoreToVersionRequest) appendWire(b []byte) []byte {
	b = appendAuth(b, m.Auth)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.VersionTimestamp)
}

func (m *RestoreToVersionRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return readAuth(f, &m.Auth)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.VersionTimestamp)
		}
		return nil
	})
}

// ============================================================================
// Responses
// ============================================================================

// OperationResponse is the plain success/error reply.
type OperationResponse struct {
	Success bool
	Error   string
}

func (m *OperationResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	return appendString(b, 2, m.Error)
}

func (m *OperationResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type CreateResponse struct {
	Success bool
	UID     string
	Error   string
}

func (m *CreateResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendString(b, 2, m.UID)
	return appendString(b, 3, m.Error)
}

func (m *CreateResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readString(&m.UID)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type ListDirectoryResponse struct {
	Success bool
	Entries []*DirectoryEntry
	Error   string
}

func (m *ListDirectoryResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	for _, e := range m.Entries {
		b = appendMessage(b, 2, e)
	}
	return appendString(b, 3, m.Error)
}

func (m *ListDirectoryResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			e := &DirectoryEntry{}
			if err := f.readMessage(e); err != nil {
				return err
			}
			m.Entries = append(m.Entries, e)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type PutFileResponse struct {
	Success          bool
	Error            string
	VersionTimestamp string
}

func (m *PutFileResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendString(b, 2, m.Error)
	return appendString(b, 3, m.VersionTimestamp)
}

func (m *PutFileResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readString(&m.Error)
		case 3:
			return f.readString(&m.VersionTimestamp)
		}
		return nil
	})
}

type GetVersionResponse struct {
	Success bool
	Data    []byte
	Error   string
}

func (m *GetVersionResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendBytes(b, 2, m.Data)
	return appendString(b, 3, m.Error)
}

func (m *GetVersionResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readBytes(&m.Data)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

// ListVersionsResponse lists version timestamps, newest first.
type ListVersionsResponse struct {
	Success  bool
	Versions []string
	Error    string
}

func (m *ListVersionsResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendRepeatedString(b, 2, m.Versions)
	return appendString(b, 3, m.Error)
}

func (m *ListVersionsResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.appendString(&m.Versions)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type StatResponse struct {
	Success bool
	Info    *FileInfo
	Error   string
}

func (m *StatResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	if m.Info != nil {
		b = appendMessage(b, 2, m.Info)
	}
	return appendString(b, 3, m.Error)
}

func (m *StatResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			if m.Info == nil {
				m.Info = &FileInfo{}
			}
			return f.readMessage(m.Info)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type ExistsResponse struct {
	Success bool
	Exists  bool
	Error   string
}

func (m *ExistsResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendBool(b, 2, m.Exists)
	return appendString(b, 3, m.Error)
}

func (m *ExistsResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readBool(&m.Exists)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type MetadataValueResponse struct {
	Success bool
	Value   string
	Error   string
}

func (m *MetadataValueResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendString(b, 2, m.Value)
	return appendString(b, 3, m.Error)
}

func (m *MetadataValueResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readString(&m.Value)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type MetadataMapResponse struct {
	Success  bool
	Metadata map[string]string
	Error    string
}

func (m *MetadataMapResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendStringMap(b, 2, m.Metadata)
	return appendString(b, 3, m.Error)
}

func (m *MetadataMapResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readStringMapEntry(&m.Metadata)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type CheckPermissionResponse struct {
	Success       bool
	HasPermission bool
	Error         string
}

func (m *CheckPermissionResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendBool(b, 2, m.HasPermission)
	return appendString(b, 3, m.Error)
}

func (m *CheckPermissionResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readBool(&m.HasPermission)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type StorageUsageResponse struct {
	Success         bool
	TotalSpace      int64
	UsedSpace       int64
	AvailableSpace  int64
	UsagePercentage float64
	Error           string
}

func (m *StorageUsageResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendInt64(b, 2, m.TotalSpace)
	b = appendInt64(b, 3, m.UsedSpace)
	b = appendInt64(b, 4, m.AvailableSpace)
	b = appendDouble(b, 5, m.UsagePercentage)
	return appendString(b, 6, m.Error)
}

func (m *StorageUsageResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readInt64(&m.TotalSpace)
		case 3:
			return f.readInt64(&m.UsedSpace)
		case 4:
			return f.readInt64(&m.AvailableSpace)
		case 5:
			return f.readDouble(&m.UsagePercentage)
		case 6:
			return f.readString(&m.Error)
		}
		return nil
	})
}

type RestoreToVersionResponse struct {
	Success         bool
	RestoredVersion string
	Error           string
}

func (m *RestoreToVersionResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	b = appendString(b, 2, m.RestoredVersion)
	return appendString(b, 3, m.Error)
}

func (m *RestoreToVersionResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readBool(&m.Success)
		case 2:
			return f.readString(&m.RestoredVersion)
		case 3:
			return f.readString(&m.Error)
		}
		return nil
	})
}
