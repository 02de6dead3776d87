package fileengine

import (
	"strings"
	"time"

	"github.com/marmos91/fileengine/pkg/fileservice"
)

type (
	FileType   = fileservice.FileType
	Permission = fileservice.Permission
)

const (
	RegularFile = fileservice.FileTypeRegular
	Directory   = fileservice.FileTypeDirectory
	Symlink     = fileservice.FileTypeSymlink
)

const (
	PermRead                = fileservice.PermissionRead
	PermWrite               = fileservice.PermissionWrite
	PermDelete              = fileservice.PermissionDelete
	PermListDeleted         = fileservice.PermissionListDeleted
	PermUndelete            = fileservice.PermissionUndelete
	PermViewVersions        = fileservice.PermissionViewVersions
	PermRetrieveBackVersion = fileservice.PermissionRetrieveBackVersion
	PermRestoreToVersion    = fileservice.PermissionRestoreToVersion
	PermExecute             = fileservice.PermissionExecute
)

// DirEntry is one child returned by Dir. Version, UploadingUser and Mtime are
// set for regular files only, and stay empty when they could not be fetched.
type DirEntry struct {
	UID           string    `json:"uid" yaml:"uid"`
	Name          string    `json:"name" yaml:"name"`
	Type          FileType  `json:"type" yaml:"type"`
	IsContainer   bool      `json:"is_container" yaml:"is_container"`
	Size          int64     `json:"size" yaml:"size"`
	Deleted       bool      `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Creator       string    `json:"creator" yaml:"creator"`
	Version       string    `json:"version,omitempty" yaml:"version,omitempty"`
	UploadingUser string    `json:"uploading_user,omitempty" yaml:"uploading_user,omitempty"`
	Mtime         time.Time `json:"mtime,omitzero" yaml:"mtime,omitempty"`
}

// Revision is one stored version of a file, newest first in listings.
type Revision struct {
	Version string `json:"version" yaml:"version"`
	Name    string `json:"name" yaml:"name"`
	User    string `json:"user" yaml:"user"`
}

// revisionName is the last "-" separated segment of uid, or uid itself.
func revisionName(uid string) string {
	if i := strings.LastIndexByte(uid, '-'); i >= 0 {
		return uid[i+1:]
	}
	return uid
}

// FileInfo describes one entity.
type FileInfo struct {
	UID         string    `json:"uid" yaml:"uid"`
	Name        string    `json:"name" yaml:"name"`
	Type        FileType  `json:"type" yaml:"type"`
	Size        int64     `json:"size" yaml:"size"`
	Created     time.Time `json:"created" yaml:"created"`
	Modified    time.Time `json:"modified" yaml:"modified"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	Owner       string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Permissions int32     `json:"permissions" yaml:"permissions"`
	ParentUID   string    `json:"parent_uid,omitempty" yaml:"parent_uid,omitempty"`
}

// IsDir reports whether the entity is a directory.
func (f *FileInfo) IsDir() bool {
	return f.Type == Directory
}

func fileInfoFromWire(in *fileservice.FileInfo) *FileInfo {
	return &FileInfo{
		UID:         in.UID,
		Name:        in.Name,
		Type:        in.Type,
		Size:        in.Size,
		Created:     time.Unix(in.CreatedAt, 0),
		Modified:    time.Unix(in.ModifiedAt, 0),
		Version:     in.Version,
		Owner:       in.Owner,
		Permissions: in.Permissions,
		ParentUID:   in.ParentUID,
	}
}

// StorageUsage is the storage accounting of a tenant.
type StorageUsage struct {
	TotalSpace      int64   `json:"total_space" yaml:"total_space"`
	UsedSpace       int64   `json:"used_space" yaml:"used_space"`
	AvailableSpace  int64   `json:"available_space" yaml:"available_space"`
	UsagePercentage float64 `json:"usage_percentage" yaml:"usage_percentage"`
}

// PutResult identifies the version written by Put.
//
// When the server reports the version it assigned, Version is that value and
// ServerAssigned is true. Otherwise Version is the client wall-clock time at
// which the write was acknowledged, as unix seconds with a fractional part,
// and may not match the server's version marker.
type PutResult struct {
	Version        string    `json:"version" yaml:"version"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
	ServerAssigned bool      `json:"server_assigned" yaml:"server_assigned"`
}

// RoleFlags are the rights of a legacy permission role.
type RoleFlags struct {
	Read         bool
	Write        bool
	Delete       bool
	GetRevisions bool
}
