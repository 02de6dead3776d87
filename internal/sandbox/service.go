package sandbox

import (
	"context"

	"google.golang.org/grpc/status"

	"github.com/marmos91/fileengine/internal/logger"
	"github.com/marmos91/fileengine/pkg/fileservice"
)

// Service implements fileservice.FileServiceServer on a Store.
//
// Application failures (missing entities, name conflicts, bad arguments, an
// absent identity) are answered with Success=false and an error text. Only a
// cancelled or expired request context surfaces as a gRPC status.
type Service struct {
	store *Store
}

var _ fileservice.FileServiceServer = (*Service)(nil)

// NewService serves store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Store returns the backing store.
func (s *Service) Store() *Store {
	return s.store
}

func identityOf(auth *fileservice.AuthenticationContext) (Identity, error) {
	if auth == nil || auth.User == "" {
		return Identity{}, storeErr(ErrUnauthenticated, "authentication required")
	}
	return Identity{User: auth.User, Tenant: auth.Tenant, Roles: auth.Roles}, nil
}

// outcome splits err into the response error text and the gRPC error.
func outcome(ctx context.Context, err error, attrs ...any) (string, error) {
	if CodeOf(err) == 0 {
		logger.WarnCtx(ctx, "sandbox: request aborted", append(attrs, logger.Err(err))...)
		return "", status.FromContextError(err).Err()
	}
	logger.DebugCtx(ctx, "sandbox: request rejected", append(attrs, logger.Err(err))...)
	return err.Error(), nil
}

// serve runs fn as the caller of auth. The returned text is the rejection to
// put in the response; a non-nil error aborts the RPC.
func serve(ctx context.Context, auth *fileservice.AuthenticationContext, fn func(Identity) error, attrs ...any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", status.FromContextError(err).Err()
	}
	id, err := identityOf(auth)
	if err == nil {
		if lc := logger.FromContext(ctx); lc != nil {
			ctx = logger.WithContext(ctx, lc.WithIdentity(id.User, id.Tenant))
		}
		err = fn(id)
	}
	if err != nil {
		return outcome(ctx, err, attrs...)
	}
	return "", nil
}

func operation(rejection string) *fileservice.OperationResponse {
	return &fileservice.OperationResponse{Success: rejection == "", Error: rejection}
}

// ============================================================================
// Directories
// ============================================================================

func (s *Service) create(ctx context.Context, auth *fileservice.AuthenticationContext, parentUID, name string, typ fileservice.FileType) (*fileservice.CreateResponse, error) {
	var uid string
	rejection, err := serve(ctx, auth, func(id Identity) (err error) {
		uid, err = s.store.Create(ctx, id, parentUID, name, typ)
		return err
	}, logger.ParentUID(parentUID), logger.Name(name))
	if err != nil {
		return nil, err
	}
	return &fileservice.CreateResponse{Success: rejection == "", UID: uid, Error: rejection}, nil
}

func (s *Service) MakeDirectory(ctx context.Context, req *fileservice.MakeDirectoryRequest) (*fileservice.CreateResponse, error) {
	return s.create(ctx, req.Auth, req.ParentUID, req.Name, fileservice.FileTypeDirectory)
}

func (s *Service) RemoveDirectory(ctx context.Context, req *fileservice.RemoveDirectoryRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Remove(ctx, id, req.UID, fileservice.FileTypeDirectory)
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) list(ctx context.Context, auth *fileservice.AuthenticationContext, uid string, withDeleted bool) (*fileservice.ListDirectoryResponse, error) {
	var entries []*fileservice.DirectoryEntry
	rejection, err := serve(ctx, auth, func(id Identity) (err error) {
		entries, err = s.store.List(ctx, id, uid, withDeleted)
		return err
	}, logger.UID(uid))
	if err != nil {
		return nil, err
	}
	return &fileservice.ListDirectoryResponse{Success: rejection == "", Entries: entries, Error: rejection}, nil
}

func (s *Service) ListDirectory(ctx context.Context, req *fileservice.ListDirectoryRequest) (*fileservice.ListDirectoryResponse, error) {
	return s.list(ctx, req.Auth, req.UID, false)
}

func (s *Service) ListDirectoryWithDeleted(ctx context.Context, req *fileservice.ListDirectoryWithDeletedRequest) (*fileservice.ListDirectoryResponse, error) {
	return s.list(ctx, req.Auth, req.UID, true)
}

// ============================================================================
// Files and versions
// ============================================================================

func (s *Service) Touch(ctx context.Context, req *fileservice.TouchRequest) (*fileservice.CreateResponse, error) {
	return s.create(ctx, req.Auth, req.ParentUID, req.Name, fileservice.FileTypeRegular)
}

func (s *Service) RemoveFile(ctx context.Context, req *fileservice.RemoveFileRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Remove(ctx, id, req.UID, fileservice.FileTypeRegular)
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) PutFile(ctx context.Context, req *fileservice.PutFileRequest) (*fileservice.PutFileResponse, error) {
	var ts string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		ts, err = s.store.Put(ctx, id, req.UID, req.Data)
		return err
	}, logger.UID(req.UID), logger.Bytes(len(req.Data)))
	if err != nil {
		return nil, err
	}
	return &fileservice.PutFileResponse{Success: rejection == "", VersionTimestamp: ts, Error: rejection}, nil
}

func (s *Service) GetVersion(ctx context.Context, req *fileservice.GetVersionRequest) (*fileservice.GetVersionResponse, error) {
	var data []byte
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		data, err = s.store.GetVersion(ctx, id, req.UID, req.VersionTimestamp)
		return err
	}, logger.UID(req.UID), logger.Version(req.VersionTimestamp))
	if err != nil {
		return nil, err
	}
	return &fileservice.GetVersionResponse{Success: rejection == "", Data: data, Error: rejection}, nil
}

func (s *Service) ListVersions(ctx context.Context, req *fileservice.ListVersionsRequest) (*fileservice.ListVersionsResponse, error) {
	var versions []string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		versions, err = s.store.Versions(ctx, id, req.UID)
		return err
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return &fileservice.ListVersionsResponse{Success: rejection == "", Versions: versions, Error: rejection}, nil
}

// ============================================================================
// Entities
// ============================================================================

func (s *Service) Stat(ctx context.Context, req *fileservice.StatRequest) (*fileservice.StatResponse, error) {
	var info *fileservice.FileInfo
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		info, err = s.store.Stat(ctx, id, req.UID)
		return err
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return &fileservice.StatResponse{Success: rejection == "", Info: info, Error: rejection}, nil
}

func (s *Service) Exists(ctx context.Context, req *fileservice.ExistsRequest) (*fileservice.ExistsResponse, error) {
	var exists bool
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		exists, err = s.store.Exists(ctx, id, req.UID)
		return err
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return &fileservice.ExistsResponse{Success: rejection == "", Exists: exists, Error: rejection}, nil
}

func (s *Service) Rename(ctx context.Context, req *fileservice.RenameRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Rename(ctx, id, req.UID, req.NewName)
	}, logger.UID(req.UID), logger.Name(req.NewName))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) Move(ctx context.Context, req *fileservice.MoveRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Move(ctx, id, req.SourceUID, req.DestinationParentUID)
	}, logger.UID(req.SourceUID), logger.ParentUID(req.DestinationParentUID))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) Copy(ctx context.Context, req *fileservice.CopyRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		_, err := s.store.Copy(ctx, id, req.SourceUID, req.DestinationParentUID)
		return err
	}, logger.UID(req.SourceUID), logger.ParentUID(req.DestinationParentUID))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

// ============================================================================
// Metadata
// ============================================================================

func (s *Service) SetMetadata(ctx context.Context, req *fileservice.SetMetadataRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.SetMetadata(ctx, id, req.UID, req.Key, req.Value)
	}, logger.UID(req.UID), logger.Key(req.Key))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) GetMetadata(ctx context.Context, req *fileservice.GetMetadataRequest) (*fileservice.MetadataValueResponse, error) {
	var value string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		value, err = s.store.GetMetadata(ctx, id, req.UID, req.Key)
		return err
	}, logger.UID(req.UID), logger.Key(req.Key))
	if err != nil {
		return nil, err
	}
	return &fileservice.MetadataValueResponse{Success: rejection == "", Value: value, Error: rejection}, nil
}

func (s *Service) GetAllMetadata(ctx context.Context, req *fileservice.GetAllMetadataRequest) (*fileservice.MetadataMapResponse, error) {
	var m map[string]string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		m, err = s.store.AllMetadata(ctx, id, req.UID)
		return err
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return &fileservice.MetadataMapResponse{Success: rejection == "", Metadata: m, Error: rejection}, nil
}

func (s *Service) DeleteMetadata(ctx context.Context, req *fileservice.DeleteMetadataRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.DeleteMetadata(ctx, id, req.UID, req.Key)
	}, logger.UID(req.UID), logger.Key(req.Key))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) GetMetadataForVersion(ctx context.Context, req *fileservice.GetMetadataForVersionRequest) (*fileservice.MetadataValueResponse, error) {
	var value string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		value, err = s.store.VersionMetadata(ctx, id, req.UID, req.VersionTimestamp, req.Key)
		return err
	}, logger.UID(req.UID), logger.Version(req.VersionTimestamp), logger.Key(req.Key))
	if err != nil {
		return nil, err
	}
	return &fileservice.MetadataValueResponse{Success: rejection == "", Value: value, Error: rejection}, nil
}

func (s *Service) GetAllMetadataForVersion(ctx context.Context, req *fileservice.GetAllMetadataForVersionRequest) (*fileservice.MetadataMapResponse, error) {
	var m map[string]string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		m, err = s.store.AllVersionMetadata(ctx, id, req.UID, req.VersionTimestamp)
		return err
	}, logger.UID(req.UID), logger.Version(req.VersionTimestamp))
	if err != nil {
		return nil, err
	}
	return &fileservice.MetadataMapResponse{Success: rejection == "", Metadata: m, Error: rejection}, nil
}

// ============================================================================
// Permissions
// ============================================================================

func (s *Service) GrantPermission(ctx context.Context, req *fileservice.GrantPermissionRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Grant(ctx, id, req.ResourceUID, req.Principal, req.Permission)
	}, logger.UID(req.ResourceUID), logger.Principal(req.Principal), logger.Permission(req.Permission.String()))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) RevokePermission(ctx context.Context, req *fileservice.RevokePermissionRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Revoke(ctx, id, req.ResourceUID, req.Principal, req.Permission)
	}, logger.UID(req.ResourceUID), logger.Principal(req.Principal), logger.Permission(req.Permission.String()))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) CheckPermission(ctx context.Context, req *fileservice.CheckPermissionRequest) (*fileservice.CheckPermissionResponse, error) {
	var has bool
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		has, err = s.store.Check(ctx, id, req.ResourceUID, req.RequiredPermission)
		return err
	}, logger.UID(req.ResourceUID), logger.Permission(req.RequiredPermission.String()))
	if err != nil {
		return nil, err
	}
	return &fileservice.CheckPermissionResponse{Success: rejection == "", HasPermission: has, Error: rejection}, nil
}

// ============================================================================
// Administration
// ============================================================================

// tenantOf is the tenant named in the request body, else the caller's.
func tenantOf(tenant string, id Identity) string {
	if tenant != "" {
		return tenant
	}
	return id.Tenant
}

func (s *Service) GetStorageUsage(ctx context.Context, req *fileservice.StorageUsageRequest) (*fileservice.StorageUsageResponse, error) {
	var usage Usage
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		usage, err = s.store.Usage(ctx, tenantOf(req.Tenant, id))
		return err
	}, logger.Tenant(req.Tenant))
	if err != nil {
		return nil, err
	}
	if rejection != "" {
		return &fileservice.StorageUsageResponse{Error: rejection}, nil
	}
	return &fileservice.StorageUsageResponse{
		Success:         true,
		TotalSpace:      usage.Total,
		UsedSpace:       usage.Used,
		AvailableSpace:  usage.Available(),
		UsagePercentage: usage.Percentage(),
	}, nil
}

func (s *Service) PurgeOldVersions(ctx context.Context, req *fileservice.PurgeOldVersionsRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Purge(ctx, id, req.UID, int(req.KeepCount))
	}, logger.UID(req.UID), "keep", req.KeepCount)
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

// TriggerSync has nothing to flush in memory; it only validates the caller.
func (s *Service) TriggerSync(ctx context.Context, req *fileservice.TriggerSyncRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		logger.InfoCtx(ctx, "sandbox: sync requested", logger.Tenant(tenantOf(req.Tenant, id)))
		return nil
	}, logger.Tenant(req.Tenant))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) UndeleteFile(ctx context.Context, req *fileservice.UndeleteFileRequest) (*fileservice.OperationResponse, error) {
	rejection, err := serve(ctx, req.Auth, func(id Identity) error {
		return s.store.Undelete(ctx, id, req.UID)
	}, logger.UID(req.UID))
	if err != nil {
		return nil, err
	}
	return operation(rejection), nil
}

func (s *Service) RestoreToVersion(ctx context.Context, req *fileservice.RestoreToVersionRequest) (*fileservice.RestoreToVersionResponse, error) {
	var restored string
	rejection, err := serve(ctx, req.Auth, func(id Identity) (err error) {
		restored, err = s.store.Restore(ctx, id, req.UID, req.VersionTimestamp)
		return err
	}, logger.UID(req.UID), logger.Version(req.VersionTimestamp))
	if err != nil {
		return nil, err
	}
	return &fileservice.RestoreToVersionResponse{Success: rejection == "", RestoredVersion: restored, Error: rejection}, nil
}
