package fileservice

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fileservice.FileService"

// RPC method names.
const (
	MethodMakeDirectory            = "MakeDirectory"
	MethodRemoveDirectory          = "RemoveDirectory"
	MethodListDirectory            = "ListDirectory"
	MethodListDirectoryWithDeleted = "ListDirectoryWithDeleted"
	MethodTouch                    = "Touch"
	MethodRemoveFile               = "RemoveFile"
	MethodPutFile                  = "PutFile"
	MethodGetVersion               = "GetVersion"
	MethodListVersions             = "ListVersions"
	MethodStat                     = "Stat"
	MethodExists                   = "Exists"
	MethodRename                   = "Rename"
	MethodMove                     = "Move"
	MethodCopy                     = "Copy"
	MethodSetMetadata              = "SetMetadata"
	MethodGetMetadata              = "GetMetadata"
	MethodGetAllMetadata           = "GetAllMetadata"
	MethodDeleteMetadata           = "DeleteMetadata"
	MethodGetMetadataForVersion    = "GetMetadataForVersion"
	MethodGetAllMetadataForVersion = "GetAllMetadataForVersion"
	MethodGrantPermission          = "GrantPermission"
	MethodRevokePermission         = "RevokePermission"
	MethodCheckPermission          = "CheckPermission"
	MethodGetStorageUsage          = "GetStorageUsage"
	MethodPurgeOldVersions         = "PurgeOldVersions"
	MethodTriggerSync              = "TriggerSync"
	MethodUndeleteFile             = "UndeleteFile"
	MethodRestoreToVersion         = "RestoreToVersion"
)

// FullMethod returns the "/service/method" path of an RPC.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// FileServiceClient is the client API of the FileService.
type FileServiceClient interface {
	MakeDirectory(ctx context.Context, in *MakeDirectoryRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	RemoveDirectory(ctx context.Context, in *RemoveDirectoryRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	ListDirectory(ctx context.Context, in *ListDirectoryRequest, opts ...grpc.CallOption) (*ListDirectoryResponse, error)
	ListDirectoryWithDeleted(ctx context.Context, in *ListDirectoryWithDeletedRequest, opts ...grpc.CallOption) (*ListDirectoryResponse, error)

	Touch(ctx context.Context, in *TouchRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	RemoveFile(ctx context.Context, in *RemoveFileRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	PutFile(ctx context.Context, in *PutFileRequest, opts ...grpc.CallOption) (*PutFileResponse, error)
	GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error)
	ListVersions(ctx context.Context, in *ListVersionsRequest, opts ...grpc.CallOption) (*ListVersionsResponse, error)

	Stat(ctx context.Context, in *StatRequest, opts ...grpc.CallOption) (*StatResponse, error)
	Exists(ctx context.Context, in *ExistsRequest, opts ...grpc.CallOption) (*ExistsResponse, error)
	Rename(ctx context.Context, in *RenameRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	Move(ctx context.Context, in *MoveRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	Copy(ctx context.Context, in *CopyRequest, opts ...grpc.CallOption) (*OperationResponse, error)

	SetMetadata(ctx context.Context, in *SetMetadataRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*MetadataValueResponse, error)
	GetAllMetadata(ctx context.Context, in *GetAllMetadataRequest, opts ...grpc.CallOption) (*MetadataMapResponse, error)
	DeleteMetadata(ctx context.Context, in *DeleteMetadataRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	GetMetadataForVersion(ctx context.Context, in *GetMetadataForVersionRequest, opts ...grpc.CallOption) (*MetadataValueResponse, error)
	GetAllMetadataForVersion(ctx context.Context, in *GetAllMetadataForVersionRequest, opts ...grpc.CallOption) (*MetadataMapResponse, error)

	GrantPermission(ctx context.Context, in *GrantPermissionRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	RevokePermission(ctx context.Context, in *RevokePermissionRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	CheckPermission(ctx context.Context, in *CheckPermissionRequest, opts ...grpc.CallOption) (*CheckPermissionResponse, error)

	GetStorageUsage(ctx context.Context, in *StorageUsageRequest, opts ...grpc.CallOption) (*StorageUsageResponse, error)
	PurgeOldVersions(ctx context.Context, in *PurgeOldVersionsRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	TriggerSync(ctx context.Context, in *TriggerSyncRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	UndeleteFile(ctx context.Context, in *UndeleteFileRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	RestoreToVersion(ctx context.Context, in *RestoreToVersionRequest, opts ...grpc.CallOption) (*RestoreToVersionResponse, error)
}

type fileServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFileServiceClient returns a FileServiceClient that issues calls over cc
// using this package's codec.
func NewFileServiceClient(cc grpc.ClientConnInterface) FileServiceClient {
	return &fileServiceClient{cc: cc}
}

// invoke performs one unary call and decodes the reply into a fresh *T.
func invoke[T any, PT interface {
	*T
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PT, error) {
	out := PT(new(T))
	callOpts := append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServiceClient) MakeDirectory(ctx context.Context, in *MakeDirectoryRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, MethodMakeDirectory, in, opts)
}

func (c *fileServiceClient) RemoveDirectory(ctx context.Context, in *RemoveDirectoryRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodRemoveDirectory, in, opts)
}

func (c *fileServiceClient) ListDirectory(ctx context.Context, in *ListDirectoryRequest, opts ...grpc.CallOption) (*ListDirectoryResponse, error) {
	return invoke[ListDirectoryResponse](ctx, c.cc, MethodListDirectory, in, opts)
}

func (c *fileServiceClient) ListDirectoryWithDeleted(ctx context.Context, in *ListDirectoryWithDeletedRequest, opts ...grpc.CallOption) (*ListDirectoryResponse, error) {
	return invoke[ListDirectoryResponse](ctx, c.cc, MethodListDirectoryWithDeleted, in, opts)
}

func (c *fileServiceClient) Touch(ctx context.Context, in *TouchRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, MethodTouch, in, opts)
}

func (c *fileServiceClient) RemoveFile(ctx context.Context, in *RemoveFileRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodRemoveFile, in, opts)
}

func (c *fileServiceClient) PutFile(ctx context.Context, in *PutFileRequest, opts ...grpc.CallOption) (*PutFileResponse, error) {
	return invoke[PutFileResponse](ctx, c.cc, MethodPutFile, in, opts)
}

func (c *fileServiceClient) GetVersion(ctx context.Context, in *GetVersionRequest, opts ...grpc.CallOption) (*GetVersionResponse, error) {
	return invoke[GetVersionResponse](ctx, c.cc, MethodGetVersion, in, opts)
}

func (c *fileServiceClient) ListVersions(ctx context.Context, in *ListVersionsRequest, opts ...grpc.CallOption) (*ListVersionsResponse, error) {
	return invoke[ListVersionsResponse](ctx, c.cc, MethodListVersions, in, opts)
}

func (c *fileServiceClient) Stat(ctx context.Context, in *StatRequest, opts ...grpc.CallOption) (*StatResponse, error) {
	return invoke[StatResponse](ctx, c.cc, MethodStat, in, opts)
}

func (c *fileServiceClient) Exists(ctx context.Context, in *ExistsRequest, opts ...grpc.CallOption) (*ExistsResponse, error) {
	return invoke[ExistsResponse](ctx, c.cc, MethodExists, in, opts)
}

func (c *fileServiceClient) Rename(ctx context.Context, in *RenameRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodRename, in, opts)
}

func (c *fileServiceClient) Move(ctx context.Context, in *MoveRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodMove, in, opts)
}

func (c *fileServiceClient) Copy(ctx context.Context, in *CopyRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodCopy, in, opts)
}

func (c *fileServiceClient) SetMetadata(ctx context.Context, in *SetMetadataRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodSetMetadata, in, opts)
}

func (c *fileServiceClient) GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*MetadataValueResponse, error) {
	return invoke[MetadataValueResponse](ctx, c.cc, MethodGetMetadata, in, opts)
}

func (c *fileServiceClient) GetAllMetadata(ctx context.Context, in *GetAllMetadataRequest, opts ...grpc.CallOption) (*MetadataMapResponse, error) {
	return invoke[MetadataMapResponse](ctx, c.cc, MethodGetAllMetadata, in, opts)
}

func (c *fileServiceClient) DeleteMetadata(ctx context.Context, in *DeleteMetadataRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodDeleteMetadata, in, opts)
}

func (c *fileServiceClient) GetMetadataForVersion(ctx context.Context, in *GetMetadataForVersionRequest, opts ...grpc.CallOption) (*MetadataValueResponse, error) {
	return invoke[MetadataValueResponse](ctx, c.cc, MethodGetMetadataForVersion, in, opts)
}

func (c *fileServiceClient) GetAllMetadataForVersion(ctx context.Context, in *GetAllMetadataForVersionRequest, opts ...grpc.CallOption) (*MetadataMapResponse, error) {
	return invoke[MetadataMapResponse](ctx, c.cc, MethodGetAllMetadataForVersion, in, opts)
}

func (c *fileServiceClient) GrantPermission(ctx context.Context, in *GrantPermissionRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodGrantPermission, in, opts)
}

func (c *fileServiceClient) RevokePermission(ctx context.Context, in *RevokePermissionRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodRevokePermission, in, opts)
}

func (c *fileServiceClient) CheckPermission(ctx context.Context, in *CheckPermissionRequest, opts ...grpc.CallOption) (*CheckPermissionResponse, error) {
	return invoke[CheckPermissionResponse](ctx, c.cc, MethodCheckPermission, in, opts)
}

func (c *fileServiceClient) GetStorageUsage(ctx context.Context, in *StorageUsageRequest, opts ...grpc.CallOption) (*StorageUsageResponse, error) {
	return invoke[StorageUsageResponse](ctx, c.cc, MethodGetStorageUsage, in, opts)
}

func (c *fileServiceClient) PurgeOldVersions(ctx context.Context, in *PurgeOldVersionsRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodPurgeOldVersions, in, opts)
}

func (c *fileServiceClient) TriggerSync(ctx context.Context, in *TriggerSyncRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodTriggerSync, in, opts)
}

func (c *fileServiceClient) UndeleteFile(ctx context.Context, in *UndeleteFileRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodUndeleteFile, in, opts)
}

func (c *fileServiceClient) RestoreToVersion(ctx context.Context, in *RestoreToVersionRequest, opts ...grpc.CallOption) (*RestoreToVersionResponse, error) {
	return invoke[RestoreToVersionResponse](ctx, c.cc, MethodRestoreToVersion, in, opts)
}
