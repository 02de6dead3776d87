package fileservice

import (
	"context"

	"google.golang.org/grpc"
)

// FileServiceServer is the server API of the FileService.
type FileServiceServer interface {
	MakeDirectory(context.Context, *MakeDirectoryRequest) (*CreateResponse, error)
	RemoveDirectory(context.Context, *RemoveDirectoryRequest) (*OperationResponse, error)
	ListDirectory(context.Context, *ListDirectoryRequest) (*ListDirectoryResponse, error)
	ListDirectoryWithDeleted(context.Context, *ListDirectoryWithDeletedRequest) (*ListDirectoryResponse, error)

	Touch(context.Context, *TouchRequest) (*CreateResponse, error)
	RemoveFile(context.Context, *RemoveFileRequest) (*OperationResponse, error)
	PutFile(context.Context, *PutFileRequest) (*PutFileResponse, error)
	GetVersion(context.Context, *GetVersionRequest) (*GetVersionResponse, error)
	ListVersions(context.Context, *ListVersionsRequest) (*ListVersionsResponse, error)

	Stat(context.Context, *StatRequest) (*StatResponse, error)
	Exists(context.Context, *ExistsRequest) (*ExistsResponse, error)
	Rename(context.Context, *RenameRequest) (*OperationResponse, error)
	Move(context.Context, *MoveRequest) (*OperationResponse, error)
	Copy(context.Context, *CopyRequest) (*OperationResponse, error)

	SetMetadata(context.Context, *SetMetadataRequest) (*OperationResponse, error)
	GetMetadata(context.Context, *GetMetadataRequest) (*MetadataValueResponse, error)
	GetAllMetadata(context.Context, *GetAllMetadataRequest) (*MetadataMapResponse, error)
	DeleteMetadata(context.Context, *DeleteMetadataRequest) (*OperationResponse, error)
	GetMetadataForVersion(context.Context, *GetMetadataForVersionRequest) (*MetadataValueResponse, error)
	GetAllMetadataForVersion(context.Context, *GetAllMetadataForVersionRequest) (*MetadataMapResponse, error)

	GrantPermission(context.Context, *GrantPermissionRequest) (*OperationResponse, error)
	RevokePermission(context.Context, *RevokePermissionRequest) (*OperationResponse, error)
	CheckPermission(context.Context, *CheckPermissionRequest) (*CheckPermissionResponse, error)

	GetStorageUsage(context.Context, *StorageUsageRequest) (*StorageUsageResponse, error)
	PurgeOldVersions(context.Context, *PurgeOldVersionsRequest) (*OperationResponse, error)
	TriggerSync(context.Context, *TriggerSyncRequest) (*OperationResponse, error)
	UndeleteFile(context.Context, *UndeleteFileRequest) (*OperationResponse, error)
	RestoreToVersion(context.Context, *RestoreToVersionRequest) (*RestoreToVersionResponse, error)
}

// ServerOption installs this package's codec on a grpc.Server. Servers that
// register FileServiceServer must be created with it.
func ServerOption() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec{})
}

// RegisterFileServiceServer registers srv on s.
func RegisterFileServiceServer(s grpc.ServiceRegistrar, srv FileServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp any](method string, call func(FileServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FileServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FileServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func method[Req any, PReq interface {
	*Req
	Message
}, Resp any](name string, call func(FileServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{MethodName: name, Handler: unary[Req, PReq, Resp](name, call)}
}

// ServiceDesc describes the FileService for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method(MethodMakeDirectory, FileServiceServer.MakeDirectory),
		method(MethodRemoveDirectory, FileServiceServer.RemoveDirectory),
		method(MethodListDirectory, FileServiceServer.ListDirectory),
		method(MethodListDirectoryWithDeleted, FileServiceServer.ListDirectoryWithDeleted),
		method(MethodTouch, FileServiceServer.Touch),
		method(MethodRemoveFile, FileServiceServer.RemoveFile),
		method(MethodPutFile, FileServiceServer.PutFile),
		method(MethodGetVersion, FileServiceServer.GetVersion),
		method(MethodListVersions, FileServiceServer.ListVersions),
		method(MethodStat, FileServiceServer.Stat),
		method(MethodExists, FileServiceServer.Exists),
		method(MethodRename, FileServiceServer.Rename),
		method(MethodMove, FileServiceServer.Move),
		method(MethodCopy, FileServiceServer.Copy),
		method(MethodSetMetadata, FileServiceServer.SetMetadata),
		method(MethodGetMetadata, FileServiceServer.GetMetadata),
		method(MethodGetAllMetadata, FileServiceServer.GetAllMetadata),
		method(MethodDeleteMetadata, FileServiceServer.DeleteMetadata),
		method(MethodGetMetadataForVersion, FileServiceServer.GetMetadataForVersion),
		method(MethodGetAllMetadataForVersion, FileServiceServer.GetAllMetadataForVersion),
		method(MethodGrantPermission, FileServiceServer.GrantPermission),
		method(MethodRevokePermission, FileServiceServer.RevokePermission),
		method(MethodCheckPermission, FileServiceServer.CheckPermission),
		method(MethodGetStorageUsage, FileServiceServer.GetStorageUsage),
		method(MethodPurgeOldVersions, FileServiceServer.PurgeOldVersions),
		method(MethodTriggerSync, FileServiceServer.TriggerSync),
		method(MethodUndeleteFile, FileServiceServer.UndeleteFile),
		method(MethodRestoreToVersion, FileServiceServer.RestoreToVersion),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fileservice.proto",
}
