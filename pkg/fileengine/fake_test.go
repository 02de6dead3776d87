package fileengine

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/marmos91/fileengine/pkg/fileservice"
)

var errUnavailable = status.Error(codes.Unavailable, "connection refused")

// fakeService is a scripted FileServiceClient recording every call.
// Unscripted methods fail at the transport level.
type fakeService struct {
	mu       sync.Mutex
	calls    []string
	requests map[string][]any
	handlers map[string]func(req any) (any, error)
}

func newFakeService() *fakeService {
	return &fakeService{
		requests: make(map[string][]any),
		handlers: make(map[string]func(req any) (any, error)),
	}
}

// reply scripts a fixed response for method.
func (f *fakeService) reply(method string, resp any) *fakeService {
	return f.handle(method, func(any) (any, error) { return resp, nil })
}

// fail scripts a transport error for method.
func (f *fakeService) fail(method string, err error) *fakeService {
	return f.handle(method, func(any) (any, error) { return nil, err })
}

func (f *fakeService) handle(method string, h func(req any) (any, error)) *fakeService {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method] = h
	return f
}

func (f *fakeService) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests[method])
}

func (f *fakeService) last(method string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	reqs := f.requests[method]
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

func dispatch[R any](ctx context.Context, f *fakeService, method string, req any) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, status.FromContextError(err).Err()
	}

	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.requests[method] = append(f.requests[method], req)
	h := f.handlers[method]
	f.mu.Unlock()

	if h == nil {
		return zero, status.Error(codes.Unavailable, "unscripted "+method)
	}
	resp, err := h(req)
	if err != nil {
		return zero, err
	}
	r, ok := resp.(R)
	if !ok {
		return zero, fmt.Errorf("scripted %T for %s, want %T", resp, method, zero)
	}
	return r, nil
}

var _ fileservice.FileServiceClient = (*fakeService)(nil)

func (f *fakeService) MakeDirectory(ctx context.Context, in *fileservice.MakeDirectoryRequest, _ ...grpc.CallOption) (*fileservice.CreateResponse, error) {
	return dispatch[*fileservice.CreateResponse](ctx, f, fileservice.MethodMakeDirectory, in)
}

func (f *fakeService) RemoveDirectory(ctx context.Context, in *fileservice.RemoveDirectoryRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodRemoveDirectory, in)
}

func (f *fakeService) ListDirectory(ctx context.Context, in *fileservice.ListDirectoryRequest, _ ...grpc.CallOption) (*fileservice.ListDirectoryResponse, error) {
	return dispatch[*fileservice.ListDirectoryResponse](ctx, f, fileservice.MethodListDirectory, in)
}

func (f *fakeService) ListDirectoryWithDeleted(ctx context.Context, in *fileservice.ListDirectoryWithDeletedRequest, _ ...grpc.CallOption) (*fileservice.ListDirectoryResponse, error) {
	return dispatch[*fileservice.ListDirectoryResponse](ctx, f, fileservice.MethodListDirectoryWithDeleted, in)
}

func (f *fakeService) Touch(ctx context.Context, in *fileservice.TouchRequest, _ ...grpc.CallOption) (*fileservice.CreateResponse, error) {
	return dispatch[*fileservice.CreateResponse](ctx, f, fileservice.MethodTouch, in)
}

func (f *fakeService) RemoveFile(ctx context.Context, in *fileservice.RemoveFileRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodRemoveFile, in)
}

func (f *fakeService) PutFile(ctx context.Context, in *fileservice.PutFileRequest, _ ...grpc.CallOption) (*fileservice.PutFileResponse, error) {
	return dispatch[*fileservice.PutFileResponse](ctx, f, fileservice.MethodPutFile, in)
}

func (f *fakeService) GetVersion(ctx context.Context, in *fileservice.GetVersionRequest, _ ...grpc.CallOption) (*fileservice.GetVersionResponse, error) {
	return dispatch[*fileservice.GetVersionResponse](ctx, f, fileservice.MethodGetVersion, in)
}

func (f *fakeService) ListVersions(ctx context.Context, in *fileservice.ListVersionsRequest, _ ...grpc.CallOption) (*fileservice.ListVersionsResponse, error) {
	return dispatch[*fileservice.ListVersionsResponse](ctx, f, fileservice.MethodListVersions, in)
}

func (f *fakeService) Stat(ctx context.Context, in *fileservice.StatRequest, _ ...grpc.CallOption) (*fileservice.StatResponse, error) {
	return dispatch[*fileservice.StatResponse](ctx, f, fileservice.MethodStat, in)
}

func (f *fakeService) Exists(ctx context.Context, in *fileservice.ExistsRequest, _ ...grpc.CallOption) (*fileservice.ExistsResponse, error) {
	return dispatch[*fileservice.ExistsResponse](ctx, f, fileservice.MethodExists, in)
}

func (f *fakeService) Rename(ctx context.Context, in *fileservice.RenameRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodRename, in)
}

func (f *fakeService) Move(ctx context.Context, in *fileservice.MoveRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodMove, in)
}

func (f *fakeService) Copy(ctx context.Context, in *fileservice.CopyRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodCopy, in)
}

func (f *fakeService) SetMetadata(ctx context.Context, in *fileservice.SetMetadataRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodSetMetadata, in)
}

func (f *fakeService) GetMetadata(ctx context.Context, in *fileservice.GetMetadataRequest, _ ...grpc.CallOption) (*fileservice.MetadataValueResponse, error) {
	return dispatch[*fileservice.MetadataValueResponse](ctx, f, fileservice.MethodGetMetadata, in)
}

func (f *fakeService) GetAllMetadata(ctx context.Context, in *fileservice.GetAllMetadataRequest, _ ...grpc.CallOption) (*fileservice.MetadataMapResponse, error) {
	return dispatch[*fileservice.MetadataMapResponse](ctx, f, fileservice.MethodGetAllMetadata, in)
}

func (f *fakeService) DeleteMetadata(ctx context.Context, in *fileservice.DeleteMetadataRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodDeleteMetadata, in)
}

func (f *fakeService) GetMetadataForVersion(ctx context.Context, in *fileservice.GetMetadataForVersionRequest, _ ...grpc.CallOption) (*fileservice.MetadataValueResponse, error) {
	return dispatch[*fileservice.MetadataValueResponse](ctx, f, fileservice.MethodGetMetadataForVersion, in)
}

func (f *fakeService) GetAllMetadataForVersion(ctx context.Context, in *fileservice.GetAllMetadataForVersionRequest, _ ...grpc.CallOption) (*fileservice.MetadataMapResponse, error) {
	return dispatch[*fileservice.MetadataMapResponse](ctx, f, fileservice.MethodGetAllMetadataForVersion, in)
}

func (f *fakeService) GrantPermission(ctx context.Context, in *fileservice.GrantPermissionRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodGrantPermission, in)
}

func (f *fakeService) RevokePermission(ctx context.Context, in *fileservice.RevokePermissionRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodRevokePermission, in)
}

func (f *fakeService) CheckPermission(ctx context.Context, in *fileservice.CheckPermissionRequest, _ ...grpc.CallOption) (*fileservice.CheckPermissionResponse, error) {
	return dispatch[*fileservice.CheckPermissionResponse](ctx, f, fileservice.MethodCheckPermission, in)
}

func (f *fakeService) GetStorageUsage(ctx context.Context, in *fileservice.StorageUsageRequest, _ ...grpc.CallOption) (*fileservice.StorageUsageResponse, error) {
	return dispatch[*fileservice.StorageUsageResponse](ctx, f, fileservice.MethodGetStorageUsage, in)
}

func (f *fakeService) PurgeOldVersions(ctx context.Context, in *fileservice.PurgeOldVersionsRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodPurgeOldVersions, in)
}

func (f *fakeService) TriggerSync(ctx context.Context, in *fileservice.TriggerSyncRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodTriggerSync, in)
}

func (f *fakeService) UndeleteFile(ctx context.Context, in *fileservice.UndeleteFileRequest, _ ...grpc.CallOption) (*fileservice.OperationResponse, error) {
	return dispatch[*fileservice.OperationResponse](ctx, f, fileservice.MethodUndeleteFile, in)
}

func (f *fakeService) RestoreToVersion(ctx context.Context, in *fileservice.RestoreToVersionRequest, _ ...grpc.CallOption) (*fileservice.RestoreToVersionResponse, error) {
	return dispatch[*fileservice.RestoreToVersionResponse](ctx, f, fileservice.MethodRestoreToVersion, in)
}
