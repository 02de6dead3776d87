package sandbox

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a StoreError.
type ErrorCode int

const (
	ErrNotFound ErrorCode = iota + 1
	ErrAlreadyExists
	ErrNotDirectory
	ErrIsDirectory
	ErrInvalidArgument
	ErrUnauthenticated
	ErrNotDeleted
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not found"
	case ErrAlreadyExists:
		return "already exists"
	case ErrNotDirectory:
		return "not a directory"
	case ErrIsDirectory:
		return "is a directory"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrUnauthenticated:
		return "unauthenticated"
	case ErrNotDeleted:
		return "not deleted"
	default:
		return "unknown"
	}
}

// StoreError is an application-level rejection. The service reports it in the
// response body rather than as a gRPC status.
type StoreError struct {
	Code    ErrorCode
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

func storeErr(code ErrorCode, format string, args ...any) *StoreError {
	return &StoreError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of a StoreError in err's chain, or 0.
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
