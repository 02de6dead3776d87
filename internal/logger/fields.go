package logger

import (
	"log/slog"
	"strings"
)

// Standard field keys. Use them consistently so logs can be queried by field.
const (
	// Tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Operation
	KeyOperation  = "operation"   // adapter operation: mkdir, put, dir, ...
	KeyMethod     = "method"      // RPC method: MakeDirectory, PutFile, ...
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // transport error or server error text
	KeyStatus     = "status"      // gRPC status code

	// Entities
	KeyUID       = "uid"
	KeyParentUID = "parent_uid"
	KeyName      = "name"
	KeyVersion   = "version"
	KeyBack      = "back"
	KeyKey       = "key"
	KeyEntries   = "entries"
	KeyBytes     = "bytes"

	// Identity
	KeyUser       = "user"
	KeyTenant     = "tenant"
	KeyRoles      = "roles"
	KeyClaims     = "claims" // claim keys only, never values
	KeyPrincipal  = "principal"
	KeyPermission = "permission"

	// Server
	KeyAddress = "address"
)

// TraceID returns a slog.Attr for an OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for an OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the adapter operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Method returns a slog.Attr for an RPC method name
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// DurationMs returns a slog.Attr for a duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error. A nil error yields an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ErrMsg returns a slog.Attr for an error message reported by the server
func ErrMsg(msg string) slog.Attr {
	return slog.String(KeyError, msg)
}

func UID(uid string) slog.Attr {
	return slog.String(KeyUID, uid)
}

func ParentUID(uid string) slog.Attr {
	return slog.String(KeyParentUID, uid)
}

func Name(name string) slog.Attr {
	return slog.String(KeyName, name)
}

func Version(v string) slog.Attr {
	return slog.String(KeyVersion, v)
}

// Back returns a slog.Attr for a version offset (0 = latest)
func Back(n int) slog.Attr {
	return slog.Int(KeyBack, n)
}

// Key returns a slog.Attr for a metadata key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Entries returns a slog.Attr for the number of directory entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Bytes returns a slog.Attr for a payload size
func Bytes(n int) slog.Attr {
	return slog.Int(KeyBytes, n)
}

func User(u string) slog.Attr {
	return slog.String(KeyUser, u)
}

func Tenant(t string) slog.Attr {
	return slog.String(KeyTenant, t)
}

// Roles returns a slog.Attr for a role list, comma separated
func Roles(roles []string) slog.Attr {
	return slog.String(KeyRoles, strings.Join(roles, ","))
}

// Claims returns a slog.Attr for claim keys. Values are never logged.
func Claims(keys []string) slog.Attr {
	return slog.String(KeyClaims, strings.Join(keys, ","))
}

func Principal(p string) slog.Attr {
	return slog.String(KeyPrincipal, p)
}

func Permission(p string) slog.Attr {
	return slog.String(KeyPermission, p)
}

func Address(addr string) slog.Attr {
	return slog.String(KeyAddress, addr)
}
