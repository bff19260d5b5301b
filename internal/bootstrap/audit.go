package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that should survive log
// rotation policy decisions (startup, shutdown, destructive actions).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
