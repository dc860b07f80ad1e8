package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records process lifecycle events that operators care about.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
