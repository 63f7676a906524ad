package ports

import (
	"context"
	"time"
)

// Audit actions recorded for account changes.
const (
	AuditSignup     = "signup"
	AuditDeactivate = "deactivate"
	AuditRestore    = "restore"
	AuditPurge      = "purge"
	AuditSelfDelete = "self_delete"
)

// AuditEvent records who changed which account and how.
type AuditEvent struct {
	AccountID int64
	ActorID   int64
	Action    string
	At        time.Time
}

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event AuditEvent) error
}
