// Package audit defines the audit-trail contract consumed by domain services.
// The PostgreSQL recorder lives in infrastructure; services depend on this
// interface so audited writes stay storage-agnostic.
package audit

import (
	"context"

	"jobdesk/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Recorder stores one audit entry per mutating operation.
// Implementations are expected to write within the caller's transaction.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes any) error
}

// Nop is a Recorder that discards entries. Useful in tests.
type Nop struct{}

func (Nop) Record(context.Context, string, id.ID, Action, any) error { return nil }
