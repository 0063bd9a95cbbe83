package audit

import (
	"context"
	"time"
)

// Event is emitted from dialog logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	UserID    int64
	Action    Action
	Detail    string
}

// Action names the dialog lifecycle moments worth an audit row.
type Action string

const (
	ActionDialogStarted     Action = "dialog_started"
	ActionDialogCancelled   Action = "dialog_cancelled"
	ActionDuplicateRejected Action = "duplicate_rejected"
	ActionDocumentStored    Action = "document_stored"
	ActionCommitted         Action = "registration_committed"
	ActionCommitFailed      Action = "commit_failed"
)

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID int64) ([]Event, error)
}
