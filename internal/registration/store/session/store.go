// Package session holds the per-user draft for the duration of a dialog.
package session

import (
	"context"

	"gatepass/internal/registration/models"
)

// Store keeps at most one draft per user id. Get for a user with no active
// dialog returns sentinel.ErrNotFound; the engine treats that as "no dialog"
// and never starts one implicitly.
type Store interface {
	Get(ctx context.Context, userID int64) (*models.Draft, error)
	Put(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, userID int64) error
}
