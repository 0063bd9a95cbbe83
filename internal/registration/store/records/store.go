// Package records is the append-only tabular store for committed
// registrations. Rows are never mutated after Append; student-ID uniqueness
// is advisory and enforced by the duplicate guard at input time, not by the
// store.
package records

import (
	"context"

	"gatepass/internal/registration/models"
)

type Store interface {
	// Append adds one finalized registration row.
	Append(ctx context.Context, reg models.Registration) error

	// Exists reports whether a row with this student ID is already present.
	Exists(ctx context.Context, studentID string) (bool, error)
}
