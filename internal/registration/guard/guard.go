// Package guard answers "is this student ID already registered" against the
// record store. The one correctness property here: a store failure must never
// read as "not registered", or duplicates slip through.
package guard

import (
	"context"
	"fmt"
	"log/slog"

	"gatepass/pkg/platform/sentinel"
)

// RecordChecker is the slice of the record store the guard needs.
type RecordChecker interface {
	Exists(ctx context.Context, studentID string) (bool, error)
}

type Guard struct {
	records RecordChecker
	log     *slog.Logger
}

func New(records RecordChecker, log *slog.Logger) *Guard {
	return &Guard{records: records, log: log}
}

// IsRegistered checks the key column for an exact match. When the store is
// unreachable the error wraps sentinel.ErrUnavailable so the engine re-prompts
// instead of accepting the input.
func (g *Guard) IsRegistered(ctx context.Context, studentID string) (bool, error) {
	registered, err := g.records.Exists(ctx, studentID)
	if err != nil {
		g.log.Error("duplicate check failed", "err", err)
		return false, fmt.Errorf("duplicate check: %w", sentinel.ErrUnavailable)
	}
	return registered, nil
}
