package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gatepass/internal/registration/models"
	"gatepass/pkg/platform/sentinel"
)

// PostgresStore is the alternative record store for deployments that prefer a
// database over a spreadsheet. Same append-only contract; the table carries
// no uniqueness constraint on student_id because the guard is advisory.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the registrations table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id            BIGSERIAL PRIMARY KEY,
			full_name     TEXT NOT NULL,
			student_id    TEXT NOT NULL,
			phone         TEXT NOT NULL,
			vehicle_count INT  NOT NULL,
			plates        TEXT NOT NULL,
			document_ref  TEXT NOT NULL,
			committed_at  TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure registrations schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, reg models.Registration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO registrations
			(full_name, student_id, phone, vehicle_count, plates, document_ref, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reg.FullName,
		reg.StudentID,
		reg.Phone,
		reg.VehicleCount,
		reg.JoinedPlates(),
		reg.DocumentRef,
		reg.CommittedAt,
	)
	if err != nil {
		return fmt.Errorf("append registration row: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Exists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE student_id = $1)`,
		studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check student id: %w: %w", sentinel.ErrUnavailable, err)
	}
	return exists, nil
}
