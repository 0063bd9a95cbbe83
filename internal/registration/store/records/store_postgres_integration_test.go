//go:build integration

package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/registration/models"
	"gatepass/internal/registration/store/records"
	"gatepass/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *records.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = records.NewPostgres(s.pg.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), "TRUNCATE registrations")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestAppendThenExists() {
	ctx := context.Background()

	found, err := s.store.Exists(ctx, "2021-0001")
	s.Require().NoError(err)
	s.False(found)

	s.Require().NoError(s.store.Append(ctx, models.Registration{
		FullName:     "Ana Cruz",
		StudentID:    "2021-0001",
		Phone:        "0917",
		VehicleCount: 2,
		Plates:       []string{"ABC123", "XYZ789"},
		DocumentRef:  "https://drive.example/doc-1",
		CommittedAt:  time.Now(),
	}))

	found, err = s.store.Exists(ctx, "2021-0001")
	s.Require().NoError(err)
	s.True(found)
}

func (s *PostgresStoreSuite) TestAppendStoresJoinedPlates() {
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, models.Registration{
		FullName:     "Ana Cruz",
		StudentID:    "2021-0001",
		Phone:        "0917",
		VehicleCount: 2,
		Plates:       []string{"ABC123", "XYZ789"},
		DocumentRef:  "ref",
		CommittedAt:  time.Now(),
	}))

	var plates string
	err := s.pg.Pool.QueryRow(ctx,
		"SELECT plates FROM registrations WHERE student_id = $1", "2021-0001",
	).Scan(&plates)
	s.Require().NoError(err)
	s.Equal("ABC123, XYZ789", plates)
}

func (s *PostgresStoreSuite) TestDuplicateAppendIsAllowedByStore() {
	// Uniqueness is advisory; the guard, not the store, prevents duplicates.
	ctx := context.Background()
	reg := models.Registration{StudentID: "2021-0001", CommittedAt: time.Now()}
	s.Require().NoError(s.store.Append(ctx, reg))
	s.Require().NoError(s.store.Append(ctx, reg))
}
