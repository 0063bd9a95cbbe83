package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/registration/models"
	"gatepass/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemoryStoreSuite) TestGetMissingReturnsNotFound() {
	_, err := s.store.Get(context.Background(), 42)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestPutThenGetRoundTrips() {
	draft := models.NewDraft(42)
	draft.FullName = "Ana Cruz"
	draft.State = models.StateCollectStudentID

	s.Require().NoError(s.store.Put(context.Background(), draft))

	found, err := s.store.Get(context.Background(), 42)
	s.Require().NoError(err)
	s.Equal(draft, found)
}

func (s *MemoryStoreSuite) TestDraftsDoNotAliasStoredPlates() {
	draft := models.NewDraft(42)
	draft.VehicleCount = 2
	draft.Plates = []string{"ABC123"}
	s.Require().NoError(s.store.Put(context.Background(), draft))

	found, err := s.store.Get(context.Background(), 42)
	s.Require().NoError(err)
	found.Plates[0] = "mutated"

	again, err := s.store.Get(context.Background(), 42)
	s.Require().NoError(err)
	s.Equal([]string{"ABC123"}, again.Plates)
}

func (s *MemoryStoreSuite) TestDeleteClearsDraft() {
	s.Require().NoError(s.store.Put(context.Background(), models.NewDraft(42)))
	s.Require().NoError(s.store.Delete(context.Background(), 42))

	_, err := s.store.Get(context.Background(), 42)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestDeleteMissingIsNoop() {
	s.Require().NoError(s.store.Delete(context.Background(), 7))
}

func (s *MemoryStoreSuite) TestUsersAreIndependent() {
	a := models.NewDraft(1)
	a.FullName = "Ana Cruz"
	b := models.NewDraft(2)
	b.FullName = "Ben Reyes"

	s.Require().NoError(s.store.Put(context.Background(), a))
	s.Require().NoError(s.store.Put(context.Background(), b))
	s.Require().NoError(s.store.Delete(context.Background(), 1))

	found, err := s.store.Get(context.Background(), 2)
	s.Require().NoError(err)
	s.Equal("Ben Reyes", found.FullName)
}
