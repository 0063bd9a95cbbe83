//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/registration/models"
	"gatepass/internal/registration/store/session"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestGetMissingReturnsNotFound() {
	_, err := s.store.Get(context.Background(), 42)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestPutThenGetRoundTrips() {
	draft := models.NewDraft(42)
	draft.FullName = "Ana Cruz"
	draft.StudentID = "2021-0001"
	draft.VehicleCount = 2
	draft.Plates = []string{"ABC123"}
	draft.State = models.StateCollectPlate

	s.Require().NoError(s.store.Put(context.Background(), draft))

	found, err := s.store.Get(context.Background(), 42)
	s.Require().NoError(err)
	s.Equal(draft, found)
}

func (s *RedisStoreSuite) TestDeleteClearsDraft() {
	s.Require().NoError(s.store.Put(context.Background(), models.NewDraft(42)))
	s.Require().NoError(s.store.Delete(context.Background(), 42))

	_, err := s.store.Get(context.Background(), 42)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDraftExpiresAfterTTL() {
	short := session.NewRedis(s.redis.Client, time.Second)
	s.Require().NoError(short.Put(context.Background(), models.NewDraft(42)))

	s.Require().Eventually(func() bool {
		_, err := short.Get(context.Background(), 42)
		return err != nil
	}, 5*time.Second, 200*time.Millisecond)
}
