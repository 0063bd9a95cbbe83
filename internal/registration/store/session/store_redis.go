package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gatepass/internal/registration/models"
	"gatepass/pkg/platform/sentinel"
)

const draftKeyPrefix = "gatepass:draft:"

// RedisStore keeps drafts in Redis so an in-flight dialog survives a process
// restart. The TTL reaps drafts abandoned mid-dialog.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(userID int64) string {
	return draftKeyPrefix + strconv.FormatInt(userID, 10)
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*models.Draft, error) {
	payload, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", sentinel.ErrUnavailable)
	}

	var draft models.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisStore) Put(ctx context.Context, draft *models.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.UserID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("put draft: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", sentinel.ErrUnavailable)
	}
	return nil
}
