package session

import (
	"context"
	"sync"

	"gatepass/internal/registration/models"
	"gatepass/pkg/platform/sentinel"
)

// MemoryStore is the default session store. Drafts are process-local, so a
// restart drops in-flight dialogs; configure Redis when that matters.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[int64]models.Draft
}

func NewMemory() *MemoryStore {
	return &MemoryStore{drafts: make(map[int64]models.Draft)}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*models.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// Copy out so callers never share the stored plates slice.
	draft.Plates = append([]string(nil), draft.Plates...)
	return &draft, nil
}

func (s *MemoryStore) Put(_ context.Context, draft *models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *draft
	stored.Plates = append([]string(nil), draft.Plates...)
	s.drafts[draft.UserID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}
