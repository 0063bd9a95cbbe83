package records

import (
	"context"
	"sync"

	"gatepass/internal/registration/models"
)

// MemoryStore backs tests and local development. It mirrors the append-only
// contract of the real stores.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []models.Registration
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, reg models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, reg)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, studentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if row.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// Rows returns a copy of everything appended so far.
func (s *MemoryStore) Rows() []models.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Registration(nil), s.rows...)
}
