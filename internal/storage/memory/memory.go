// Package memory provides an in-memory implementation of storage.Store.
// It is the default backend and the one tests run against.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions are deep-copied
// on the way in and out so callers never share mutable state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (s *MemoryStore) CreateSession(_ context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return clone(session), nil
}

func (s *MemoryStore) SaveSession(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, session.ID)
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func clone(session *models.Session) *models.Session {
	out := *session
	out.Roster = append([]string(nil), session.Roster...)
	out.Bills = make([]models.Bill, len(session.Bills))
	for i, bill := range session.Bills {
		b := bill
		b.Items = make([]models.Item, len(bill.Items))
		for j, item := range bill.Items {
			it := item
			it.Participants = append([]string(nil), item.Participants...)
			b.Items[j] = it
		}
		out.Bills[i] = b
	}
	return &out
}
