// Package session owns the live working set of a settlement run and the
// wizard state machine driving it. All mutation goes through the Manager so
// each session stays isolated and the settlement computation can remain a
// pure function over an explicit bill collection.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/settlement"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
)

// Manager coordinates reads and writes of sessions against a storage
// backend. A single mutex serializes mutations; the working set is small and
// single-user per session, so finer locking buys nothing.
type Manager struct {
	mu            sync.Mutex
	store         storage.Store
	defaultRoster []string
}

// NewManager creates a Manager over the given store.
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// WithDefaultRoster replaces the built-in household used for sessions
// created without an explicit roster.
func (m *Manager) WithDefaultRoster(roster []string) *Manager {
	m.defaultRoster = roster
	return m
}

// Create starts a new session in the upload step. An empty roster falls back
// to the default household.
func (m *Manager) Create(ctx context.Context, roster []string) (*models.Session, error) {
	if len(roster) == 0 {
		if len(m.defaultRoster) > 0 {
			roster = append([]string(nil), m.defaultRoster...)
		} else {
			roster = models.DefaultRoster()
		}
	}
	session := &models.Session{
		State:     models.StateUploading,
		Roster:    roster,
		CreatedAt: time.Now().Unix(),
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	slog.Info("session created", "session_id", session.ID, "roster_size", len(roster))
	return session, nil
}

// Get returns the current snapshot of a session.
func (m *Manager) Get(ctx context.Context, id string) (*models.Session, error) {
	return m.store.GetSession(ctx, id)
}

// Delete ends a session and discards its working set.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	slog.Info("session deleted", "session_id", id)
	return nil
}

// update loads a session, applies fn, and persists the result if fn
// succeeded. All mutations funnel through here.
func (m *Manager) update(ctx context.Context, id string, fn func(*models.Session) error) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// AddBills appends extracted bills to the session, preserving upload order.
// Appending never renumbers existing bills.
func (m *Manager) AddBills(ctx context.Context, id string, bills []models.Bill) (*models.Session, error) {
	return m.update(ctx, id, func(s *models.Session) error {
		now := time.Now().Unix()
		for i := range bills {
			if bills[i].CreatedAt == 0 {
				bills[i].CreatedAt = now
			}
		}
		s.Bills = append(s.Bills, bills...)
		return nil
	})
}

// AssignParticipants replaces the participant set of one item. Bill and item
// numbers are 1-based, matching what users see. Blank names are rejected;
// duplicates collapse.
func (m *Manager) AssignParticipants(ctx context.Context, id string, billNumber, itemNumber int, participants []string) (*models.Session, error) {
	for _, p := range participants {
		if strings.TrimSpace(p) == "" {
			return nil, ErrEmptyName
		}
	}
	return m.update(ctx, id, func(s *models.Session) error {
		item, err := findItem(s, billNumber, itemNumber)
		if err != nil {
			return err
		}
		item.SetParticipants(participants)
		return nil
	})
}

// AddVisitor adds an ad-hoc name to one item's participant set. The visitor
// is scoped to that item; they do not join the roster.
func (m *Manager) AddVisitor(ctx context.Context, id string, billNumber, itemNumber int, name string) (*models.Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return m.update(ctx, id, func(s *models.Session) error {
		item, err := findItem(s, billNumber, itemNumber)
		if err != nil {
			return err
		}
		item.AddParticipant(name)
		return nil
	})
}

// SetPayer records who fronted the money for a bill.
func (m *Manager) SetPayer(ctx context.Context, id string, billNumber int, payer string) (*models.Session, error) {
	if strings.TrimSpace(payer) == "" {
		return nil, ErrEmptyName
	}
	return m.update(ctx, id, func(s *models.Session) error {
		bill := s.Bill(billNumber)
		if bill == nil {
			return fmt.Errorf("%w: %d", ErrBillNotFound, billNumber)
		}
		bill.Payer = strings.TrimSpace(payer)
		return nil
	})
}

// Advance moves the wizard one step forward, enforcing the step's guard.
func (m *Manager) Advance(ctx context.Context, id string) (*models.Session, error) {
	return m.update(ctx, id, advance)
}

// Back moves the wizard one step backward.
func (m *Manager) Back(ctx context.Context, id string) (*models.Session, error) {
	return m.update(ctx, id, back)
}

// Settlement computes the ledger for the session's current bills. It may be
// called speculatively at any step; incomplete bills and items are simply
// omitted per the engine's policy.
func (m *Manager) Settlement(ctx context.Context, id string) (models.Settlement, *models.Session, error) {
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return settlement.Compute(session.Bills, session.Roster), session, nil
}

func findItem(s *models.Session, billNumber, itemNumber int) (*models.Item, error) {
	bill := s.Bill(billNumber)
	if bill == nil {
		return nil, fmt.Errorf("%w: %d", ErrBillNotFound, billNumber)
	}
	if itemNumber < 1 || itemNumber > len(bill.Items) {
		return nil, fmt.Errorf("%w: bill %d item %d", ErrItemNotFound, billNumber, itemNumber)
	}
	return &bill.Items[itemNumber-1], nil
}
