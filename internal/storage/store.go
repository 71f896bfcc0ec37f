// Package storage provides abstractions for persisting the live working set
// of a settlement session.
package storage

import (
	"context"
	"errors"

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store persists sessions. Only the current working set is kept: deleting a
// session removes everything it owned, and settled ledgers are never stored
// (they are recomputed from the bills on demand).
//
// This abstraction allows swapping backends (in-memory, SQLite) without
// changing the session layer.
type Store interface {
	// CreateSession persists a new session. The session's ID and CreatedAt
	// will be populated by the store if unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by ID, including all bills, items and
	// participant assignments in their original order.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// SaveSession replaces the stored snapshot of an existing session.
	SaveSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and everything it owns.
	DeleteSession(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
