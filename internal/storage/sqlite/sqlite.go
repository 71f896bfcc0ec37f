// Package sqlite provides a SQLite-backed implementation of storage.Store,
// so an in-progress settlement run survives a server restart.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session with its full working set.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, state, created_at) VALUES (?, ?, ?)",
		session.ID, string(session.State), session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertWorkingSet(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveSession replaces the stored snapshot of an existing session. The
// working set is rewritten wholesale; a session is small enough that diffing
// rows is not worth the bookkeeping.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *models.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET state = ? WHERE id = ?",
		string(session.State), session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, session.ID)
	}

	// bills cascade to items and item_participants
	if _, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to clear bills: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM roster_members WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	if err := insertWorkingSet(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertWorkingSet(ctx context.Context, tx *sql.Tx, session *models.Session) error {
	for i, name := range session.Roster {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO roster_members (session_id, position, name) VALUES (?, ?, ?)",
			session.ID, i+1, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert roster member: %w", err)
		}
	}

	for i := range session.Bills {
		bill := &session.Bills[i]
		if bill.ID == "" {
			bill.ID = uuid.New().String()
		}
		if bill.CreatedAt == 0 {
			bill.CreatedAt = time.Now().Unix()
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO bills (id, session_id, position, store_name, date, total, currency, payer, filename, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, session.ID, i+1, bill.StoreName, bill.Date, bill.Total,
			bill.Currency, bill.Payer, bill.Filename, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		for j, item := range bill.Items {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO items (bill_id, position, name, price) VALUES (?, ?, ?, ?)",
				bill.ID, j+1, item.Name, item.Price,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
			for k, participant := range item.Participants {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO item_participants (bill_id, item_position, position, name) VALUES (?, ?, ?, ?)",
					bill.ID, j+1, k+1, participant,
				)
				if err != nil {
					return fmt.Errorf("failed to insert item participant: %w", err)
				}
			}
		}
	}
	return nil
}

// GetSession retrieves a session with bills, items and participants in their
// stored order.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}
	var state string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, state, created_at FROM sessions WHERE id = ?",
		id,
	).Scan(&session.ID, &state, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.State = models.WizardState(state)

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM roster_members WHERE session_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		session.Roster = append(session.Roster, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	billRows, err := s.db.QueryContext(ctx,
		`SELECT id, store_name, date, total, currency, payer, filename, created_at
		 FROM bills WHERE session_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	defer billRows.Close()

	for billRows.Next() {
		var bill models.Bill
		if err := billRows.Scan(&bill.ID, &bill.StoreName, &bill.Date, &bill.Total,
			&bill.Currency, &bill.Payer, &bill.Filename, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if err := s.loadItems(ctx, &bill); err != nil {
			return nil, err
		}
		session.Bills = append(session.Bills, bill)
	}
	if err := billRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return session, nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, bill *models.Bill) error {
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT position, name, price FROM items WHERE bill_id = ? ORDER BY position",
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	var positions []int
	for itemRows.Next() {
		var pos int
		var item models.Item
		if err := itemRows.Scan(&pos, &item.Name, &item.Price); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		positions = append(positions, pos)
		bill.Items = append(bill.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	for i, pos := range positions {
		rows, err := s.db.QueryContext(ctx,
			"SELECT name FROM item_participants WHERE bill_id = ? AND item_position = ? ORDER BY position",
			bill.ID, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to get item participants: %w", err)
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan participant: %w", err)
			}
			bill.Items[i].Participants = append(bill.Items[i].Participants, name)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate participants: %w", err)
		}
	}
	return nil
}

// DeleteSession removes a session and, via cascade, everything it owns.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}
