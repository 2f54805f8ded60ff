package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dummy-data/internal/domain/model"

	"github.com/google/uuid"
)

const defaultListLimit = 20

// Entry is one settled operation as it was shown to the operator.
type Entry struct {
	ID        uuid.UUID
	Operation model.Operation
	ShopID    string
	Severity  model.Severity
	Message   string
	SettledAt time.Time
}

type Store interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// SQLStore speaks the subset of SQL shared by the mysql and sqlite drivers.
type SQLStore struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS dummy_data_journal (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	operation VARCHAR(64) NOT NULL,
	shop_id VARCHAR(255) NOT NULL,
	severity VARCHAR(16) NOT NULL,
	message TEXT NOT NULL,
	settled_at BIGINT NOT NULL
)`

func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("journal db is nil")
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("journal migrate: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Record(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.SettledAt.IsZero() {
		entry.SettledAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dummy_data_journal (id, operation, shop_id, severity, message, settled_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		string(entry.Operation),
		entry.ShopID,
		string(entry.Severity),
		entry.Message,
		entry.SettledAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("journal record %s: %w", entry.Operation, err)
	}
	return nil
}

// List returns the newest entries first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, operation, shop_id, severity, message, settled_at FROM dummy_data_journal ORDER BY settled_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			id, operation, shopID, severity, message string
			settledAt                                int64
		)
		if err := rows.Scan(&id, &operation, &shopID, &severity, &message, &settledAt); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		parsed, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("journal scan id %q: %w", id, err)
		}
		entries = append(entries, Entry{
			ID:        parsed,
			Operation: model.Operation(operation),
			ShopID:    shopID,
			Severity:  model.Severity(severity),
			Message:   message,
			SettledAt: time.Unix(0, settledAt).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	return entries, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
