package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"paysynth/database"
	"paysynth/models"
)

// Store loads generated records into a relational database. Empty-string
// fields become SQL NULLs, mirroring what the analytics pipeline under test
// will see. Intentional defects (duplicate ids, orphan event user ids) load
// without complaint; the schema is shaped to allow them.
type Store struct {
	db *database.DB
}

// NewStore wraps an open, migrated database connection.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// rebind rewrites ? placeholders to $n for the pgx driver. sqlite3 takes ?
// as-is.
func (s *Store) rebind(query string) string {
	if s.db.Driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Reset clears all three tables so repeated loads stay reproducible. Children
// first, to keep the declared foreign keys satisfied.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"app_events", "transactions", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func nullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullFloat(v string) sql.NullFloat64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullInt(v string) sql.NullInt64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullInt64{}
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

// InsertUsers bulk-inserts the user dimension in one transaction.
func (s *Store) InsertUsers(ctx context.Context, users []models.User) error {
	query := s.rebind(`
		INSERT INTO users (user_id, first_name, last_name, email, country, signup_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range users {
			_, err := tx.ExecContext(ctx, query,
				u.UserID, nullString(u.FirstName), nullString(u.LastName),
				nullString(u.Email), nullString(u.Country), nullString(u.SignupAt))
			if err != nil {
				return fmt.Errorf("failed to insert user %d: %w", u.UserID, err)
			}
		}
		return nil
	})
}

// InsertTransactions bulk-inserts the fact table in one transaction.
func (s *Store) InsertTransactions(ctx context.Context, txns []models.Transaction) error {
	query := s.rebind(`
		INSERT INTO transactions (transaction_id, sender_user_id, receiver_user_id, amount, currency, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range txns {
			_, err := tx.ExecContext(ctx, query,
				nullString(t.TransactionID), t.SenderUserID, t.ReceiverUserID,
				nullFloat(t.Amount), nullString(string(t.Currency)),
				nullString(string(t.Status)), nullString(t.CreatedAt))
			if err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", t.TransactionID, err)
			}
		}
		return nil
	})
}

// InsertAppEvents bulk-inserts the telemetry table in one transaction.
// Malformed user ids load as NULL rather than failing the batch.
func (s *Store) InsertAppEvents(ctx context.Context, events []models.AppEvent) error {
	query := s.rebind(`
		INSERT INTO app_events (event_id, user_id, event_type, event_ts, session_id, page, button_id, device, os, ip)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, e := range events {
			_, err := tx.ExecContext(ctx, query,
				nullString(e.EventID), nullInt(e.UserID), nullString(string(e.EventType)),
				nullString(e.EventTS), nullString(e.SessionID), nullString(e.Page),
				nullString(e.ButtonID), nullString(e.Device), nullString(e.OS), nullString(e.IP))
			if err != nil {
				return fmt.Errorf("failed to insert event %s: %w", e.EventID, err)
			}
		}
		return nil
	})
}

// Counts returns per-table row counts for the post-load summary.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 3)
	for _, table := range []string{"users", "transactions", "app_events"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
