// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// nextID returns PREFIX-NNN one past the highest number ever issued for table.
// The high-water mark in id_sequences survives deletes, so IDs are never reused.
func nextID(ctx context.Context, q queryer, table, prefix string) (string, error) {
	var maxID, lastIssued int
	prefixLen := len(prefix) + 1
	err := q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s", prefixLen, table),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next %s ID: %w", table, err)
	}
	err = q.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(last_value), 0) FROM id_sequences WHERE name = ?", table,
	).Scan(&lastIssued)
	if err != nil {
		return "", fmt.Errorf("failed to get next %s ID: %w", table, err)
	}
	if lastIssued > maxID {
		maxID = lastIssued
	}
	return fmt.Sprintf("%s%03d", prefix, maxID+1), nil
}

// recordID raises the high-water mark for table to id's numeric suffix.
// IDs without a numeric suffix are left untracked.
func recordID(ctx context.Context, ex execer, table, prefix, id string) error {
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || !strings.HasPrefix(id, prefix) {
		return nil
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO id_sequences (name, last_value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET last_value = MAX(last_value, excluded.last_value)`,
		table, n,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s ID: %w", table, err)
	}
	return nil
}

// insertWithID runs an insert of id into table and records the ID in one transaction.
func insertWithID(ctx context.Context, db *sql.DB, table, prefix, id, query string, args ...any) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	if err := recordID(ctx, tx, table, prefix, id); err != nil {
		return err
	}
	return tx.Commit()
}

// exists reports whether a row with id is present in table.
func exists(ctx context.Context, q queryer, table, id string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return count > 0, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// now is the insert timestamp. Stored in UTC so stored values sort lexically.
func now() time.Time {
	return time.Now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return formatTime(t.Time)
}
