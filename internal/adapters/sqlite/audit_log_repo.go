package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/smartqa/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create persists a new audit log entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	err := insertWithID(ctx, r.db, "audit_log", "LOG-", entry.ID,
		`INSERT INTO audit_log (id, actor, entity_type, entity_id, action, field_name, old_value, new_value, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullString(entry.Actor),
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.FieldName),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
		now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

// List retrieves entries matching the given filters, newest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := "SELECT id, actor, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM audit_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	defer rows.Close()

	entries := []*secondary.AuditLogRecord{}
	for rows.Next() {
		var (
			actor, fieldName, oldValue, newValue sql.NullString
			createdAt                            time.Time
		)
		entry := &secondary.AuditLogRecord{}
		if err := rows.Scan(&entry.ID, &actor, &entry.EntityType, &entry.EntityID, &entry.Action,
			&fieldName, &oldValue, &newValue, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entry.Actor = actor.String
		entry.FieldName = fieldName.String
		entry.OldValue = oldValue.String
		entry.NewValue = newValue.String
		entry.CreatedAt = formatTime(createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetNextID returns the next available audit log ID.
func (r *AuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "audit_log", "LOG-")
}

// Ensure AuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
