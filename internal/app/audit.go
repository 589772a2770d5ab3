package app

import (
	"context"
	"log/slog"

	"github.com/example/smartqa/internal/ports/secondary"
)

// fieldChange is one field of an update, written to the audit log when it differs.
type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

// writeAudit runs fn against the log writer. Audit failures never fail the
// operation that triggered them.
func writeAudit(ctx context.Context, w secondary.LogWriter, logger *slog.Logger, fn func(secondary.LogWriter) error) {
	if w == nil {
		return
	}
	if err := fn(w); err != nil {
		logger.Warn("failed to write audit log", "error", err)
	}
}

func writeChanges(ctx context.Context, w secondary.LogWriter, logger *slog.Logger, entityType, entityID string, changes []fieldChange) {
	for _, c := range changes {
		if c.oldValue == c.newValue {
			continue
		}
		writeAudit(ctx, w, logger, func(w secondary.LogWriter) error {
			return w.LogUpdate(ctx, entityType, entityID, c.field, c.oldValue, c.newValue)
		})
	}
}
