package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_core_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_external_issue_to_bug_reports",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "create_audit_log",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "create_id_sequences",
		Up:      migrationV4,
	},
}

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations applies every migration newer than the recorded version.
// Each migration runs in its own transaction together with its version row.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the four core tables as first released.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT,
			description TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS test_scenarios (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			steps TEXT NOT NULL DEFAULT '[]',
			priority TEXT NOT NULL CHECK(priority IN ('critical', 'high', 'medium', 'low')) DEFAULT 'medium',
			status TEXT NOT NULL CHECK(status IN ('draft', 'active', 'archived')) DEFAULT 'active',
			created_by_ai INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
		CREATE INDEX IF NOT EXISTS idx_test_scenarios_project ON test_scenarios(project_id);

		CREATE TABLE IF NOT EXISTS test_executions (
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pass', 'fail', 'blocked', 'skipped')),
			executed_at DATETIME NOT NULL,
			notes TEXT,
			FOREIGN KEY (scenario_id) REFERENCES test_scenarios(id)
		);
		CREATE INDEX IF NOT EXISTS idx_test_executions_scenario ON test_executions(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_test_executions_status ON test_executions(status);

		CREATE TABLE IF NOT EXISTS bug_reports (
			id TEXT PRIMARY KEY,
			execution_id TEXT NOT NULL,
			title TEXT NOT NULL,
			severity TEXT NOT NULL CHECK(severity IN ('critical', 'high', 'medium', 'low')) DEFAULT 'medium',
			description TEXT,
			steps_to_reproduce TEXT,
			expected_result TEXT,
			actual_result TEXT,
			ai_generated INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (execution_id) REFERENCES test_executions(id)
		);
		CREATE INDEX IF NOT EXISTS idx_bug_reports_execution ON bug_reports(execution_id);
	`)
	return err
}

// migrationV2 records the external issue a bug report was filed as.
func migrationV2(tx *sql.Tx) error {
	for _, stmt := range []string{
		"ALTER TABLE bug_reports ADD COLUMN external_issue_key TEXT",
		"ALTER TABLE bug_reports ADD COLUMN external_issue_url TEXT",
		"ALTER TABLE bug_reports ADD COLUMN filed_at DATETIME",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			actor TEXT,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
	`)
	return err
}

// migrationV4 adds the per-table high-water mark so deleted IDs are never reused.
func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS id_sequences (
			name TEXT PRIMARY KEY,
			last_value INTEGER NOT NULL
		);
	`)
	return err
}
