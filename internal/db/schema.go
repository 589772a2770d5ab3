package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh SmartQA installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(), so a repository referencing a column that
// doesn't exist here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump the fresh-install version marker (LatestVersion)
const SchemaSQL = `
-- Projects (top-level containers under test)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	url TEXT,
	description TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

-- Test Scenarios (ordered steps under a project)
CREATE TABLE IF NOT EXISTS test_scenarios (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	steps TEXT NOT NULL DEFAULT '[]',  -- JSON array of strings
	priority TEXT NOT NULL CHECK(priority IN ('critical', 'high', 'medium', 'low')) DEFAULT 'medium',
	status TEXT NOT NULL CHECK(status IN ('draft', 'active', 'archived')) DEFAULT 'active',
	created_by_ai INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

CREATE INDEX IF NOT EXISTS idx_test_scenarios_project ON test_scenarios(project_id);

-- Test Executions (immutable run outcomes)
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

-- Bug Reports (derived from failed executions)
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
	external_issue_key TEXT,
	external_issue_url TEXT,
	filed_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (execution_id) REFERENCES test_executions(id)
);

CREATE INDEX IF NOT EXISTS idx_bug_reports_execution ON bug_reports(execution_id);

-- Audit log (who changed what)
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

-- Highest ID number ever issued per table
CREATE TABLE IF NOT EXISTS id_sequences (
	name TEXT PRIMARY KEY,
	last_value INTEGER NOT NULL
);
`

// InitSchema creates the schema on a fresh database or migrates an existing one.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// No version table: an old database has projects without versioning
	var oldTableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'projects'").Scan(&oldTableCount)
	if err != nil {
		return err
	}
	if oldTableCount > 0 {
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly and mark
	// every migration as applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for i := 1; i <= LatestVersion(); i++ {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", i); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
