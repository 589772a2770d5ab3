// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/smartqa/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema and
// foreign keys enforced, as in production.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// One connection, otherwise each pooled connection gets its own :memory: database
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	if name == "" {
		name = "Test Project"
	}
	ts := time.Now().UTC()
	_, err := db.Exec("INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)", id, name, ts, ts)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedScenario inserts a test scenario and returns its ID.
func seedScenario(t *testing.T, db *sql.DB, id, projectID, title string) string {
	t.Helper()
	if id == "" {
		id = "SCN-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if title == "" {
		title = "Test Scenario"
	}
	ts := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO test_scenarios (id, project_id, title, steps, created_at, updated_at) VALUES (?, ?, ?, '[\"Open the page\"]', ?, ?)",
		id, projectID, title, ts, ts,
	)
	if err != nil {
		t.Fatalf("failed to seed scenario: %v", err)
	}
	return id
}

// seedExecution inserts a test execution at the given time and returns its ID.
func seedExecution(t *testing.T, db *sql.DB, id, scenarioID, status string, executedAt time.Time) string {
	t.Helper()
	if scenarioID == "" {
		scenarioID = "SCN-001"
	}
	_, err := db.Exec(
		"INSERT INTO test_executions (id, scenario_id, status, executed_at) VALUES (?, ?, ?, ?)",
		id, scenarioID, status, executedAt.UTC(),
	)
	if err != nil {
		t.Fatalf("failed to seed execution: %v", err)
	}
	return id
}

// seedBugReport inserts a test bug report and returns its ID.
func seedBugReport(t *testing.T, db *sql.DB, id, executionID string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO bug_reports (id, execution_id, title, created_at) VALUES (?, ?, 'Seeded bug', ?)",
		id, executionID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("failed to seed bug report: %v", err)
	}
	return id
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
