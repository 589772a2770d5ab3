package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a demo project, scenarios,
// executions and one bug report. Timestamps are spaced so list ordering is
// visible in the dashboard.
func SeedFixtures(database *sql.DB) error {
	base := time.Now().UTC().Add(-48 * time.Hour)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	projects := []struct{ id, name, url, desc string }{
		{"PROJ-001", "Demo Shop", "https://shop.example.com", "E-commerce storefront used for demos"},
		{"PROJ-002", "Admin Portal", "https://admin.example.com", "Back office for order management"},
	}
	for i, p := range projects {
		if _, err := database.Exec(
			"INSERT INTO projects (id, name, url, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			p.id, p.name, p.url, p.desc, at(i), at(i),
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	scenarios := []struct {
		id, projectID, title, desc, steps, priority string
		ai                                          bool
	}{
		{"SCN-001", "PROJ-001", "User Login", "Registered user can sign in",
			`["Open the login page","Enter a valid email and password","Click 'Sign In'","Verify the dashboard is shown"]`, "high", false},
		{"SCN-002", "PROJ-001", "Add Product to Cart", "Products can be added to the cart",
			`["Open a product page","Click 'Add to Cart'","Verify the cart counter increases"]`, "high", true},
		{"SCN-003", "PROJ-001", "Checkout Payment", "Customer can pay for the cart",
			`["Add a product to the cart","Click 'Checkout'","Enter card details","Verify the order confirmation"]`, "critical", true},
		{"SCN-004", "PROJ-002", "Order Search", "Admin can search orders by number",
			`["Open the orders page","Type an order number","Verify the matching order is listed"]`, "medium", false},
	}
	for i, s := range scenarios {
		if _, err := database.Exec(
			"INSERT INTO test_scenarios (id, project_id, title, description, steps, priority, status, created_by_ai, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, 'active', ?, ?, ?)",
			s.id, s.projectID, s.title, s.desc, s.steps, s.priority, s.ai, at(10+i), at(10+i),
		); err != nil {
			return fmt.Errorf("seed scenarios: %w", err)
		}
	}

	executions := []struct{ id, scenarioID, status, notes string }{
		{"EXEC-001", "SCN-001", "pass", ""},
		{"EXEC-002", "SCN-002", "pass", ""},
		{"EXEC-003", "SCN-003", "fail", "Payment page returns HTTP 500 after submitting card details"},
		{"EXEC-004", "SCN-004", "blocked", "Admin environment down"},
	}
	for i, e := range executions {
		if _, err := database.Exec(
			"INSERT INTO test_executions (id, scenario_id, status, executed_at, notes) VALUES (?, ?, ?, ?, ?)",
			e.id, e.scenarioID, e.status, at(60+i), e.notes,
		); err != nil {
			return fmt.Errorf("seed executions: %w", err)
		}
	}

	if _, err := database.Exec(
		`INSERT INTO bug_reports (id, execution_id, title, severity, description, steps_to_reproduce, expected_result, actual_result, ai_generated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"BUG-001", "EXEC-003", "Bug: Checkout Payment - Function Not Working", "critical",
		"Submitting card details on the payment page fails with a server error.",
		"1. Add a product to the cart\n2. Click 'Checkout'\n3. Enter card details",
		"Order confirmation page is shown.",
		"HTTP 500 error page.",
		true, at(70),
	); err != nil {
		return fmt.Errorf("seed bug reports: %w", err)
	}

	return nil
}
