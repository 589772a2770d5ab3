package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

func newTestAdapter(t *testing.T) (*ReportAdapter, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	return NewReportAdapter(&buf), &buf
}

func TestProjects_Empty(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.Projects(nil)
	if buf.String() != "No projects found\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestProjects_Table(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.Projects([]*primary.Project{
		{ID: "PROJ-002", Name: "Admin Portal", CreatedAt: "2026-02-01T10:00:00Z"},
		{ID: "PROJ-001", Name: "Demo Shop", URL: "https://shop.example.com", CreatedAt: "2026-01-01T10:00:00Z"},
	})

	out := buf.String()
	for _, want := range []string{"PROJ-002", "Admin Portal", "https://shop.example.com", "2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "PROJ-002") > strings.Index(out, "PROJ-001") {
		t.Error("expected rows in the given order")
	}
}

func TestScenario_NumbersSteps(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.Scenario(&primary.Scenario{ID: "SCN-001", Title: "Login", Priority: "high", Status: "active", Steps: []string{"Open", "Submit"}})

	out := buf.String()
	if !strings.Contains(out, " 1. Open") || !strings.Contains(out, " 2. Submit") {
		t.Errorf("expected numbered steps:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.Stats(&primary.Stats{ProjectCount: 2, ScenarioCount: 4, BugCount: 1, SuccessRate: 66.7})

	if !strings.Contains(buf.String(), "66.7%") {
		t.Errorf("expected success rate in output:\n%s", buf.String())
	}
}

func TestFileIssueResult(t *testing.T) {
	tests := []struct {
		name   string
		result primary.FileIssueResult
		want   string
	}{
		{"live", primary.FileIssueResult{IssueKey: "QA-1", IssueURL: "https://x/browse/QA-1"}, "Filed BUG-001 as QA-1"},
		{"simulated", primary.FileIssueResult{IssueKey: "BUG-4242", Simulated: true}, "Simulated issue BUG-4242"},
		{"already filed", primary.FileIssueResult{IssueKey: "QA-1", AlreadyFiled: true, Message: "bug report BUG-001 already filed as QA-1"}, "already filed as QA-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, buf := newTestAdapter(t)
			a.FileIssueResult("BUG-001", &tt.result)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}

func TestBugReport_SkipsEmptySections(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.BugReport(&primary.BugReport{ID: "BUG-001", Title: "Crash", Severity: "high", ActualResult: "500"})

	out := buf.String()
	if strings.Contains(out, "Description:") {
		t.Errorf("expected empty description to be skipped:\n%s", out)
	}
	if !strings.Contains(out, "Actual Result:\n500") {
		t.Errorf("expected actual result section:\n%s", out)
	}
}

func TestAuditLog(t *testing.T) {
	a, buf := newTestAdapter(t)
	a.AuditLog([]*secondary.AuditLogRecord{
		{ID: "LOG-002", Actor: "cli", EntityType: "project", EntityID: "PROJ-001", Action: "update", FieldName: "name", OldValue: "Shop", NewValue: "Demo Shop", CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: "LOG-001", Actor: "http", EntityType: "project", EntityID: "PROJ-001", Action: "create", CreatedAt: "2026-01-01T09:00:00Z"},
	})

	out := buf.String()
	if !strings.Contains(out, "name: Shop → Demo Shop") {
		t.Errorf("expected field change in output:\n%s", out)
	}
	if !strings.Contains(out, "project PROJ-001") {
		t.Errorf("expected entity in output:\n%s", out)
	}
}
