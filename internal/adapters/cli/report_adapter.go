// Package cli renders SmartQA entities for the terminal. The cobra commands
// call the services and hand the results to a ReportAdapter for output.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ReportAdapter writes tables and detail views to out.
type ReportAdapter struct {
	out io.Writer
}

// NewReportAdapter creates a new ReportAdapter writing to out.
func NewReportAdapter(out io.Writer) *ReportAdapter {
	return &ReportAdapter{out: out}
}

func (a *ReportAdapter) table(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(a.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

// Success prints a check-marked confirmation line.
func (a *ReportAdapter) Success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a highlighted warning line.
func (a *ReportAdapter) Warn(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", color.YellowString("!"), fmt.Sprintf(format, args...))
}

// Stats prints the dashboard totals.
func (a *ReportAdapter) Stats(s *primary.Stats) {
	tw := a.table(table.Row{"Projects", "Scenarios", "Bug Reports", "Success Rate"})
	tw.AppendRow(table.Row{s.ProjectCount, s.ScenarioCount, s.BugCount, rateColor(s.SuccessRate)})
	tw.Render()
}

// Projects prints a project list.
func (a *ReportAdapter) Projects(projects []*primary.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return
	}
	tw := a.table(table.Row{"ID", "Name", "URL", "Created"})
	for _, p := range projects {
		tw.AppendRow(table.Row{p.ID, p.Name, p.URL, datePart(p.CreatedAt)})
	}
	tw.Render()
}

// ProjectSummary prints a project with its scenario and execution totals.
func (a *ReportAdapter) ProjectSummary(s *primary.ProjectSummary, statuses []string) {
	p := s.Project
	fmt.Fprintf(a.out, "\n%s %s\n", color.New(color.Bold).Sprint(p.ID), p.Name)
	if p.URL != "" {
		fmt.Fprintf(a.out, "URL:         %s\n", p.URL)
	}
	if p.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(a.out, "Created:     %s\n", p.CreatedAt)
	fmt.Fprintf(a.out, "Scenarios:   %d\n", s.ScenarioCount)
	fmt.Fprintf(a.out, "Success:     %s\n", rateColor(s.SuccessRate))

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%s %d", statusColor(status), s.ExecutionsByStatus[status]))
	}
	fmt.Fprintf(a.out, "Executions:  %s\n\n", strings.Join(parts, "  "))
}

// Scenarios prints a scenario list.
func (a *ReportAdapter) Scenarios(scenarios []*primary.Scenario) {
	if len(scenarios) == 0 {
		fmt.Fprintln(a.out, "No scenarios found")
		return
	}
	tw := a.table(table.Row{"ID", "Project", "Title", "Priority", "Status", "Steps", "AI"})
	for _, s := range scenarios {
		tw.AppendRow(table.Row{s.ID, s.ProjectID, text.Trim(s.Title, 50), priorityColor(s.Priority), s.Status, len(s.Steps), yesNo(s.CreatedByAI)})
	}
	tw.Render()
}

// Scenario prints one scenario with numbered steps.
func (a *ReportAdapter) Scenario(s *primary.Scenario) {
	fmt.Fprintf(a.out, "\n%s %s\n", color.New(color.Bold).Sprint(s.ID), s.Title)
	fmt.Fprintf(a.out, "Project:  %s\n", s.ProjectID)
	fmt.Fprintf(a.out, "Priority: %s\n", priorityColor(s.Priority))
	fmt.Fprintf(a.out, "Status:   %s\n", s.Status)
	if s.CreatedByAI {
		fmt.Fprintln(a.out, "Origin:   AI generated")
	}
	if s.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", s.Description)
	}
	a.Steps(s.Steps)
}

// Steps prints a numbered step list.
func (a *ReportAdapter) Steps(steps []string) {
	fmt.Fprintln(a.out, "\nSteps:")
	if len(steps) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for i, step := range steps {
		fmt.Fprintf(a.out, "  %2d. %s\n", i+1, step)
	}
	fmt.Fprintln(a.out)
}

// Executions prints a scenario's execution history.
func (a *ReportAdapter) Executions(executions []*primary.Execution) {
	if len(executions) == 0 {
		fmt.Fprintln(a.out, "No executions recorded")
		return
	}
	tw := a.table(table.Row{"ID", "Status", "Executed", "Notes"})
	for _, e := range executions {
		tw.AppendRow(table.Row{e.ID, statusColor(e.Status), e.ExecutedAt, text.WrapSoft(e.Notes, 60)})
	}
	tw.Render()
}

// FailedExecutions prints the executions eligible for a bug report.
func (a *ReportAdapter) FailedExecutions(failed []*primary.FailedExecution) {
	if len(failed) == 0 {
		fmt.Fprintln(a.out, "No failed executions")
		return
	}
	tw := a.table(table.Row{"Execution", "Scenario", "Title", "Executed", "Notes"})
	for _, f := range failed {
		tw.AppendRow(table.Row{f.Execution.ID, f.Scenario.ID, text.Trim(f.Scenario.Title, 40), f.Execution.ExecutedAt, text.WrapSoft(f.Execution.Notes, 40)})
	}
	tw.Render()
}

// BugReports prints a bug report list.
func (a *ReportAdapter) BugReports(bugs []*primary.BugReport) {
	if len(bugs) == 0 {
		fmt.Fprintln(a.out, "No bug reports found")
		return
	}
	tw := a.table(table.Row{"ID", "Severity", "Title", "Scenario", "Issue", "Created"})
	for _, b := range bugs {
		tw.AppendRow(table.Row{b.ID, severityColor(b.Severity), text.Trim(b.Title, 50), b.ScenarioID, b.ExternalIssueKey, datePart(b.CreatedAt)})
	}
	tw.Render()
}

// BugReport prints one bug report.
func (a *ReportAdapter) BugReport(b *primary.BugReport) {
	fmt.Fprintf(a.out, "\n%s %s\n", color.New(color.Bold).Sprint(b.ID), b.Title)
	fmt.Fprintf(a.out, "Severity:  %s\n", severityColor(b.Severity))
	fmt.Fprintf(a.out, "Execution: %s (scenario %s: %s)\n", b.ExecutionID, b.ScenarioID, b.ScenarioTitle)
	fmt.Fprintf(a.out, "AI draft:  %s\n", yesNo(b.AIGenerated))
	if b.ExternalIssueKey != "" {
		fmt.Fprintf(a.out, "Issue:     %s %s\n", b.ExternalIssueKey, b.ExternalIssueURL)
	}
	fmt.Fprintf(a.out, "Created:   %s\n", b.CreatedAt)
	section(a.out, "Description", b.Description)
	section(a.out, "Steps to Reproduce", b.StepsToReproduce)
	section(a.out, "Expected Result", b.ExpectedResult)
	section(a.out, "Actual Result", b.ActualResult)
	fmt.Fprintln(a.out)
}

// BugReportDraft prints a generated draft for review.
func (a *ReportAdapter) BugReportDraft(d *primary.BugReportDraft) {
	fmt.Fprintf(a.out, "\n%s %s\n", color.CyanString("Draft for %s:", d.ExecutionID), d.Title)
	fmt.Fprintf(a.out, "Severity: %s\n", severityColor(d.Severity))
	section(a.out, "Description", d.Description)
	section(a.out, "Steps to Reproduce", d.StepsToReproduce)
	section(a.out, "Expected Result", d.ExpectedResult)
	section(a.out, "Actual Result", d.ActualResult)
	fmt.Fprintln(a.out)
}

// ScenarioDrafts prints generated scenario drafts for review.
func (a *ReportAdapter) ScenarioDrafts(drafts []primary.ScenarioDraft) {
	for i, d := range drafts {
		fmt.Fprintf(a.out, "%s %s [%s]\n", color.CyanString("%2d.", i+1), d.Title, priorityColor(d.Priority))
		if d.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", d.Description)
		}
		for j, step := range d.Steps {
			fmt.Fprintf(a.out, "    %d) %s\n", j+1, step)
		}
		fmt.Fprintln(a.out)
	}
}

// TrackerStatus prints a connection check result.
func (a *ReportAdapter) TrackerStatus(s *primary.TrackerStatus) {
	switch {
	case !s.Success:
		fmt.Fprintf(a.out, "%s %s\n", color.RedString("✗"), s.Message)
	case s.OfflineMode:
		a.Warn("%s", s.Message)
	default:
		a.Success("%s", s.Message)
	}
}

// FileIssueResult prints the outcome of filing a bug report.
func (a *ReportAdapter) FileIssueResult(bugID string, r *primary.FileIssueResult) {
	switch {
	case r.AlreadyFiled:
		a.Warn("%s", r.Message)
	case r.Simulated:
		a.Warn("Simulated issue %s for %s (offline demo mode, not recorded)", r.IssueKey, bugID)
	default:
		a.Success("Filed %s as %s", bugID, r.IssueKey)
	}
	if r.IssueURL != "" {
		fmt.Fprintf(a.out, "  %s\n", r.IssueURL)
	}
}

// AuditLog prints audit entries, newest first.
func (a *ReportAdapter) AuditLog(entries []*secondary.AuditLogRecord) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded")
		return
	}
	tw := a.table(table.Row{"Time", "Actor", "Action", "Entity", "Change"})
	for _, e := range entries {
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %s → %s", e.FieldName, text.Trim(e.OldValue, 30), text.Trim(e.NewValue, 30))
		}
		tw.AppendRow(table.Row{e.CreatedAt, e.Actor, e.Action, e.EntityType + " " + e.EntityID, change})
	}
	tw.Render()
}

func section(out io.Writer, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(out, "\n%s\n%s\n", color.New(color.Bold).Sprint(heading+":"), body)
}

func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func priorityColor(p string) string {
	switch p {
	case "critical":
		return color.New(color.FgRed, color.Bold).Sprint(p)
	case "high":
		return color.RedString(p)
	case "medium":
		return color.YellowString(p)
	default:
		return color.GreenString(p)
	}
}

func severityColor(s string) string {
	return priorityColor(s)
}

func statusColor(s string) string {
	switch s {
	case "pass":
		return color.GreenString(s)
	case "fail":
		return color.RedString(s)
	case "blocked":
		return color.YellowString(s)
	default:
		return color.New(color.Faint).Sprint(s)
	}
}

func rateColor(rate float64) string {
	s := fmt.Sprintf("%.1f%%", rate)
	switch {
	case rate >= 80:
		return color.GreenString(s)
	case rate >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}
