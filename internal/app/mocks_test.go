package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ============================================================================
// Mock Repositories
// ============================================================================

// mockProjectRepository implements secondary.ProjectRepository for testing.
type mockProjectRepository struct {
	projects  map[string]*secondary.ProjectRecord
	nextID    int
	createErr error
	deleteErr error
	deleted   []string
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{projects: make(map[string]*secondary.ProjectRecord)}
}

func (m *mockProjectRepository) Create(ctx context.Context, p *secondary.ProjectRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *p
	cp.CreatedAt = "2026-01-01T00:00:00Z"
	cp.UpdatedAt = cp.CreatedAt
	m.projects[p.ID] = &cp
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.NotFound("project", id)
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	var out []*secondary.ProjectRecord
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *secondary.ProjectRecord) error {
	if _, ok := m.projects[p.ID]; !ok {
		return apperrors.NotFound("project", p.ID)
	}
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *mockProjectRepository) DeleteCascade(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.projects, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProjectRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("PROJ-%03d", m.nextID), nil
}

func (m *mockProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.projects[id]
	return ok, nil
}

// mockScenarioRepository implements secondary.ScenarioRepository for testing.
type mockScenarioRepository struct {
	scenarios map[string]*secondary.ScenarioRecord
	projects  *mockProjectRepository
	nextID    int
	createErr error
	updates   int
}

func newMockScenarioRepository(projects *mockProjectRepository) *mockScenarioRepository {
	return &mockScenarioRepository{
		scenarios: make(map[string]*secondary.ScenarioRecord),
		projects:  projects,
	}
}

func (m *mockScenarioRepository) Create(ctx context.Context, s *secondary.ScenarioRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *s
	cp.CreatedAt = "2026-01-01T00:00:00Z"
	cp.UpdatedAt = cp.CreatedAt
	m.scenarios[s.ID] = &cp
	return nil
}

func (m *mockScenarioRepository) CreateBatch(ctx context.Context, scenarios []*secondary.ScenarioRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range scenarios {
		s.ID, _ = m.GetNextID(ctx)
		if err := m.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockScenarioRepository) GetByID(ctx context.Context, id string) (*secondary.ScenarioRecord, error) {
	if s, ok := m.scenarios[id]; ok {
		cp := *s
		cp.Steps = append([]string(nil), s.Steps...)
		return &cp, nil
	}
	return nil, apperrors.NotFound("scenario", id)
}

func (m *mockScenarioRepository) List(ctx context.Context, filters secondary.ScenarioFilters) ([]*secondary.ScenarioRecord, error) {
	var out []*secondary.ScenarioRecord
	for _, s := range m.scenarios {
		if filters.ProjectID != "" && s.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && s.Priority != filters.Priority {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockScenarioRepository) Update(ctx context.Context, s *secondary.ScenarioRecord) error {
	if _, ok := m.scenarios[s.ID]; !ok {
		return apperrors.NotFound("scenario", s.ID)
	}
	cp := *s
	m.scenarios[s.ID] = &cp
	m.updates++
	return nil
}

func (m *mockScenarioRepository) DeleteCascade(ctx context.Context, id string) error {
	delete(m.scenarios, id)
	return nil
}

func (m *mockScenarioRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("SCN-%03d", m.nextID), nil
}

func (m *mockScenarioRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return m.projects.Exists(ctx, projectID)
}

// mockExecutionRepository implements secondary.ExecutionRepository for testing.
type mockExecutionRepository struct {
	executions map[string]*secondary.ExecutionRecord
	scenarios  *mockScenarioRepository
	nextID     int
}

func newMockExecutionRepository(scenarios *mockScenarioRepository) *mockExecutionRepository {
	return &mockExecutionRepository{
		executions: make(map[string]*secondary.ExecutionRecord),
		scenarios:  scenarios,
	}
}

func (m *mockExecutionRepository) Create(ctx context.Context, e *secondary.ExecutionRecord) error {
	cp := *e
	if cp.ExecutedAt == "" {
		cp.ExecutedAt = fmt.Sprintf("2026-01-01T00:00:%02dZ", len(m.executions))
	}
	m.executions[e.ID] = &cp
	return nil
}

func (m *mockExecutionRepository) GetByID(ctx context.Context, id string) (*secondary.ExecutionRecord, error) {
	if e, ok := m.executions[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, apperrors.NotFound("execution", id)
}

func (m *mockExecutionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*secondary.ExecutionRecord, error) {
	var out []*secondary.ExecutionRecord
	for _, e := range m.executions {
		if e.ScenarioID == scenarioID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExecutedAt > out[j].ExecutedAt })
	return out, nil
}

func (m *mockExecutionRepository) ListFailedByProject(ctx context.Context, projectID string) ([]*secondary.FailedExecutionRecord, error) {
	var out []*secondary.FailedExecutionRecord
	for _, e := range m.executions {
		s, ok := m.scenarios.scenarios[e.ScenarioID]
		if !ok || s.ProjectID != projectID || e.Status != "fail" {
			continue
		}
		out = append(out, &secondary.FailedExecutionRecord{Scenario: s, Execution: e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Execution.ExecutedAt > out[j].Execution.ExecutedAt })
	return out, nil
}

func (m *mockExecutionRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("EXEC-%03d", m.nextID), nil
}

func (m *mockExecutionRepository) ScenarioExists(ctx context.Context, scenarioID string) (bool, error) {
	_, ok := m.scenarios.scenarios[scenarioID]
	return ok, nil
}

// mockBugReportRepository implements secondary.BugReportRepository for testing.
type mockBugReportRepository struct {
	bugs      map[string]*secondary.BugReportRecord
	nextID    int
	setErr    error
	setCalls  int
	projectOf string
}

func newMockBugReportRepository() *mockBugReportRepository {
	return &mockBugReportRepository{bugs: make(map[string]*secondary.BugReportRecord)}
}

func (m *mockBugReportRepository) Create(ctx context.Context, b *secondary.BugReportRecord) error {
	cp := *b
	cp.CreatedAt = "2026-01-02T10:00:00Z"
	cp.ProjectID = m.projectOf
	m.bugs[b.ID] = &cp
	return nil
}

func (m *mockBugReportRepository) GetByID(ctx context.Context, id string) (*secondary.BugReportRecord, error) {
	if b, ok := m.bugs[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, apperrors.NotFound("bug report", id)
}

func (m *mockBugReportRepository) List(ctx context.Context, filters secondary.BugReportFilters) ([]*secondary.BugReportRecord, error) {
	var out []*secondary.BugReportRecord
	for _, b := range m.bugs {
		if filters.Severity != "" && b.Severity != filters.Severity {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockBugReportRepository) SetExternalIssue(ctx context.Context, id, key, url string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	b, ok := m.bugs[id]
	if !ok {
		return apperrors.NotFound("bug report", id)
	}
	b.ExternalIssueKey = key
	b.ExternalIssueURL = url
	b.FiledAt = "2026-01-03T00:00:00Z"
	return nil
}

func (m *mockBugReportRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("BUG-%03d", m.nextID), nil
}

// mockStatsRepository implements secondary.StatsRepository for testing.
type mockStatsRepository struct {
	counts        secondary.CountsRecord
	projectCounts secondary.ProjectCountsRecord
	err           error
}

func (m *mockStatsRepository) Counts(ctx context.Context) (*secondary.CountsRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := m.counts
	return &c, nil
}

func (m *mockStatsRepository) ProjectCounts(ctx context.Context, projectID string) (*secondary.ProjectCountsRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := m.projectCounts
	return &c, nil
}

// ============================================================================
// Mock Collaborators
// ============================================================================

type auditEntry struct {
	action, entityType, entityID, field, oldValue, newValue string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []auditEntry
	err     error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, auditEntry{action: "create", entityType: entityType, entityID: entityID})
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, field, oldValue, newValue string) error {
	m.entries = append(m.entries, auditEntry{"update", entityType, entityID, field, oldValue, newValue})
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, auditEntry{action: "delete", entityType: entityType, entityID: entityID})
	return m.err
}

func (m *mockLogWriter) actions() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.action + " " + e.entityType + " " + e.entityID
		if e.field != "" {
			out[i] += " " + e.field
		}
	}
	return out
}

// mockScenarioGenerator implements secondary.ScenarioGenerator for testing.
type mockScenarioGenerator struct {
	drafts    []secondary.ScenarioDraft
	err       error
	lastBrief secondary.ProjectBrief
	lastCount int
}

func (m *mockScenarioGenerator) GenerateScenarios(ctx context.Context, brief secondary.ProjectBrief, count int) ([]secondary.ScenarioDraft, error) {
	m.lastBrief, m.lastCount = brief, count
	return m.drafts, m.err
}

// mockBugReportGenerator implements secondary.BugReportGenerator for testing.
type mockBugReportGenerator struct {
	draft     *secondary.BugReportDraft
	err       error
	lastBrief secondary.FailureBrief
}

func (m *mockBugReportGenerator) DraftBugReport(ctx context.Context, brief secondary.FailureBrief) (*secondary.BugReportDraft, error) {
	m.lastBrief = brief
	return m.draft, m.err
}

// mockIssueTracker implements secondary.IssueTracker for testing.
type mockIssueTracker struct {
	conn        secondary.ConnectionResult
	result      secondary.IssueResult
	calls       int
	lastRequest secondary.IssueRequest
}

func (m *mockIssueTracker) TestConnection(ctx context.Context) secondary.ConnectionResult {
	return m.conn
}

func (m *mockIssueTracker) CreateIssue(ctx context.Context, req secondary.IssueRequest) secondary.IssueResult {
	m.calls++
	m.lastRequest = req
	return m.result
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	_ secondary.ProjectRepository   = (*mockProjectRepository)(nil)
	_ secondary.ScenarioRepository  = (*mockScenarioRepository)(nil)
	_ secondary.ExecutionRepository = (*mockExecutionRepository)(nil)
	_ secondary.BugReportRepository = (*mockBugReportRepository)(nil)
	_ secondary.StatsRepository     = (*mockStatsRepository)(nil)
	_ secondary.LogWriter           = (*mockLogWriter)(nil)
	_ secondary.ScenarioGenerator   = (*mockScenarioGenerator)(nil)
	_ secondary.BugReportGenerator  = (*mockBugReportGenerator)(nil)
	_ secondary.IssueTracker        = (*mockIssueTracker)(nil)
)
