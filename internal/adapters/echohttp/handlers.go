package echohttp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/smartqa/internal/ports/primary"
)

type handlers struct {
	Services
}

func (h *handlers) register(g *echo.Group) {
	g.GET("/stats", h.stats)

	g.GET("/projects", h.listProjects)
	g.POST("/projects", h.createProject)
	g.GET("/projects/:id", h.getProject)
	g.PATCH("/projects/:id", h.updateProject)
	g.DELETE("/projects/:id", h.deleteProject)
	g.GET("/projects/:id/summary", h.projectSummary)
	g.GET("/projects/:id/scenarios", h.listScenarios)
	g.POST("/projects/:id/scenarios", h.createScenario)
	g.GET("/projects/:id/failed-executions", h.listFailedExecutions)
	g.POST("/projects/:id/generate", h.generateScenarios)

	g.GET("/scenarios/:id", h.getScenario)
	g.PATCH("/scenarios/:id", h.updateScenario)
	g.DELETE("/scenarios/:id", h.deleteScenario)
	g.GET("/scenarios/:id/executions", h.listExecutions)
	g.POST("/scenarios/:id/executions", h.recordExecution)

	g.POST("/executions/:id/draft-bug", h.draftBugReport)

	g.GET("/bugs", h.listBugReports)
	g.POST("/bugs", h.createBugReport)
	g.GET("/bugs/:id", h.getBugReport)
	g.GET("/bugs/:id/export", h.exportBugReport)
	g.POST("/bugs/:id/file", h.fileIssue)

	g.GET("/tracker/status", h.trackerStatus)
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return v.Struct(req)
}

func (h *handlers) stats(c echo.Context) error {
	stats, err := h.Dashboard.ComputeStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Projects

type createProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"omitempty,url"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

func (h *handlers) listProjects(c echo.Context) error {
	projects, err := h.Projects.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *handlers) createProject(c echo.Context) error {
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	project, err := h.Projects.CreateProject(c.Request().Context(), primary.CreateProjectRequest{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *handlers) getProject(c echo.Context) error {
	project, err := h.Projects.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *handlers) updateProject(c echo.Context) error {
	var req updateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	project, err := h.Projects.UpdateProject(c.Request().Context(), primary.UpdateProjectRequest{
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *handlers) deleteProject(c echo.Context) error {
	force, _ := strconv.ParseBool(c.QueryParam("force"))
	err := h.Projects.DeleteProject(c.Request().Context(), primary.DeleteProjectRequest{
		ProjectID: c.Param("id"),
		Force:     force,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) projectSummary(c echo.Context) error {
	summary, err := h.Dashboard.ProjectSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *handlers) listFailedExecutions(c echo.Context) error {
	failed, err := h.Executions.ListFailedExecutions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, failed)
}

type generateRequest struct {
	Count  int  `json:"count" validate:"omitempty,min=1,max=50"`
	Accept bool `json:"accept"`
}

type generateResponse struct {
	Drafts   []primary.ScenarioDraft `json:"drafts"`
	Accepted []*primary.Scenario     `json:"accepted,omitempty"`
}

func (h *handlers) generateScenarios(c echo.Context) error {
	req := generateRequest{Count: 5}
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	projectID := c.Param("id")

	drafts, err := h.Generation.GenerateScenarios(ctx, projectID, req.Count)
	if err != nil {
		return err
	}
	resp := generateResponse{Drafts: drafts}
	if req.Accept && len(drafts) > 0 {
		resp.Accepted, err = h.Generation.AcceptScenarioDrafts(ctx, projectID, drafts)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// Scenarios

type createScenarioRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=critical high medium low"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft active archived"`
}

type updateScenarioRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Steps       []string `json:"steps"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
}

func (h *handlers) listScenarios(c echo.Context) error {
	scenarios, err := h.Scenarios.ListScenarios(c.Request().Context(), primary.ScenarioFilters{
		ProjectID: c.Param("id"),
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scenarios)
}

func (h *handlers) createScenario(c echo.Context) error {
	var req createScenarioRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	scenario, err := h.Scenarios.CreateScenario(c.Request().Context(), primary.CreateScenarioRequest{
		ProjectID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Steps:       req.Steps,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, scenario)
}

func (h *handlers) getScenario(c echo.Context) error {
	scenario, err := h.Scenarios.GetScenario(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scenario)
}

func (h *handlers) updateScenario(c echo.Context) error {
	var req updateScenarioRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	scenario, err := h.Scenarios.UpdateScenario(c.Request().Context(), primary.UpdateScenarioRequest{
		ScenarioID: c.Param("id"),
		Fields: primary.ScenarioFields{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Status:      req.Status,
		},
		Steps: req.Steps,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scenario)
}

func (h *handlers) deleteScenario(c echo.Context) error {
	if err := h.Scenarios.DeleteScenario(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Executions

type recordExecutionRequest struct {
	Status     string `json:"status" validate:"required,oneof=pass fail blocked skipped"`
	Notes      string `json:"notes"`
	ExecutedAt string `json:"executed_at"`
}

func (h *handlers) listExecutions(c echo.Context) error {
	executions, err := h.Executions.ListExecutions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, executions)
}

func (h *handlers) recordExecution(c echo.Context) error {
	var req recordExecutionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	execution, err := h.Executions.RecordExecution(c.Request().Context(), primary.RecordExecutionRequest{
		ScenarioID: c.Param("id"),
		Status:     req.Status,
		Notes:      req.Notes,
		ExecutedAt: req.ExecutedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, execution)
}

func (h *handlers) draftBugReport(c echo.Context) error {
	draft, err := h.BugReports.DraftBugReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// Bug reports

type createBugReportRequest struct {
	ExecutionID      string `json:"execution_id" validate:"required"`
	Title            string `json:"title" validate:"required"`
	Severity         string `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Description      string `json:"description"`
	StepsToReproduce string `json:"steps_to_reproduce"`
	ExpectedResult   string `json:"expected_result"`
	ActualResult     string `json:"actual_result"`
	AIGenerated      bool   `json:"ai_generated"`
}

type fileIssueRequest struct {
	Force bool `json:"force"`
}

func (h *handlers) listBugReports(c echo.Context) error {
	bugs, err := h.BugReports.ListBugReports(c.Request().Context(), primary.BugReportFilters{
		ProjectID: c.QueryParam("project_id"),
		Severity:  c.QueryParam("severity"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bugs)
}

func (h *handlers) createBugReport(c echo.Context) error {
	var req createBugReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	bug, err := h.BugReports.CreateBugReport(c.Request().Context(), primary.CreateBugReportRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bug)
}

func (h *handlers) getBugReport(c echo.Context) error {
	bug, err := h.BugReports.GetBugReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

func (h *handlers) exportBugReport(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "txt"
	}
	out, err := h.BugReports.ExportBugReport(c.Request().Context(), c.Param("id"), format)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+out.FileName+`"`)
	return c.Blob(http.StatusOK, out.ContentType, []byte(out.Content))
}

func (h *handlers) fileIssue(c echo.Context) error {
	var req fileIssueRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.Tracker.FileIssue(c.Request().Context(), primary.FileIssueRequest{
		BugReportID: c.Param("id"),
		Force:       req.Force,
	})
	if err != nil {
		return err
	}
	if result.AlreadyFiled {
		return c.JSON(http.StatusOK, result)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *handlers) trackerStatus(c echo.Context) error {
	status, err := h.Tracker.TestConnection(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
