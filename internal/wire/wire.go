// Package wire provides dependency injection for SmartQA.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/labstack/echo/v4"

	cliadapter "github.com/example/smartqa/internal/adapters/cli"
	"github.com/example/smartqa/internal/adapters/echohttp"
	"github.com/example/smartqa/internal/adapters/generator"
	"github.com/example/smartqa/internal/adapters/jira"
	"github.com/example/smartqa/internal/adapters/llm"
	"github.com/example/smartqa/internal/adapters/sqlite"
	"github.com/example/smartqa/internal/app"
	"github.com/example/smartqa/internal/config"
	"github.com/example/smartqa/internal/db"
	"github.com/example/smartqa/internal/logging"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// Container holds every service built from one configuration and database.
type Container struct {
	Config *config.Config
	DB     *sql.DB
	Logger *slog.Logger

	ProjectService    primary.ProjectService
	ScenarioService   primary.ScenarioService
	ExecutionService  primary.ExecutionService
	BugReportService  primary.BugReportService
	DashboardService  primary.DashboardService
	GenerationService primary.GenerationService
	TrackerService    primary.TrackerService
	AuditLog          secondary.AuditLogRepository
}

// Build wires repositories, drafting backends and the issue tracker into services.
func Build(cfg *config.Config, database *sql.DB, logger *slog.Logger) (*Container, error) {
	// Repositories (secondary ports) over the shared DB
	projectRepo := sqlite.NewProjectRepository(database)
	scenarioRepo := sqlite.NewScenarioRepository(database)
	executionRepo := sqlite.NewExecutionRepository(database)
	bugRepo := sqlite.NewBugReportRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// Drafting backends: the fixed catalog unless a model is configured
	scenarioGen, bugGen, err := generators(cfg.AI, logger)
	if err != nil {
		return nil, err
	}

	tracker := jira.NewClient(cfg.Jira, logger)

	scenarioService := app.NewScenarioService(scenarioRepo, logWriter, logger)
	return &Container{
		Config:            cfg,
		DB:                database,
		Logger:            logger,
		ProjectService:    app.NewProjectService(projectRepo, scenarioRepo, logWriter, logger),
		ScenarioService:   scenarioService,
		ExecutionService:  app.NewExecutionService(executionRepo, projectRepo, logWriter, logger),
		BugReportService:  app.NewBugReportService(bugRepo, executionRepo, scenarioRepo, bugGen, logWriter, logger),
		DashboardService:  app.NewDashboardService(statsRepo, projectRepo),
		GenerationService: app.NewGenerationService(projectRepo, scenarioGen, scenarioService, logger),
		TrackerService:    app.NewTrackerService(tracker, bugRepo, projectRepo, logWriter, logger),
		AuditLog:          auditRepo,
	}, nil
}

func generators(cfg config.AIConfig, logger *slog.Logger) (secondary.ScenarioGenerator, secondary.BugReportGenerator, error) {
	textGen, err := llm.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if textGen == nil {
		return generator.NewMockScenarioGenerator(), generator.NewMockBugReportGenerator(), nil
	}
	return generator.NewLLMScenarioGenerator(textGen, cfg.MaxTokens, logger),
		generator.NewLLMBugReportGenerator(textGen, cfg.MaxTokens, logger),
		nil
}

// Server returns the HTTP API over the container's services.
func (c *Container) Server() *echo.Echo {
	return echohttp.Server(echohttp.Services{
		Projects:   c.ProjectService,
		Scenarios:  c.ScenarioService,
		Executions: c.ExecutionService,
		BugReports: c.BugReportService,
		Dashboard:  c.DashboardService,
		Generation: c.GenerationService,
		Tracker:    c.TrackerService,
	}, c.Logger)
}

var (
	configPath string
	container  *Container
	once       sync.Once
)

// SetConfigPath selects the config file used on first access. Must be called
// before any service accessor.
func SetConfigPath(path string) {
	configPath = path
}

// Get returns the singleton container, loading config and opening the database
// on first use.
func Get() *Container {
	once.Do(initContainer)
	return container
}

// initContainer is called once via sync.Once.
func initContainer() {
	c, err := load(configPath)
	if err != nil {
		log.Fatalf("failed to initialize smartqa: %v", err)
	}
	container = c
}

func load(path string) (*Container, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger := logging.Init(os.Stderr, cfg.LogLevel)

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return Build(cfg, database, logger)
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService { return Get().ProjectService }

// ScenarioService returns the singleton ScenarioService instance.
func ScenarioService() primary.ScenarioService { return Get().ScenarioService }

// ExecutionService returns the singleton ExecutionService instance.
func ExecutionService() primary.ExecutionService { return Get().ExecutionService }

// BugReportService returns the singleton BugReportService instance.
func BugReportService() primary.BugReportService { return Get().BugReportService }

// DashboardService returns the singleton DashboardService instance.
func DashboardService() primary.DashboardService { return Get().DashboardService }

// GenerationService returns the singleton GenerationService instance.
func GenerationService() primary.GenerationService { return Get().GenerationService }

// TrackerService returns the singleton TrackerService instance.
func TrackerService() primary.TrackerService { return Get().TrackerService }

// ReportAdapter returns a new ReportAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ReportAdapter() *cliadapter.ReportAdapter {
	return ReportAdapterWithOutput(os.Stdout)
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to the given output.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(out)
}
