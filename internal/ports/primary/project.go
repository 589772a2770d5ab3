// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI and HTTP API drive the core.
package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists all projects, newest first.
	ListProjects(ctx context.Context) ([]*Project, error)

	// UpdateProject replaces the given fields of a project.
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Project, error)

	// DeleteProject deletes a project. Projects with scenarios require Force,
	// which removes everything beneath the project.
	DeleteProject(ctx context.Context, req DeleteProjectRequest) error
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	Name        string
	URL         string
	Description string
}

// UpdateProjectRequest contains parameters for updating a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	ProjectID   string
	Name        *string
	URL         *string
	Description *string
}

// DeleteProjectRequest contains parameters for deleting a project.
type DeleteProjectRequest struct {
	ProjectID string
	Force     bool
}

// Project represents a project entity at the port boundary.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
