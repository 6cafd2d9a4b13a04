package repository

import (
	"context"

	"github.com/Hadil1-h/pfe/internal/domain"
)

// DatasetRepo loads the project-management records the analysis layer
// works from. Implementations are lenient: rows with missing optional
// fields come back with zero values, never errors.
type DatasetRepo interface {
	// ListProjects returns every non-archived project. When skipEmpty is
	// true, projects without a single task are filtered out.
	ListProjects(ctx context.Context, skipEmpty bool) ([]domain.ProjectRecord, error)

	// ListTasks returns every task across all projects.
	ListTasks(ctx context.Context) ([]domain.TaskRecord, error)

	// ListAgents returns every agent.
	ListAgents(ctx context.Context) ([]domain.AgentRecord, error)

	// ListTeams returns every team.
	ListTeams(ctx context.Context) ([]domain.TeamRecord, error)
}
