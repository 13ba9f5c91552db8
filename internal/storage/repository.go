package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the backend the dashboard talks to. The view layer only
// ever sees these five contracts: list tasks (all or per dashboard),
// list dashboards, list users, and create/update a task.
type Repository interface {
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByDashboard(ctx context.Context, dashboardID string) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, in Task) error
	UpdateTask(ctx context.Context, in Task) error

	ListDashboards(ctx context.Context) ([]Dashboard, error)
	ListUsers(ctx context.Context) ([]User, error)
	FindUserByLogin(ctx context.Context, login string) (User, error)
}
