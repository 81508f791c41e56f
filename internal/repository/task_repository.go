package repository

import (
	"context"

	"example.com/taskdesk/internal/domain"
)

// TaskRepository reads and mutates the signed-in user's tasks.
// Due dates travel as local wall-clock time.
type TaskRepository interface {
	Tasks(ctx context.Context) ([]domain.Task, error)
	TodayTasks(ctx context.Context) ([]domain.Task, error)
	UpcomingTasks(ctx context.Context) ([]domain.Task, error)
	TasksByList(ctx context.Context, listID int64) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ReorderTasks(ctx context.Context, order []domain.TaskOrder) error
}
