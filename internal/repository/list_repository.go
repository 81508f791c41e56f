package repository

import (
	"context"

	"example.com/taskdesk/internal/domain"
)

// ListRepository manages task lists. Deleting a list unassigns its tasks.
type ListRepository interface {
	Lists(ctx context.Context) ([]domain.List, error)
	CreateList(ctx context.Context, in domain.ListInput) (domain.List, error)
	UpdateList(ctx context.Context, id int64, in domain.ListInput) (domain.List, error)
	DeleteList(ctx context.Context, id int64) error
}
