package api

import (
	"context"
	"fmt"
	"net/http"

	"example.com/taskdesk/internal/domain"
)

func (c *Client) Lists(ctx context.Context) ([]domain.List, error) {
	var lists []domain.List
	if err := c.do(ctx, call{method: http.MethodGet, path: "/lists", out: &lists}); err != nil {
		return nil, err
	}
	return lists, nil
}

// ListTasks reads a list's tasks through the /lists/{id}/tasks route.
func (c *Client) ListTasks(ctx context.Context, listID int64) ([]domain.Task, error) {
	return c.taskList(ctx, fmt.Sprintf("/lists/%d/tasks", listID))
}

func (c *Client) CreateList(ctx context.Context, in domain.ListInput) (domain.List, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.List{}, &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}
	var list domain.List
	if err := c.do(ctx, call{method: http.MethodPost, path: "/lists", in: in, out: &list}); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

func (c *Client) UpdateList(ctx context.Context, id int64, in domain.ListInput) (domain.List, error) {
	var list domain.List
	err := c.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/lists/%d", id), in: in, out: &list})
	if err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// DeleteList removes the list. Its tasks stay and become unassigned.
func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/lists/%d", id)})
}
