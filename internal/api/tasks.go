package api

import (
	"context"
	"fmt"
	"net/http"

	"example.com/taskdesk/internal/domain"
)

func (c *Client) Tasks(ctx context.Context) ([]domain.Task, error) {
	return c.taskList(ctx, "/tasks")
}

// TodayTasks returns tasks due on the server's current day.
func (c *Client) TodayTasks(ctx context.Context) ([]domain.Task, error) {
	return c.taskList(ctx, "/tasks/today")
}

// UpcomingTasks returns tasks due from tomorrow onward.
func (c *Client) UpcomingTasks(ctx context.Context) ([]domain.Task, error) {
	return c.taskList(ctx, "/tasks/upcoming")
}

func (c *Client) TasksByList(ctx context.Context, listID int64) ([]domain.Task, error) {
	return c.taskList(ctx, fmt.Sprintf("/tasks/list/%d", listID))
}

func (c *Client) taskList(ctx context.Context, path string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, call{method: http.MethodGet, path: path, out: &tasks}); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask validates in and defaults its priority to MEDIUM before sending.
func (c *Client) CreateTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.Task{}, &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}
	var task domain.Task
	if err := c.do(ctx, call{method: http.MethodPost, path: "/tasks", in: in, out: &task}); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/tasks/%d", id), in: patch, out: &task})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/tasks/%d", id)})
}

// ReorderTasks persists a full ordering in one call.
func (c *Client) ReorderTasks(ctx context.Context, order []domain.TaskOrder) error {
	if order == nil {
		order = []domain.TaskOrder{}
	}
	return c.do(ctx, call{method: http.MethodPut, path: "/tasks/reorder", in: order})
}
