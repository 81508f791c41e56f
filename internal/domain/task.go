package domain

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var ErrEmptyTitle = errors.New("task title is empty")

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *LocalTime `json:"dueDate"`
	TaskListID  *int64     `json:"taskListId"`
	SortOrder   int        `json:"sortOrder"`
	CompletedAt *LocalTime `json:"completedAt"`
	CreatedAt   *LocalTime `json:"createdAt,omitempty"`
}

// Due returns the due date as a plain time, or nil.
func (t Task) Due() *time.Time {
	if t.DueDate == nil {
		return nil
	}
	tt := t.DueDate.Time
	return &tt
}

func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Complete marks the task done and stamps completedAt.
func (t *Task) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.CompletedAt = NewLocalTime(now)
}

// Reopen moves the task back to pending and clears completedAt.
func (t *Task) Reopen() {
	t.Status = StatusPending
	t.CompletedAt = nil
}

// CompletedBefore reports whether the task was completed strictly before cutoff.
func (t Task) CompletedBefore(cutoff time.Time) bool {
	if !t.Completed() || t.CompletedAt == nil {
		return false
	}
	return t.CompletedAt.Before(cutoff)
}

// TaskInput is the create payload.
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *LocalTime `json:"dueDate,omitempty"`
	TaskListID  *int64     `json:"taskListId,omitempty"`
}

// Normalize trims the title, defaults the priority and validates the result.
func (in TaskInput) Normalize() (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ErrEmptyTitle
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Priority = ParsePriority(string(in.Priority))
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return in, nil
}

// TaskPatch is a partial update; nil fields are left untouched by the server.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *LocalTime `json:"dueDate,omitempty"`
	TaskListID  *int64     `json:"taskListId,omitempty"`
}

func StatusPatch(s Status) TaskPatch {
	return TaskPatch{Status: &s}
}

func PriorityPatch(p Priority) TaskPatch {
	return TaskPatch{Priority: &p}
}

type TaskOrder struct {
	ID        int64 `json:"id"`
	SortOrder int   `json:"sortOrder"`
}

// OrderOf assigns sortOrder by position.
func OrderOf(tasks []Task) []TaskOrder {
	out := make([]TaskOrder, len(tasks))
	for i, t := range tasks {
		out[i] = TaskOrder{ID: t.ID, SortOrder: i}
	}
	return out
}
