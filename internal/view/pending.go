package view

import (
	"fmt"

	"example.com/taskdesk/internal/domain"
)

// Kind names the action waiting for confirmation.
type Kind int

const (
	CreateTask Kind = iota + 1
	DeleteTask
	CompleteTask
	CreateList
	DeleteList
)

func (k Kind) String() string {
	switch k {
	case CreateTask:
		return "create-task"
	case DeleteTask:
		return "delete-task"
	case CompleteTask:
		return "complete-task"
	case CreateList:
		return "create-list"
	case DeleteList:
		return "delete-list"
	default:
		return "unknown"
	}
}

// Pending is the single confirmation a view can hold. Which fields are set
// depends on Kind.
type Pending struct {
	Kind   Kind
	TaskID int64
	ListID int64
	// Name is the task title or list name shown to the user.
	Name string
	Task domain.TaskInput
	List domain.ListInput
}

// Prompt is the question put to the user.
func (p Pending) Prompt() string {
	switch p.Kind {
	case CreateTask:
		return fmt.Sprintf("Are you sure you want to add the task %q?", p.Name)
	case DeleteTask:
		return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", p.Name)
	case CompleteTask:
		return fmt.Sprintf("Are you sure you want to mark %q as completed? This task will be automatically removed after 48 hours.", p.Name)
	case CreateList:
		return fmt.Sprintf("Are you sure you want to create the list %q?", p.Name)
	case DeleteList:
		return fmt.Sprintf("Are you sure you want to delete %q? All tasks in this list will be moved to 'No List'.", p.Name)
	default:
		return ""
	}
}

func (p Pending) failure() string {
	switch p.Kind {
	case CreateTask:
		return "Failed to add task. Please try again."
	case DeleteTask:
		return "Failed to delete task"
	case CompleteTask:
		return "Failed to update task"
	case CreateList:
		return "Failed to create list"
	case DeleteList:
		return "Failed to delete list"
	default:
		return "Request failed"
	}
}

func (p Pending) notFound() string {
	if p.Kind == CreateList || p.Kind == DeleteList {
		return MsgListNotFound
	}
	return MsgTaskNotFound
}
