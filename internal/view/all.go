package view

import (
	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/repository"
)

// All holds every task of the user in server order. The CLI resolves task
// ids against it.
type All struct {
	*Controller
	classifier *duedate.Classifier
}

func NewAll(tasks repository.TaskRepository, classifier *duedate.Classifier, opts ...Option) *All {
	return &All{
		Controller: newController("all", tasks, tasks.Tasks, "Failed to load tasks", opts),
		classifier: classifier,
	}
}

func (v *All) Rows() []Row {
	return rowsOf(v.classifier, v.Tasks())
}
