package view

import (
	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/grouping"
	"example.com/taskdesk/internal/repository"
)

// Row is a task with its due-date label.
type Row struct {
	Task domain.Task
	Due  duedate.Classification
}

func rowsOf(c *duedate.Classifier, tasks []domain.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{Task: t, Due: c.Classify(t.Due())}
	}
	return rows
}

// Today shows tasks due on the current day.
type Today struct {
	*Controller
	classifier *duedate.Classifier
}

func NewToday(tasks repository.TaskRepository, classifier *duedate.Classifier, opts ...Option) *Today {
	return &Today{
		Controller: newController("today", tasks, tasks.TodayTasks, "Failed to load today's tasks", opts),
		classifier: classifier,
	}
}

// Rows are ordered by priority, highest first; Reorder works on Tasks order.
func (v *Today) Rows() []Row {
	return rowsOf(v.classifier, grouping.SortByPriority(v.Tasks()))
}
