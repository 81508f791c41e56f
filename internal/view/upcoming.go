package view

import (
	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/grouping"
	"example.com/taskdesk/internal/repository"
)

// DateGroup is one day of the Upcoming view.
type DateGroup struct {
	Key    string
	Header string
	Rows   []Row
}

// Upcoming shows tasks due from tomorrow onward, grouped by day.
type Upcoming struct {
	*Controller
	classifier *duedate.Classifier
}

func NewUpcoming(tasks repository.TaskRepository, classifier *duedate.Classifier, opts ...Option) *Upcoming {
	return &Upcoming{
		Controller: newController("upcoming", tasks, tasks.UpcomingTasks, "Failed to load upcoming tasks", opts),
		classifier: classifier,
	}
}

func (v *Upcoming) Groups() []DateGroup {
	groups := grouping.Groups(v.Tasks(), v.classifier.Location())
	out := make([]DateGroup, len(groups))
	for i, g := range groups {
		out[i] = DateGroup{
			Key:    g.Key,
			Header: v.classifier.HeaderLabel(g.Key),
			Rows:   rowsOf(v.classifier, g.Tasks),
		}
	}
	return out
}
