// Package grouping orders tasks by priority and buckets them by due day.
package grouping

import (
	"slices"
	"sort"
	"time"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/duedate"
)

type Group struct {
	Key   string
	Tasks []domain.Task
}

// SortByPriority returns a copy ordered by descending rank. Equal ranks keep
// their input order.
func SortByPriority(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})
	return out
}

// GroupByDueDate keys tasks by the wall-clock day of their due date. Tasks
// without a due date are left out.
func GroupByDueDate(tasks []domain.Task) map[string][]domain.Task {
	return GroupByDueDateIn(tasks, nil)
}

// GroupByDueDateIn is GroupByDueDate with days taken in loc. A nil loc keeps
// each due date's own zone.
func GroupByDueDateIn(tasks []domain.Task, loc *time.Location) map[string][]domain.Task {
	groups := make(map[string][]domain.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.Time
		if loc != nil {
			due = due.In(loc)
		}
		key := duedate.DayKey(due)
		groups[key] = append(groups[key], t)
	}
	for key, group := range groups {
		groups[key] = SortByPriority(group)
	}
	return groups
}

func SortedKeys(groups map[string][]domain.Task) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Groups is GroupByDueDateIn flattened into ascending day order.
func Groups(tasks []domain.Task, loc *time.Location) []Group {
	m := GroupByDueDateIn(tasks, loc)
	out := make([]Group, 0, len(m))
	for _, key := range SortedKeys(m) {
		out = append(out, Group{Key: key, Tasks: m[key]})
	}
	return out
}
