package view

import (
	"context"
	"slices"
	"sync"
	"time"

	"example.com/taskdesk/internal/api"
	"example.com/taskdesk/internal/domain"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// fakeRepo is an in-memory TaskRepository and ListRepository. failDelete and
// failUpdate make the matching calls return err for the given ids.
type fakeRepo struct {
	mu     sync.Mutex
	tasks  []domain.Task
	lists  []domain.List
	nextID int64

	err        error
	failDelete map[int64]error
	failUpdate error
	failOrder  error

	creates, deletes, updates, reorders int
	lastOrder                           []domain.TaskOrder
	// gate, when set, blocks fetches until closed.
	gate chan struct{}
}

func newFakeRepo(tasks ...domain.Task) *fakeRepo {
	return &fakeRepo{tasks: tasks, nextID: 100, failDelete: map[int64]error{}}
}

func (f *fakeRepo) snapshot(keep func(domain.Task) bool) ([]domain.Task, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Task{}
	for _, t := range f.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Tasks(context.Context) ([]domain.Task, error) {
	return f.snapshot(func(domain.Task) bool { return true })
}

func (f *fakeRepo) TodayTasks(ctx context.Context) ([]domain.Task, error) {
	return f.Tasks(ctx)
}

func (f *fakeRepo) UpcomingTasks(ctx context.Context) ([]domain.Task, error) {
	return f.Tasks(ctx)
}

func (f *fakeRepo) TasksByList(_ context.Context, listID int64) ([]domain.Task, error) {
	return f.snapshot(func(t domain.Task) bool { return t.TaskListID != nil && *t.TaskListID == listID })
}

func (f *fakeRepo) CreateTask(_ context.Context, in domain.TaskInput) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.err != nil {
		return domain.Task{}, f.err
	}
	f.nextID++
	t := domain.Task{
		ID:         f.nextID,
		Title:      in.Title,
		Priority:   in.Priority,
		Status:     domain.StatusPending,
		DueDate:    in.DueDate,
		TaskListID: in.TaskListID,
		SortOrder:  len(f.tasks),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, id int64, patch domain.TaskPatch) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failUpdate != nil {
		return domain.Task{}, f.failUpdate
	}
	i := slices.IndexFunc(f.tasks, func(t domain.Task) bool { return t.ID == id })
	if i < 0 {
		return domain.Task{}, &api.Error{Kind: api.ErrValidation, Status: 404, Message: "Task not found"}
	}
	t := &f.tasks[i]
	if patch.Status != nil {
		if *patch.Status == domain.StatusCompleted {
			t.Complete(testNow)
		} else {
			t.Reopen()
		}
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	return *t, nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if err := f.failDelete[id]; err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	f.tasks = slices.DeleteFunc(f.tasks, func(t domain.Task) bool { return t.ID == id })
	return nil
}

func (f *fakeRepo) ReorderTasks(_ context.Context, order []domain.TaskOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders++
	f.lastOrder = order
	if f.failOrder != nil {
		return f.failOrder
	}
	pos := make(map[int64]int, len(order))
	for _, o := range order {
		pos[o.ID] = o.SortOrder
	}
	for i := range f.tasks {
		if p, ok := pos[f.tasks[i].ID]; ok {
			f.tasks[i].SortOrder = p
		}
	}
	slices.SortStableFunc(f.tasks, func(a, b domain.Task) int { return a.SortOrder - b.SortOrder })
	return nil
}

func (f *fakeRepo) Lists(context.Context) ([]domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.lists), nil
}

func (f *fakeRepo) CreateList(_ context.Context, in domain.ListInput) (domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.List{}, f.err
	}
	f.nextID++
	l := domain.List{ID: f.nextID, Name: in.Name, Color: in.Color}
	f.lists = append([]domain.List{l}, f.lists...)
	return l, nil
}

func (f *fakeRepo) UpdateList(_ context.Context, id int64, in domain.ListInput) (domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lists {
		if f.lists[i].ID == id {
			f.lists[i].Name = in.Name
			return f.lists[i], nil
		}
	}
	return domain.List{}, &api.Error{Kind: api.ErrValidation, Status: 404}
}

func (f *fakeRepo) DeleteList(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.lists = slices.DeleteFunc(f.lists, func(l domain.List) bool { return l.ID == id })
	for i := range f.tasks {
		if f.tasks[i].TaskListID != nil && *f.tasks[i].TaskListID == id {
			f.tasks[i].TaskListID = nil
		}
	}
	return nil
}

func (f *fakeRepo) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeRepo) counts() (creates, deletes, updates, reorders int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.deletes, f.updates, f.reorders
}

func ids(tasks []domain.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func completedAt(t time.Time) *domain.LocalTime {
	return domain.NewLocalTime(t)
}

func listID(id int64) *int64 { return &id }
