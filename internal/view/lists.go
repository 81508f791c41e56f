package view

import (
	"context"
	"errors"
	"slices"
	"sync"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/repository"
)

var (
	ErrUnknownList    = errors.New("list does not exist")
	ErrNoListSelected = errors.New("no list selected")
)

const MsgListsFailed = "Failed to load lists"

// Lists shows the user's lists and the tasks of the selected one.
type Lists struct {
	*Controller
	lists      repository.ListRepository
	classifier *duedate.Classifier

	mu       sync.Mutex
	all      []domain.List
	selected *domain.List
}

func NewLists(tasks repository.TaskRepository, lists repository.ListRepository, classifier *duedate.Classifier, opts ...Option) *Lists {
	v := &Lists{lists: lists, classifier: classifier}
	v.Controller = newController("lists", tasks, v.fetchSelected, "Failed to load tasks", opts)
	v.Controller.reload = v.Refresh
	v.Controller.dispatchList = v.dispatch
	return v
}

func (v *Lists) fetchSelected(ctx context.Context) ([]domain.Task, error) {
	v.mu.Lock()
	sel := v.selected
	v.mu.Unlock()
	if sel == nil {
		return []domain.Task{}, nil
	}
	return v.Controller.tasks.TasksByList(ctx, sel.ID)
}

// Lists returns the lists, newest first.
func (v *Lists) Lists() []domain.List {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.all)
}

func (v *Lists) Selected() (domain.List, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		return domain.List{}, false
	}
	return *v.selected, true
}

// RefreshLists refetches the lists. A selection whose list is gone is dropped.
// A response arriving after Unmount is discarded.
func (v *Lists) RefreshLists(ctx context.Context) error {
	lists, err := v.lists.Lists(ctx)
	if err != nil {
		v.log.WithError(err).Warn("list fetch failed")
		v.setErr(banner(err, MsgListNotFound, MsgListsFailed))
		return err
	}
	applied := v.whileMounted(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.all = lists
		if v.selected != nil && !containsList(lists, v.selected.ID) {
			v.selected = nil
		}
	})
	if !applied {
		v.log.Debug("dropping lists after unmount")
	}
	return nil
}

// Refresh reloads the lists, then the selected list's tasks.
func (v *Lists) Refresh(ctx context.Context) {
	if v.RefreshLists(ctx) != nil {
		return
	}
	v.Controller.Refresh(ctx)
}

// Select makes id the current list and loads its tasks.
func (v *Lists) Select(ctx context.Context, id int64) error {
	v.mu.Lock()
	i := slices.IndexFunc(v.all, func(l domain.List) bool { return l.ID == id })
	if i < 0 {
		v.mu.Unlock()
		return ErrUnknownList
	}
	sel := v.all[i]
	v.selected = &sel
	v.mu.Unlock()

	v.Controller.Refresh(ctx)
	return nil
}

// RequestCreateTask opens a create confirmation for a task in the selected list.
func (v *Lists) RequestCreateTask(in domain.TaskInput) error {
	sel, ok := v.Selected()
	if !ok {
		return ErrNoListSelected
	}
	id := sel.ID
	in.TaskListID = &id
	return v.Controller.RequestCreateTask(in)
}

func (v *Lists) RequestCreateList(in domain.ListInput) error {
	in, err := in.Normalize()
	if err != nil {
		return err
	}
	return v.request(Pending{Kind: CreateList, Name: in.Name, List: in})
}

func (v *Lists) RequestDeleteList(id int64) error {
	v.mu.Lock()
	i := slices.IndexFunc(v.all, func(l domain.List) bool { return l.ID == id })
	var name string
	if i >= 0 {
		name = v.all[i].Name
	}
	v.mu.Unlock()
	if i < 0 {
		return ErrUnknownList
	}
	return v.request(Pending{Kind: DeleteList, ListID: id, Name: name})
}

func (v *Lists) dispatch(ctx context.Context, p Pending) error {
	switch p.Kind {
	case CreateList:
		if _, err := v.lists.CreateList(ctx, p.List); err != nil {
			return err
		}
	case DeleteList:
		if err := v.lists.DeleteList(ctx, p.ListID); err != nil {
			return err
		}
		v.whileMounted(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if v.selected != nil && v.selected.ID == p.ListID {
				v.selected = nil
			}
		})
	}
	_ = v.RefreshLists(ctx)
	return nil
}

// Rows keep collection order, which is the order Reorder edits.
func (v *Lists) Rows() []Row {
	return rowsOf(v.classifier, v.Tasks())
}

func containsList(lists []domain.List, id int64) bool {
	return slices.ContainsFunc(lists, func(l domain.List) bool { return l.ID == id })
}
