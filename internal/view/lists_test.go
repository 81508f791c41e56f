package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/taskdesk/internal/domain"
)

func newLists(t *testing.T, repo *fakeRepo) *Lists {
	t.Helper()
	v := NewLists(repo, repo, classifier(),
		WithClock(func() time.Time { return testNow }),
		WithLogger(quietLogger()),
	)
	v.Refresh(context.Background())
	return v
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo(
		domain.Task{ID: 1, Title: "milk", TaskListID: listID(10)},
		domain.Task{ID: 2, Title: "eggs", TaskListID: listID(10)},
		domain.Task{ID: 3, Title: "taxes", TaskListID: listID(20)},
		domain.Task{ID: 4, Title: "loose"},
	)
	repo.lists = []domain.List{
		{ID: 20, Name: "Admin", Color: domain.DefaultListColor},
		{ID: 10, Name: "Groceries", Color: domain.DefaultListColor},
	}
	return repo
}

func TestListsSelectLoadsTasks(t *testing.T) {
	v := newLists(t, seededRepo())
	ctx := context.Background()

	assert.Len(t, v.Lists(), 2)
	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Empty(t, v.Tasks())

	assert.ErrorIs(t, v.Select(ctx, 99), ErrUnknownList)
	require.NoError(t, v.Select(ctx, 10))
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "Groceries", sel.Name)
	assert.Equal(t, []int64{1, 2}, ids(v.Tasks()))
	assert.Len(t, v.Rows(), 2)
}

func TestListsCreateTaskNeedsSelection(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)
	ctx := context.Background()

	assert.ErrorIs(t, v.RequestCreateTask(domain.TaskInput{Title: "bread"}), ErrNoListSelected)

	require.NoError(t, v.Select(ctx, 10))
	require.NoError(t, v.RequestCreateTask(domain.TaskInput{Title: "bread"}))
	p, _ := v.Pending()
	require.NotNil(t, p.Task.TaskListID)
	assert.Equal(t, int64(10), *p.Task.TaskListID)

	require.NoError(t, v.Confirm(ctx))
	assert.Len(t, v.Tasks(), 3)
}

func TestListsCreateList(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)

	assert.ErrorIs(t, v.RequestCreateList(domain.ListInput{Name: "  "}), domain.ErrEmptyListName)
	require.NoError(t, v.RequestCreateList(domain.ListInput{Name: " Work "}))
	p, _ := v.Pending()
	assert.Equal(t, CreateList, p.Kind)
	assert.Equal(t, domain.DefaultListColor, p.List.Color)

	require.NoError(t, v.Confirm(context.Background()))
	lists := v.Lists()
	require.Len(t, lists, 3)
	assert.Equal(t, "Work", lists[0].Name)
}

func TestDeletingSelectedListClearsSelection(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)
	ctx := context.Background()
	require.NoError(t, v.Select(ctx, 10))

	assert.ErrorIs(t, v.RequestDeleteList(99), ErrUnknownList)
	require.NoError(t, v.RequestDeleteList(10))
	p, _ := v.Pending()
	assert.Contains(t, p.Prompt(), "'No List'")

	require.NoError(t, v.Confirm(ctx))
	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Empty(t, v.Tasks())
	require.Len(t, v.Lists(), 1)
	assert.Equal(t, int64(20), v.Lists()[0].ID)

	all, err := repo.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4, "tasks survive their list")
}

func TestDeletingOtherListKeepsSelection(t *testing.T) {
	v := newLists(t, seededRepo())
	ctx := context.Background()
	require.NoError(t, v.Select(ctx, 10))

	require.NoError(t, v.RequestDeleteList(20))
	require.NoError(t, v.Confirm(ctx))
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(10), sel.ID)
	assert.Len(t, v.Tasks(), 2)
}

func TestListDeleteFailureBanner(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)
	require.NoError(t, v.RequestDeleteList(20))

	repo.setErr(errors.New("offline"))
	require.NoError(t, v.Confirm(context.Background()))
	assert.Equal(t, "Failed to delete list", v.Err())
}

func TestListsFetchFailure(t *testing.T) {
	repo := seededRepo()
	repo.err = errors.New("offline")
	v := newLists(t, repo)
	assert.Equal(t, MsgListsFailed, v.Err())
	assert.Empty(t, v.Lists())
}

func TestListsReorderWithinSelection(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)
	ctx := context.Background()
	require.NoError(t, v.Select(ctx, 10))

	require.NoError(t, v.Reorder(ctx, 2, 1))
	assert.Equal(t, []int64{2, 1}, ids(v.Tasks()))
	assert.Equal(t, []domain.TaskOrder{{ID: 2, SortOrder: 0}, {ID: 1, SortOrder: 1}}, repo.lastOrder)
}

func TestListsUnmountDropsLateResponse(t *testing.T) {
	repo := seededRepo()
	v := newLists(t, repo)
	ctx := context.Background()
	require.NoError(t, v.Select(ctx, 10))
	v.Unmount()

	repo.mu.Lock()
	repo.lists = []domain.List{{ID: 30, Name: "New"}, {ID: 20, Name: "Admin"}, {ID: 10, Name: "Groceries"}}
	repo.mu.Unlock()
	v.Refresh(ctx)
	assert.Len(t, v.Lists(), 2)

	repo.mu.Lock()
	repo.lists = nil
	repo.mu.Unlock()
	require.NoError(t, v.RefreshLists(ctx))
	assert.Len(t, v.Lists(), 2)
	sel, ok := v.Selected()
	require.True(t, ok, "a late response must not clear the selection")
	assert.Equal(t, int64(10), sel.ID)
}
