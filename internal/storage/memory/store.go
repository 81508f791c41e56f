// Package memory is an in-process store for the development task service.
package memory

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/storage"
)

// UserRecord is a user together with the bcrypt hash of their password.
type UserRecord struct {
	domain.User
	PasswordHash []byte
}

type taskRecord struct {
	owner int64
	task  domain.Task
}

type listRecord struct {
	owner int64
	list  domain.List
}

type Store struct {
	mu       sync.Mutex
	users    map[int64]UserRecord
	tasks    map[int64]taskRecord
	lists    map[int64]listRecord
	nextUser int64
	nextTask int64
	nextList int64
}

func New() *Store {
	return &Store{
		users: make(map[int64]UserRecord),
		tasks: make(map[int64]taskRecord),
		lists: make(map[int64]listRecord),
	}
}

// CreateUser rejects duplicate usernames and duplicate non-empty emails.
func (s *Store) CreateUser(user domain.User, hash []byte) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return domain.User{}, fmt.Errorf("username: %w", storage.ErrConflict)
		}
		if user.Email != "" && strings.EqualFold(u.Email, user.Email) {
			return domain.User{}, fmt.Errorf("email: %w", storage.ErrConflict)
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	s.users[user.ID] = UserRecord{User: user, PasswordHash: hash}
	return user, nil
}

func (s *Store) UserByUsername(username string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return UserRecord{}, storage.ErrNotFound
}

// ListTasks returns owner's tasks accepted by keep, ordered by sortOrder.
// A nil keep accepts everything.
func (s *Store) ListTasks(owner int64, keep func(domain.Task) bool) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listTasksLocked(owner, keep)
}

func (s *Store) listTasksLocked(owner int64, keep func(domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0)
	for _, rec := range s.tasks {
		if rec.owner != owner {
			continue
		}
		if keep != nil && !keep(rec.task) {
			continue
		}
		out = append(out, rec.task)
	}
	slices.SortFunc(out, func(a, b domain.Task) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return int(a.ID - b.ID)
	})
	return out
}

// CreateTask appends the task after owner's existing ones.
func (s *Store) CreateTask(owner int64, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.TaskListID != nil {
		if _, err := s.listLocked(owner, *task.TaskListID); err != nil {
			return domain.Task{}, err
		}
	}
	count := 0
	for _, rec := range s.tasks {
		if rec.owner == owner {
			count++
		}
	}
	s.nextTask++
	task.ID = s.nextTask
	task.SortOrder = count
	s.tasks[task.ID] = taskRecord{owner: owner, task: task}
	return task, nil
}

func (s *Store) GetTask(owner, id int64) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.taskLocked(owner, id)
	if err != nil {
		return domain.Task{}, err
	}
	return rec.task, nil
}

// UpdateTask applies fn to a copy of the task and stores it if fn succeeds.
func (s *Store) UpdateTask(owner, id int64, fn func(*domain.Task) error) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.taskLocked(owner, id)
	if err != nil {
		return domain.Task{}, err
	}
	task := rec.task
	if err := fn(&task); err != nil {
		return domain.Task{}, err
	}
	if task.TaskListID != nil {
		if _, err := s.listLocked(owner, *task.TaskListID); err != nil {
			return domain.Task{}, err
		}
	}
	task.ID = id
	s.tasks[id] = taskRecord{owner: owner, task: task}
	return task, nil
}

func (s *Store) DeleteTask(owner, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.taskLocked(owner, id); err != nil {
		return err
	}
	delete(s.tasks, id)
	return nil
}

// Reorder sets sortOrder for every listed task. Nothing changes unless all
// of them exist and belong to owner.
func (s *Store) Reorder(owner int64, order []domain.TaskOrder) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range order {
		if _, err := s.taskLocked(owner, o.ID); err != nil {
			return nil, err
		}
	}
	for _, o := range order {
		rec := s.tasks[o.ID]
		rec.task.SortOrder = o.SortOrder
		s.tasks[o.ID] = rec
	}
	return s.listTasksLocked(owner, nil), nil
}

func (s *Store) taskLocked(owner, id int64) (taskRecord, error) {
	rec, ok := s.tasks[id]
	if !ok {
		return taskRecord{}, fmt.Errorf("task %d: %w", id, storage.ErrNotFound)
	}
	if rec.owner != owner {
		return taskRecord{}, fmt.Errorf("task %d: %w", id, storage.ErrForbidden)
	}
	return rec, nil
}

// Lists returns owner's lists, newest first.
func (s *Store) Lists(owner int64) []domain.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.List, 0)
	for _, rec := range s.lists {
		if rec.owner == owner {
			out = append(out, rec.list)
		}
	}
	slices.SortFunc(out, func(a, b domain.List) int { return int(b.ID - a.ID) })
	return out
}

func (s *Store) GetList(owner, id int64) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.listLocked(owner, id)
	if err != nil {
		return domain.List{}, err
	}
	return rec.list, nil
}

func (s *Store) CreateList(owner int64, list domain.List) domain.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextList++
	list.ID = s.nextList
	s.lists[list.ID] = listRecord{owner: owner, list: list}
	return list
}

func (s *Store) UpdateList(owner, id int64, fn func(*domain.List) error) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.listLocked(owner, id)
	if err != nil {
		return domain.List{}, err
	}
	list := rec.list
	if err := fn(&list); err != nil {
		return domain.List{}, err
	}
	list.ID = id
	s.lists[id] = listRecord{owner: owner, list: list}
	return list, nil
}

// DeleteList removes the list and unassigns its tasks.
func (s *Store) DeleteList(owner, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.listLocked(owner, id); err != nil {
		return err
	}
	delete(s.lists, id)
	for tid, rec := range s.tasks {
		if rec.task.TaskListID != nil && *rec.task.TaskListID == id {
			rec.task.TaskListID = nil
			s.tasks[tid] = rec
		}
	}
	return nil
}

func (s *Store) listLocked(owner, id int64) (listRecord, error) {
	rec, ok := s.lists[id]
	if !ok {
		return listRecord{}, fmt.Errorf("list %d: %w", id, storage.ErrNotFound)
	}
	if rec.owner != owner {
		return listRecord{}, fmt.Errorf("list %d: %w", id, storage.ErrForbidden)
	}
	return rec, nil
}
