// Package view holds the screen controllers: the task collection each screen
// shows, its loading and error state, and the confirm-then-dispatch flow for
// mutations.
package view

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/repository"
)

var (
	ErrBusy            = errors.New("another confirmation is open")
	ErrNothingPending  = errors.New("nothing to confirm")
	ErrUnknownTask     = errors.New("task is not in this view")
	ErrInvalidPriority = errors.New("invalid priority")
)

type Config struct {
	SweepInterval time.Duration
	CompletedTTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		SweepInterval: time.Hour,
		CompletedTTL:  48 * time.Hour,
	}
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) { c.log = log }
}

func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// Controller is the state shared by every view. The mutex guards state
// transitions only; it is never held while a request is in flight.
type Controller struct {
	name        string
	tasks       repository.TaskRepository
	fetch       func(ctx context.Context) ([]domain.Task, error)
	fetchFailed string
	// reload runs the view's full refresh on mount.
	reload func(ctx context.Context)
	// dispatchList handles list confirmations; nil outside the Lists view.
	dispatchList func(ctx context.Context, p Pending) error

	now func() time.Time
	log *logrus.Entry
	cfg Config

	mu        sync.Mutex
	items     []domain.Task
	loading   bool
	errMsg    string
	pending   *Pending
	seq       uint64
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func newController(name string, tasks repository.TaskRepository, fetch func(context.Context) ([]domain.Task, error), fetchFailed string, opts []Option) *Controller {
	c := &Controller{
		name:        name,
		tasks:       tasks,
		fetch:       fetch,
		fetchFailed: fetchFailed,
		now:         time.Now,
		log:         logrus.NewEntry(logrus.StandardLogger()),
		cfg:         DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	def := DefaultConfig()
	if c.cfg.SweepInterval <= 0 {
		c.cfg.SweepInterval = def.SweepInterval
	}
	if c.cfg.CompletedTTL <= 0 {
		c.cfg.CompletedTTL = def.CompletedTTL
	}
	c.log = c.log.WithField("view", name)
	c.reload = c.Refresh
	return c
}

// Refresh refetches the collection. Results that arrive after Unmount, or
// after a newer Refresh started, are dropped.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.loading = true
	c.mu.Unlock()

	tasks, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		c.log.Debug("dropping response after unmount")
		return
	}
	if seq != c.seq {
		return
	}
	c.loading = false
	if err != nil {
		c.log.WithError(err).Warn("fetch failed")
		c.errMsg = banner(err, MsgTaskNotFound, c.fetchFailed)
		return
	}
	c.errMsg = ""
	c.items = tasks
}

// Tasks returns the collection in server order.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err is the current banner, "" when there is none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}

func (c *Controller) setErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.unmounted {
		c.errMsg = msg
	}
}

// whileMounted runs fn under the controller lock unless the view was
// unmounted, and reports whether it ran.
func (c *Controller) whileMounted(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		return false
	}
	fn()
	return true
}

func (c *Controller) Pending() (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Pending{}, false
	}
	return *c.pending, true
}

func (c *Controller) request(p Pending) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return ErrBusy
	}
	c.pending = &p
	return nil
}

func (c *Controller) find(id int64) (domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.items {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// RequestCreateTask opens a create confirmation for in.
func (c *Controller) RequestCreateTask(in domain.TaskInput) error {
	in, err := in.Normalize()
	if err != nil {
		return err
	}
	return c.request(Pending{Kind: CreateTask, Name: in.Title, Task: in})
}

func (c *Controller) RequestDeleteTask(id int64) error {
	t, ok := c.find(id)
	if !ok {
		return ErrUnknownTask
	}
	return c.request(Pending{Kind: DeleteTask, TaskID: id, Name: t.Title})
}

// ToggleComplete reopens a completed task at once. Any other task gets a
// completion confirmation, since completed tasks are swept after CompletedTTL.
func (c *Controller) ToggleComplete(ctx context.Context, id int64) error {
	t, ok := c.find(id)
	if !ok {
		return ErrUnknownTask
	}
	if !t.Completed() {
		return c.request(Pending{Kind: CompleteTask, TaskID: id, Name: t.Title})
	}
	if _, err := c.tasks.UpdateTask(ctx, id, domain.StatusPatch(domain.StatusPending)); err != nil {
		c.log.WithError(err).WithField("task_id", id).Warn("reopen failed")
		c.setErr(banner(err, MsgTaskNotFound, MsgUpdateFailed))
		return nil
	}
	c.Refresh(ctx)
	return nil
}

// SetPriority applies a priority immediately, without confirmation.
func (c *Controller) SetPriority(ctx context.Context, id int64, p domain.Priority) error {
	if !p.Valid() {
		return ErrInvalidPriority
	}
	if _, ok := c.find(id); !ok {
		return ErrUnknownTask
	}
	p = domain.ParsePriority(string(p))
	if _, err := c.tasks.UpdateTask(ctx, id, domain.PriorityPatch(p)); err != nil {
		c.log.WithError(err).WithField("task_id", id).Warn("priority update failed")
		c.setErr(banner(err, MsgTaskNotFound, MsgUpdateFailed))
		return nil
	}
	c.Refresh(ctx)
	return nil
}

// Cancel drops the open confirmation without any request.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Confirm takes the open confirmation and dispatches it. The confirmation is
// consumed before the request goes out, so a second Confirm gets
// ErrNothingPending instead of a duplicate request.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	c.mu.Unlock()
	if p == nil {
		return ErrNothingPending
	}

	var err error
	switch p.Kind {
	case CreateTask:
		_, err = c.tasks.CreateTask(ctx, p.Task)
	case DeleteTask:
		err = c.tasks.DeleteTask(ctx, p.TaskID)
	case CompleteTask:
		_, err = c.tasks.UpdateTask(ctx, p.TaskID, domain.StatusPatch(domain.StatusCompleted))
	case CreateList, DeleteList:
		if c.dispatchList == nil {
			return ErrNothingPending
		}
		err = c.dispatchList(ctx, *p)
	}
	log := c.log.WithField("action", p.Kind.String())
	if err != nil {
		log.WithError(err).Warn("action failed")
		c.setErr(banner(err, p.notFound(), p.failure()))
		return nil
	}
	log.Debug("action done")
	c.Refresh(ctx)
	return nil
}

// Reorder moves activeID to overID's position, shows the new order at once
// and persists it in one call. A failed save leaves the local order in place.
func (c *Controller) Reorder(ctx context.Context, activeID, overID int64) error {
	c.mu.Lock()
	from := slices.IndexFunc(c.items, func(t domain.Task) bool { return t.ID == activeID })
	to := slices.IndexFunc(c.items, func(t domain.Task) bool { return t.ID == overID })
	if from < 0 || to < 0 {
		c.mu.Unlock()
		return ErrUnknownTask
	}
	if from == to {
		c.mu.Unlock()
		return nil
	}
	moved := moveTask(c.items, from, to)
	order := domain.OrderOf(moved)
	for i := range moved {
		moved[i].SortOrder = i
	}
	c.items = moved
	c.mu.Unlock()

	if err := c.tasks.ReorderTasks(ctx, order); err != nil {
		c.log.WithError(err).Warn("reorder failed")
		c.setErr(MsgReorderFailed)
	}
	return nil
}

func moveTask(items []domain.Task, from, to int) []domain.Task {
	out := slices.Clone(items)
	t := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, t)
}

// Sweep deletes tasks in the collection that were completed more than
// CompletedTTL ago. A failed delete is logged and skipped. It returns how
// many were removed.
func (c *Controller) Sweep(ctx context.Context) int {
	cutoff := c.now().Add(-c.cfg.CompletedTTL)
	c.mu.Lock()
	var expired []domain.Task
	for _, t := range c.items {
		if t.CompletedBefore(cutoff) {
			expired = append(expired, t)
		}
	}
	c.mu.Unlock()

	removed := 0
	for _, t := range expired {
		if err := c.tasks.DeleteTask(ctx, t.ID); err != nil {
			c.log.WithError(err).WithField("task_id", t.ID).Warn("sweep delete failed")
			continue
		}
		removed++
	}
	if removed > 0 {
		c.log.WithField("removed", removed).Info("swept completed tasks")
		c.Refresh(ctx)
	}
	return removed
}

// Mount loads the view and sweeps every SweepInterval until Unmount or ctx
// ends. Mounting a mounted view does nothing.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.unmounted = false
	c.mu.Unlock()

	c.reload(loopCtx)
	go c.sweepLoop(loopCtx, done)
}

func (c *Controller) sweepLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Unmount stops the sweep loop and waits for it. Responses still in flight
// are dropped when they arrive.
func (c *Controller) Unmount() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.unmounted = true
	c.pending = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
