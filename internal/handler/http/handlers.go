// Package httpx is the development task service: the REST contract the
// client speaks, served by gin over an in-memory store.
package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/storage"
	"example.com/taskdesk/internal/storage/memory"
)

type Store interface {
	CreateUser(user domain.User, hash []byte) (domain.User, error)
	UserByUsername(username string) (memory.UserRecord, error)
	ListTasks(owner int64, keep func(domain.Task) bool) []domain.Task
	CreateTask(owner int64, task domain.Task) (domain.Task, error)
	UpdateTask(owner, id int64, fn func(*domain.Task) error) (domain.Task, error)
	DeleteTask(owner, id int64) error
	Reorder(owner int64, order []domain.TaskOrder) ([]domain.Task, error)
	Lists(owner int64) []domain.List
	CreateList(owner int64, list domain.List) domain.List
	UpdateList(owner, id int64, fn func(*domain.List) error) (domain.List, error)
	DeleteList(owner, id int64) error
}

type Handler struct {
	store      Store
	tokens     *Tokens
	now        func() time.Time
	loc        *time.Location
	log        *logrus.Entry
	bcryptCost int
}

type Option func(*Handler)

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(h *Handler) { h.loc = loc }
}

func WithLogger(log *logrus.Entry) Option {
	return func(h *Handler) { h.log = log }
}

// WithBcryptCost lowers hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(h *Handler) { h.bcryptCost = cost }
}

// New mounts the routes under basePath (for example "/api").
func New(s Store, tokens *Tokens, basePath string, opts ...Option) *gin.Engine {
	h := &Handler{
		store:      s,
		tokens:     tokens,
		now:        time.Now,
		loc:        time.Local,
		log:        logrus.NewEntry(logrus.StandardLogger()),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(h)
	}
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLog)
	h.routes(r.Group(basePath))
	return r
}

func (h *Handler) routes(g *gin.RouterGroup) {
	g.GET("/healthz", h.health)

	auth := g.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/signup", h.signup)
	auth.POST("/register", h.signup)

	tasks := g.Group("/tasks", h.requireUser)
	tasks.GET("", h.tasks)
	tasks.GET("/today", h.todayTasks)
	tasks.GET("/upcoming", h.upcomingTasks)
	tasks.GET("/list/:id", h.listTasks)
	tasks.POST("", h.createTask)
	tasks.PUT("/reorder", h.reorderTasks)
	tasks.PUT("/:id", h.updateTask)
	tasks.DELETE("/:id", h.deleteTask)

	lists := g.Group("/lists", h.requireUser)
	lists.GET("", h.lists)
	lists.GET("/:id/tasks", h.listTasks)
	lists.POST("", h.createList)
	lists.PUT("/:id", h.updateList)
	lists.DELETE("/:id", h.deleteList)
}

func (h *Handler) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start),
		"request_id": c.GetHeader("X-Request-ID"),
	}).Debug("request")
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": "true"})
}

func (h *Handler) tasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListTasks(currentUser(c).ID, nil))
}

func (h *Handler) todayTasks(c *gin.Context) {
	now := h.now().In(h.loc)
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, h.loc)
	end := time.Date(y, m, d, 23, 59, 59, 999_999_999, h.loc)
	c.JSON(http.StatusOK, h.store.ListTasks(currentUser(c).ID, func(t domain.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(start) && !t.DueDate.After(end)
	}))
}

func (h *Handler) upcomingTasks(c *gin.Context) {
	now := h.now().In(h.loc)
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, h.loc)
	c.JSON(http.StatusOK, h.store.ListTasks(currentUser(c).ID, func(t domain.Task) bool {
		return t.DueDate != nil && t.DueDate.After(tomorrow)
	}))
}

func (h *Handler) listTasks(c *gin.Context) {
	listID, ok := parseID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListTasks(currentUser(c).ID, func(t domain.Task) bool {
		return t.TaskListID != nil && *t.TaskListID == listID
	}))
}

func (h *Handler) createTask(c *gin.Context) {
	var req domain.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	in, err := req.Normalize()
	if err != nil {
		writeError(c, http.StatusBadRequest, "Title is required")
		return
	}
	if !in.Priority.Valid() {
		writeError(c, http.StatusBadRequest, "Invalid priority")
		return
	}
	task, err := h.store.CreateTask(currentUser(c).ID, domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusPending,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		TaskListID:  in.TaskListID,
		CreatedAt:   domain.NewLocalTime(h.now().In(h.loc)),
	})
	if err != nil {
		writeStoreError(c, err, "TaskList not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	var invalid string
	task, err := h.store.UpdateTask(currentUser(c).ID, id, func(t *domain.Task) error {
		invalid = h.applyPatch(t, patch)
		if invalid != "" {
			return errInvalidPatch
		}
		return nil
	})
	if errors.Is(err, errInvalidPatch) {
		writeError(c, http.StatusBadRequest, invalid)
		return
	}
	if err != nil {
		writeStoreError(c, err, "Task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

var errInvalidPatch = errors.New("invalid patch")

// applyPatch returns a client message when the patch is rejected.
func (h *Handler) applyPatch(t *domain.Task, p domain.TaskPatch) string {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return "Title is required"
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		switch *p.Status {
		case domain.StatusCompleted:
			t.Complete(h.now().In(h.loc))
		case domain.StatusPending:
			t.Reopen()
		case domain.StatusInProgress, domain.StatusCancelled:
			t.Status = *p.Status
		default:
			return "Invalid status"
		}
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return "Invalid priority"
		}
		t.Priority = domain.ParsePriority(string(*p.Priority))
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.TaskListID != nil {
		t.TaskListID = p.TaskListID
	}
	return ""
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteTask(currentUser(c).ID, id); err != nil {
		writeStoreError(c, err, "Task not found")
		return
	}
	c.String(http.StatusOK, "Task deleted")
}

func (h *Handler) reorderTasks(c *gin.Context) {
	var order []domain.TaskOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	tasks, err := h.store.Reorder(currentUser(c).ID, order)
	if err != nil {
		writeStoreError(c, err, "Task not found")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return 0, false
	}
	return id, true
}

func writeStoreError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(c, http.StatusNotFound, notFound)
	case errors.Is(err, storage.ErrForbidden):
		c.AbortWithStatus(http.StatusForbidden)
	default:
		writeError(c, http.StatusInternalServerError, "store")
	}
}

func writeError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"message": msg})
}
