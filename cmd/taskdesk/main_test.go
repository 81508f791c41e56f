package main

import (
	"bytes"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"example.com/taskdesk/internal/app"
	"example.com/taskdesk/internal/config"
	"example.com/taskdesk/internal/session"
)

type harness struct {
	cfg   config.Config
	store session.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Timeout:        5 * time.Second,
		SweepInterval:  time.Hour,
		CompletedTTL:   48 * time.Hour,
		LogLevel:       "error",
		LogFormat:      "text",
		StubSecret:     "cli-secret",
		StubTokenTTL:   24 * time.Hour,
		StubBcryptCost: bcrypt.MinCost,
	}
	stub, err := app.NewStub(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(stub.Router)
	t.Cleanup(srv.Close)
	cfg.APIURL = srv.URL + app.StubBasePath
	return &harness{cfg: cfg, store: session.NewMemoryStore()}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	root := newRootCmd(h.cfg, app.WithSessionStore(h.store))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var taskID = regexp.MustCompile(`#(\d+)`)

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "signup", "-u", "ada", "-p", "lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as ada")

	out, err = h.run("", "add", "Buy", "milk", "--due", "today", "-p", "high", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Buy milk"`)

	out, err = h.run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Today")
	m := taskID.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, err = h.run("y\n", "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "48 hours")

	out, err = h.run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")

	_, err = h.run("", "undo", id)
	require.NoError(t, err)
	out, err = h.run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ]")

	_, err = h.run("", "priority", id, "low")
	require.NoError(t, err)
	out, err = h.run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Low")

	_, err = h.run("", "rm", id, "--yes")
	require.NoError(t, err)
	out, err = h.run("", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks")
}

func TestDeclinedConfirmationSendsNothing(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "signup", "-u", "bob", "-p", "pw")
	require.NoError(t, err)

	_, err = h.run("n\n", "add", "Maybe", "--due", "today")
	assert.ErrorIs(t, err, errCancelled)

	out, err := h.run("", "today")
	require.NoError(t, err)
	assert.NotContains(t, out, "Maybe")
}

func TestListsCommands(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "signup", "-u", "cy", "-p", "pw")
	require.NoError(t, err)

	out, err := h.run("", "lists", "add", "Groceries", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	id := taskID.FindStringSubmatch(out)[1]

	_, err = h.run("", "add", "Eggs", "--list", id, "--yes")
	require.NoError(t, err)

	out, err = h.run("", "lists", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Eggs")
	assert.Contains(t, out, "@Groceries")

	_, err = h.run("", "lists", "rm", id, "--yes")
	require.NoError(t, err)
	out, err = h.run("", "lists")
	require.NoError(t, err)
	assert.Contains(t, out, "No lists")
}

func TestStatusAndLogout(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: absent")

	_, err = h.run("", "signup", "-u", "dee", "-p", "pw")
	require.NoError(t, err)
	out, err = h.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: valid")
	assert.Contains(t, out, "user: dee")

	_, err = h.run("", "logout")
	require.NoError(t, err)
	out, err = h.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: absent")
}

func TestLoginFailureReportsServerMessage(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "login", "-u", "nobody", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid username or password")
}

func TestBadArguments(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "rm", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = h.run("", "add", "x", "-p", "critical", "--yes")
	assert.ErrorContains(t, err, "unknown priority")

	_, err = h.run("", "watch", "--every", "0s")
	assert.ErrorContains(t, err, "must be positive")
}
