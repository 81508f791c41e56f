package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	MsgExpiringSoon = "Session will expire soon. Please save your work."
	MsgExpired      = "Session expired. Redirecting to login..."
)

// Notifier shows a short-lived advisory that does not block the user.
type Notifier interface {
	Notify(msg string, ttl time.Duration)
}

// Navigator moves the user to the login screen.
type Navigator interface {
	ToLogin()
	AtLogin() bool
}

type MonitorConfig struct {
	WarnWindow    time.Duration
	WarningTTL    time.Duration
	ExpiredTTL    time.Duration
	RedirectDelay time.Duration
}

func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		WarnWindow:    time.Hour,
		WarningTTL:    5 * time.Second,
		ExpiredTTL:    3 * time.Second,
		RedirectDelay: time.Second,
	}
}

// Monitor tracks the held token and performs clear-and-redirect when it
// stops being usable. All methods are safe for concurrent use.
type Monitor struct {
	store  Store
	notify Notifier
	nav    Navigator
	log    *logrus.Entry
	now    func() time.Time
	sleep  func(time.Duration)
	cfg    MonitorConfig

	mu     sync.Mutex
	warned string
	clears singleflight.Group
}

type MonitorOption func(*Monitor)

func WithClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) { m.now = now }
}

func WithLogger(log *logrus.Entry) MonitorOption {
	return func(m *Monitor) { m.log = log }
}

func WithConfig(cfg MonitorConfig) MonitorOption {
	return func(m *Monitor) { m.cfg = cfg }
}

// WithSleep replaces time.Sleep for the redirect delay.
func WithSleep(sleep func(time.Duration)) MonitorOption {
	return func(m *Monitor) { m.sleep = sleep }
}

func NewMonitor(store Store, notify Notifier, nav Navigator, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		store:  store,
		notify: notify,
		nav:    nav,
		log:    logrus.NewEntry(logrus.StandardLogger()),
		now:    time.Now,
		sleep:  time.Sleep,
		cfg:    DefaultMonitorConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.notify == nil {
		m.notify = nopNotifier{}
	}
	if m.nav == nil {
		m.nav = nopNavigator{}
	}
	m.log = m.log.WithField("component", "session")
	return m
}

// Preflight returns the token to attach to an outbound request. An absent
// session yields "" and no error. An expired or malformed token is cleared,
// the user is sent to login, and the request must not be dispatched.
func (m *Monitor) Preflight(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sess, err := m.store.Load()
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	ins := Inspect(sess.Token, m.now(), m.cfg.WarnWindow)
	switch ins.State {
	case Absent:
		return "", nil
	case ExpiringSoon:
		m.warnOnce(sess.Token, ins.ExpiresAt)
		return sess.Token, nil
	case ExpiredOrInvalid:
		m.log.WithError(ins.Err).Warn("rejecting request with unusable token")
		m.Invalidate(sess.Token, false)
		return "", ins.Err
	default:
		return sess.Token, nil
	}
}

// HandleStatus reacts to a response status. 401 and 403 invalidate token
// whatever the pre-flight check said. It reports whether the status was an
// auth failure.
func (m *Monitor) HandleStatus(token string, status int) bool {
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return false
	}
	m.log.WithField("status", status).Warn("server rejected credentials")
	m.Invalidate(token, true)
	return true
}

// absentKey collapses concurrent auth failures of requests sent without a token.
const absentKey = "\x00absent"

// Invalidate clears the stored session if it still holds token, then
// optionally shows the expiry advisory and redirects to login. Concurrent
// calls for the same token clear it once; calls for a token that is no
// longer stored do nothing. An empty token means the request went out
// without credentials: nothing is cleared but the user is still advised and
// sent to login. It reports whether a session was cleared.
func (m *Monitor) Invalidate(token string, advisory bool) bool {
	key := token
	if key == "" {
		key = absentKey
	}
	v, _, _ := m.clears.Do(key, func() (any, error) {
		cleared := false
		if token != "" {
			if cleared = m.compareAndClear(token); !cleared {
				return false, nil
			}
		}
		if m.nav.AtLogin() {
			return cleared, nil
		}
		if advisory {
			m.notify.Notify(MsgExpired, m.cfg.ExpiredTTL)
			m.sleep(m.cfg.RedirectDelay)
		}
		m.nav.ToLogin()
		return cleared, nil
	})
	cleared, _ := v.(bool)
	return cleared
}

func (m *Monitor) compareAndClear(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, err := m.store.Load()
	if err != nil || sess.Token != token {
		return false
	}
	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Error("clear session")
		return false
	}
	m.warned = ""
	m.log.Info("session cleared")
	return true
}

func (m *Monitor) warnOnce(token string, exp time.Time) {
	m.mu.Lock()
	if m.warned == token {
		m.mu.Unlock()
		return
	}
	m.warned = token
	m.mu.Unlock()
	m.log.WithField("expires_at", exp).Info("session expiring soon")
	m.notify.Notify(MsgExpiringSoon, m.cfg.WarningTTL)
}

// Begin stores a freshly issued session.
func (m *Monitor) Begin(sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	m.warned = ""
	m.log.Info("session started")
	return nil
}

// End clears the stored session. Ending with nothing stored is not an error.
func (m *Monitor) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warned = ""
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.log.Info("session ended")
	return nil
}

// Current returns the stored session and its inspection.
func (m *Monitor) Current() (Session, Inspection, error) {
	sess, err := m.store.Load()
	if errors.Is(err, ErrNoSession) {
		return Session{}, Inspection{State: Absent}, nil
	}
	if err != nil {
		return Session{}, Inspection{}, err
	}
	return sess, Inspect(sess.Token, m.now(), m.cfg.WarnWindow), nil
}

func (m *Monitor) State() State {
	_, ins, err := m.Current()
	if err != nil {
		return ExpiredOrInvalid
	}
	return ins.State
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, time.Duration) {}

type nopNavigator struct{}

func (nopNavigator) ToLogin()      {}
func (nopNavigator) AtLogin() bool { return false }
