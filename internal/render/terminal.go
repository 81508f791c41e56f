package render

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// LoginHint is printed when the session ends outside the login command.
const LoginHint = "Run `taskdesk login` to sign in again."

// Terminal delivers session notices and the login redirect to a CLI user.
// It satisfies session.Notifier and session.Navigator.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	atLogin bool
	sent    bool
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Notify prints msg at once; a terminal has no toast to time out.
func (t *Terminal) Notify(msg string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, noticeStyle.Render(msg))
}

func (t *Terminal) ToLogin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sent {
		return
	}
	t.sent = true
	fmt.Fprintln(t.w, mutedStyle.Render(LoginHint))
}

func (t *Terminal) AtLogin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.atLogin
}

// SetAtLogin marks that the running command is the login flow itself.
func (t *Terminal) SetAtLogin(at bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.atLogin = at
}
