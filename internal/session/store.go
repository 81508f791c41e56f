package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"example.com/taskdesk/internal/domain"
)

const (
	DefaultDir      = ".taskdesk"
	DefaultFilename = "session.json"
)

var ErrNoSession = errors.New("no session")

// Session is the bearer token and the profile returned with it.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

// Store persists the current session. Clear on an empty store is a no-op.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

type MemoryStore struct {
	mu  sync.Mutex
	cur *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return Session{}, ErrNoSession
	}
	return *s.cur, nil
}

func (s *MemoryStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &sess
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	return nil
}

// FileStore keeps the session as JSON in a file readable only by its owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is $HOME/.taskdesk/session.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, DefaultDir, DefaultFilename)
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (Session, error) {
	body, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.Token == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
