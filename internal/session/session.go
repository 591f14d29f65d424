// Package session holds the active user identity with an explicit lifecycle:
// created at registration or login, read by commands that need the current
// user, cleared at logout. The session is persisted to a small JSON file so
// separate CLI invocations share it; there is no global mutable state.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

// ErrNoSession indicates no user is logged in
var ErrNoSession = errors.New("no active session; register or log in first")

// state is the on-disk session representation
type state struct {
	User      *api.User `json:"user"`
	StartedAt time.Time `json:"started_at"`
}

// Session tracks the current user across CLI invocations
type Session struct {
	path string

	mu      sync.Mutex
	current *state
}

// Open loads the session file at path if it exists. A missing file means
// no active session, not an error.
func Open(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt session file is treated as logged out rather than
		// blocking every command
		return s, nil
	}
	if st.User != nil {
		s.current = &st
	}
	return s, nil
}

// Begin starts a session for the given user and persists it
func (s *Session) Begin(user *api.User) error {
	if user == nil || user.ID == "" {
		return errors.New("cannot begin session without a user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &state{User: user, StartedAt: time.Now().UTC()}
	if err := s.writeLocked(st); err != nil {
		return err
	}
	s.current = st
	return nil
}

// Current returns the active user, or ErrNoSession
func (s *Session) Current() (*api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.User == nil {
		return nil, ErrNoSession
	}
	return s.current.User, nil
}

// StartedAt returns when the active session began
func (s *Session) StartedAt() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return time.Time{}, ErrNoSession
	}
	return s.current.StartedAt, nil
}

// Clear ends the session and removes the session file
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// writeLocked persists the session atomically (tmp + rename)
func (s *Session) writeLocked(st *state) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}
