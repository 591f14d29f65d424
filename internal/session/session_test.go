package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestOpen_NoFile(t *testing.T) {
	s, err := Open(sessionPath(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() error = %v, want ErrNoSession", err)
	}
}

func TestBeginCurrentClear(t *testing.T) {
	path := sessionPath(t)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	user := &api.User{ID: "u1", FirstName: "Jane", Email: "jane@example.com"}
	if err := s.Begin(user); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	got, err := s.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("Current().ID = %s, want u1", got.ID)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() after Clear = %v, want ErrNoSession", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still exists after Clear")
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := sessionPath(t)

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := first.Begin(&api.User{ID: "u2", Email: "a@b.c"}); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got, err := second.Current()
	if err != nil {
		t.Fatalf("Current() after reopen error = %v", err)
	}
	if got.ID != "u2" {
		t.Errorf("Current().ID = %s, want u2", got.ID)
	}
}

func TestOpen_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() = %v, want ErrNoSession for corrupt file", err)
	}
}

func TestBegin_RequiresUser(t *testing.T) {
	s, err := Open(sessionPath(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Begin(nil); err == nil {
		t.Error("Begin(nil) expected error")
	}
	if err := s.Begin(&api.User{}); err == nil {
		t.Error("Begin(user without ID) expected error")
	}
}
