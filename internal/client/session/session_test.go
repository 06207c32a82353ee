package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionID_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := Open(path)

	first := s.SessionID()
	if first == "" {
		t.Fatal("expected a session id")
	}
	if second := s.SessionID(); second != first {
		t.Errorf("expected stable id, got %q then %q", first, second)
	}
}

func TestSessionID_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := Open(path).SessionID()
	second := Open(path).SessionID()
	if first != second {
		t.Errorf("expected persisted id %q, reopened store returned %q", first, second)
	}
}

func TestSessionID_DistinctPerStore(t *testing.T) {
	a := Open(filepath.Join(t.TempDir(), "state.json"))
	b := Open(filepath.Join(t.TempDir(), "state.json"))
	if a.SessionID() == b.SessionID() {
		t.Error("two installations must not share a session id")
	}
}

func TestToken_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := Open(path)

	if s.Token() != "" {
		t.Errorf("expected empty token, got %q", s.Token())
	}
	s.SetToken("tok-1")
	if got := Open(path).Token(); got != "tok-1" {
		t.Errorf("expected persisted token, got %q", got)
	}

	s.ClearToken()
	if got := Open(path).Token(); got != "" {
		t.Errorf("expected token cleared on disk, got %q", got)
	}
}

func TestClearToken_KeepsSessionID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := Open(path)
	id := s.SessionID()
	s.SetToken("tok")
	s.ClearToken()
	if s.SessionID() != id {
		t.Error("logout must not regenerate the session id")
	}
}

func TestStore_DegradesToMemory(t *testing.T) {
	// A path whose parent cannot be created: save fails, but the id must
	// stay stable within the process.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s := Open(filepath.Join(blocker, "nested", "state.json"))

	first := s.SessionID()
	if first == "" {
		t.Fatal("expected an in-memory session id")
	}
	if s.SessionID() != first {
		t.Error("in-memory id must be stable for the process")
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if s.SessionID() == "" {
		t.Error("corrupt state must not prevent a fresh session id")
	}
}
