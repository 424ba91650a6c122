package cache

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

type payload struct {
	Seq     uint64 `json:"seq"`
	Overall string `json:"overall"`
}

// TestSetGetRoundTrip verifies typed values survive a write/read cycle.
func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := &payload{Seq: 42, Overall: "warning"}
	if err := SetTyped(s, "status", in); err != nil {
		t.Fatalf("SetTyped: %v", err)
	}

	out, err := GetTyped[payload](s, "status")
	if err != nil {
		t.Fatalf("GetTyped: %v", err)
	}
	if out == nil {
		t.Fatal("GetTyped returned nil for existing key")
	}
	if out.Seq != 42 || out.Overall != "warning" {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

// TestGetMissingKey verifies a missing key is a miss, not an error.
func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	out, err := GetTyped[payload](s, "absent")
	if err != nil {
		t.Fatalf("GetTyped: %v", err)
	}
	if out != nil {
		t.Errorf("GetTyped = %+v for missing key, want nil", out)
	}
}

// TestCorruptedEntryRemoved verifies invalid JSON is treated as a miss and
// cleaned up.
func TestCorruptedEntryRemoved(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.dir, "status.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	raw, err := s.Get("status")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Errorf("Get returned data for corrupted entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupted entry not removed")
	}
}

// TestAge verifies entry age reporting.
func TestAge(t *testing.T) {
	s := newTestStore(t)

	if age := s.Age("status"); age != 0 {
		t.Errorf("age of missing entry = %v, want 0", age)
	}

	if err := s.Set("status", &payload{Seq: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if age := s.Age("status"); age < 0 {
		t.Errorf("age = %v, want non-negative", age)
	}
}
