package testutil

import (
	"path/filepath"
	"testing"

	"github.com/roach88/stoich/internal/store"
)

// DBPath returns a fresh database path under t.TempDir().
func DBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "stoich.db")
}

// OpenStore opens a fresh history store that is closed when the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(DBPath(t))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}
