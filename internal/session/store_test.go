package session

import (
	"testing"
	"time"
)

func newTestStore(ttl time.Duration) (*MemoryStore, *time.Time) {
	store := NewMemoryStore(ttl)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	return store, &current
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(24 * time.Hour)

	sess, err := store.Create("admin@weblify.studio")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	got, ok := store.Get(sess.Token)
	if !ok {
		t.Fatal("expected session to be found")
	}
	if got.Email != "admin@weblify.studio" {
		t.Fatalf("expected stored email, got %q", got.Email)
	}
}

func TestGetDropsExpiredSession(t *testing.T) {
	store, current := newTestStore(24 * time.Hour)

	sess, err := store.Create("admin@weblify.studio")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	*current = current.Add(25 * time.Hour)

	if _, ok := store.Get(sess.Token); ok {
		t.Fatal("expected expired session to be rejected")
	}
	// Expired entries are removed on read, not just hidden.
	if len(store.sessions) != 0 {
		t.Fatalf("expected session map to be empty, got %d entries", len(store.sessions))
	}
}

func TestInvalidate(t *testing.T) {
	store, _ := newTestStore(24 * time.Hour)

	sess, err := store.Create("admin@weblify.studio")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	store.Invalidate(sess.Token)

	if _, ok := store.Get(sess.Token); ok {
		t.Fatal("expected invalidated session to be gone")
	}
}

func TestSweepExpired(t *testing.T) {
	store, current := newTestStore(1 * time.Hour)

	if _, err := store.Create("first@weblify.studio"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := store.Create("second@weblify.studio"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	*current = current.Add(30 * time.Minute)
	fresh, err := store.Create("third@weblify.studio")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	*current = current.Add(45 * time.Minute)

	if removed := store.SweepExpired(); removed != 2 {
		t.Fatalf("expected 2 sessions swept, got %d", removed)
	}
	if _, ok := store.Get(fresh.Token); !ok {
		t.Fatal("expected the fresh session to survive the sweep")
	}
}
