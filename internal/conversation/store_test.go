package conversation

import (
	"sync"
	"testing"
	"time"
)

func TestStorePutAndGet(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	store.Put(1, NewContext("framing", "ack"))

	session, ok := store.Get(1)
	if !ok {
		t.Fatalf("expected session for interview 1")
	}
	session.Do(func(c *Context) {
		if c.Len() != 2 {
			t.Errorf("expected seeded context, got %d turns", c.Len())
		}
	})

	if _, ok := store.Get(2); ok {
		t.Errorf("expected no session for interview 2")
	}
}

func TestStorePutReplacesExistingSession(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	store.Put(1, NewContext("framing", "ack"))
	session, _ := store.Get(1)
	session.Do(func(c *Context) {
		c.AppendUser("update")
		c.AppendModel("reply")
	})

	// Re-entering installs a fresh context and drops the accumulated turns.
	store.Put(1, NewContext("framing", "ack"))
	session, _ = store.Get(1)
	session.Do(func(c *Context) {
		if c.Len() != 2 {
			t.Errorf("expected fresh context after replace, got %d turns", c.Len())
		}
	})
}

func TestStoreDiscard(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	store.Put(1, NewContext("framing", "ack"))
	store.Discard(1)

	if _, ok := store.Get(1); ok {
		t.Errorf("expected session to be gone after discard")
	}
	// Discarding a missing session is a no-op.
	store.Discard(42)
}

func TestStoreCleanupSweepsIdleSessions(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	defer store.Close()

	store.Put(1, NewContext("framing", "ack"))
	store.Put(2, NewContext("framing", "ack"))

	time.Sleep(20 * time.Millisecond)

	// Touch session 2 so only session 1 is idle past the TTL.
	session, _ := store.Get(2)
	session.Do(func(c *Context) {})

	store.cleanup()

	if _, ok := store.Get(1); ok {
		t.Errorf("expected idle session 1 to be swept")
	}
	if _, ok := store.Get(2); !ok {
		t.Errorf("expected recently touched session 2 to survive")
	}
}

func TestSessionDoSerializesConcurrentAppends(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	store.Put(1, NewContext("framing", "ack"))
	session, _ := store.Get(1)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			session.Do(func(c *Context) {
				c.AppendUser("update")
				c.AppendModel("reply")
			})
		}()
	}
	wg.Wait()

	session.Do(func(c *Context) {
		turns := c.Turns()
		if len(turns) != 2+2*workers {
			t.Errorf("expected %d turns, got %d", 2+2*workers, len(turns))
		}
		// Every exchange must land as an adjacent user/model pair.
		for i := 2; i < len(turns); i += 2 {
			if turns[i].Role != RoleUser || turns[i+1].Role != RoleModel {
				t.Fatalf("interleaved exchange at turn %d: %s then %s", i, turns[i].Role, turns[i+1].Role)
			}
		}
	})
}

func TestStoreLen(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
	store.Put(1, NewContext("f", "a"))
	store.Put(2, NewContext("f", "a"))
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}
