package conversation

import (
	"sync"
	"time"
)

// Session holds one interview's live transcript. All mutation goes
// through Do, which serializes concurrent updates for the same interview
// so turns land in strict arrival order.
type Session struct {
	mu          sync.Mutex
	ctx         *Context
	lastTouched time.Time
}

// Do runs fn while holding the session's lock and refreshes the idle
// timestamp.
func (s *Session) Do(fn func(*Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()
	fn(s.ctx)
}

// Store keeps the active conversation session per interview. Sessions are
// in-memory only: they are replaced on re-entry, discarded on completion,
// and swept by a janitor once idle past the TTL (abandoned interviews
// stop sending updates but are never auto-completed).
type Store struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore creates a session store and starts the idle-sweep goroutine.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[uint]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Close stops the idle-sweep goroutine.
func (s *Store) Close() {
	close(s.done)
}

// Put installs a fresh session for the interview, replacing any existing
// one. Re-entering an interview intentionally resets coaching context.
func (s *Store) Put(interviewID uint, ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[interviewID] = &Session{ctx: ctx, lastTouched: time.Now()}
}

// Get returns the live session for an interview, if any.
func (s *Store) Get(interviewID uint) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[interviewID]
	return session, ok
}

// Discard destroys the session for an interview. Called on completion.
func (s *Store) Discard(interviewID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, interviewID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastTouched.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(s.sessions, id)
		}
	}
}
