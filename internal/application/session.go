package application

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Sessions allows a single active ingestion at a time. Starting a session
// cancels the previous one, whose results can then no longer be committed.
// Snapshot imports run exclusively: they wait for every in-flight ingestion
// to end and block new ones until done.
type Sessions struct {
	mu      sync.Mutex
	current *Session

	// held shared by ingestions and exclusively by imports
	latch sync.RWMutex
}

func NewSessions() *Sessions {
	return &Sessions{}
}

// Session is one ingestion run
type Session struct {
	ID string

	ctx    context.Context
	cancel context.CancelFunc
	owner  *Sessions
	once   sync.Once
}

// Begin starts a session, superseding the current one. The caller must call
// End when the ingestion finishes.
func (s *Sessions) Begin(parent context.Context) *Session {
	// Taken before mu so that a pending import never blocks Commit
	s.latch.RLock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	sess := &Session{
		ID:     newSessionID(),
		ctx:    ctx,
		cancel: cancel,
		owner:  s,
	}
	s.current = sess
	return sess
}

// Current returns the ID of the latest session, or "" before the first one
func (s *Sessions) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Commit runs fn only if sess is still the latest session. No other session
// can begin while fn runs.
func (s *Sessions) Commit(sess *Session, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != sess {
		return ErrSessionSuperseded
	}
	fn()
	return nil
}

// Exclusive runs fn once no ingestion is in flight
func (s *Sessions) Exclusive(fn func() error) error {
	s.latch.Lock()
	defer s.latch.Unlock()

	return fn()
}

// Context is cancelled when the session is superseded or ended
func (s *Session) Context() context.Context {
	return s.ctx
}

// Superseded reports whether a newer session has begun
func (s *Session) Superseded() bool {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()

	return s.owner.current != s
}

// End releases the session. It is safe to call more than once.
func (s *Session) End() {
	s.once.Do(func() {
		s.cancel()
		s.owner.latch.RUnlock()
	})
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
