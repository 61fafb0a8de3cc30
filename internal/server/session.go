package server

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/1broseidon/textviz/orchestrator"
)

// Session is one browser tab's view of the tool. Each owns its orchestrator.
type Session struct {
	ID           uuid.UUID
	Orchestrator *orchestrator.Orchestrator
	CreatedAt    time.Time

	// running is set from the moment a generate request is accepted until
	// its cycle returns, closing the gap before the first phase change.
	running atomic.Bool
}

// Busy reports whether a cycle was accepted and has not finished.
func (s *Session) Busy() bool {
	return s.running.Load() || s.Orchestrator.Busy()
}

// tryStart claims the session for one cycle.
func (s *Session) tryStart() bool {
	if s.Orchestrator.Busy() {
		return false
	}
	return s.running.CompareAndSwap(false, true)
}

func (s *Session) finish() {
	s.running.Store(false)
}

// SessionStore keeps sessions in memory and expires idle ones.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionStore creates a store whose sessions live for ttl after last use.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{
		cache: cache.New(ttl, ttl/6),
		ttl:   ttl,
	}
}

func (r *SessionStore) Save(session *Session) {
	r.cache.Set(session.ID.String(), session, cache.DefaultExpiration)
}

// Get returns the session and refreshes its expiry.
func (r *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	x, found := r.cache.Get(id.String())
	if !found {
		return nil, false
	}
	session := x.(*Session)
	r.cache.Set(id.String(), session, cache.DefaultExpiration)
	return session, true
}

func (r *SessionStore) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

func (r *SessionStore) Count() int {
	return r.cache.ItemCount()
}
