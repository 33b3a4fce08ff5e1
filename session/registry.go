package session

import (
	"sync"
	"time"

	"github.com/htol/bookshop/logger"
)

// Registry holds live sessions. Idle sessions are dropped lazily when
// new ones are created.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry keeps sessions until they sit idle for ttl.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the live session with id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	now := r.now()
	if s.idleSince(now) > r.ttl {
		r.remove(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Create starts a session on the screen named by fragment.
func (r *Registry) Create(fragment string) *Session {
	now := r.now()
	s := newSession(fragment, now)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	r.sessions[s.ID] = s
	return s
}

// Len is the number of sessions held, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Panel().Reset()
		delete(r.sessions, id)
	}
}

func (r *Registry) sweepLocked(now time.Time) {
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			s.Panel().Reset()
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("expired sessions removed", "count", removed, "remaining", len(r.sessions))
	}
}
