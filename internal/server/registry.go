package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/drdavisdfelix/quiz/internal/session"
)

type registryEntry struct {
	session  *session.Session
	lastSeen time.Time
}

// Registry maps browser keys to their quiz sessions.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	factory func() *session.Session
	now     func() time.Time
}

// NewRegistry creates an empty registry that builds sessions with factory.
func NewRegistry(factory func() *session.Session) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		factory: factory,
		now:     time.Now,
	}
}

// Lookup returns the session for key and marks it as used.
func (r *Registry) Lookup(key string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// Create registers a new session under a fresh key.
func (r *Registry) Create() (string, *session.Session) {
	key := uuid.NewString()
	s := r.factory()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = &registryEntry{session: s, lastSeen: r.now()}
	return key, s
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Prune drops sessions unused for longer than maxIdle and returns how many
// were dropped. In-progress sessions are abandoned without being recorded.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	stale := lo.Keys(lo.PickBy(r.entries, func(_ string, e *registryEntry) bool {
		return e.lastSeen.Before(cutoff)
	}))
	for _, k := range stale {
		delete(r.entries, k)
	}
	return len(stale)
}
