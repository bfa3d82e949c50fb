package sessions

import (
	"sync"
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/google/uuid"
)

// Store keeps the browser of every open catalogue page view. A page view ends when it is
// deleted or has been idle for longer than the store's TTL.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	browser  *catalogue.Browser
	lastSeen time.Time
}

// New returns an empty store whose sessions expire after ttl without use
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// Create stores a browser and returns its session id
func (s *Store) Create(b *catalogue.Browser) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	id := uuid.New().String()
	s.sessions[id] = &entry{browser: b, lastSeen: s.now()}
	return id
}

// Get returns the browser of a live session and marks it as used
func (s *Store) Get(id string) (*catalogue.Browser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = s.now()
	return e.browser, true
}

// Delete ends a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of sessions held, live or not yet evicted
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

// evictExpired must be called with mu held
func (s *Store) evictExpired() {
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
		}
	}
}
