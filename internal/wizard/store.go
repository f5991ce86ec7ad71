package wizard

import (
	"context"
	"log"
	"signup-wizard/internal/catalog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CatalogLoader yields the taxonomy snapshot for a new session.
type CatalogLoader interface {
	Load(ctx context.Context) *catalog.Catalog
}

// Store keeps live sessions in memory and evicts idle ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     *Deps
	loader   CatalogLoader
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(deps *Deps, loader CatalogLoader, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		deps:     deps,
		loader:   loader,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create loads the catalog once and registers a fresh session.
func (st *Store) Create(ctx context.Context) *Session {
	cat := st.loader.Load(ctx)
	s := NewSession(uuid.NewString(), cat, st.deps, st.now)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	log.Printf("Session %s created (%d markets, %d waitlist, degraded=%t)",
		s.ID, len(cat.Markets), len(cat.Waitlist), cat.Degraded)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes and forgets a session. Unknown ids are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep closes sessions idle for longer than the TTL and reports how many.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled.
func (st *Store) Run(ctx context.Context) {
	interval := st.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				log.Printf("Evicted %d idle wizard sessions", n)
			}
		}
	}
}
