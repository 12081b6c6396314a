package session

import (
	"context"
	"sync"

	"Lumen/catalog"
	"Lumen/player"

	"github.com/Strum355/log"
	"github.com/google/uuid"
)

// Store persists session snapshots between runs
type Store interface {
	Load(ctx context.Context, key string) (player.Snapshot, bool, error)
	Save(ctx context.Context, key string, snap player.Snapshot) error
}

type Session struct {
	ID      string             // Random id used in log fields
	Key     string             // Partition key, e.g. console or a channel id
	Player  *player.Controller // State owned by this session only
	pending []string           // Candidate video ids from the last search
	mu      sync.Mutex         // Serializes commands within the session
}

// Do runs fn while holding the session lock
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// SetPending records search candidates awaiting a selection. Call from within Do.
func (s *Session) SetPending(ids []string) {
	s.pending = ids
}

// TakePending returns and clears the search candidates. Call from within Do.
func (s *Session) TakePending() []string {
	ids := s.pending
	s.pending = nil
	return ids
}

// HasPending reports whether a selection is awaited. Call from within Do.
func (s *Session) HasPending() bool {
	return len(s.pending) > 0
}

// Manager partitions sessions by key. Sessions share only the read-only catalog.
type Manager struct {
	catalog   *catalog.Catalog
	newRandom func() player.Random
	store     Store
	sessions  map[string]*Session
	mu        sync.Mutex
}

// NewManager creates a Manager. store may be nil, in which case nothing is persisted.
func NewManager(c *catalog.Catalog, newRandom func() player.Random, store Store) *Manager {
	return &Manager{
		catalog:   c,
		newRandom: newRandom,
		store:     store,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session for key, creating and restoring it on first use.
// The store is read without holding the manager lock.
func (m *Manager) Get(ctx context.Context, key string) *Session {
	if s, exists := m.Lookup(key); exists {
		return s
	}

	s := &Session{
		ID:     uuid.NewString(),
		Key:    key,
		Player: player.New(m.catalog, m.newRandom()),
	}
	if m.store != nil {
		snap, found, err := m.store.Load(ctx, key)
		if err != nil {
			log.WithError(err).Error("Failed to restore session " + key)
		} else if found {
			s.Player.Restore(snap)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have created it while the store was read
	if existing, exists := m.sessions[key]; exists {
		return existing
	}
	m.sessions[key] = s

	log.WithFields(log.Fields{"session_id": s.ID, "session_key": key}).Info("Session created")
	return s
}

// Lookup returns an existing session without creating one
func (m *Manager) Lookup(key string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	return s, ok
}

// Delete saves and drops the session for key
func (m *Manager) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	s, exists := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()

	if exists {
		m.save(ctx, s)
	}
}

// CloseAll saves and drops every session
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		m.save(ctx, s)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) save(ctx context.Context, s *Session) {
	if m.store == nil {
		return
	}
	var snap player.Snapshot
	s.Do(func() {
		snap = s.Player.Snapshot()
	})
	if err := m.store.Save(ctx, s.Key, snap); err != nil {
		log.WithError(err).Error("Failed to save session " + s.Key)
	}
}
