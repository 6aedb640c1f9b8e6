package conversation

import (
	"sync"
	"time"
)

// Store maps user identities to their conversations. Entries are created
// lazily and only removed by the idle reaper, so the map grows with the
// number of distinct users. The store owns every Conversation it hands out;
// per-user mutation is expected to be serialized by the transport layer.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Conversation
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Conversation),
	}
}

// GetOrCreate returns the conversation for userID, creating and registering
// a fresh one on first access. Concurrent first calls for the same user all
// receive the same instance.
func (s *Store) GetOrCreate(userID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[userID]
	if !ok {
		conv = New()
		s.sessions[userID] = conv
	}
	return conv
}

// Clear resets the conversation for userID in place. Unknown users are a
// no-op, not an error. The mapping survives, so the user keeps the same
// Conversation instance afterwards.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	conv, ok := s.sessions[userID]
	s.mu.Unlock()

	if ok {
		conv.Clear()
	}
}

// Len reports the number of tracked users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ReapIdle removes conversations whose last activity is older than the
// cutoff and returns how many were dropped. Conversations that never saw a
// message are kept; they were just created.
func (s *Store) ReapIdle(olderThan time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, conv := range s.sessions {
		last := conv.LastQueryTime()
		if !last.IsZero() && last.Before(olderThan) {
			delete(s.sessions, id)
			reaped++
		}
	}
	return reaped
}
