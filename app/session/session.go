package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// QA is one answered question. History lives in memory only and dies with
// the process.
type QA struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string][]QA
}

func NewStore() *Store {
	return &Store{sessions: make(map[string][]QA)}
}

func (s *Store) NewSession() string {
	return uuid.New().String()
}

// Append records one answered question at the end of the session's history.
func (s *Store) Append(id string, qa QA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id], qa)
}

// History returns the session's question/answer pairs in insertion order.
// The returned slice is a copy.
func (s *Store) History(id string) []QA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[id]
	out := make([]QA, len(history))
	copy(out, history)
	return out
}

func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
