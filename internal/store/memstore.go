package store

import (
	"sync"
	"time"
)

// Match is the rendezvous record for one game session. The server
// never sees game state; it only pairs two peers per code.
type Match struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	CreatorName string    `json:"creatorName"`
	CreatedAt   time.Time `json:"createdAt"`
	Peers       int       `json:"peers"`
}

type MemoryStore struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: map[string]*Match{},
	}
}

func (m *MemoryStore) GetMatch(code string) (*Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[code]
	return match, ok
}

func (m *MemoryStore) SaveMatch(match *Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.Code] = match
}

func (m *MemoryStore) DeleteMatch(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, code)
}
