package server

import (
	"sync"
	"time"

	"github.com/groupchat-wrapped/internal/models"
)

// Snapshot is one finished wrapped as served by the preview server
type Snapshot struct {
	Result    *models.AnalysisResult
	HTML      []byte
	UpdatedAt time.Time
}

// Store holds the latest wrapped. Scheduled runs replace it while requests read it.
type Store struct {
	mu     sync.RWMutex
	latest *Snapshot
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Set replaces the latest wrapped
func (s *Store) Set(result *models.AnalysisResult, html []byte) {
	snapshot := &Snapshot{Result: result, HTML: html, UpdatedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snapshot
}

// Latest returns the latest wrapped, or false before the first run finished
func (s *Store) Latest() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
