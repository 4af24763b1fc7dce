package store

import (
	"errors"
	"sync"
	"time"

	"github.com/vhenriksson/wind-monitor/internal/wind"
)

// ErrNoObservation is returned when no current wind data is available,
// both before the first successful acquisition and after a failed one.
var ErrNoObservation = errors.New("no wind observation available")

// LatestStore holds at most the single most recent observation. A failed
// cycle clears it: consumers either get fresh data or an explicit absence,
// never a stale reading presented as current.
type LatestStore struct {
	mu        sync.RWMutex
	obs       *wind.Observation
	updatedAt time.Time
}

func NewLatestStore() *LatestStore {
	return &LatestStore{}
}

// SetObservation replaces the held observation with a fresh one.
func (s *LatestStore) SetObservation(obs wind.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = &obs
	s.updatedAt = time.Now().UTC()
}

// SetFailure enters the failure state, discarding any held observation.
func (s *LatestStore) SetFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = nil
	s.updatedAt = time.Now().UTC()
}

// Latest returns the current observation, or ErrNoObservation while the
// store is empty.
func (s *LatestStore) Latest() (wind.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.obs == nil {
		return wind.Observation{}, ErrNoObservation
	}
	return *s.obs, nil
}

// UpdatedAt reports when the state last changed, successful or not. Zero
// until the first cycle completes.
func (s *LatestStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
