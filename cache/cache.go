// Package cache holds the fetched results between requests: one cycle's
// records per country, cleared whenever the selected country changes or
// a refresh is requested.
package cache

import (
	"sync"

	"github.com/luisalfonso634/forecast-weather/collector"
)

// CycleStore keeps the latest completed fetch cycle, keyed by country
// and cycle id. It starts empty. Begin hands out monotonically
// increasing cycle ids; Complete rejects results from superseded cycles
// so an abandoned cycle can never merge into a newer one.
type CycleStore struct {
	mutex   sync.RWMutex
	country string
	cycleID uint64
	result  *collector.Result
}

// NewCycleStore creates an empty store.
func NewCycleStore() *CycleStore {
	return &CycleStore{}
}

// Get returns the stored result for a country, if the latest completed
// cycle was for that country.
func (s *CycleStore) Get(country string) (*collector.Result, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.result == nil || s.country != country {
		return nil, false
	}
	return s.result, true
}

// Begin registers a new fetch cycle for a country and returns its id.
// Switching country drops whatever was stored for the previous one.
func (s *CycleStore) Begin(country string) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cycleID++
	if s.country != country {
		s.country = country
		s.result = nil
	}
	return s.cycleID
}

// Complete stores a finished cycle's result. It reports false, storing
// nothing, when a newer cycle has begun since this one started or the
// selected country moved on.
func (s *CycleStore) Complete(id uint64, country string, result *collector.Result) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id != s.cycleID || s.country != country {
		return false
	}
	s.result = result
	return true
}

// Invalidate drops the stored result, forcing the next request to fetch.
func (s *CycleStore) Invalidate() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.result = nil
}
