package reaction

import "sync"

// Sequencer issues increasing versions per entity key so that the outcome of
// a superseded request can be recognised and ignored.
//
// The zero value is ready to use.
type Sequencer struct {
	mu       sync.Mutex
	versions map[string]uint64
}

// Begin records a new action on key and returns its version.
func (s *Sequencer) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.versions == nil {
		s.versions = make(map[string]uint64)
	}
	s.versions[key]++
	return s.versions[key]
}

// Current reports whether version is still the latest action begun on key.
func (s *Sequencer) Current(key string, version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[key] == version
}

// Latest returns the most recent version begun on key, zero if none.
func (s *Sequencer) Latest(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[key]
}
