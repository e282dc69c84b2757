package storage

import (
	"errors"
	"sync"
	"time"
)

// DefaultCapacity is the number of history entries kept when none is configured.
const DefaultCapacity = 100

var (
	// ErrInvalidCapacity indicates a history size that cannot hold any entry.
	ErrInvalidCapacity = errors.New("history capacity must be a positive integer")
)

// Entry records a single solved target.
type Entry struct {
	Target   int       `json:"target"`
	Feasible bool      `json:"feasible"`
	Min      int       `json:"min,omitempty"`
	Max      int       `json:"max,omitempty"`
	SolvedAt time.Time `json:"solvedAt"`
}

// Storage keeps the history of solved targets.
type Storage interface {
	Record(entry Entry) error
	Recent(limit int) ([]Entry, error)
}

// MemoryStorage keeps the latest entries in a ring buffer guarded by a RWMutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// NewMemoryStorage creates a history holding at most capacity entries.
func NewMemoryStorage(capacity int) (*MemoryStorage, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MemoryStorage{
		entries: make([]Entry, capacity),
	}, nil
}

// Record appends entry, evicting the oldest one when the buffer is full.
func (s *MemoryStorage) Record(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.next] = entry
	s.next = (s.next + 1) % len(s.entries)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything held.
func (s *MemoryStorage) Recent(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.entries)) % len(s.entries)
		out = append(out, s.entries[idx])
	}
	return out, nil
}

// Capacity reports the maximum number of entries retained.
func (s *MemoryStorage) Capacity() int {
	return len(s.entries)
}
