// Package highscore keeps the ranked list of the best finished runs.
// The list holds at most Capacity records ordered by score, newest first
// among equal scores, and is persisted as a single document through a
// Backend so that every change is one atomic replace.
package highscore

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is the number of records the list keeps.
const DefaultCapacity = 10

// ErrNotInitialized is the panic value when a Store is used before a
// backend was attached.
var ErrNotInitialized = errors.New("highscore: store used before Init")

// Backend persists the encoded list as one document.
// Replace must swap the whole document atomically.
type Backend interface {
	Load() ([]byte, error)
	Replace(data []byte) error
}

// Store is the ranked score list. It is safe for concurrent use; inserts
// are serialized so there is a single writer at any time.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	capacity int
	now      func() time.Time
	logger   *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity overrides the number of records kept.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock sets the clock used by TryInsert.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store. A nil backend leaves the store uninitialized until
// Init is called.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		capacity: DefaultCapacity,
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init attaches the backend. Calling it again swaps the backend.
func (s *Store) Init(backend Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
}

// Initialized reports whether a backend is attached.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend != nil
}

// Capacity returns the maximum number of records kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Top returns up to n records in rank order. n <= 0 returns the whole list.
func (s *Store) Top(n int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Insert merges rec into the list. The backend is written only when the
// resulting list differs from the stored one; changed reports whether a
// write happened.
func (s *Store) Insert(rec Record) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return false, err
	}

	merged := make([]Record, 0, len(current)+1)
	merged = append(merged, current...)
	merged = append(merged, rec)
	merged = rank(merged, s.capacity)

	if sameRecords(current, merged) {
		return false, nil
	}

	data, err := encodeRecords(merged)
	if err != nil {
		return false, err
	}
	if err := s.backend.Replace(data); err != nil {
		return false, fmt.Errorf("highscore: cannot save list: %w", err)
	}

	s.logger.Debug("ranked list updated", "score", rec.Score, "size", len(merged))
	return true, nil
}

// TryInsert records a finished run stamped with the store's clock.
func (s *Store) TryInsert(score int, lat, lng *float64) (bool, error) {
	return s.Insert(NewRecord(score, lat, lng, s.now()))
}

// Qualifies reports whether a score would enter the current list.
func (s *Store) Qualifies(score int) (bool, error) {
	records, err := s.Top(0)
	if err != nil {
		return false, err
	}
	if len(records) < s.capacity {
		return true, nil
	}
	return score >= records[len(records)-1].Score, nil
}

// load reads and ranks the persisted list. Callers hold s.mu.
func (s *Store) load() ([]Record, error) {
	if s.backend == nil {
		panic(ErrNotInitialized)
	}

	data, err := s.backend.Load()
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot load list: %w", err)
	}

	records, skipped, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.logger.Warn("skipped malformed records", "count", skipped)
	}
	return rank(records, s.capacity), nil
}
