package cache

import (
	"math"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type entry struct {
	value     any
	expiresAt time.Time // zero means no expiry
	seq       uint64
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}

// MemoryStore is a map-backed Store with per-entry expiry, wildcard
// deletion and FIFO eviction once Capacity is reached. Overwriting a key
// keeps its original position in the eviction order.
//
// A background goroutine sweeps expired entries at CleanupInterval;
// Stop halts it. The store stays usable after Stop, with expired
// entries purged lazily on lookup.
type MemoryStore struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	seq     uint64

	stopOnce sync.Once
	done     chan struct{}
}

// NewMemoryStore builds a store from cfg and starts the sweeper when
// CleanupInterval is positive.
func NewMemoryStore(cfg Config) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &MemoryStore{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go s.sweep(cfg.CleanupInterval)
	}
	return s, nil
}

// Get returns the live value under key. An expired entry is removed and
// reported as absent.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. A zero ttl applies the configured TTL, a
// negative ttl stores the entry without expiry.
func (s *MemoryStore) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq
	if existing, ok := s.entries[key]; ok {
		seq = existing.seq
	} else {
		s.evictOldestLocked()
		s.seq++
		seq = s.seq
	}

	if ttl == 0 {
		ttl = s.cfg.TTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt, seq: seq}
}

// evictOldestLocked makes room for one more entry, dropping the entry
// with the lowest insertion sequence first. Insertion order, not access
// order.
func (s *MemoryStore) evictOldestLocked() {
	for len(s.entries) >= s.cfg.Capacity {
		oldestKey := ""
		oldestSeq := uint64(math.MaxUint64)
		for key, e := range s.entries {
			if e.seq < oldestSeq {
				oldestSeq = e.seq
				oldestKey = key
			}
		}
		delete(s.entries, oldestKey)
	}
}

// Delete removes the entry under key, if any.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// DeletePattern removes every entry whose full key matches the glob
// pattern.
func (s *MemoryStore) DeletePattern(pattern string) {
	re := CompilePattern(pattern)

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if re.MatchString(key) {
			delete(s.entries, key)
		}
	}
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Has reports whether a live entry exists under key.
func (s *MemoryStore) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len reports the number of entries currently held, including expired
// entries the sweeper has not collected yet.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop halts the background sweeper. Safe to call more than once.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *MemoryStore) removeExpired() {
	now := s.now()
	s.mu.Lock()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}
