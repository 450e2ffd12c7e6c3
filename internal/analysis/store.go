package analysis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

// ErrResultNotFound is returned when a query id is unknown or its results
// have expired.
var ErrResultNotFound = fmt.Errorf("query results not found or expired")

// ResultStore keeps signal-enriched query results reachable by an explicit
// query id, so follow-up analysis calls name the record set they operate on
// instead of relying on process-global state. Results are cached in redis
// when it is available and mirrored in memory either way, with the same TTL.
type ResultStore struct {
	cache *redis.Cache
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry

	logger *logger.Logger
}

type memoryEntry struct {
	records   []contracts.PropertyRecord
	expiresAt time.Time
}

func NewResultStore(cache *redis.Cache, ttl time.Duration, log *logger.Logger) *ResultStore {
	return &ResultStore{
		cache:   cache,
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		logger:  log,
	}
}

// Put stores the records under a fresh query id and returns the id.
func (s *ResultStore) Put(ctx context.Context, records []contracts.PropertyRecord) (string, error) {
	queryID, err := newQueryID()
	if err != nil {
		return "", fmt.Errorf("generating query id: %w", err)
	}

	s.mu.Lock()
	s.entries[queryID] = memoryEntry{
		records:   records,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.QueryResultKey(queryID), records, s.ttl); err != nil {
			// Redis is an accelerator here; the memory copy still serves.
			s.logger.WithError(err).Warn("failed to cache query results in redis")
		}
	}
	return queryID, nil
}

// Get returns the records stored under queryID, or ErrResultNotFound.
func (s *ResultStore) Get(ctx context.Context, queryID string) ([]contracts.PropertyRecord, error) {
	s.mu.RLock()
	entry, ok := s.entries[queryID]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.records, nil
	}

	if s.cache != nil {
		var records []contracts.PropertyRecord
		found, err := s.cache.Get(ctx, redis.QueryResultKey(queryID), &records)
		if err != nil {
			return nil, fmt.Errorf("decoding query results: %w", err)
		}
		if found {
			// Rehydrate the memory copy for subsequent lookups.
			s.mu.Lock()
			s.entries[queryID] = memoryEntry{
				records:   records,
				expiresAt: time.Now().Add(s.ttl),
			}
			s.mu.Unlock()
			return records, nil
		}
	}
	return nil, ErrResultNotFound
}

// Sweep drops expired in-memory entries and reports how many were removed.
// Redis entries expire on their own.
func (s *ResultStore) Sweep() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live in-memory entries.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func newQueryID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
