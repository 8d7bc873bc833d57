package guard

import (
	"sync"
	"time"
)

// ExactComboLookback is how many of a user's most recent readings the
// exact-combination check inspects, independent of MaxRecent.
const ExactComboLookback = 200

// Reading is one delivered text in a user's history.
type Reading struct {
	CreatedAt         time.Time
	TextHash          uint64
	SymbolPermutation string
}

// HistoryOptions configures the similarity windows of a HistoryStore.
type HistoryOptions struct {
	MaxRecent        int
	SimThreshold     float64
	ExactComboWindow time.Duration
}

// HistoryStore keeps an append-only, per-user list of readings and answers
// recency questions against it. Unknown users behave as empty histories.
type HistoryStore struct {
	opts HistoryOptions

	mu    sync.RWMutex
	users map[string][]Reading
}

// NewHistoryStore creates an empty store.
func NewHistoryStore(opts HistoryOptions) *HistoryStore {
	return &HistoryStore{
		opts:  opts,
		users: make(map[string][]Reading),
	}
}

// Record appends a reading to the user's history.
func (s *HistoryStore) Record(userID string, r Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = append(s.users[userID], r)
}

// Recent returns up to limit of the user's latest readings, oldest first.
// A limit of zero or less means MaxRecent. Limits above the retention bound
// (the larger of MaxRecent and ExactComboLookback) are clamped to it, so the
// result is the same whether or not the history has been compacted.
func (s *HistoryStore) Recent(userID string, limit int) []Reading {
	if limit <= 0 {
		limit = s.opts.MaxRecent
	}
	if keep := s.retention(); limit > keep {
		limit = keep
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	window := tail(s.users[userID], limit)
	out := make([]Reading, len(window))
	copy(out, window)
	return out
}

// IsExactComboRecent reports whether the same symbol permutation key was
// delivered to the user within the exact-combination window.
func (s *HistoryStore) IsExactComboRecent(userID, permutationKey string, now time.Time) bool {
	cutoff := now.Add(-s.opts.ExactComboWindow)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range tail(s.users[userID], ExactComboLookback) {
		if !r.CreatedAt.Before(cutoff) && r.SymbolPermutation == permutationKey {
			return true
		}
	}
	return false
}

// IsTooSimilar reports whether fp is within the similarity threshold of any
// of the user's last MaxRecent readings.
func (s *HistoryStore) IsTooSimilar(userID string, fp uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range tail(s.users[userID], s.opts.MaxRecent) {
		if Similarity(fp, r.TextHash) >= s.opts.SimThreshold {
			return true
		}
	}
	return false
}

// Compact drops readings that no query can reach any more and returns how
// many were removed. Queries never look past the retention bound, so results
// are unchanged.
func (s *HistoryStore) Compact() int {
	keep := s.retention()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, readings := range s.users {
		if len(readings) <= keep {
			continue
		}
		removed += len(readings) - keep
		trimmed := make([]Reading, keep)
		copy(trimmed, readings[len(readings)-keep:])
		s.users[userID] = trimmed
	}
	return removed
}

// Stats returns the number of users and stored readings.
func (s *HistoryStore) Stats() (users int, readings int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		readings += len(r)
	}
	return len(s.users), readings
}

// retention is how many of a user's latest readings any query can reach.
func (s *HistoryStore) retention() int {
	if s.opts.MaxRecent > ExactComboLookback {
		return s.opts.MaxRecent
	}
	return ExactComboLookback
}

func tail(readings []Reading, n int) []Reading {
	if n <= 0 {
		return nil
	}
	if len(readings) <= n {
		return readings
	}
	return readings[len(readings)-n:]
}
