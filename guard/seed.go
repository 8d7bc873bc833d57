package guard

import (
	"crypto/sha256"
	"encoding/binary"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// SeedGenerator derives per-user, per-day seeds. Seeds depend only on the
// user id and the UTC calendar date, so they survive restarts.
type SeedGenerator struct {
	cache *lru.Cache
}

// NewSeedGenerator creates a generator memoizing up to cacheSize seeds.
func NewSeedGenerator(cacheSize int) (*SeedGenerator, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &SeedGenerator{cache: cache}, nil
}

// DailySeed returns the seed for userID on the calendar day containing now.
func (g *SeedGenerator) DailySeed(userID string, now time.Time) uint32 {
	base := userID + ":" + now.UTC().Format("2006-01-02")
	if v, ok := g.cache.Get(base); ok {
		return v.(uint32)
	}
	seed := dailySeed(base)
	g.cache.Add(base, seed)
	return seed
}

func dailySeed(base string) uint32 {
	sum := sha256.Sum256([]byte(base))
	return binary.BigEndian.Uint32(sum[:4])
}

// Stream is a small reproducible generator (mulberry32). It is not safe for
// concurrent use and not suitable for anything security related.
type Stream struct {
	state uint32
}

// StreamFrom starts a stream at seed. Equal seeds replay equal sequences.
func StreamFrom(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Float64 returns the next value in [0,1).
func (s *Stream) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	r := (t ^ t>>15) * (1 | t)
	r ^= r + (r^r>>7)*(61|r)
	return float64(r^r>>14) / 4294967296
}

// Intn returns a value in [0,n). n must be positive.
func (s *Stream) Intn(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
