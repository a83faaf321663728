package session

import (
	"context"
	"time"

	"github.com/zekroTJA/timedmap"
)

// DefaultTTL is how long flags live after their last write.
const DefaultTTL = 7 * 24 * time.Hour

// MemoryStore keeps flags in process. Each Save restarts the expiry.
type MemoryStore struct {
	m   *timedmap.TimedMap
	ttl time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{m: timedmap.New(time.Minute), ttl: ttl}
}

func (s *MemoryStore) Load(_ context.Context, userID uint) (Flags, error) {
	if f, ok := s.m.GetValue(userID).(Flags); ok {
		return f, nil
	}
	return Flags{}, nil
}

func (s *MemoryStore) Save(_ context.Context, userID uint, f Flags) error {
	s.m.Set(userID, f, s.ttl)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID uint) error {
	s.m.Remove(userID)
	return nil
}
