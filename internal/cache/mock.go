package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
)

type entry struct {
	value   []byte
	expires time.Time
}

// MockRedisClient is an in-memory cache used when Redis is not configured
type MockRedisClient struct {
	mu     sync.Mutex
	data   map[string]entry
	prefix string
	now    func() time.Time
}

func NewMockRedisClient(cfg *config.Config) *MockRedisClient {
	return &MockRedisClient{
		data:   make(map[string]entry),
		prefix: cfg.RedisPrefix,
		now:    time.Now,
	}
}

func (m *MockRedisClient) Close() error {
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[m.prefix+key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, m.prefix+key)
		return nil, ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.data[m.prefix+key] = e
	return nil
}

func (m *MockRedisClient) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.data {
		if strings.HasPrefix(k, m.prefix) {
			delete(m.data, k)
		}
	}
	return nil
}
