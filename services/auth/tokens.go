package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const tokenPrefix = "admin_session:"

// TokenStore remembers the hash of the live token of each admin. Check refreshes the TTL
// so a session expires after SessionTTL of inactivity.
type TokenStore interface {
	Save(ctx context.Context, subject, hash string, ttl time.Duration) error
	Check(ctx context.Context, subject, hash string, ttl time.Duration) (bool, error)
	Revoke(ctx context.Context, subject string) error
}

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, subject, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenPrefix+subject, hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Check(ctx context.Context, subject, hash string, ttl time.Duration) (bool, error) {
	key := tokenPrefix + subject
	cached, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	if cached != hash {
		return false, nil
	}
	_ = s.client.Expire(ctx, key, ttl).Err()
	return true, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, tokenPrefix+subject).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps sessions in process. It is used when no Redis is configured
// outside production, and by tests.
type MemoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]memSession
	now      func() time.Time
}

type memSession struct {
	hash    string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: make(map[string]memSession), now: time.Now}
}

func (s *MemoryTokenStore) Save(_ context.Context, subject, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[subject] = memSession{hash: hash, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Check(_ context.Context, subject, hash string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[subject]
	now := s.now()
	if !ok || now.After(sess.expires) {
		delete(s.sessions, subject)
		return false, nil
	}
	if sess.hash != hash {
		return false, nil
	}
	sess.expires = now.Add(ttl)
	s.sessions[subject] = sess
	return true, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, subject)
	return nil
}
