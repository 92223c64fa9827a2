package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/users"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session under a single key so that several portal
// processes on one machine can share a login.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	now    func() time.Time
}

var _ sessions.Store = (*RedisStore)(nil)

type Option func(*RedisStore)

// WithTTL expires the stored session; zero keeps it until Clear
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func New(client *redis.Client, key string, options ...Option) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("[redisstore New] redis client is required")
	}
	if key == "" {
		return nil, errors.New("[redisstore New] key is required")
	}
	s := &RedisStore{client: client, key: key, now: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Dial connects to addr and checks the connection with PING
func Dial(ctx context.Context, addr, key string, options ...Option) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redisstore Dial] ping %s: %w", addr, err)
	}
	return New(client, key, options...)
}

func (s *RedisStore) Save(ctx context.Context, token string, role users.RoleType) error {
	data, err := json.Marshal(sessions.Stored{Token: token, Role: role, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (sessions.Stored, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sessions.Stored{}, sessions.ErrNotFound
		}
		return sessions.Stored{}, fmt.Errorf("failed to load session: %w", err)
	}

	var stored sessions.Stored
	if err := json.Unmarshal(data, &stored); err != nil {
		return sessions.Stored{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	stored.Role = users.ParseRole(string(stored.Role))
	return stored, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
