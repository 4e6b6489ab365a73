package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session exists for a token
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when saving a session whose expiry has
// already passed
var ErrSessionExpired = errors.New("session already expired")

// Session represents a server-side login session keyed by its token
type Session struct {
	Token     string    `json:"token"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore persists login sessions. Implementations expire sessions
// after the configured TTL (24h by default).
type SessionStore interface {
	// Save stores a session keyed by its token
	Save(ctx context.Context, session *Session) error

	// Load retrieves a session by token, returning ErrSessionNotFound
	// when the token is unknown or the session has expired
	Load(ctx context.Context, token string) (*Session, error)

	// Clear removes a session. Clearing an unknown token is not an error.
	Clear(ctx context.Context, token string) error

	// IsExpired reports whether the session's expiry has passed
	IsExpired(session *Session) bool
}

// RedisSessionStore implements SessionStore using Redis
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisSessionStoreConfig holds configuration for the Redis session store
type RedisSessionStoreConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store and verifies
// the connection
func NewRedisSessionStore(cfg RedisSessionStoreConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for session store: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, cfg.TTL), nil
}

// NewRedisSessionStoreWithClient creates a session store with an existing
// Redis client
func NewRedisSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "session:",
		ttl:       ttl,
	}
}

func (s *RedisSessionStore) key(token string) string {
	return s.keyPrefix + token
}

// Save stores a session with the configured TTL
func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(s.ttl)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves a session by token
func (s *RedisSessionStore) Load(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if s.IsExpired(&session) {
		// Redis TTL lags the session expiry in edge cases; treat as gone
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// Clear removes a session
func (s *RedisSessionStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsExpired reports whether the session's expiry has passed
func (s *RedisSessionStore) IsExpired(session *Session) bool {
	return !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt)
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ SessionStore = (*RedisSessionStore)(nil)

// InMemorySessionStore provides an in-memory implementation for testing
// and single-instance deployments
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewInMemorySessionStore creates an in-memory session store
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &InMemorySessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Save stores a session
func (s *InMemorySessionStore) Save(_ context.Context, session *Session) error {
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(s.ttl)
	}
	if time.Until(session.ExpiresAt) <= 0 {
		return ErrSessionExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

// Load retrieves a session by token, lazily dropping expired entries
func (s *InMemorySessionStore) Load(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[token]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if s.IsExpired(session) {
		delete(s.sessions, token)
		return nil, ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

// Clear removes a session
func (s *InMemorySessionStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// IsExpired reports whether the session's expiry has passed
func (s *InMemorySessionStore) IsExpired(session *Session) bool {
	return !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt)
}

var _ SessionStore = (*InMemorySessionStore)(nil)
