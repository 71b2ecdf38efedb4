package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"schedly/models"
)

// ErrSessionNotFound is returned when a session ID has no stored state,
// either because it never existed or because its TTL expired.
var ErrSessionNotFound = errors.New("scheduling session not found or expired")

// SessionStore persists scheduling-session envelopes.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SchedulingSession, error)
	Put(ctx context.Context, session *models.SchedulingSession) error
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "schedsession:"

// redisSessionStore keeps sessions as JSON blobs with a sliding TTL.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates the production session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.SchedulingSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling session: %w", err)
	}
	var session models.SchedulingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse scheduling session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, session *models.SchedulingSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal scheduling session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store scheduling session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// memorySessionStore is an in-process store used by tests.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*models.SchedulingSession, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.SchedulingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memorySessionStore) Put(_ context.Context, session *models.SchedulingSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[session.SessionID] = string(data)
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
