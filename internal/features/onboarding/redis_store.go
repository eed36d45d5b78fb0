package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"smartclinic-backend/internal/platform/redis"
)

// RedisStore keeps conversation state in Redis so a survey survives a
// process restart. Keys expire after the configured TTL; an expired
// session simply restarts the survey.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(userID int64) string { return fmt.Sprintf("onboarding:session:%d", userID) }
func modeKey(userID int64) string    { return fmt.Sprintf("conversation:mode:%d", userID) }

func (s *RedisStore) GetSession(ctx context.Context, userID int64) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) SaveSession(ctx context.Context, userID int64, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(userID), data, s.ttl).Err()
}

func (s *RedisStore) DeleteSession(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

func (s *RedisStore) GetMode(ctx context.Context, userID int64) (Mode, error) {
	data, err := s.client.Get(ctx, modeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get mode: %w", err)
	}
	return Mode(data), nil
}

func (s *RedisStore) SetMode(ctx context.Context, userID int64, mode Mode) error {
	return s.client.Set(ctx, modeKey(userID), string(mode), s.ttl).Err()
}

func (s *RedisStore) ClearMode(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, modeKey(userID)).Err()
}
