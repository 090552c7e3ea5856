// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default TTL of a published status.
	DefaultTTL = time.Hour
	// KeyPrefix is the prefix for all bot status keys.
	KeyPrefix = "lobby_bot:status:"

	pingTimeout = 2 * time.Second
)

// ErrNotFound is returned when no status is stored for a bot.
var ErrNotFound = errors.New("bot status not found")

// RedisOptions configures the Redis client.
type RedisOptions struct {
	Host     string
	Port     string
	Password string
}

// NewRedisClient creates a Redis client. It does not connect; use Ping to
// wait for the server.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Host + ":" + opts.Port,
		Password:     opts.Password,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// Ping checks that the status server answers within a short timeout.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("status store unreachable: %w", err)
	}
	return nil
}

// RedisStore stores bot status as JSON in Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store. A non-positive ttl uses DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func makeKey(username string) string {
	return fmt.Sprintf("%s%s", KeyPrefix, username)
}

// Save stores status under the bot's username.
func (s *RedisStore) Save(ctx context.Context, status BotStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	if err := s.client.Set(ctx, makeKey(status.Username), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}

	logrus.Debugf("saved status for bot %s: %s", status.Username, status.State)
	return nil
}

// Get retrieves the status of username.
func (s *RedisStore) Get(ctx context.Context, username string) (*BotStatus, error) {
	data, err := s.client.Get(ctx, makeKey(username)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	var status BotStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	return &status, nil
}

// Delete removes the status of username.
func (s *RedisStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, makeKey(username)).Err(); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}
