// Package session keeps per-conversation chat history in redis with a
// sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	commonerrors "kirana-assistant/internal/common/errors"
	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/models"
)

const keyPrefix = "assistant:session:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"service": "session"}),
	}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Append adds one message to the session history and refreshes the TTL.
func (s *Store) Append(ctx context.Context, sessionID, text string, isUser bool) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      text,
		IsUser:    isUser,
		Timestamp: time.Now().UTC(),
	}

	history, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history = append(history, *msg)

	data, err := json.Marshal(history)
	if err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(err)
	}
	return msg, nil
}

// History returns the session's messages, oldest first. A session that never
// existed or has expired reads as empty, not as an error.
func (s *Store) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(err)
	}

	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, commonerrors.NewSessionStoreFailedError(fmt.Errorf("corrupt session %s: %w", sessionID, err))
	}
	return history, nil
}

// Clear drops the session history.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return commonerrors.NewSessionStoreFailedError(err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
