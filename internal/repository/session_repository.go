package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"poliza-service/internal/models"
)

var ErrSessionNotFound = errors.New("wizard session not found")

const sessionKeyPrefix = "poliza:wizard:session:"

// SessionRepository persists wizard sessions in Redis as JSON with a TTL.
// One session per key; the TTL slides on every save.
type SessionRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSessionRepository(redisClient *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *models.WizardSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	if err := r.redisClient.Set(ctx, sessionKeyPrefix+session.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	payload, err := r.redisClient.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var session models.WizardSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}
