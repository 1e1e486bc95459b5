package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// SessionRepository keeps session records in Redis. Each record expires with
// its session, and a per-user set indexes the sessions of a user.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func userSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}

// Save stores the session until its expiry.
func (r *SessionRepository) Save(ctx context.Context, s *models.Session) error {
	ttl := time.Until(s.Expiry)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.SessionID)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	key := sessionKey(s.SessionID)
	setKey := userSessionsKey(s.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, ttl)
		pipe.SAdd(ctx, setKey, s.SessionID)
		pipe.Expire(ctx, setKey, ttl)
		return nil
	})

	logger.Log.Infow(
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}

// Get returns the session, or nil when it is unknown or has expired.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", nil,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", string(val),
			"result", nil,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", s.UserID,
		"error", nil,
	)

	return &s, nil
}

// DeleteByUser revokes every session of userID and returns how many were removed.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	setKey := userSessionsKey(userID)

	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		logger.Log.Infow("key", setKey, "result", nil, "error", err)
		return 0, err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, setKey)

	removed, err := r.client.Del(ctx, keys...).Result()
	logger.Log.Infow(
		"key", setKey,
		"sessions", len(ids),
		"result", removed,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	if removed > 0 && len(ids) > 0 {
		// the set key itself is not a session
		removed--
	}
	return removed, nil
}
