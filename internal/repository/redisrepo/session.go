package redisrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/styleshelf/storefront/internal/models"
)

const sessionPrefix = "sessions:"

// SessionRepo keeps server-side session records in redis so that sessions
// can be revoked before their tokens expire
type SessionRepo struct {
	client *goredis.Client
}

// NewSessionRepo creates new SessionRepo instance
func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

// Create stores a session record that expires together with the session
func (sr *SessionRepo) Create(ctx context.Context, session models.Session) error {
	key := sessionKey(session.ID)
	fields := map[string]interface{}{
		"user_id":    session.UserID,
		"role":       session.Role,
		"expires_at": session.ExpiresAt.Unix(),
	}

	pipe := sr.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.ExpireAt(ctx, key, session.ExpiresAt)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session record: %w", err)
	}

	return nil
}

// Get returns the session record for the given session id
func (sr *SessionRepo) Get(ctx context.Context, id string) (models.Session, error) {
	values, err := sr.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return models.Session{}, fmt.Errorf("get session record: %w", err)
	}
	if len(values) == 0 {
		return models.Session{}, models.ErrSessionNotFound
	}

	session := models.Session{
		ID:     id,
		UserID: values["user_id"],
		Role:   values["role"],
	}
	if raw, ok := values["expires_at"]; ok {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Session{}, fmt.Errorf("parse session expiry: %w", err)
		}
		session.ExpiresAt = time.Unix(unix, 0)
	}

	return session, nil
}

// Delete revokes a session
func (sr *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := sr.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionPrefix + id
}
