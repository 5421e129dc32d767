package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	adminTTL    time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		adminTTL:    AdminTTL,
		redisClient: redisClient,
	}
}

// Check resolves a token to its session.
func (lc *LoginChecker) Check(ctx context.Context, token string) (*Session, error) {
	val, err := lc.redisClient.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	session, err := decodeSession(val)
	if err != nil {
		return nil, err
	}

	ttl := lc.ttl
	if session.IsAdmin() {
		ttl = lc.adminTTL
	}
	if time.Since(session.CreatedAt) > ttl {
		return nil, ErrSessionExpired
	}

	return session, nil
}
