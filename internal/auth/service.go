package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/kraft/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

type Admin struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service struct {
	admin       *Admin
	redisClient *redis.Client
	ttl         time.Duration
	// RandStringFunc generates session tokens, swappable in tests
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	admin *Admin,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		admin:          admin,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login checks operator credentials and opens an admin session.
func (as *Service) Login(ctx context.Context, creds Credentials, createdAt time.Time) (string, error) {
	if creds.Username != as.admin.Username {
		return "", ErrWrongUsername
	}
	if !pkg.CheckPasswordHash(creds.Password, as.admin.PasswordHash) {
		return "", ErrWrongPassword
	}

	return as.NewSession(ctx, Session{
		Subject:   creds.Username,
		Role:      RoleAdmin,
		CreatedAt: createdAt,
	})
}

// NewSession stores a session and returns its token. The identity provider
// bridge uses it to mirror user sessions.
func (as *Service) NewSession(ctx context.Context, session Session) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := as.redisClient.Set(ctx, sessionKey(token), encodeSession(session), 0).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("track session: %w", err)
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) error {
	deleted, err := as.redisClient.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return fmt.Errorf("untrack session: %w", err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ScanAndClean removes sessions older than the service TTL, as well as
// tracked tokens whose session is already gone.
func (as *Service) ScanAndClean(ctx context.Context) (int, error) {
	tokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}
	if len(tokens) == 0 {
		log.Debugln("auth scan and clean: no sessions")
		return 0, nil
	}

	var toRemove []string
	for _, token := range tokens {
		val, err := as.redisClient.Get(ctx, sessionKey(token)).Result()
		if errors.Is(err, redis.Nil) {
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("auth scan and clean, get %s: %s", token, err)
			continue
		}

		session, err := decodeSession(val)
		if err != nil || time.Since(session.CreatedAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	removed := 0
	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
			log.Errorf("auth scan and clean, delete %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth scan and clean, untrack %s: %s", token, err)
			continue
		}
		removed++
	}
	log.Debugf("auth scan and clean: removed %d of %d sessions", removed, len(tokens))

	return removed, nil
}
