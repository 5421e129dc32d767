package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 24 * 30 * time.Hour
	AdminTTL         = 24 * time.Hour
	sessionKeyPrefix = "kraft-session||"
	tokensSetKey     = "kraft-sessions"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrWrongPassword   = errors.New("wrong password")
	ErrWrongUsername   = errors.New("wrong username")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is what a token resolves to. For RoleUser the subject is the
// user id issued by the identity provider; for RoleAdmin it is the operator
// username.
type Session struct {
	Subject   string
	Role      Role
	CreatedAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// encodeSession produces the value stored under the session key:
// <created at unix>|<role>|<subject>
func encodeSession(s Session) string {
	return fmt.Sprintf("%d|%s|%s", s.CreatedAt.Unix(), s.Role, s.Subject)
}

func decodeSession(val string) (*Session, error) {
	parts := strings.SplitN(val, "|", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed session value: %q", val)
	}
	createdAtUnix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session timestamp: %w", err)
	}
	role := Role(parts[1])
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("unknown session role: %q", parts[1])
	}
	if parts[2] == "" {
		return nil, errors.New("session without subject")
	}
	return &Session{
		Subject:   parts[2],
		Role:      role,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return s, ok && s != nil
}

// UserIDFromContext returns the id of the app user making the request.
// Admin sessions carry no user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok || s.Role != RoleUser {
		return "", false
	}
	return s.Subject, true
}
