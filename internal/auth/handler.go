package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type sessionService interface {
	Login(ctx context.Context, creds Credentials, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
	NewSession(ctx context.Context, session Session) (string, error)
}

type NewUserSessionRequest struct {
	UserID string `json:"userId"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	service sessionService
}

func NewHandler(service sessionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid login request", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "error, username or password empty", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(ctx, creds, time.Now())
	if err != nil {
		if errors.Is(err, ErrWrongUsername) || errors.Is(err, ErrWrongPassword) {
			log.Warnf("failed admin login attempt for [%s] from %s", creds.Username, pkg.ClientIP(r))
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("admin login: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, LoginResponse{Token: token}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := TokenFromRequest(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(ctx, token); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

// HandleNewUserSession issues a user session on behalf of the identity
// provider bridge. Only reachable with an admin session.
func (h *Handler) HandleNewUserSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.session.new")
	defer span.End()

	if session, ok := SessionFromContext(ctx); !ok || !session.IsAdmin() {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	var req NewUserSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		http.Error(w, "error, user id missing", http.StatusBadRequest)
		return
	}

	token, err := h.service.NewSession(ctx, Session{
		Subject:   req.UserID,
		Role:      RoleUser,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Errorf("new session for %s: %s", req.UserID, err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, LoginResponse{Token: token}, http.StatusCreated)
}

// TokenFromRequest reads the session token from the Authorization bearer
// header, falling back to X-KRAFT-TOKEN.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get("X-KRAFT-TOKEN")
}
