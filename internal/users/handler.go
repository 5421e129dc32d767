package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/kraft/internal/auth"
	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, u User) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
	Search(ctx context.Context, query string, limit int) ([]User, error)
}

type Handler struct {
	repo     usersRepo
	onUpdate []func(userID string)
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// OnProfileUpdate registers f to be called after a profile was changed.
func (h *Handler) OnProfileUpdate(f func(userID string)) {
	h.onUpdate = append(h.onUpdate, f)
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-user")
	// registered before /users/{id} so "search" is not taken for an id
	r.HandleFunc("/users/search", h.HandleSearch).Methods("GET", "OPTIONS").Name("search-users")
	r.HandleFunc("/users/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-user")
	r.HandleFunc("/users/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-user")
}

// HandleCreate stores the profile of the calling user. The id always comes
// from the session, never from the body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		log.Tracef("new user, unmarshal json: %s", err)
		http.Error(w, "invalid user", http.StatusBadRequest)
		return
	}
	u.ID = userID
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.Username = strings.TrimSpace(u.Username)

	created, err := h.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		log.Errorf("create user %s: %s", userID, err)
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user created: %s", created.ID)
	pkg.WriteJSONResponse(w, created, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	u, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get user %s: %s", id, err)
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	// email stays private to its owner
	if requestingUserID, _ := auth.UserIDFromContext(ctx); requestingUserID != u.ID {
		u.Email = ""
	}

	pkg.WriteJSONResponse(w, u, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if requestingUserID, ok := auth.UserIDFromContext(ctx); !ok || requestingUserID != id {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, "invalid user", http.StatusBadRequest)
		return
	}
	u.ID = id

	if err := h.repo.Update(ctx, &u); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("update user %s: %s", id, err)
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}
	for _, f := range h.onUpdate {
		f(id)
	}

	pkg.WriteTextResponseOK(w, "updated:"+id)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.search")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "error, empty query", http.StatusBadRequest)
		return
	}

	limit := DefaultSearchLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		var err error
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit <= 0 || limit > 100 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
	}

	found, err := h.repo.Search(ctx, query, limit)
	if err != nil {
		log.Errorf("search users [%s]: %s", query, err)
		http.Error(w, "failed to search users", http.StatusInternalServerError)
		return
	}
	for i := range found {
		found[i].Email = ""
	}

	pkg.WriteJSONResponse(w, found, http.StatusOK)
}
