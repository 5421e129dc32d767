package social

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/kraft/internal/auth"
	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/internal/users"
	"github.com/2beens/kraft/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=social_test

type socialService interface {
	SendRequest(ctx context.Context, userID, friendID string) (*Follow, error)
	Follow(ctx context.Context, userID, friendID string) (*Follow, error)
	AcceptRequest(ctx context.Context, id uuid.UUID, friendID string) (*Follow, error)
	Unfollow(ctx context.Context, userID, friendID string) error
	IsFollowing(ctx context.Context, userID, friendID string) (bool, error)
	Following(ctx context.Context, userID string) ([]Follow, error)
	Feed(ctx context.Context, limit int) ([]Activity, error)
	FriendsFeed(ctx context.Context, userID string, limit int) ([]Activity, error)
}

type IsFollowingResponse struct {
	UserID    string `json:"userId"`
	FriendID  string `json:"friendId"`
	Following bool   `json:"following"`
}

type Handler struct {
	service socialService
}

func NewHandler(service socialService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id}/follow/{target}", h.HandleFollow).Methods("POST", "OPTIONS").Name("follow")
	r.HandleFunc("/users/{id}/follow/{target}", h.HandleUnfollow).Methods("DELETE", "OPTIONS").Name("unfollow")
	r.HandleFunc("/users/{id}/following", h.HandleFollowing).Methods("GET", "OPTIONS").Name("following")
	r.HandleFunc("/users/{id}/following/{target}", h.HandleIsFollowing).Methods("GET", "OPTIONS").Name("is-following")
	r.HandleFunc("/users/{id}/requests/{target}", h.HandleSendRequest).Methods("POST", "OPTIONS").Name("follow-request")
	r.HandleFunc("/requests/{id}/accept", h.HandleAcceptRequest).Methods("POST", "OPTIONS").Name("accept-request")
	r.HandleFunc("/feed", h.HandleFeed).Methods("GET", "OPTIONS").Name("feed")
	r.HandleFunc("/users/{id}/feed", h.HandleFriendsFeed).Methods("GET", "OPTIONS").Name("friends-feed")
}

func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.follow")
	defer span.End()

	h.followAction(w, r.WithContext(ctx), h.service.Follow)
}

func (h *Handler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.request")
	defer span.End()

	h.followAction(w, r.WithContext(ctx), h.service.SendRequest)
}

func (h *Handler) followAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, userID, friendID string) (*Follow, error),
) {
	userID, ok := ownerOnly(w, r)
	if !ok {
		return
	}
	target := mux.Vars(r)["target"]

	follow, err := action(r.Context(), userID, target)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			http.Error(w, "error, cannot follow yourself", http.StatusBadRequest)
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("follow %s -> %s: %s", userID, target, err)
			http.Error(w, "follow failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSONResponse(w, follow, http.StatusOK)
}

func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unfollow")
	defer span.End()

	userID, ok := ownerOnly(w, r)
	if !ok {
		return
	}
	target := mux.Vars(r)["target"]

	if err := h.service.Unfollow(ctx, userID, target); err != nil {
		if errors.Is(err, ErrFollowNotFound) {
			http.Error(w, "not following", http.StatusNotFound)
			return
		}
		log.Errorf("unfollow %s -> %s: %s", userID, target, err)
		http.Error(w, "unfollow failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "unfollowed:"+target)
}

func (h *Handler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.following")
	defer span.End()

	userID := mux.Vars(r)["id"]
	follows, err := h.service.Following(ctx, userID)
	if err != nil {
		log.Errorf("following of %s: %s", userID, err)
		http.Error(w, "failed to get following", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, follows, http.StatusOK)
}

func (h *Handler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.following.check")
	defer span.End()

	vars := mux.Vars(r)
	userID, target := vars["id"], vars["target"]

	following, err := h.service.IsFollowing(ctx, userID, target)
	if err != nil {
		log.Errorf("is %s following %s: %s", userID, target, err)
		http.Error(w, "failed to check following", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, IsFollowingResponse{
		UserID:    userID,
		FriendID:  target,
		Following: following,
	}, http.StatusOK)
}

func (h *Handler) HandleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.request.accept")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid request id", http.StatusBadRequest)
		return
	}

	// only the addressee can accept, anything else looks like a missing request
	follow, err := h.service.AcceptRequest(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrFollowNotFound) {
			http.Error(w, "request not found", http.StatusNotFound)
			return
		}
		log.Errorf("accept request %s: %s", id, err)
		http.Error(w, "accept failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, follow, http.StatusOK)
}

func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.feed")
	defer span.End()

	limit, ok := feedLimit(w, r)
	if !ok {
		return
	}

	activities, err := h.service.Feed(ctx, limit)
	if err != nil {
		log.Errorf("feed: %s", err)
		http.Error(w, "failed to get feed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, activities, http.StatusOK)
}

func (h *Handler) HandleFriendsFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.feed.friends")
	defer span.End()

	userID, ok := ownerOnly(w, r)
	if !ok {
		return
	}
	limit, ok := feedLimit(w, r)
	if !ok {
		return
	}

	activities, err := h.service.FriendsFeed(ctx, userID, limit)
	if err != nil {
		log.Errorf("friends feed of %s: %s", userID, err)
		http.Error(w, "failed to get feed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, activities, http.StatusOK)
}

func feedLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		return DefaultFeedLimit, true
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit <= 0 || limit > 100 {
		http.Error(w, "error, invalid limit", http.StatusBadRequest)
		return 0, false
	}
	return limit, true
}

func ownerOnly(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := mux.Vars(r)["id"]
	if requestingUserID, ok := auth.UserIDFromContext(r.Context()); !ok || requestingUserID != userID {
		http.Error(w, "no can do", http.StatusForbidden)
		return "", false
	}
	return userID, true
}
