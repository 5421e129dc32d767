package stats

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/kraft/internal/auth"
	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsService interface {
	Leaderboard(ctx context.Context, requestingUserID string, period Period) ([]LeaderboardEntry, error)
	FriendsLeaderboard(ctx context.Context, requestingUserID string, period Period) ([]LeaderboardEntry, error)
	StoredStreak(ctx context.Context, userID string) (int, error)
	SyncUserStreak(ctx context.Context, userID string) (int, error)
	ReconcileAll(ctx context.Context) (int, error)
}

type LeaderboardResponse struct {
	Period  Period             `json:"period"`
	Entries []LeaderboardEntry `json:"entries"`
}

type StreakResponse struct {
	UserID string `json:"userId"`
	Streak int    `json:"streak"`
}

type ReconcileResponse struct {
	Synced int    `json:"synced"`
	Error  string `json:"error,omitempty"`
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/leaderboard", h.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")
	r.HandleFunc("/leaderboard/friends", h.HandleFriendsLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard-friends")
	r.HandleFunc("/users/{id}/streak", h.HandleGetStreak).Methods("GET", "OPTIONS").Name("get-streak")
	r.HandleFunc("/users/{id}/streak/sync", h.HandleSyncStreak).Methods("POST", "OPTIONS").Name("sync-streak")
	r.HandleFunc("/admin/streaks/reconcile", h.HandleReconcile).Methods("POST", "OPTIONS").Name("reconcile-streaks")
}

func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.leaderboard")
	defer span.End()

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "invalid period, use one of: week, month, all", http.StatusBadRequest)
		return
	}

	// admins see the board without a highlighted entry
	requestingUserID, _ := auth.UserIDFromContext(ctx)

	entries, err := h.service.Leaderboard(ctx, requestingUserID, period)
	if err != nil {
		log.Errorf("leaderboard [%s]: %s", period, err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, LeaderboardResponse{Period: period, Entries: entries}, http.StatusOK)
}

func (h *Handler) HandleFriendsLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.leaderboard.friends")
	defer span.End()

	requestingUserID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "friends leaderboard needs a user session", http.StatusForbidden)
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "invalid period, use one of: week, month, all", http.StatusBadRequest)
		return
	}

	entries, err := h.service.FriendsLeaderboard(ctx, requestingUserID, period)
	if err != nil {
		log.Errorf("friends leaderboard [%s] for %s: %s", period, requestingUserID, err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, LeaderboardResponse{Period: period, Entries: entries}, http.StatusOK)
}

func (h *Handler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.streak.get")
	defer span.End()

	userID := mux.Vars(r)["id"]
	streak, err := h.service.StoredStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get streak of %s: %s", userID, err)
		http.Error(w, "failed to get streak", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, StreakResponse{UserID: userID, Streak: streak}, http.StatusOK)
}

// HandleSyncStreak recomputes the caller's streak. The app calls it when it
// comes to the foreground so a broken streak shows up without a new workout.
func (h *Handler) HandleSyncStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.streak.sync")
	defer span.End()

	userID := mux.Vars(r)["id"]
	if requestingUserID, ok := auth.UserIDFromContext(ctx); !ok || requestingUserID != userID {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	streak, err := h.service.SyncUserStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("sync streak of %s: %s", userID, err)
		http.Error(w, "failed to sync streak", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, StreakResponse{UserID: userID, Streak: streak}, http.StatusOK)
}

func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.streak.reconcile")
	defer span.End()

	if session, ok := auth.SessionFromContext(ctx); !ok || !session.IsAdmin() {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	synced, err := h.service.ReconcileAll(ctx)
	if err != nil {
		log.Errorf("reconcile streaks, %d synced: %s", synced, err)
		if errors.Is(err, ErrFetch) && synced == 0 {
			http.Error(w, "failed to reconcile streaks", http.StatusInternalServerError)
			return
		}
		// partial run
		pkg.WriteJSONResponse(w, ReconcileResponse{Synced: synced, Error: err.Error()}, http.StatusMultiStatus)
		return
	}

	pkg.WriteJSONResponse(w, ReconcileResponse{Synced: synced}, http.StatusOK)
}
