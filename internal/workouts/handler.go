package workouts

import (
	"context"
	"encoding/json"
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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Create(ctx context.Context, w Workout) (*Workout, error)
	Get(ctx context.Context, id uuid.UUID) (*Workout, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]Workout, error)
	ThisWeek(ctx context.Context, userID string) (int, error)
	CreateTemplate(ctx context.Context, t Template) (*Template, error)
	Templates(ctx context.Context, userID string) ([]Template, error)
	UseTemplate(ctx context.Context, userID string, id uuid.UUID) error
	DeleteTemplate(ctx context.Context, userID string, id uuid.UUID) error
}

type WeekCountResponse struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/users/{id}/workouts", h.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/users/{id}/workouts/week", h.HandleThisWeek).Methods("GET", "OPTIONS").Name("workouts-week")
	r.HandleFunc("/users/{id}/templates", h.HandleCreateTemplate).Methods("POST", "OPTIONS").Name("new-template")
	r.HandleFunc("/users/{id}/templates", h.HandleListTemplates).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/templates/{id}/used", h.HandleUseTemplate).Methods("POST", "OPTIONS").Name("use-template")
	r.HandleFunc("/templates/{id}", h.HandleDeleteTemplate).Methods("DELETE", "OPTIONS").Name("delete-template")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}
	workout.ID = uuid.Nil
	workout.UserID = userID

	added, err := h.service.Create(ctx, workout)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoExercises):
			http.Error(w, "error, workout has no exercises", http.StatusBadRequest)
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "error, no profile for user", http.StatusNotFound)
		default:
			log.Errorf("create workout of %s: %s", userID, err)
			http.Error(w, "failed to save workout", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("new workout added: %s [%s]", added.ID, userID)
	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid workout id", http.StatusBadRequest)
		return
	}

	workout, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, workout, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID := mux.Vars(r)["id"]
	limit := DefaultListLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		var err error
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit <= 0 || limit > 100 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
	}

	list, err := h.service.ListForUser(ctx, userID, limit)
	if err != nil {
		log.Errorf("list workouts of %s: %s", userID, err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (h *Handler) HandleThisWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.week")
	defer span.End()

	userID := mux.Vars(r)["id"]
	count, err := h.service.ThisWeek(ctx, userID)
	if err != nil {
		log.Errorf("workouts this week of %s: %s", userID, err)
		http.Error(w, "failed to count workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, WeekCountResponse{UserID: userID, Count: count}, http.StatusOK)
}

func (h *Handler) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.template.create")
	defer span.End()

	userID, ok := ownerOnly(w, r)
	if !ok {
		return
	}

	var t Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid template", http.StatusBadRequest)
		return
	}
	t.ID = uuid.Nil
	t.UserID = userID

	added, err := h.service.CreateTemplate(ctx, t)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "error, no profile for user", http.StatusNotFound)
			return
		}
		log.Errorf("create template of %s: %s", userID, err)
		http.Error(w, "failed to save template", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (h *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.template.list")
	defer span.End()

	userID, ok := ownerOnly(w, r)
	if !ok {
		return
	}

	templates, err := h.service.Templates(ctx, userID)
	if err != nil {
		log.Errorf("list templates of %s: %s", userID, err)
		http.Error(w, "failed to list templates", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, templates, http.StatusOK)
}

func (h *Handler) HandleUseTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.template.use")
	defer span.End()

	h.templateAction(w, r.WithContext(ctx), "used", h.service.UseTemplate)
}

func (h *Handler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.template.delete")
	defer span.End()

	h.templateAction(w, r.WithContext(ctx), "deleted", h.service.DeleteTemplate)
}

func (h *Handler) templateAction(
	w http.ResponseWriter,
	r *http.Request,
	done string,
	action func(ctx context.Context, userID string, id uuid.UUID) error,
) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusForbidden)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, invalid template id", http.StatusBadRequest)
		return
	}

	if err := action(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			http.Error(w, "template not found", http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			http.Error(w, "no can do", http.StatusForbidden)
		default:
			log.Errorf("template %s %s: %s", id, done, err)
			http.Error(w, "template action failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, done+":"+id.String())
}

// ownerOnly lets the request through only when the session user owns the
// {id} path segment.
func ownerOnly(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := mux.Vars(r)["id"]
	if requestingUserID, ok := auth.UserIDFromContext(r.Context()); !ok || requestingUserID != userID {
		http.Error(w, "no can do", http.StatusForbidden)
		return "", false
	}
	return userID, true
}
