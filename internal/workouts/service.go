package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/kraft/internal/config"
	"github.com/2beens/kraft/internal/telemetry/metrics"
	"github.com/2beens/kraft/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, w *Workout) (*Workout, error)
	Get(ctx context.Context, id uuid.UUID) (*Workout, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]Workout, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	AddTemplate(ctx context.Context, t *Template) (*Template, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, userID string) ([]Template, error)
	TouchTemplate(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

type streakUpdater interface {
	UpdateStreak(ctx context.Context, userID string) (int, error)
	SyncUserStreak(ctx context.Context, userID string) (int, error)
}

type activityRecorder interface {
	RecordWorkoutStarted(ctx context.Context, userID, workoutName string, duration int) error
}

type Service struct {
	repo         workoutsRepo
	streaks      streakUpdater
	activities   activityRecorder
	metrics      *metrics.Manager
	streakPolicy string

	NowFunc func() time.Time
}

func NewService(
	repo workoutsRepo,
	streaks streakUpdater,
	activities activityRecorder,
	metricsManager *metrics.Manager,
	streakPolicy string,
) *Service {
	return &Service{
		repo:         repo,
		streaks:      streaks,
		activities:   activities,
		metrics:      metricsManager,
		streakPolicy: streakPolicy,
		NowFunc:      time.Now,
	}
}

// Create stores the workout, then updates the streak and posts a feed
// activity. Only the insert can fail the call.
func (s *Service) Create(ctx context.Context, w Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", w.UserID))

	if len(w.Exercises) == 0 {
		return nil, ErrNoExercises
	}
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		w.Name = DefaultWorkoutName
	}
	if w.Date.IsZero() {
		w.Date = s.NowFunc()
	}

	added, err := s.repo.Add(ctx, &w)
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}
	s.metrics.CounterWorkouts.Inc()

	if streak, err := s.updateStreak(ctx, added.UserID); err != nil {
		s.metrics.CounterStreakUpdateFailures.Inc()
		log.Errorf("workout %s added, but streak update of %s failed: %s", added.ID, added.UserID, err)
	} else {
		span.SetAttributes(attribute.Int("streak", streak))
	}

	if err := s.activities.RecordWorkoutStarted(ctx, added.UserID, added.Name, added.Duration); err != nil {
		log.Errorf("workout %s added, but activity failed: %s", added.ID, err)
	}

	return added, nil
}

func (s *Service) updateStreak(ctx context.Context, userID string) (int, error) {
	if s.streakPolicy == config.StreakPolicyRecompute {
		return s.streaks.SyncUserStreak(ctx, userID)
	}
	return s.streaks.UpdateStreak(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Workout, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit int) ([]Workout, error) {
	return s.repo.ListForUser(ctx, userID, limit)
}

// ThisWeek counts the workouts of the user over the last 7 days.
func (s *Service) ThisWeek(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.week")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	count, err := s.repo.CountSince(ctx, userID, s.NowFunc().Add(-7*24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("count workouts of %s: %w", userID, err)
	}
	return count, nil
}

func (s *Service) CreateTemplate(ctx context.Context, t Template) (*Template, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		t.Name = DefaultWorkoutName
	}
	return s.repo.AddTemplate(ctx, &t)
}

func (s *Service) Templates(ctx context.Context, userID string) ([]Template, error) {
	return s.repo.ListTemplates(ctx, userID)
}

// UseTemplate marks the template of userID as used now.
func (s *Service) UseTemplate(ctx context.Context, userID string, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.template.use")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.checkTemplateOwner(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.TouchTemplate(ctx, id, s.NowFunc())
}

func (s *Service) DeleteTemplate(ctx context.Context, userID string, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.template.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.checkTemplateOwner(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteTemplate(ctx, id)
}

func (s *Service) checkTemplateOwner(ctx context.Context, userID string, id uuid.UUID) error {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return err
		}
		return fmt.Errorf("get template %s: %w", id, err)
	}
	if t.UserID != userID {
		return ErrNotOwner
	}
	return nil
}
