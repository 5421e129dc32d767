package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/kraft/internal/telemetry/metrics"
	"github.com/2beens/kraft/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats_test

type workoutsStore interface {
	RecentWorkouts(ctx context.Context, userID string, limit int) ([]WorkoutRecord, error)
	WorkoutsSince(ctx context.Context, since time.Time) ([]WorkoutRecord, error)
}

type usersStore interface {
	Directory(ctx context.Context) ([]DirectoryUser, error)
	StreakState(ctx context.Context, userID string) (*StreakState, error)
	// UpdateStreak stores the streak. A nil lastWorkoutDate keeps the stored date.
	UpdateStreak(ctx context.Context, userID string, streak int, lastWorkoutDate *time.Time) error
}

type followsStore interface {
	FollowedIDs(ctx context.Context, userID string) ([]string, error)
}

type Service struct {
	workouts workoutsStore
	users    usersStore
	follows  followsStore
	metrics  *metrics.Manager
	loc      *time.Location

	// NowFunc can be swapped in tests
	NowFunc func() time.Time
}

func NewService(
	workouts workoutsStore,
	users usersStore,
	follows followsStore,
	metricsManager *metrics.Manager,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		workouts: workouts,
		users:    users,
		follows:  follows,
		metrics:  metricsManager,
		loc:      loc,
		NowFunc:  time.Now,
	}
}

// UpdateStreak applies the incremental rule for a workout logged now and
// returns the resulting streak. A missing profile is not an error.
func (s *Service) UpdateStreak(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.streak.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	state, err := s.users.StreakState(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			log.Debugf("update streak: no profile for user %s, skipping", userID)
			return 0, nil
		}
		return 0, fmt.Errorf("%w: streak state of %s: %w", ErrFetch, userID, err)
	}

	now := s.NowFunc()
	streak, outcome := NextStreak(*state, now, s.loc)
	s.metrics.CounterStreakUpdates.WithLabelValues(string(outcome)).Inc()
	if outcome == StreakUnchanged {
		return streak, nil
	}

	today := CalendarDay(now, s.loc)
	if err := s.users.UpdateStreak(ctx, userID, streak, &today); err != nil {
		return 0, fmt.Errorf("persist streak of %s: %w", userID, err)
	}
	log.Tracef("streak of %s %s: %d", userID, outcome, streak)

	return streak, nil
}

// SyncUserStreak recomputes the streak from the most recent workouts and
// stores it. The stored last workout date is not touched.
func (s *Service) SyncUserStreak(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.streak.sync")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	streak, err := s.computeStreak(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := s.users.UpdateStreak(ctx, userID, streak, nil); err != nil {
		return 0, fmt.Errorf("persist streak of %s: %w", userID, err)
	}
	span.SetAttributes(attribute.Int("streak", streak))

	return streak, nil
}

func (s *Service) computeStreak(ctx context.Context, userID string) (int, error) {
	records, err := s.workouts.RecentWorkouts(ctx, userID, RecentWorkoutsLimit)
	if err != nil {
		return 0, fmt.Errorf("%w: recent workouts of %s: %w", ErrFetch, userID, err)
	}

	dates := make([]time.Time, 0, len(records))
	for _, rec := range records {
		dates = append(dates, rec.Date)
	}
	return StreakFromDates(dates, s.NowFunc(), s.loc), nil
}

// StoredStreak returns the streak as currently persisted, without recomputing.
func (s *Service) StoredStreak(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.streak.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	state, err := s.users.StreakState(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: streak state of %s: %w", ErrFetch, userID, err)
	}
	return state.Streak, nil
}

// ReconcileAll recomputes the streak of every user in the directory. It keeps
// going past individual failures and returns them combined.
func (s *Service) ReconcileAll(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.streak.reconcile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	defer func(begin time.Time) {
		s.metrics.HistReconcileDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	directory, err := s.users.Directory(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: user directory: %w", ErrFetch, err)
	}

	var (
		synced int
		errs   error
	)
	for _, u := range directory {
		if ctx.Err() != nil {
			errs = multierr.Append(errs, ctx.Err())
			break
		}
		if _, err := s.SyncUserStreak(ctx, u.ID); err != nil {
			s.metrics.CounterReconciliationFailure.Inc()
			errs = multierr.Append(errs, err)
			continue
		}
		synced++
		s.metrics.CounterReconciledStreaks.Inc()
	}
	span.SetAttributes(attribute.Int("synced", synced))

	return synced, errs
}

// RunReconciler calls ReconcileAll every interval until ctx is done.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("streak reconciler stopped")
			return
		case <-ticker.C:
			synced, err := s.ReconcileAll(ctx)
			if err != nil {
				log.Errorf("streak reconciliation (%d synced): %s", synced, err)
				continue
			}
			log.Infof("streak reconciliation done, %d users synced", synced)
		}
	}
}

// Leaderboard ranks every user with at least one workout in period.
func (s *Service) Leaderboard(ctx context.Context, requestingUserID string, period Period) (_ []LeaderboardEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.leaderboard")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("period", period.String()))

	entries, err := s.leaderboard(ctx, requestingUserID, period)
	if err != nil {
		return nil, err
	}
	s.metrics.CounterLeaderboards.WithLabelValues(period.String(), "global").Inc()

	return entries, nil
}

// FriendsLeaderboard is the global leaderboard narrowed to the requesting
// user and the users they follow.
func (s *Service) FriendsLeaderboard(ctx context.Context, requestingUserID string, period Period) (_ []LeaderboardEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.leaderboard.friends")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("period", period.String()))

	entries, err := s.leaderboard(ctx, requestingUserID, period)
	if err != nil {
		return nil, err
	}

	followed, err := s.follows.FollowedIDs(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: follows of %s: %w", ErrFetch, requestingUserID, err)
	}
	s.metrics.CounterLeaderboards.WithLabelValues(period.String(), "friends").Inc()

	return FilterFollowed(entries, requestingUserID, followed), nil
}

func (s *Service) leaderboard(ctx context.Context, requestingUserID string, period Period) ([]LeaderboardEntry, error) {
	since := period.LowerBound(s.NowFunc())

	records, err := s.workouts.WorkoutsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%w: workouts since %s: %w", ErrFetch, since.Format(time.RFC3339), err)
	}

	directory, err := s.users.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: user directory: %w", ErrFetch, err)
	}

	return BuildLeaderboard(Aggregate(records, since), directory, requestingUserID), nil
}
