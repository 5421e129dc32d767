package social

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/internal/users"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=social_test

const (
	profileCacheSize = 8 * 1024 * 1024
	// seconds
	profileCacheExpire = 5 * 60
)

type socialRepo interface {
	SendRequest(ctx context.Context, userID, friendID string) (*Follow, error)
	Follow(ctx context.Context, userID, friendID string) (*Follow, error)
	AcceptRequest(ctx context.Context, id uuid.UUID, friendID string) (*Follow, error)
	Unfollow(ctx context.Context, userID, friendID string) error
	IsFollowing(ctx context.Context, userID, friendID string) (bool, error)
	Following(ctx context.Context, userID string) ([]Follow, error)
	FollowedIDs(ctx context.Context, userID string) ([]string, error)
	AddActivity(ctx context.Context, a *Activity) (*Activity, error)
	Feed(ctx context.Context, limit int) ([]Activity, error)
	FeedForUsers(ctx context.Context, userIDs []string, limit int) ([]Activity, error)
}

type profileStore interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

// author is the part of a profile stamped on activities
type author struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type Service struct {
	repo     socialRepo
	profiles profileStore
	// activity authors by user id
	authors *freecache.Cache

	NowFunc func() time.Time
}

func NewService(repo socialRepo, profiles profileStore) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		authors:  freecache.NewCache(profileCacheSize),
		NowFunc:  time.Now,
	}
}

func (s *Service) SendRequest(ctx context.Context, userID, friendID string) (*Follow, error) {
	if userID == friendID {
		return nil, ErrSelfFollow
	}
	return s.repo.SendRequest(ctx, userID, friendID)
}

func (s *Service) Follow(ctx context.Context, userID, friendID string) (*Follow, error) {
	if userID == friendID {
		return nil, ErrSelfFollow
	}
	return s.repo.Follow(ctx, userID, friendID)
}

func (s *Service) AcceptRequest(ctx context.Context, id uuid.UUID, friendID string) (*Follow, error) {
	return s.repo.AcceptRequest(ctx, id, friendID)
}

func (s *Service) Unfollow(ctx context.Context, userID, friendID string) error {
	return s.repo.Unfollow(ctx, userID, friendID)
}

func (s *Service) IsFollowing(ctx context.Context, userID, friendID string) (bool, error) {
	return s.repo.IsFollowing(ctx, userID, friendID)
}

func (s *Service) Following(ctx context.Context, userID string) ([]Follow, error) {
	return s.repo.Following(ctx, userID)
}

func (s *Service) Feed(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.Feed(ctx, limit)
}

// FriendsFeed returns the newest activities of the users userID follows.
func (s *Service) FriendsFeed(ctx context.Context, userID string, limit int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.feed.friends")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	followed, err := s.repo.FollowedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("follows of %s: %w", userID, err)
	}
	if len(followed) == 0 {
		return []Activity{}, nil
	}

	activities, err := s.repo.FeedForUsers(ctx, followed, limit)
	if err != nil {
		return nil, fmt.Errorf("feed of %d users: %w", len(followed), err)
	}
	span.SetAttributes(attribute.Int("activities", len(activities)))

	return activities, nil
}

// RecordWorkoutStarted posts the "started <workout>" activity of userID.
func (s *Service) RecordWorkoutStarted(ctx context.Context, userID, workoutName string, duration int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.activity.workout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	a, err := s.author(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.repo.AddActivity(ctx, &Activity{
		UserID:       userID,
		UserName:     a.Name,
		UserPhotoURL: a.PhotoURL,
		Type:         ActivityWorkout,
		WorkoutName:  workoutName,
		Duration:     duration,
		Message:      "started " + workoutName,
		Timestamp:    s.NowFunc(),
	})
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

func (s *Service) author(ctx context.Context, userID string) (author, error) {
	var a author
	if cached, err := s.authors.Get([]byte(userID)); err == nil {
		if err := json.Unmarshal(cached, &a); err == nil {
			return a, nil
		} else {
			log.Errorf("unmarshal cached author %s: %s", userID, err)
		}
	}

	u, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return a, fmt.Errorf("profile of %s: %w", userID, err)
	}
	a = author{Name: u.Name(), PhotoURL: u.PhotoURL}

	if authorBytes, err := json.Marshal(a); err == nil {
		if err := s.authors.Set([]byte(userID), authorBytes, profileCacheExpire); err != nil {
			log.Warnf("cache author %s: %s", userID, err)
		}
	}
	return a, nil
}

// ForgetAuthor drops the cached author of userID, so the next activity picks
// up a changed name or photo.
func (s *Service) ForgetAuthor(userID string) {
	s.authors.Del([]byte(userID))
}
