package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/internal/users"
	"github.com/2beens/kraft/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SendRequest creates a pending follow from userID to friendID. An existing
// follow between the two is returned unchanged.
func (r *Repo) SendRequest(ctx context.Context, userID, friendID string) (_ *Follow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow.request")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.upsertFollow(ctx, userID, friendID, `
		INSERT INTO follow (id, user_id, friend_id, status)
		VALUES ($1, $2, $3, 'pending')
		ON CONFLICT (user_id, friend_id) DO UPDATE SET status = follow.status
		RETURNING id, user_id, friend_id, status, created_at
	`)
}

// Follow makes userID follow friendID right away, accepting a pending request
// if there is one.
func (r *Repo) Follow(ctx context.Context, userID, friendID string) (_ *Follow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.upsertFollow(ctx, userID, friendID, `
		INSERT INTO follow (id, user_id, friend_id, status)
		VALUES ($1, $2, $3, 'accepted')
		ON CONFLICT (user_id, friend_id) DO UPDATE SET status = 'accepted'
		RETURNING id, user_id, friend_id, status, created_at
	`)
}

func (r *Repo) upsertFollow(ctx context.Context, userID, friendID, query string) (*Follow, error) {
	f := &Follow{}
	err := r.db.QueryRow(ctx, query, uuid.New(), userID, friendID).Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %s -> %s", users.ErrUserNotFound, userID, friendID)
		}
		return nil, err
	}
	return f, nil
}

// AcceptRequest accepts the pending request id addressed to friendID.
func (r *Repo) AcceptRequest(ctx context.Context, id uuid.UUID, friendID string) (_ *Follow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow.accept")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	f := &Follow{}
	err = r.db.QueryRow(ctx, `
		UPDATE follow SET status = 'accepted'
		WHERE id = $1 AND friend_id = $2
		RETURNING id, user_id, friend_id, status, created_at
	`, id, friendID).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFollowNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *Repo) Unfollow(ctx context.Context, userID, friendID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unfollow")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM follow WHERE user_id = $1 AND friend_id = $2`, userID, friendID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *Repo) IsFollowing(ctx context.Context, userID, friendID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.following.check")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var following bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follow WHERE user_id = $1 AND friend_id = $2 AND status = 'accepted'
		)
	`, userID, friendID).Scan(&following)
	return following, err
}

// Following lists accepted follows of userID, newest first.
func (r *Repo) Following(ctx context.Context, userID string) (_ []Follow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.following")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, friend_id, status, created_at
		FROM follow
		WHERE user_id = $1 AND status = 'accepted'
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	follows := make([]Follow, 0)
	for rows.Next() {
		var f Follow
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}
	return follows, rows.Err()
}

func (r *Repo) FollowedIDs(ctx context.Context, userID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.following.ids")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT friend_id FROM follow WHERE user_id = $1 AND status = 'accepted'
	`, userID)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("followed", len(ids)))
	return ids, nil
}

func (r *Repo) AddActivity(ctx context.Context, a *Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.activity.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO activity (
			id, user_id, user_name, user_photo_url, type, workout_name,
			duration, exercise_name, weight, message, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		a.ID, a.UserID, a.UserName, a.UserPhotoURL, a.Type, a.WorkoutName,
		a.Duration, a.ExerciseName, a.Weight, a.Message, a.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Feed returns the newest activities of everyone.
func (r *Repo) Feed(ctx context.Context, limit int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.feed")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanActivities(rows)
}

// FeedForUsers returns the newest activities of the given users.
func (r *Repo) FeedForUsers(ctx context.Context, userIDs []string, limit int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.feed.users")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity
		WHERE user_id = ANY($1)
		ORDER BY timestamp DESC
		LIMIT $2
	`, userIDs, limit)
	if err != nil {
		return nil, err
	}
	return scanActivities(rows)
}

const activityColumns = `id, user_id, user_name, user_photo_url, type, workout_name,
		duration, exercise_name, weight, message, timestamp`

func scanActivities(rows pgx.Rows) ([]Activity, error) {
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.UserName, &a.UserPhotoURL, &a.Type, &a.WorkoutName,
			&a.Duration, &a.ExerciseName, &a.Weight, &a.Message, &a.Timestamp,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
