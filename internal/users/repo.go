package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/kraft/internal/stats"
	"github.com/2beens/kraft/internal/telemetry/tracing"
	"github.com/2beens/kraft/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultSearchLimit = 20

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, u User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO app_user (id, email, display_name, username, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, streak
	`,
		u.ID, u.Email, u.DisplayName, u.Username, u.PhotoURL,
	).Scan(&u.CreatedAt, &u.Streak)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	u := &User{}
	err = r.db.QueryRow(ctx, `
		SELECT id, email, display_name, username, photo_url, created_at, streak, last_workout_date
		FROM app_user
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Username, &u.PhotoURL,
		&u.CreatedAt, &u.Streak, &u.LastWorkoutDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update changes the profile fields. Streak columns are owned by the stats
// service and left alone.
func (r *Repo) Update(ctx context.Context, u *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE app_user
		SET display_name = $2, username = $3, photo_url = $4
		WHERE id = $1
	`, u.ID, u.DisplayName, u.Username, u.PhotoURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Search matches display names containing query, ignoring case.
func (r *Repo) Search(ctx context.Context, query string, limit int) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.search")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("query", query))

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, email, display_name, username, photo_url, created_at, streak, last_workout_date
		FROM app_user
		WHERE strpos(lower(display_name), lower($1)) > 0
		ORDER BY display_name, id
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.DisplayName, &u.Username, &u.PhotoURL,
			&u.CreatedAt, &u.Streak, &u.LastWorkoutDate,
		); err != nil {
			return nil, err
		}
		found = append(found, u)
	}
	return found, rows.Err()
}

func (r *Repo) Directory(ctx context.Context) (_ []stats.DirectoryUser, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.directory")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT id, display_name, username, streak FROM app_user`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	directory := make([]stats.DirectoryUser, 0)
	for rows.Next() {
		var u stats.DirectoryUser
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.Username, &u.Streak); err != nil {
			return nil, err
		}
		directory = append(directory, u)
	}
	span.SetAttributes(attribute.Int("users", len(directory)))

	return directory, rows.Err()
}

func (r *Repo) StreakState(ctx context.Context, userID string) (_ *stats.StreakState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.streak.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	state := &stats.StreakState{}
	err = r.db.QueryRow(ctx, `
		SELECT streak, last_workout_date FROM app_user WHERE id = $1
	`, userID).Scan(&state.Streak, &state.LastWorkoutDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", stats.ErrProfileNotFound, userID)
		}
		return nil, err
	}
	return state, nil
}

func (r *Repo) UpdateStreak(ctx context.Context, userID string, streak int, lastWorkoutDate *time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.streak.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("streak", streak))

	tag, err := r.db.Exec(ctx, `
		UPDATE app_user
		SET streak = $2, last_workout_date = COALESCE($3::timestamptz, last_workout_date)
		WHERE id = $1
	`, userID, streak, lastWorkoutDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", stats.ErrProfileNotFound, userID)
	}
	return nil
}
