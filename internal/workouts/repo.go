package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/kraft/internal/stats"
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

func (r *Repo) Add(ctx context.Context, w *Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO workout (id, user_id, name, duration, exercises, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		w.ID, w.UserID, w.Name, w.Duration, w.Exercises, w.Date, w.Notes,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %s", users.ErrUserNotFound, w.UserID)
		}
		return nil, err
	}
	return w, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	w := &Workout{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, duration, exercises, date, notes
		FROM workout
		WHERE id = $1
	`, id).Scan(&w.ID, &w.UserID, &w.Name, &w.Duration, &w.Exercises, &w.Date, &w.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListForUser returns the newest workouts of the user first.
func (r *Repo) ListForUser(ctx context.Context, userID string, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, duration, exercises, date, notes
		FROM workout
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Workout, 0, limit)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Duration, &w.Exercises, &w.Date, &w.Notes); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *Repo) RecentWorkouts(ctx context.Context, userID string, limit int) (_ []stats.WorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.recent")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT user_id, date, jsonb_array_length(exercises)
		FROM workout
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (r *Repo) WorkoutsSince(ctx context.Context, since time.Time) (_ []stats.WorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.since")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("since", since.Format(time.RFC3339)))

	rows, err := r.db.Query(ctx, `
		SELECT user_id, date, jsonb_array_length(exercises)
		FROM workout
		WHERE date >= $1
	`, since)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]stats.WorkoutRecord, error) {
	defer rows.Close()

	records := make([]stats.WorkoutRecord, 0)
	for rows.Next() {
		var rec stats.WorkoutRecord
		if err := rows.Scan(&rec.UserID, &rec.Date, &rec.ExerciseCount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repo) CountSince(ctx context.Context, userID string, since time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout WHERE user_id = $1 AND date >= $2
	`, userID, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repo) AddTemplate(ctx context.Context, t *Template) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Exercises == nil {
		t.Exercises = []Exercise{}
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_template (id, user_id, name, exercises)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, t.ID, t.UserID, t.Name, t.Exercises).Scan(&t.CreatedAt)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %s", users.ErrUserNotFound, t.UserID)
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) GetTemplate(ctx context.Context, id uuid.UUID) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	t := &Template{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, exercises, created_at, last_used
		FROM workout_template
		WHERE id = $1
	`, id).Scan(&t.ID, &t.UserID, &t.Name, &t.Exercises, &t.CreatedAt, &t.LastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) ListTemplates(ctx context.Context, userID string) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, exercises, created_at, last_used
		FROM workout_template
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]Template, 0)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Exercises, &t.CreatedAt, &t.LastUsed); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *Repo) TouchTemplate(ctx context.Context, id uuid.UUID, usedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.touch")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `UPDATE workout_template SET last_used = $2 WHERE id = $1`, id, usedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *Repo) DeleteTemplate(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.template.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_template WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
