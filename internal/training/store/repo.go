package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"
	"github.com/2beens/gymcoach/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Schema creates the tables the Repo works on. Safe to run more than once.
//
//go:embed schema.sql
var Schema string

// Repo is the PostgreSQL storage of the training engine.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ApplySchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.schema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *Repo) UserExists(ctx context.Context, userID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.user_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM training_user WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repo) ListSessions(ctx context.Context, userID string, since time.Time) (_ []history.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, session_date, status, avg_rpe, total_volume
			FROM training_session
			WHERE user_id = $1 AND session_date >= $2
			ORDER BY session_date, id;`,
		userID, history.Day(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []history.TrainingSession
	for rows.Next() {
		var s history.TrainingSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Status, &s.AvgRPE, &s.TotalVolume); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions", len(sessions)))
	return sessions, nil
}

func (r *Repo) ListRecoveryCheckIns(ctx context.Context, userID string, since time.Time) (_ []history.RecoveryCheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.checkins.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, checkin_date, sleep_hours, energy_level, soreness, stress_level
			FROM recovery_checkin
			WHERE user_id = $1 AND checkin_date >= $2
			ORDER BY checkin_date, id;`,
		userID, history.Day(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []history.RecoveryCheckIn
	for rows.Next() {
		var c history.RecoveryCheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date, &c.SleepHours, &c.EnergyLevel, &c.Soreness, &c.StressLevel); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *Repo) ListExerciseSets(ctx context.Context, userID, exerciseID string, since time.Time) (_ []history.ExerciseSetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, session_id, user_id, exercise_id, weight, reps, rpe, is_warmup, created_at
			FROM exercise_set
			WHERE user_id = $1 AND exercise_id = $2 AND created_at >= $3
			ORDER BY created_at, id;`,
		userID, exerciseID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []history.ExerciseSetRecord
	for rows.Next() {
		var s history.ExerciseSetRecord
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.UserID, &s.ExerciseID, &s.Weight, &s.Reps, &s.RPE, &s.IsWarmup, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

func (r *Repo) GetExercise(ctx context.Context, userID, exerciseID string) (_ *history.ExerciseSlot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.exercise.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	slot := &history.ExerciseSlot{}
	err = r.db.
		QueryRow(ctx, `
			SELECT user_id, exercise_id, name, category, equipment, rep_range_min, rep_range_max, target_sets, rest_seconds
			FROM exercise_slot
			WHERE user_id = $1 AND exercise_id = $2
		`, userID, exerciseID).
		Scan(
			&slot.UserID, &slot.ExerciseID, &slot.Name, &slot.Category, &slot.Equipment,
			&slot.RepRangeMin, &slot.RepRangeMax, &slot.TargetSets, &slot.RestSeconds,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, history.ErrExerciseNotFound
		}
		return nil, err
	}
	return slot, nil
}

// UpsertFatigueLog keeps one entry per user and day, the latest write wins.
func (r *Repo) UpsertFatigueLog(ctx context.Context, entry fatigue.LogEntry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.fatigue_log.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", entry.UserID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO fatigue_log (user_id, log_date, score, level)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, log_date) DO UPDATE SET score = EXCLUDED.score, level = EXCLUDED.level;`,
		entry.UserID, history.Day(entry.Date), entry.Score, entry.Level,
	)
	if pkg.IsForeignKeyViolationError(err) {
		return fmt.Errorf("%w: %s", history.ErrUserNotFound, entry.UserID)
	}
	return err
}

// ListFatigueLog returns the logged scores since the given day, newest first.
func (r *Repo) ListFatigueLog(ctx context.Context, userID string, since time.Time) (_ []fatigue.LogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.fatigue_log.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT user_id, log_date, score, level
			FROM fatigue_log
			WHERE user_id = $1 AND log_date >= $2
			ORDER BY log_date DESC;`,
		userID, history.Day(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []fatigue.LogEntry
	for rows.Next() {
		var e fatigue.LogEntry
		if err := rows.Scan(&e.UserID, &e.Date, &e.Score, &e.Level); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

const deloadColumns = `id, user_id, type, reason, start_date, duration_days, volume_modifier, intensity_modifier, active, ended_at, created_at`

func scanDeloadPeriod(row pgx.Row) (*deload.Period, error) {
	p := &deload.Period{}
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Type, &p.Reason, &p.StartDate, &p.DurationDays,
		&p.VolumeModifier, &p.IntensityModifier, &p.Active, &p.EndedAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// GetActiveDeloadPeriod returns the period flagged active, expired or not, or nil.
func (r *Repo) GetActiveDeloadPeriod(ctx context.Context, userID string) (_ *deload.Period, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deload.get_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	p, err := scanDeloadPeriod(r.db.QueryRow(
		ctx,
		`SELECT `+deloadColumns+` FROM deload_period WHERE user_id = $1 AND active`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// CreateDeloadPeriod closes the user's expired period, if any, and inserts the new one in a
// single transaction. The partial unique index on active periods rejects a second active row.
func (r *Repo) CreateDeloadPeriod(ctx context.Context, period deload.Period) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deload.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", period.UserID))
	span.SetAttributes(attribute.String("deload.id", period.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`UPDATE deload_period SET active = false, ended_at = $3
			WHERE user_id = $1 AND active AND start_date + duration_days <= $2::date;`,
		period.UserID, history.Day(period.StartDate), period.CreatedAt,
	); err != nil {
		return fmt.Errorf("close expired: %w", err)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO deload_period (`+deloadColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		period.ID, period.UserID, period.Type, period.Reason, history.Day(period.StartDate), period.DurationDays,
		period.VolumeModifier, period.IntensityModifier, period.Active, period.EndedAt, period.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return deload.ErrDeloadActive
		}
		if pkg.IsForeignKeyViolationError(err) {
			return fmt.Errorf("%w: %s", history.ErrUserNotFound, period.UserID)
		}
		if pkg.IsCheckViolationError(err) {
			return fmt.Errorf("%w: %w", deload.ErrInvalidDeload, err)
		}
		return err
	}
	return nil
}

func (r *Repo) EndDeloadPeriod(ctx context.Context, id uuid.UUID, endedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deload.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("deload.id", id.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE deload_period SET active = false, ended_at = COALESCE(ended_at, $2) WHERE id = $1;`,
		id, endedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deload.ErrDeloadNotFound
	}
	return nil
}

func (r *Repo) CloseExpiredDeloadPeriods(ctx context.Context, today time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deload.close_expired")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE deload_period SET active = false, ended_at = now()
			WHERE active AND start_date + duration_days <= $1::date;`,
		history.Day(today),
	)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("closed", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
