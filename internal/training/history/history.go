package history

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Reader is the read-only view of a user's training history the engine works on.
// Implementations are backed by external storage (see the store package).
type Reader interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	// ListSessions returns sessions with date >= since, ordered oldest first.
	ListSessions(ctx context.Context, userID string, since time.Time) ([]TrainingSession, error)
	// ListRecoveryCheckIns returns check-ins with date >= since, ordered oldest first.
	ListRecoveryCheckIns(ctx context.Context, userID string, since time.Time) ([]RecoveryCheckIn, error)
	// ListExerciseSets returns the logged sets of one exercise created at or after since.
	ListExerciseSets(ctx context.Context, userID, exerciseID string, since time.Time) ([]ExerciseSetRecord, error)
	GetExercise(ctx context.Context, userID, exerciseID string) (*ExerciseSlot, error)
}

// Day returns the UTC calendar day t falls in.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// DaysBetween returns the number of whole calendar days from -> to.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
