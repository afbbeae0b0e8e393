package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

type trainingStore interface {
	history.Reader
	UpsertFatigueLog(ctx context.Context, entry fatigue.LogEntry) error
	ListFatigueLog(ctx context.Context, userID string, since time.Time) ([]fatigue.LogEntry, error)
	GetActiveDeloadPeriod(ctx context.Context, userID string) (*deload.Period, error)
	CreateDeloadPeriod(ctx context.Context, period deload.Period) error
	EndDeloadPeriod(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	CloseExpiredDeloadPeriods(ctx context.Context, today time.Time) (int64, error)
}

type seeder interface {
	AddUser(userID string)
	AddSession(s history.TrainingSession)
	AddCheckIn(c history.RecoveryCheckIn)
	AddExercise(slot history.ExerciseSlot)
	AddSet(set history.ExerciseSetRecord)
}

func f64(v float64) *float64 { return &v }
func intPtr(v int) *int      { return &v }

func day(daysAgo int) time.Time {
	return history.Day(testNow).AddDate(0, 0, -daysAgo)
}

func newPeriod(userID string, daysAgo int) deload.Period {
	return deload.Period{
		ID:                uuid.New(),
		UserID:            userID,
		Type:              deload.TypeVolume,
		Reason:            "test",
		StartDate:         day(daysAgo),
		DurationDays:      7,
		VolumeModifier:    0.7,
		IntensityModifier: 0.9,
		Active:            true,
		CreatedAt:         testNow,
	}
}

// runStoreContract checks the behavior every storage of the engine must share.
func runStoreContract(t *testing.T, s trainingStore, seed seeder) {
	ctx := context.Background()

	seed.AddUser("u1")
	seed.AddUser("u2")
	seed.AddSession(history.TrainingSession{ID: "s1", UserID: "u1", Date: day(10), Status: history.SessionStatusCompleted, AvgRPE: f64(7.5), TotalVolume: 5000})
	seed.AddSession(history.TrainingSession{ID: "s2", UserID: "u1", Date: day(2), Status: history.SessionStatusCompleted, TotalVolume: 4200})
	seed.AddSession(history.TrainingSession{ID: "s3", UserID: "u1", Date: day(0), Status: history.SessionStatusInProgress})
	seed.AddCheckIn(history.RecoveryCheckIn{UserID: "u1", Date: day(1), SleepHours: f64(6.5), EnergyLevel: intPtr(3)})
	seed.AddCheckIn(history.RecoveryCheckIn{UserID: "u1", Date: day(20), Soreness: intPtr(5)})
	seed.AddExercise(history.ExerciseSlot{
		ExerciseID: "squat", UserID: "u1", Name: "Squat",
		Category: history.CategoryCompound, Equipment: history.EquipmentBarbell,
		RepRangeMin: 3, RepRangeMax: 5, TargetSets: 5, RestSeconds: 180,
	})
	seed.AddSet(history.ExerciseSetRecord{SessionID: "s1", UserID: "u1", ExerciseID: "squat", Weight: 60, Reps: 5, IsWarmup: true, CreatedAt: day(10).Add(17 * time.Hour)})
	seed.AddSet(history.ExerciseSetRecord{SessionID: "s1", UserID: "u1", ExerciseID: "squat", Weight: 100, Reps: 5, RPE: f64(8), CreatedAt: day(10).Add(18 * time.Hour)})
	seed.AddSet(history.ExerciseSetRecord{SessionID: "s2", UserID: "u1", ExerciseID: "squat", Weight: 102.5, Reps: 4, CreatedAt: day(2).Add(18 * time.Hour)})

	t.Run("users", func(t *testing.T) {
		exists, err := s.UserExists(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = s.UserExists(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("sessions oldest first since the given day", func(t *testing.T) {
		sessions, err := s.ListSessions(ctx, "u1", day(30))
		require.NoError(t, err)
		require.Len(t, sessions, 3)
		assert.Equal(t, "s1", sessions[0].ID)
		assert.Equal(t, 7.5, *sessions[0].AvgRPE)
		assert.Nil(t, sessions[1].AvgRPE)
		assert.Equal(t, history.SessionStatusInProgress, sessions[2].Status)

		sessions, err = s.ListSessions(ctx, "u1", day(2))
		require.NoError(t, err)
		assert.Len(t, sessions, 2)

		sessions, err = s.ListSessions(ctx, "u2", day(30))
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("check-ins keep missing metrics", func(t *testing.T) {
		checkIns, err := s.ListRecoveryCheckIns(ctx, "u1", day(7))
		require.NoError(t, err)
		require.Len(t, checkIns, 1)
		assert.Equal(t, 6.5, *checkIns[0].SleepHours)
		assert.Equal(t, 3, *checkIns[0].EnergyLevel)
		assert.Nil(t, checkIns[0].Soreness)
		assert.Nil(t, checkIns[0].StressLevel)
	})

	t.Run("exercise sets", func(t *testing.T) {
		sets, err := s.ListExerciseSets(ctx, "u1", "squat", day(30))
		require.NoError(t, err)
		require.Len(t, sets, 3)
		assert.True(t, sets[0].IsWarmup)

		grouped := history.GroupBySession(sets)
		require.Len(t, grouped, 2)
		assert.Equal(t, "s2", grouped[0].SessionID)

		sets, err = s.ListExerciseSets(ctx, "u1", "bench", day(30))
		require.NoError(t, err)
		assert.Empty(t, sets)
	})

	t.Run("exercise slot", func(t *testing.T) {
		slot, err := s.GetExercise(ctx, "u1", "squat")
		require.NoError(t, err)
		assert.Equal(t, history.CategoryCompound, slot.Category)
		assert.Equal(t, 5, slot.RepRangeMax)

		_, err = s.GetExercise(ctx, "u1", "bench")
		assert.ErrorIs(t, err, history.ErrExerciseNotFound)
		_, err = s.GetExercise(ctx, "u2", "squat")
		assert.ErrorIs(t, err, history.ErrExerciseNotFound)
	})

	t.Run("fatigue log upserts by day", func(t *testing.T) {
		require.NoError(t, s.UpsertFatigueLog(ctx, fatigue.LogEntry{UserID: "u1", Date: day(1), Score: 4, Level: fatigue.LevelNormal}))
		require.NoError(t, s.UpsertFatigueLog(ctx, fatigue.LogEntry{UserID: "u1", Date: testNow, Score: 3, Level: fatigue.LevelNormal}))
		require.NoError(t, s.UpsertFatigueLog(ctx, fatigue.LogEntry{UserID: "u1", Date: testNow.Add(time.Hour), Score: 6, Level: fatigue.LevelElevated}))

		entries, err := s.ListFatigueLog(ctx, "u1", day(7))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, day(0), entries[0].Date.UTC())
		assert.Equal(t, 6, entries[0].Score)
		assert.Equal(t, fatigue.LevelElevated, entries[0].Level)
		assert.Equal(t, 4, entries[1].Score)
	})

	t.Run("single active deload period", func(t *testing.T) {
		none, err := s.GetActiveDeloadPeriod(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, none)

		first := newPeriod("u1", 3)
		require.NoError(t, s.CreateDeloadPeriod(ctx, first))

		second := newPeriod("u1", 0)
		assert.ErrorIs(t, s.CreateDeloadPeriod(ctx, second), deload.ErrDeloadActive)

		active, err := s.GetActiveDeloadPeriod(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, first.ID, active.ID)
		assert.Equal(t, 4, active.DaysRemaining(testNow))
		assert.InDelta(t, 0.7, active.VolumeModifier, 1e-9)

		// another user is independent
		require.NoError(t, s.CreateDeloadPeriod(ctx, newPeriod("u2", 0)))

		require.NoError(t, s.EndDeloadPeriod(ctx, first.ID, testNow))
		require.NoError(t, s.EndDeloadPeriod(ctx, first.ID, testNow.Add(time.Hour)))
		assert.ErrorIs(t, s.EndDeloadPeriod(ctx, uuid.New(), testNow), deload.ErrDeloadNotFound)

		active, err = s.GetActiveDeloadPeriod(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("out of range modifier is rejected", func(t *testing.T) {
		invalid := newPeriod("u1", 30)
		invalid.VolumeModifier = 1.5
		assert.ErrorIs(t, s.CreateDeloadPeriod(ctx, invalid), deload.ErrInvalidDeload)
	})

	t.Run("expired period is replaced and closed", func(t *testing.T) {
		expired := newPeriod("u1", 9)
		require.NoError(t, s.CreateDeloadPeriod(ctx, expired))

		fresh := newPeriod("u1", 0)
		require.NoError(t, s.CreateDeloadPeriod(ctx, fresh))

		active, err := s.GetActiveDeloadPeriod(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, fresh.ID, active.ID)

		closed, err := s.CloseExpiredDeloadPeriods(ctx, day(-7))
		require.NoError(t, err)
		// u1 fresh period and the u2 period both ran out a week from now
		assert.Equal(t, int64(2), closed)

		active, err = s.GetActiveDeloadPeriod(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("concurrent starts", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.CreateDeloadPeriod(ctx, newPeriod("u2", 0))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, deload.ErrDeloadActive)
		}
		assert.Equal(t, 1, succeeded)
	})
}
