package history

import (
	"sort"
	"time"
)

type SessionStatus string

const (
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusInProgress SessionStatus = "in_progress"
)

// TrainingSession is a single workout. Immutable once completed.
type TrainingSession struct {
	ID     string        `json:"id"`
	UserID string        `json:"userId"`
	Date   time.Time     `json:"date"`
	Status SessionStatus `json:"status"`
	// AvgRPE is nil when the user did not rate the session.
	AvgRPE *float64 `json:"avgRpe"`
	// TotalVolume is weight x reps summed over non-warmup sets.
	TotalVolume float64 `json:"totalVolume"`
}

func (s TrainingSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// HasRPE reports whether the session carries a usable RPE value.
func (s TrainingSession) HasRPE() bool {
	return s.AvgRPE != nil && *s.AvgRPE > 0
}

// RecoveryCheckIn is a daily self report. Every metric is optional.
type RecoveryCheckIn struct {
	ID          int       `json:"id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	SleepHours  *float64  `json:"sleepHours"`
	EnergyLevel *int      `json:"energyLevel"`
	Soreness    *int      `json:"soreness"`
	StressLevel *int      `json:"stressLevel"`
}

// CompletedNewestFirst filters out non completed sessions and sorts the rest by date, newest first.
func CompletedNewestFirst(sessions []TrainingSession) []TrainingSession {
	completed := make([]TrainingSession, 0, len(sessions))
	for _, s := range sessions {
		if s.IsCompleted() {
			completed = append(completed, s)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Date.After(completed[j].Date)
	})
	return completed
}

// LastCompleted returns the most recent completed session, if any.
func LastCompleted(sessions []TrainingSession) (TrainingSession, bool) {
	completed := CompletedNewestFirst(sessions)
	if len(completed) == 0 {
		return TrainingSession{}, false
	}
	return completed[0], true
}
