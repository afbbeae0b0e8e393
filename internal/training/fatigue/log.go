package fatigue

import (
	"time"

	"github.com/2beens/gymcoach/internal/training/history"
)

// LogEntry is a persisted fatigue score, one per user per day, used for trend charts
// and for the trailing history of the deload decision.
type LogEntry struct {
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
	Score  int       `json:"score"`
	Level  Level     `json:"level"`
}

func NewLogEntry(result Result) LogEntry {
	return LogEntry{
		UserID: result.UserID,
		Date:   history.Day(result.ComputedAt),
		Score:  result.Score,
		Level:  result.Status.Level,
	}
}
