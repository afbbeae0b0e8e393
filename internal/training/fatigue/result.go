package fatigue

import (
	"time"

	"github.com/2beens/gymcoach/internal/training/history"
)

const (
	RecRPECreep        = "RPE trending up, consider reducing intensity"
	RecGrinding        = "Recent sessions are rated very hard, avoid grinding reps"
	RecReduceIntensity = "Lower the working weights slightly for the next sessions"
	RecRecovery        = "Recovery is lagging, prioritize sleep and rest days"
	RecVolume          = "Training volume is well above your usual weekly volume, consider fewer sets"
	RecStreak          = "Several training days in a row, schedule a rest day"
)

// Result is a computed fatigue assessment. It is a plain value, recomputed on demand.
type Result struct {
	UserID          string    `json:"userId"`
	Score           int       `json:"score"`
	Factors         Factors   `json:"factors"`
	Status          Status    `json:"status"`
	Recommendations []string  `json:"recommendations"`
	WindowDays      int       `json:"windowDays"`
	ComputedAt      time.Time `json:"computedAt"`
}

// Input is everything the score is computed from.
type Input struct {
	UserID string
	Now    time.Time
	// WindowDays bounds the sessions used for the RPE factors and the check-ins used for recovery.
	WindowDays int
	// Sessions may reach further back than the window, the volume baseline needs the prior weeks.
	Sessions []history.TrainingSession
	CheckIns []history.RecoveryCheckIn
}

// Score computes the fatigue result from the given history. Pure: same input, same result.
func Score(in Input, cfg Config) Result {
	today := history.Day(in.Now)
	window := in.WindowDays
	if window <= 0 {
		window = cfg.LookbackDays
	}

	windowSessions := make([]history.TrainingSession, 0, len(in.Sessions))
	for _, s := range in.Sessions {
		daysAgo := history.DaysBetween(s.Date, today)
		if daysAgo >= 0 && daysAgo < window {
			windowSessions = append(windowSessions, s)
		}
	}
	windowCheckIns := make([]history.RecoveryCheckIn, 0, len(in.CheckIns))
	for _, c := range in.CheckIns {
		daysAgo := history.DaysBetween(c.Date, today)
		if daysAgo >= 0 && daysAgo < window {
			windowCheckIns = append(windowCheckIns, c)
		}
	}

	factors := Factors{
		RPECreep:        RPECreep(windowSessions, cfg),
		PerformanceDrop: PerformanceDrop(windowSessions, cfg),
		RecoveryDebt:    RecoveryDebt(windowCheckIns, cfg),
		VolumeLoad:      VolumeLoad(in.Sessions, today, cfg),
		Streak:          Streak(in.Sessions, today, cfg),
	}

	score := min(MaxScore, factors.Sum())
	return Result{
		UserID:          in.UserID,
		Score:           score,
		Factors:         factors,
		Status:          StatusForScore(score),
		Recommendations: Recommendations(factors),
		WindowDays:      window,
		ComputedAt:      in.Now,
	}
}

// Recommendations lists the advice for every triggered factor, in factor order, without duplicates.
func Recommendations(f Factors) []string {
	var recs []string
	if f.RPECreep > 0 {
		recs = append(recs, RecRPECreep, RecReduceIntensity)
	}
	if f.PerformanceDrop > 0 {
		recs = append(recs, RecGrinding, RecReduceIntensity)
	}
	if f.RecoveryDebt > 0 {
		recs = append(recs, RecRecovery)
	}
	if f.VolumeLoad > 0 {
		recs = append(recs, RecVolume)
	}
	if f.Streak > 0 {
		recs = append(recs, RecStreak)
	}

	seen := make(map[string]struct{}, len(recs))
	unique := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
