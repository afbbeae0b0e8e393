package fatigue

import (
	"time"

	"github.com/2beens/gymcoach/internal/training/history"
)

// Factors are the five independent fatigue sub-scores, each bounded by its cap.
type Factors struct {
	RPECreep        int `json:"rpeCreep"`
	PerformanceDrop int `json:"performanceDrop"`
	RecoveryDebt    int `json:"recoveryDebt"`
	VolumeLoad      int `json:"volumeLoad"`
	Streak          int `json:"streak"`
}

func (f Factors) Sum() int {
	return f.RPECreep + f.PerformanceDrop + f.RecoveryDebt + f.VolumeLoad + f.Streak
}

// rated returns completed sessions that have an RPE, newest first.
func rated(sessions []history.TrainingSession) []history.TrainingSession {
	completed := history.CompletedNewestFirst(sessions)
	withRPE := make([]history.TrainingSession, 0, len(completed))
	for _, s := range completed {
		if s.HasRPE() {
			withRPE = append(withRPE, s)
		}
	}
	return withRPE
}

func avgRPE(sessions []history.TrainingSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sessions {
		sum += *s.AvgRPE
	}
	return sum / float64(len(sessions))
}

// splitRecentEarlier splits rated sessions into the most recent ones and the ones right before them.
func splitRecentEarlier(sessions []history.TrainingSession, cfg Config) (recent, earlier []history.TrainingSession) {
	withRPE := rated(sessions)
	if len(withRPE) <= cfg.RecentSessions {
		return withRPE, nil
	}
	recent = withRPE[:cfg.RecentSessions]
	earlier = withRPE[cfg.RecentSessions:]
	if len(earlier) > cfg.EarlierSessions {
		earlier = earlier[:cfg.EarlierSessions]
	}
	return recent, earlier
}

// RPECreep flags a rising session RPE: the recent sessions feel harder than the earlier ones.
// Sessions without RPE are ignored; fewer than MinCreepSessions rated sessions means no signal.
func RPECreep(sessions []history.TrainingSession, cfg Config) int {
	if len(rated(sessions)) < cfg.MinCreepSessions {
		return 0
	}
	recent, earlier := splitRecentEarlier(sessions, cfg)
	if len(earlier) == 0 {
		return 0
	}
	if avgRPE(recent)-avgRPE(earlier) > cfg.RPECreepMargin {
		return MaxRPECreep
	}
	return 0
}

// PerformanceDrop flags grinding: the recent sessions are rated very hard, regardless of trend.
func PerformanceDrop(sessions []history.TrainingSession, cfg Config) int {
	recent, _ := splitRecentEarlier(sessions, cfg)
	if len(recent) == 0 {
		return 0
	}
	avg := avgRPE(recent)
	switch {
	case avg > cfg.GrindingRPEHigh:
		return MaxPerformanceDrop
	case avg > cfg.GrindingRPEModerate:
		return 1
	default:
		return 0
	}
}

type recoverySignals struct {
	avgSleep, avgEnergy, avgSoreness float64
	hasSleep, hasEnergy, hasSoreness bool
}

func averageRecovery(checkIns []history.RecoveryCheckIn) recoverySignals {
	var sig recoverySignals
	var sleepN, energyN, sorenessN int
	for _, c := range checkIns {
		if c.SleepHours != nil {
			sig.avgSleep += *c.SleepHours
			sleepN++
		}
		if c.EnergyLevel != nil {
			sig.avgEnergy += float64(*c.EnergyLevel)
			energyN++
		}
		if c.Soreness != nil {
			sig.avgSoreness += float64(*c.Soreness)
			sorenessN++
		}
	}
	if sleepN > 0 {
		sig.avgSleep /= float64(sleepN)
		sig.hasSleep = true
	}
	if energyN > 0 {
		sig.avgEnergy /= float64(energyN)
		sig.hasEnergy = true
	}
	if sorenessN > 0 {
		sig.avgSoreness /= float64(sorenessN)
		sig.hasSoreness = true
	}
	return sig
}

// RecoveryDebt scores poor sleep, low energy and high soreness from the check-ins.
// Missing metrics contribute nothing. The sum is capped at MaxRecoveryDebt.
func RecoveryDebt(checkIns []history.RecoveryCheckIn, cfg Config) int {
	sig := averageRecovery(checkIns)

	debt := 0
	if sig.hasSleep {
		switch {
		case sig.avgSleep < cfg.SleepSevereHours:
			debt += 2
		case sig.avgSleep < cfg.SleepLowHours:
			debt++
		}
	}
	if sig.hasEnergy && sig.avgEnergy < cfg.EnergyLowBelow {
		debt++
	}
	if sig.hasSoreness && sig.avgSoreness > cfg.SorenessHighAbove {
		debt++
	}

	return min(debt, MaxRecoveryDebt)
}

// VolumeLoad compares the volume of the last 7 days to the average weekly volume
// of the weeks before (up to BaselineWeeks). No prior weeks means no baseline and no signal.
func VolumeLoad(sessions []history.TrainingSession, today time.Time, cfg Config) int {
	var current, prior float64
	weeksSpanned := 0
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		daysAgo := history.DaysBetween(s.Date, today)
		if daysAgo < 0 {
			continue
		}
		week := daysAgo / 7
		if week == 0 {
			current += s.TotalVolume
			continue
		}
		if week > cfg.BaselineWeeks {
			continue
		}
		prior += s.TotalVolume
		weeksSpanned = max(weeksSpanned, week)
	}

	if weeksSpanned == 0 || prior <= 0 {
		return 0
	}

	baseline := prior / float64(weeksSpanned)
	ratio := current / baseline
	switch {
	case ratio > cfg.VolumeRatioHigh:
		return MaxVolumeLoad
	case ratio > cfg.VolumeRatioModerate:
		return 1
	default:
		return 0
	}
}

// Streak counts consecutive calendar days, walking back from today, with at least one
// completed session. StreakDays or more in a row scores MaxStreak.
func Streak(sessions []history.TrainingSession, today time.Time, cfg Config) int {
	if StreakLength(sessions, today) >= cfg.StreakDays {
		return MaxStreak
	}
	return 0
}

// StreakLength returns the number of consecutive training days ending today.
func StreakLength(sessions []history.TrainingSession, today time.Time) int {
	days := make(map[time.Time]struct{})
	for _, s := range sessions {
		if s.IsCompleted() {
			days[history.Day(s.Date)] = struct{}{}
		}
	}

	streak := 0
	for day := history.Day(today); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}
