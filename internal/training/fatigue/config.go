package fatigue

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Factor caps.
const (
	MaxRPECreep        = 2
	MaxPerformanceDrop = 2
	MaxRecoveryDebt    = 3
	MaxVolumeLoad      = 2
	MaxStreak          = 1

	MaxScore = 10
)

// Config holds the thresholds of the fatigue rules. None of these are learned,
// they are plain configuration and can be overridden from the TOML config.
type Config struct {
	LookbackDays int `toml:"lookback_days"`

	// rpe creep
	RecentSessions   int     `toml:"recent_sessions"`
	EarlierSessions  int     `toml:"earlier_sessions"`
	MinCreepSessions int     `toml:"min_creep_sessions"`
	RPECreepMargin   float64 `toml:"rpe_creep_margin"`

	// performance drop ("grinding")
	GrindingRPEHigh     float64 `toml:"grinding_rpe_high"`
	GrindingRPEModerate float64 `toml:"grinding_rpe_moderate"`

	// recovery debt
	SleepSevereHours  float64 `toml:"sleep_severe_hours"`
	SleepLowHours     float64 `toml:"sleep_low_hours"`
	EnergyLowBelow    float64 `toml:"energy_low_below"`
	SorenessHighAbove float64 `toml:"soreness_high_above"`

	// volume load
	VolumeRatioHigh     float64 `toml:"volume_ratio_high"`
	VolumeRatioModerate float64 `toml:"volume_ratio_moderate"`
	BaselineWeeks       int     `toml:"baseline_weeks"`

	// streak
	StreakDays int `toml:"streak_days"`
}

func DefaultConfig() Config {
	return Config{
		LookbackDays:        7,
		RecentSessions:      2,
		EarlierSessions:     3,
		MinCreepSessions:    3,
		RPECreepMargin:      0.5,
		GrindingRPEHigh:     8.5,
		GrindingRPEModerate: 8.0,
		SleepSevereHours:    5,
		SleepLowHours:       6,
		EnergyLowBelow:      3,
		SorenessHighAbove:   4,
		VolumeRatioHigh:     1.4,
		VolumeRatioModerate: 1.2,
		BaselineWeeks:       4,
		StreakDays:          5,
	}
}

func (c Config) Validate() error {
	var err error
	if c.LookbackDays < 1 {
		err = multierr.Append(err, errors.New("fatigue: lookback_days must be greater than 0"))
	}
	if c.RecentSessions < 1 || c.EarlierSessions < 1 {
		err = multierr.Append(err, errors.New("fatigue: recent_sessions and earlier_sessions must be greater than 0"))
	}
	if c.MinCreepSessions <= c.RecentSessions {
		err = multierr.Append(err, fmt.Errorf("fatigue: min_creep_sessions (%d) must exceed recent_sessions (%d)", c.MinCreepSessions, c.RecentSessions))
	}
	if c.GrindingRPEModerate > c.GrindingRPEHigh {
		err = multierr.Append(err, errors.New("fatigue: grinding_rpe_moderate must not exceed grinding_rpe_high"))
	}
	if c.SleepSevereHours > c.SleepLowHours {
		err = multierr.Append(err, errors.New("fatigue: sleep_severe_hours must not exceed sleep_low_hours"))
	}
	if c.VolumeRatioModerate > c.VolumeRatioHigh {
		err = multierr.Append(err, errors.New("fatigue: volume_ratio_moderate must not exceed volume_ratio_high"))
	}
	if c.BaselineWeeks < 1 {
		err = multierr.Append(err, errors.New("fatigue: baseline_weeks must be greater than 0"))
	}
	if c.StreakDays < 1 {
		err = multierr.Append(err, errors.New("fatigue: streak_days must be greater than 0"))
	}
	return err
}
