package deload

import (
	"errors"
	"fmt"

	"github.com/robfig/cron"
	"go.uber.org/multierr"
)

type Config struct {
	// decision
	ElevatedScore  int `toml:"elevated_score"`
	ElevatedRun    int `toml:"elevated_run"`
	CriticalScore  int `toml:"critical_score"`
	LogHistoryDays int `toml:"log_history_days"`

	// planned period
	DurationDays              int     `toml:"duration_days"`
	VolumeModifier            float64 `toml:"volume_modifier"`
	IntensityModifier         float64 `toml:"intensity_modifier"`
	CriticalVolumeModifier    float64 `toml:"critical_volume_modifier"`
	CriticalIntensityModifier float64 `toml:"critical_intensity_modifier"`

	// return from a break
	BreakDays          int     `toml:"break_days"`
	BreakIntensity     float64 `toml:"break_intensity"`
	LongBreakDays      int     `toml:"long_break_days"`
	LongBreakIntensity float64 `toml:"long_break_intensity"`

	Combine        CombineStrategy `toml:"combine"`
	ExpirySchedule string          `toml:"expiry_schedule"`
}

func DefaultConfig() Config {
	return Config{
		ElevatedScore:             5,
		ElevatedRun:               3,
		CriticalScore:             9,
		LogHistoryDays:            14,
		DurationDays:              7,
		VolumeModifier:            0.7,
		IntensityModifier:         0.9,
		CriticalVolumeModifier:    0.6,
		CriticalIntensityModifier: 0.85,
		BreakDays:                 14,
		BreakIntensity:            0.9,
		LongBreakDays:             28,
		LongBreakIntensity:        0.8,
		Combine:                   CombineMin,
		ExpirySchedule:            "0 0 3 * * *",
	}
}

func (c Config) Validate() error {
	var err error
	if c.ElevatedScore <= 0 || c.CriticalScore < c.ElevatedScore {
		err = multierr.Append(err, errors.New("deload: critical_score must not be below elevated_score"))
	}
	if c.ElevatedRun <= 0 {
		err = multierr.Append(err, errors.New("deload: elevated_run must be greater than 0"))
	}
	if c.LogHistoryDays < c.ElevatedRun {
		err = multierr.Append(err, fmt.Errorf("deload: log_history_days (%d) too short for elevated_run (%d)", c.LogHistoryDays, c.ElevatedRun))
	}
	if c.DurationDays <= 0 {
		err = multierr.Append(err, errors.New("deload: duration_days must be greater than 0"))
	}
	for name, m := range map[string]float64{
		"volume_modifier":             c.VolumeModifier,
		"intensity_modifier":          c.IntensityModifier,
		"critical_volume_modifier":    c.CriticalVolumeModifier,
		"critical_intensity_modifier": c.CriticalIntensityModifier,
		"break_intensity":             c.BreakIntensity,
		"long_break_intensity":        c.LongBreakIntensity,
	} {
		if !validModifier(m) {
			err = multierr.Append(err, fmt.Errorf("deload: %s must be in (0,1], got %v", name, m))
		}
	}
	if c.BreakDays <= 0 || c.LongBreakDays < c.BreakDays {
		err = multierr.Append(err, errors.New("deload: long_break_days must not be below break_days"))
	}
	if _, cErr := ParseCombineStrategy(string(c.Combine)); cErr != nil {
		err = multierr.Append(err, fmt.Errorf("deload: %w", cErr))
	}
	if c.ExpirySchedule != "" {
		if _, pErr := cron.Parse(c.ExpirySchedule); pErr != nil {
			err = multierr.Append(err, fmt.Errorf("deload: expiry_schedule: %w", pErr))
		}
	}
	return err
}
