package deload

import (
	"fmt"

	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"
)

const ReasonManual = "manual"

type Decision struct {
	ShouldDeload      bool    `json:"shouldDeload"`
	Reason            string  `json:"reason"`
	Type              Type    `json:"type,omitempty"`
	DurationDays      int     `json:"durationDays,omitempty"`
	VolumeModifier    float64 `json:"volumeModifier,omitempty"`
	IntensityModifier float64 `json:"intensityModifier,omitempty"`
	// TriggerScore is the fatigue score the decision was made on.
	TriggerScore int `json:"triggerScore"`
	// ElevatedRun is the number of consecutive elevated scores, the current one included.
	ElevatedRun int `json:"elevatedRun"`
}

// Decide evaluates the current fatigue result together with the logged scores (newest first).
// A single critical score triggers a combined deload, a run of elevated scores a volume deload.
// A log entry for the same day as the current result is superseded by it.
func Decide(current fatigue.Result, logEntries []fatigue.LogEntry, cfg Config) Decision {
	run := elevatedRun(current, logEntries, cfg)
	decision := Decision{
		TriggerScore: current.Score,
		ElevatedRun:  run,
	}

	switch {
	case current.Score >= cfg.CriticalScore:
		decision.ShouldDeload = true
		decision.Type = TypeCombined
		decision.Reason = fmt.Sprintf("critical fatigue score %d", current.Score)
		decision.VolumeModifier = cfg.CriticalVolumeModifier
		decision.IntensityModifier = cfg.CriticalIntensityModifier
	case run >= cfg.ElevatedRun:
		decision.ShouldDeload = true
		decision.Type = TypeVolume
		decision.Reason = fmt.Sprintf("fatigue elevated or higher for %d consecutive days", run)
		decision.VolumeModifier = cfg.VolumeModifier
		decision.IntensityModifier = cfg.IntensityModifier
	default:
		decision.Reason = fmt.Sprintf("fatigue score %d does not call for a deload", current.Score)
		return decision
	}

	decision.DurationDays = cfg.DurationDays
	return decision
}

// elevatedRun counts the elevated scores on consecutive calendar days ending with the current one.
// A missing day ends the run.
func elevatedRun(current fatigue.Result, logEntries []fatigue.LogEntry, cfg Config) int {
	if current.Score < cfg.ElevatedScore {
		return 0
	}
	prev := history.Day(current.ComputedAt)
	run := 1
	for _, e := range logEntries {
		gap := history.DaysBetween(e.Date, prev)
		if gap <= 0 {
			// today's entry is superseded by the current result
			continue
		}
		if gap > 1 || e.Score < cfg.ElevatedScore {
			break
		}
		run++
		prev = history.Day(e.Date)
	}
	return run
}

// ManualParams describe an explicitly requested deload. Zero values fall back to the configured defaults.
type ManualParams struct {
	Type              Type    `json:"type"`
	Reason            string  `json:"reason"`
	DurationDays      int     `json:"durationDays"`
	VolumeModifier    float64 `json:"volumeModifier"`
	IntensityModifier float64 `json:"intensityModifier"`
}

func ManualDecision(p ManualParams, cfg Config) Decision {
	d := Decision{
		ShouldDeload:      true,
		Type:              p.Type,
		Reason:            p.Reason,
		DurationDays:      p.DurationDays,
		VolumeModifier:    p.VolumeModifier,
		IntensityModifier: p.IntensityModifier,
	}
	if d.Type == "" {
		d.Type = TypeVolume
	}
	if d.Reason == "" {
		d.Reason = ReasonManual
	}
	if d.DurationDays == 0 {
		d.DurationDays = cfg.DurationDays
	}
	if d.VolumeModifier == 0 {
		d.VolumeModifier = cfg.VolumeModifier
	}
	if d.IntensityModifier == 0 {
		d.IntensityModifier = cfg.IntensityModifier
	}
	return d
}

func (d Decision) validate() error {
	switch {
	case !d.ShouldDeload:
		return fmt.Errorf("%w: decision does not call for a deload", ErrInvalidDeload)
	case !d.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDeload, d.Type)
	case d.DurationDays <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidDeload)
	case !validModifier(d.VolumeModifier) || !validModifier(d.IntensityModifier):
		return fmt.Errorf("%w: modifiers must be in (0,1]", ErrInvalidDeload)
	default:
		return nil
	}
}
