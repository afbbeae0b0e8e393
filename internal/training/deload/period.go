package deload

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/training/history"

	"github.com/google/uuid"
)

var (
	ErrDeloadActive   = errors.New("deload period already active")
	ErrDeloadNotFound = errors.New("deload period not found")
	ErrInvalidDeload  = errors.New("invalid deload parameters")
)

type Type string

const (
	TypeVolume    Type = "volume"
	TypeIntensity Type = "intensity"
	TypeCombined  Type = "combined"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVolume, TypeIntensity, TypeCombined:
		return true
	default:
		return false
	}
}

// Period is a planned stretch of reduced training. Days remaining are always derived
// from the start date, never stored.
type Period struct {
	ID                uuid.UUID  `json:"id"`
	UserID            string     `json:"userId"`
	Type              Type       `json:"type"`
	Reason            string     `json:"reason"`
	StartDate         time.Time  `json:"startDate"`
	DurationDays      int        `json:"durationDays"`
	VolumeModifier    float64    `json:"volumeModifier"`
	IntensityModifier float64    `json:"intensityModifier"`
	Active            bool       `json:"active"`
	EndedAt           *time.Time `json:"endedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// DaysRemaining is the duration minus the days elapsed since the start, floored at 0.
func (p Period) DaysRemaining(today time.Time) int {
	elapsed := history.DaysBetween(p.StartDate, today)
	return max(0, p.DurationDays-max(0, elapsed))
}

// IsActive reports whether the period still applies today. A period that ran out
// of days is inactive even when it was never closed explicitly.
func (p Period) IsActive(today time.Time) bool {
	return p.Active && p.DaysRemaining(today) > 0
}

// EndDate is the first day the period no longer applies.
func (p Period) EndDate() time.Time {
	return history.Day(p.StartDate).AddDate(0, 0, p.DurationDays)
}

func (p Period) Modifiers() Modifiers {
	return Modifiers{
		Volume:    p.VolumeModifier,
		Intensity: p.IntensityModifier,
	}
}

type ActiveDeload struct {
	Period        Period    `json:"period"`
	DaysRemaining int       `json:"daysRemaining"`
	EndDate       time.Time `json:"endDate"`
}

// Validate checks the stored shape of a period, the same rules the training schema enforces.
func (p Period) Validate() error {
	switch {
	case !p.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDeload, p.Type)
	case p.DurationDays <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidDeload)
	case !validModifier(p.VolumeModifier) || !validModifier(p.IntensityModifier):
		return fmt.Errorf("%w: modifiers must be in (0,1]", ErrInvalidDeload)
	default:
		return nil
	}
}

func validModifier(m float64) bool {
	return m > 0 && m <= 1
}
