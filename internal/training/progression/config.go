package progression

import (
	"errors"
	"fmt"
	"math"

	"github.com/2beens/gymcoach/internal/training/history"

	"go.uber.org/multierr"
)

const defaultStep = 2.5

type Config struct {
	// HistoryDays bounds the exercise sets read for the gate and the advisor.
	HistoryDays int `toml:"history_days"`

	HighFatigueScore int `toml:"high_fatigue_score"`

	// TargetRPE is the effort ceiling for a load increase, shared by the gate and the advisor.
	TargetRPE float64 `toml:"target_rpe"`

	// advisor
	RegressRPE               float64 `toml:"regress_rpe"`
	PlateauSessionsCompound  int     `toml:"plateau_sessions_compound"`
	PlateauSessionsIsolation int     `toml:"plateau_sessions_isolation"`
	CompoundIncrementKg      float64 `toml:"compound_increment_kg"`
	CompoundIncrementPct     float64 `toml:"compound_increment_pct"`
	IsolationIncrementKg     float64 `toml:"isolation_increment_kg"`
	RegressPct               float64 `toml:"regress_pct"`

	// EquipmentSteps is the smallest realistic load change per equipment type, in kg.
	EquipmentSteps map[string]float64 `toml:"equipment_steps"`
}

func DefaultConfig() Config {
	return Config{
		HistoryDays:              90,
		HighFatigueScore:         7,
		TargetRPE:                8,
		RegressRPE:               9.5,
		PlateauSessionsCompound:  5,
		PlateauSessionsIsolation: 4,
		CompoundIncrementKg:      2.5,
		CompoundIncrementPct:     0.025,
		IsolationIncrementKg:     1,
		RegressPct:               0.1,
		EquipmentSteps: map[string]float64{
			string(history.EquipmentBarbell):    2.5,
			string(history.EquipmentDumbbell):   2,
			string(history.EquipmentCable):      2.5,
			string(history.EquipmentMachine):    5,
			string(history.EquipmentKettlebell): 4,
			string(history.EquipmentBodyweight): 1.25,
		},
	}
}

func (c Config) Validate() error {
	var err error
	if c.HistoryDays <= 0 {
		err = multierr.Append(err, errors.New("progression: history_days must be greater than 0"))
	}
	if c.HighFatigueScore <= 0 {
		err = multierr.Append(err, errors.New("progression: high_fatigue_score must be greater than 0"))
	}
	if c.TargetRPE >= c.RegressRPE {
		err = multierr.Append(err, fmt.Errorf("progression: target_rpe (%v) must be below regress_rpe (%v)", c.TargetRPE, c.RegressRPE))
	}
	if c.PlateauSessionsCompound < 2 || c.PlateauSessionsIsolation < 2 {
		err = multierr.Append(err, errors.New("progression: plateau sessions must be at least 2"))
	}
	if c.CompoundIncrementKg <= 0 || c.IsolationIncrementKg <= 0 || c.CompoundIncrementPct < 0 {
		err = multierr.Append(err, errors.New("progression: increments must be positive"))
	}
	if c.RegressPct <= 0 || c.RegressPct >= 1 {
		err = multierr.Append(err, errors.New("progression: regress_pct must be in (0,1)"))
	}
	for equipment, step := range c.EquipmentSteps {
		if step <= 0 {
			err = multierr.Append(err, fmt.Errorf("progression: equipment step for %s must be positive", equipment))
		}
	}
	return err
}

// Step returns the load granularity of the equipment, the barbell step when unknown.
func (c Config) Step(equipment history.EquipmentType) float64 {
	if step, ok := c.EquipmentSteps[string(equipment)]; ok && step > 0 {
		return step
	}
	return defaultStep
}

func (c Config) plateauPatience(slot history.ExerciseSlot) int {
	if slot.IsIsolation() {
		return c.PlateauSessionsIsolation
	}
	return c.PlateauSessionsCompound
}

// Snap rounds the weight to the nearest multiple of step. The result is never negative.
func Snap(weight, step float64) float64 {
	if weight <= 0 {
		return 0
	}
	if step <= 0 {
		step = defaultStep
	}
	snapped := math.Round(weight/step) * step
	return math.Round(snapped*100) / 100
}

// targetReps is the top of the prescribed rep range.
func targetReps(slot history.ExerciseSlot) int {
	switch {
	case slot.RepRangeMax > 0:
		return slot.RepRangeMax
	case slot.RepRangeMin > 0:
		return slot.RepRangeMin
	default:
		return 1
	}
}
