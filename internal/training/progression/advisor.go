package progression

import (
	"fmt"
	"math"

	"github.com/2beens/gymcoach/internal/training/history"
)

type Status string

const (
	StatusReady    Status = "ready"
	StatusMaintain Status = "maintain"
	StatusPlateau  Status = "plateau"
	StatusRegress  Status = "regress"
)

var plateauStrategies = []string{
	"change the rep range",
	"swap to a variation of the exercise",
	"take a deload week",
}

// Recommendation is the load advice for the next session of an exercise.
// SuggestedWeight equals CurrentWeight exactly when the status is maintain or plateau.
// BlockedBy is set when the progression gate held back a load increase.
type Recommendation struct {
	ExerciseID              string   `json:"exerciseId"`
	Status                  Status   `json:"status"`
	BlockedBy               *Blocker `json:"blockedBy,omitempty"`
	CurrentWeight           float64  `json:"currentWeight"`
	SuggestedWeight         float64  `json:"suggestedWeight"`
	SessionsAtCurrentWeight int      `json:"sessionsAtCurrentWeight"`
	Message                 string   `json:"message"`
	Strategies              []string `json:"strategies,omitempty"`
	TargetReps              int      `json:"targetReps"`
}

// Advise derives the recommendation from the exercise's sessions (newest first).
// The checks run in order: regress, plateau, ready, maintain.
func Advise(slot history.ExerciseSlot, sessions []history.SessionSets, cfg Config) Recommendation {
	rec := Recommendation{
		ExerciseID: slot.ExerciseID,
		Status:     StatusMaintain,
		TargetReps: targetReps(slot),
	}

	tops := history.TopSets(sessions)
	if len(tops) == 0 {
		rec.Message = "No working sets logged yet, start with a weight you can lift for the full rep range"
		return rec
	}

	last := tops[0]
	current := last.Weight
	step := cfg.Step(slot.Equipment)
	rec.CurrentWeight = current
	rec.SuggestedWeight = current
	rec.SessionsAtCurrentWeight = sessionsAtWeight(tops, current)

	switch {
	case current > 0 && last.RPE != nil && *last.RPE > cfg.RegressRPE:
		rec.Status = StatusRegress
		rec.SuggestedWeight = decrease(current, step, cfg)
		rec.Message = fmt.Sprintf("RPE %.1f at %.2f is too heavy, drop to %.2f", *last.RPE, current, rec.SuggestedWeight)
	case rec.SessionsAtCurrentWeight >= cfg.plateauPatience(slot):
		rec.Status = StatusPlateau
		rec.Strategies = plateauStrategies
		rec.Message = fmt.Sprintf(
			"Stuck at %.2f for %d sessions. Try to %s, %s or %s",
			current, rec.SessionsAtCurrentWeight, plateauStrategies[0], plateauStrategies[1], plateauStrategies[2],
		)
	case last.Reps >= rec.TargetReps && (last.RPE == nil || *last.RPE <= cfg.TargetRPE):
		rec.Status = StatusReady
		rec.SuggestedWeight = increase(current, step, slot, cfg)
		rec.Message = fmt.Sprintf("Hit %d reps at %.2f, go for %.2f next session", last.Reps, current, rec.SuggestedWeight)
	default:
		rec.Message = fmt.Sprintf("Stay at %.2f until you reach %d reps at RPE %.0f or lower", current, rec.TargetReps, cfg.TargetRPE)
	}

	return rec
}

// Gated applies the gate result to the advice: a ready recommendation is held at the current
// weight when the gate does not allow progression. Other statuses never add load and pass through.
func Gated(rec Recommendation, gate GateResult) Recommendation {
	if rec.Status != StatusReady || gate.CanProgress {
		return rec
	}
	rec.Status = StatusMaintain
	rec.SuggestedWeight = rec.CurrentWeight
	rec.BlockedBy = gate.BlockedBy
	rec.Message = fmt.Sprintf("Stay at %.2f. %s: %s", rec.CurrentWeight, gate.Reason, gate.SuggestedAction)
	return rec
}

// sessionsAtWeight counts the consecutive most recent top sets at the given weight.
func sessionsAtWeight(tops []history.ExerciseSetRecord, weight float64) int {
	n := 0
	for _, top := range tops {
		if math.Abs(top.Weight-weight) > 1e-9 {
			break
		}
		n++
	}
	return n
}

func increase(current, step float64, slot history.ExerciseSlot, cfg Config) float64 {
	inc := cfg.IsolationIncrementKg
	if !slot.IsIsolation() {
		inc = math.Max(cfg.CompoundIncrementKg, current*cfg.CompoundIncrementPct)
	}
	next := Snap(current+inc, step)
	if next <= current {
		next = Snap(current, step) + step
		if next <= current {
			next = current + step
		}
	}
	return math.Round(next*100) / 100
}

func decrease(current, step float64, cfg Config) float64 {
	dec := math.Max(step, current*cfg.RegressPct)
	next := Snap(current-dec, step)
	if next >= current {
		next = math.Max(0, current-step)
	}
	return math.Round(next*100) / 100
}
