package progression

import (
	"fmt"

	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"
)

type Blocker string

const (
	BlockedByFatigue     Blocker = "fatigue"
	BlockedByPerformance Blocker = "performance"
	BlockedByRecovery    Blocker = "recovery"
)

// GateResult tells whether the load of an exercise may go up. BlockedBy is nil exactly when CanProgress is true.
type GateResult struct {
	CanProgress     bool     `json:"canProgress"`
	BlockedBy       *Blocker `json:"blockedBy"`
	Reason          string   `json:"reason"`
	SuggestedAction string   `json:"suggestedAction"`
}

func passed() GateResult {
	return GateResult{
		CanProgress:     true,
		Reason:          "All progression checks passed",
		SuggestedAction: "Increase the load in the next session",
	}
}

func blocked(by Blocker, reason, action string) GateResult {
	return GateResult{
		CanProgress:     false,
		BlockedBy:       &by,
		Reason:          reason,
		SuggestedAction: action,
	}
}

// CheckGate runs the fatigue, performance and recovery checks in that order and stops at the first failure.
// sessions are the exercise's working sets per session, newest first.
func CheckGate(current fatigue.Result, slot history.ExerciseSlot, sessions []history.SessionSets, cfg Config) GateResult {
	if current.Score >= cfg.HighFatigueScore {
		return blocked(BlockedByFatigue, current.Status.Message, current.Status.Action)
	}

	if res, ok := performanceGate(slot, sessions, cfg); !ok {
		return res
	}

	if current.Factors.RecoveryDebt >= fatigue.MaxRecoveryDebt {
		return blocked(
			BlockedByRecovery,
			"Recovery debt is at its maximum: poor sleep, low energy or high soreness",
			"Hold the current load until recovery improves",
		)
	}

	return passed()
}

func performanceGate(slot history.ExerciseSlot, sessions []history.SessionSets, cfg Config) (GateResult, bool) {
	if len(sessions) == 0 || len(sessions[0].Sets) == 0 {
		return blocked(
			BlockedByPerformance,
			"Not enough history for this exercise yet",
			"Log a few sessions at the current weight first",
		), false
	}

	reps := targetReps(slot)
	for _, set := range sessions[0].Sets {
		if set.Reps < reps {
			return blocked(
				BlockedByPerformance,
				fmt.Sprintf("Last session did not reach %d reps on every working set (%d reps at %.2f)", reps, set.Reps, set.Weight),
				fmt.Sprintf("Stay at the current weight until every set reaches %d reps", reps),
			), false
		}
		// a set without RPE is no signal
		if set.RPE != nil && *set.RPE > cfg.TargetRPE {
			return blocked(
				BlockedByPerformance,
				fmt.Sprintf("Last session reached the target reps, but at RPE %.1f", *set.RPE),
				fmt.Sprintf("Stay at the current weight until the sets feel like RPE %.0f or lower", cfg.TargetRPE),
			), false
		}
	}
	return GateResult{}, true
}
