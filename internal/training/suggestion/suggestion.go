package suggestion

import (
	"errors"
	"math"

	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/history"
	"github.com/2beens/gymcoach/internal/training/progression"

	"go.uber.org/multierr"
)

type Basis string

const (
	// BasisProgression starts from the progression advisor's suggested weight.
	BasisProgression Basis = "progression"
	// BasisEstimate derives the weight from the estimated one-rep max of the last top set.
	BasisEstimate Basis = "estimate"
	// BasisNone means there is no history to suggest a weight from.
	BasisNone Basis = "none"
)

type Config struct {
	TargetRPE            float64 `toml:"target_rpe"`
	CompoundRestSeconds  int     `toml:"compound_rest_seconds"`
	IsolationRestSeconds int     `toml:"isolation_rest_seconds"`
	DefaultSets          int     `toml:"default_sets"`
}

func DefaultConfig() Config {
	return Config{
		TargetRPE:            8,
		CompoundRestSeconds:  150,
		IsolationRestSeconds: 90,
		DefaultSets:          3,
	}
}

func (c Config) Validate() error {
	var err error
	if c.TargetRPE <= 0 || c.TargetRPE > 10 {
		err = multierr.Append(err, errors.New("suggestion: target_rpe must be in (0,10]"))
	}
	if c.CompoundRestSeconds <= 0 || c.IsolationRestSeconds <= 0 {
		err = multierr.Append(err, errors.New("suggestion: rest seconds must be greater than 0"))
	}
	if c.DefaultSets <= 0 {
		err = multierr.Append(err, errors.New("suggestion: default_sets must be greater than 0"))
	}
	return err
}

type Input struct {
	Exercise history.ExerciseSlot
	// Recommendation is optional, without it (or without a logged weight in it)
	// the weight comes from the estimated one-rep max.
	Recommendation *progression.Recommendation
	// LastTopSet is the heaviest working set of the last session, if any.
	LastTopSet *history.ExerciseSetRecord
	Modifiers  deload.Modifiers
	// Step is the load granularity of the exercise's equipment.
	Step float64
}

type WeightSuggestion struct {
	ExerciseID         string  `json:"exerciseId"`
	Weight             float64 `json:"weight"`
	Reps               int     `json:"reps"`
	TargetRPE          float64 `json:"targetRpe"`
	Sets               int     `json:"sets"`
	RestSeconds        int     `json:"restSeconds"`
	EstimatedOneRepMax float64 `json:"estimatedOneRepMax"`
	Basis              Basis   `json:"basis"`
	VolumeModifier     float64 `json:"volumeModifier"`
	IntensityModifier  float64 `json:"intensityModifier"`
}

// Suggest turns the advice and the last performance into a concrete weight x reps x RPE
// target for the next session. The modifiers scale the weight and the number of sets;
// the rest time is taken from the exercise as prescribed.
func Suggest(in Input, cfg Config) WeightSuggestion {
	mods := in.Modifiers
	if mods == (deload.Modifiers{}) {
		mods = deload.NoModifiers
	}

	s := WeightSuggestion{
		ExerciseID:        in.Exercise.ExerciseID,
		TargetRPE:         cfg.TargetRPE,
		Sets:              scaledSets(in.Exercise.TargetSets, cfg.DefaultSets, mods.Volume),
		RestSeconds:       restSeconds(in.Exercise, cfg),
		Basis:             BasisNone,
		VolumeModifier:    mods.Volume,
		IntensityModifier: mods.Intensity,
	}
	s.Reps = targetReps(in)

	if in.LastTopSet != nil {
		top := in.LastTopSet
		if top.RPE != nil {
			s.EstimatedOneRepMax = EstimateOneRepMaxAtRPE(top.Weight, top.Reps, *top.RPE)
		} else {
			s.EstimatedOneRepMax = EstimateOneRepMax(top.Weight, top.Reps)
		}
		s.EstimatedOneRepMax = math.Round(s.EstimatedOneRepMax*100) / 100
	}

	var weight float64
	switch {
	// advice on a logged weight is followed as is, a regression down to no load included
	case in.Recommendation != nil && (in.Recommendation.CurrentWeight > 0 || in.Recommendation.SuggestedWeight > 0):
		weight = in.Recommendation.SuggestedWeight
		s.Basis = BasisProgression
	case s.EstimatedOneRepMax > 0:
		weight = WeightForReps(s.EstimatedOneRepMax, s.Reps+RepsInReserve(cfg.TargetRPE))
		s.Basis = BasisEstimate
	}

	s.Weight = progression.Snap(weight*mods.Intensity, in.Step)
	return s
}

func targetReps(in Input) int {
	lo, hi := in.Exercise.RepRangeMin, in.Exercise.RepRangeMax
	if lo <= 0 {
		lo = max(1, hi)
	}
	if hi < lo {
		hi = lo
	}

	if in.Recommendation != nil {
		switch in.Recommendation.Status {
		case progression.StatusReady, progression.StatusRegress:
			return lo
		}
	}
	if in.LastTopSet == nil {
		return lo
	}
	return min(hi, max(lo, in.LastTopSet.Reps+1))
}

func scaledSets(target, fallback int, volume float64) int {
	if target <= 0 {
		target = fallback
	}
	// tolerate float noise, 10 x 0.7 must stay 7 sets
	return max(1, int(math.Ceil(float64(target)*volume-1e-9)))
}

func restSeconds(slot history.ExerciseSlot, cfg Config) int {
	if slot.RestSeconds > 0 {
		return slot.RestSeconds
	}
	if slot.IsIsolation() {
		return cfg.IsolationRestSeconds
	}
	return cfg.CompoundRestSeconds
}
