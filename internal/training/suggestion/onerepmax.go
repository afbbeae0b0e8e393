package suggestion

import "math"

// brzyckiMaxReps is the rep count up to which the Brzycki formula holds,
// Epley extrapolates beyond it.
const brzyckiMaxReps = 12

// EstimateOneRepMax estimates the one-rep max from a set of weight x reps.
// It is the identity at one rep and 0 for non positive reps.
func EstimateOneRepMax(weight float64, reps int) float64 {
	switch {
	case reps <= 0 || weight <= 0:
		return 0
	case reps == 1:
		return weight
	case reps <= brzyckiMaxReps:
		return weight * 36 / float64(37-reps)
	default:
		return weight * (1 + float64(reps)/30)
	}
}

// EstimateOneRepMaxAtRPE counts the reps left in reserve (10 - RPE) as performed reps.
// An RPE outside (0,10] is ignored.
func EstimateOneRepMaxAtRPE(weight float64, reps int, rpe float64) float64 {
	if rpe <= 0 || rpe > 10 {
		return EstimateOneRepMax(weight, reps)
	}
	return EstimateOneRepMax(weight, reps+RepsInReserve(rpe))
}

func RepsInReserve(rpe float64) int {
	if rpe <= 0 || rpe >= 10 {
		return 0
	}
	return int(math.Round(10 - rpe))
}

// WeightForReps is the inverse of EstimateOneRepMax: the weight that can be lifted for reps.
func WeightForReps(oneRepMax float64, reps int) float64 {
	switch {
	case reps <= 0 || oneRepMax <= 0:
		return 0
	case reps == 1:
		return oneRepMax
	case reps <= brzyckiMaxReps:
		return oneRepMax * float64(37-reps) / 36
	default:
		return oneRepMax / (1 + float64(reps)/30)
	}
}
