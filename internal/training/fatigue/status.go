package fatigue

type Level string

const (
	LevelFresh    Level = "fresh"
	LevelNormal   Level = "normal"
	LevelElevated Level = "elevated"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

type Status struct {
	Level   Level  `json:"level"`
	Color   string `json:"color"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

var (
	statusFresh = Status{
		Level:   LevelFresh,
		Color:   "green",
		Message: "Fully recovered and ready to train",
		Action:  "Train as planned, a good day to push for progress",
	}
	statusNormal = Status{
		Level:   LevelNormal,
		Color:   "green",
		Message: "Normal training fatigue",
		Action:  "Continue with the planned program",
	}
	statusElevated = Status{
		Level:   LevelElevated,
		Color:   "yellow",
		Message: "Fatigue is building up",
		Action:  "Keep loads steady and prioritize sleep and nutrition",
	}
	statusHigh = Status{
		Level:   LevelHigh,
		Color:   "orange",
		Message: "High accumulated fatigue",
		Action:  "Reduce intensity or volume for the next sessions",
	}
	statusCritical = Status{
		Level:   LevelCritical,
		Color:   "red",
		Message: "Critical fatigue level",
		Action:  "Take a rest day or start a deload",
	}
)

// StatusForScore maps a fatigue score to its band. Bands are inclusive:
// 0-2 fresh, 3-4 normal, 5-6 elevated, 7-8 high, 9-10 critical.
// Scores outside [0,10] fall into the nearest band.
func StatusForScore(score int) Status {
	switch {
	case score <= 2:
		return statusFresh
	case score <= 4:
		return statusNormal
	case score <= 6:
		return statusElevated
	case score <= 8:
		return statusHigh
	default:
		return statusCritical
	}
}

// AtLeast reports whether level l is as severe as other, or more.
func (l Level) AtLeast(other Level) bool {
	return l.severity() >= other.severity()
}

func (l Level) severity() int {
	switch l {
	case LevelFresh:
		return 0
	case LevelNormal:
		return 1
	case LevelElevated:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return -1
	}
}
