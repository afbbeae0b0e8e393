package deload

import (
	"fmt"
	"math"
)

// Modifiers scale the planned training: Volume multiplies the number of sets,
// Intensity multiplies the working weights. Both are in (0,1].
type Modifiers struct {
	Volume    float64 `json:"volumeModifier"`
	Intensity float64 `json:"intensityModifier"`
}

var NoModifiers = Modifiers{Volume: 1, Intensity: 1}

type CombineStrategy string

const (
	// CombineMin keeps the most conservative constraint per dimension.
	CombineMin CombineStrategy = "min"
	// CombineMultiply stacks the constraints.
	CombineMultiply CombineStrategy = "multiply"
)

func ParseCombineStrategy(s string) (CombineStrategy, error) {
	switch CombineStrategy(s) {
	case CombineMin, CombineMultiply:
		return CombineStrategy(s), nil
	case "":
		return CombineMin, nil
	default:
		return "", fmt.Errorf("unknown combine strategy: %q", s)
	}
}

// ModifiersFor maps the active deload, if any, to its modifiers.
func ModifiersFor(active *ActiveDeload) Modifiers {
	if active == nil {
		return NoModifiers
	}
	return active.Period.Modifiers()
}

// Combine merges modifiers coming from different sources. Unknown strategies fall back to min.
func Combine(strategy CombineStrategy, mods ...Modifiers) Modifiers {
	combined := NoModifiers
	for _, m := range mods {
		switch strategy {
		case CombineMultiply:
			combined.Volume *= m.Volume
			combined.Intensity *= m.Intensity
		default:
			combined.Volume = math.Min(combined.Volume, m.Volume)
			combined.Intensity = math.Min(combined.Intensity, m.Intensity)
		}
	}
	return clampModifiers(combined)
}

// ReturnFromBreak lowers the intensity after a long pause in training.
// A negative daysSinceLastSession means the user has no training history.
func ReturnFromBreak(daysSinceLastSession int, cfg Config) Modifiers {
	switch {
	case daysSinceLastSession < 0:
		return NoModifiers
	case daysSinceLastSession >= cfg.LongBreakDays:
		return Modifiers{Volume: 1, Intensity: cfg.LongBreakIntensity}
	case daysSinceLastSession >= cfg.BreakDays:
		return Modifiers{Volume: 1, Intensity: cfg.BreakIntensity}
	default:
		return NoModifiers
	}
}

func clampModifiers(m Modifiers) Modifiers {
	return Modifiers{
		Volume:    clampModifier(m.Volume),
		Intensity: clampModifier(m.Intensity),
	}
}

// modifiers below 0.01 would wipe the session out, treat them as the floor
func clampModifier(v float64) float64 {
	switch {
	case math.IsNaN(v) || v > 1:
		return 1
	case v < 0.01:
		return 0.01
	default:
		return v
	}
}
