package history

import (
	"sort"
	"time"
)

type ExerciseCategory string

const (
	CategoryCompound  ExerciseCategory = "compound"
	CategoryIsolation ExerciseCategory = "isolation"
)

type EquipmentType string

const (
	EquipmentBarbell    EquipmentType = "barbell"
	EquipmentDumbbell   EquipmentType = "dumbbell"
	EquipmentCable      EquipmentType = "cable"
	EquipmentMachine    EquipmentType = "machine"
	EquipmentKettlebell EquipmentType = "kettlebell"
	EquipmentBodyweight EquipmentType = "bodyweight"
)

// ExerciseSlot is the prescription of an exercise in the user's program.
type ExerciseSlot struct {
	ExerciseID  string           `json:"exerciseId"`
	UserID      string           `json:"userId"`
	Name        string           `json:"name"`
	Category    ExerciseCategory `json:"category"`
	Equipment   EquipmentType    `json:"equipment"`
	RepRangeMin int              `json:"repRangeMin"`
	RepRangeMax int              `json:"repRangeMax"`
	TargetSets  int              `json:"targetSets"`
	RestSeconds int              `json:"restSeconds"`
}

func (e ExerciseSlot) IsIsolation() bool {
	return e.Category == CategoryIsolation
}

// ExerciseSetRecord is a single logged set.
type ExerciseSetRecord struct {
	ID         int       `json:"id"`
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	RPE        *float64  `json:"rpe"`
	IsWarmup   bool      `json:"isWarmup"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SessionSets holds the working (non-warmup) sets of one exercise within one session.
type SessionSets struct {
	SessionID string              `json:"sessionId"`
	Date      time.Time           `json:"date"`
	Sets      []ExerciseSetRecord `json:"sets"`
}

// TopSet returns the heaviest working set, ties broken by reps.
func (ss SessionSets) TopSet() (ExerciseSetRecord, bool) {
	if len(ss.Sets) == 0 {
		return ExerciseSetRecord{}, false
	}
	top := ss.Sets[0]
	for _, set := range ss.Sets[1:] {
		if set.Weight > top.Weight || (set.Weight == top.Weight && set.Reps > top.Reps) {
			top = set
		}
	}
	return top, true
}

// GroupBySession drops warmup sets and groups the rest per session, newest session first.
// Sets inside a session keep their logging order.
func GroupBySession(sets []ExerciseSetRecord) []SessionSets {
	sorted := make([]ExerciseSetRecord, 0, len(sets))
	for _, set := range sets {
		if set.IsWarmup {
			continue
		}
		sorted = append(sorted, set)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	index := make(map[string]int)
	var grouped []SessionSets
	for _, set := range sorted {
		i, ok := index[set.SessionID]
		if !ok {
			i = len(grouped)
			index[set.SessionID] = i
			grouped = append(grouped, SessionSets{
				SessionID: set.SessionID,
				Date:      set.CreatedAt,
			})
		}
		grouped[i].Sets = append(grouped[i].Sets, set)
	}

	// newest first
	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Date.After(grouped[j].Date)
	})
	return grouped
}

// TopSets returns the top set of every session, keeping the order of the given sessions.
func TopSets(sessions []SessionSets) []ExerciseSetRecord {
	tops := make([]ExerciseSetRecord, 0, len(sessions))
	for _, s := range sessions {
		if top, ok := s.TopSet(); ok {
			tops = append(tops, top)
		}
	}
	return tops
}
