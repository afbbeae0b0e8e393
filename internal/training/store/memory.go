package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. It mirrors the Repo semantics,
// including the single active deload period per user.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]struct{}
	sessions   map[string][]history.TrainingSession
	checkIns   map[string][]history.RecoveryCheckIn
	exercises  map[string]map[string]history.ExerciseSlot
	sets       map[string][]history.ExerciseSetRecord
	fatigueLog map[string]map[time.Time]fatigue.LogEntry
	deloads    map[uuid.UUID]deload.Period
	nextID     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]struct{}),
		sessions:   make(map[string][]history.TrainingSession),
		checkIns:   make(map[string][]history.RecoveryCheckIn),
		exercises:  make(map[string]map[string]history.ExerciseSlot),
		sets:       make(map[string][]history.ExerciseSetRecord),
		fatigueLog: make(map[string]map[time.Time]fatigue.LogEntry),
		deloads:    make(map[uuid.UUID]deload.Period),
	}
}

func (m *MemoryStore) AddUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = struct{}{}
}

func (m *MemoryStore) AddSession(s history.TrainingSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[s.UserID] = struct{}{}
	m.sessions[s.UserID] = append(m.sessions[s.UserID], s)
}

func (m *MemoryStore) AddCheckIn(c history.RecoveryCheckIn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	m.users[c.UserID] = struct{}{}
	m.checkIns[c.UserID] = append(m.checkIns[c.UserID], c)
}

func (m *MemoryStore) AddExercise(slot history.ExerciseSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[slot.UserID] = struct{}{}
	if m.exercises[slot.UserID] == nil {
		m.exercises[slot.UserID] = make(map[string]history.ExerciseSlot)
	}
	m.exercises[slot.UserID][slot.ExerciseID] = slot
}

func (m *MemoryStore) AddSet(set history.ExerciseSetRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	set.ID = m.nextID
	m.sets[set.UserID] = append(m.sets[set.UserID], set)
}

func (m *MemoryStore) UserExists(_ context.Context, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID]
	return ok, nil
}

func (m *MemoryStore) ListSessions(_ context.Context, userID string, since time.Time) ([]history.TrainingSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sinceDay := history.Day(since)
	var sessions []history.TrainingSession
	for _, s := range m.sessions[userID] {
		if !history.Day(s.Date).Before(sinceDay) {
			sessions = append(sessions, s)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions, nil
}

func (m *MemoryStore) ListRecoveryCheckIns(_ context.Context, userID string, since time.Time) ([]history.RecoveryCheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sinceDay := history.Day(since)
	var checkIns []history.RecoveryCheckIn
	for _, c := range m.checkIns[userID] {
		if !history.Day(c.Date).Before(sinceDay) {
			checkIns = append(checkIns, c)
		}
	}
	sort.SliceStable(checkIns, func(i, j int) bool {
		return checkIns[i].Date.Before(checkIns[j].Date)
	})
	return checkIns, nil
}

func (m *MemoryStore) ListExerciseSets(_ context.Context, userID, exerciseID string, since time.Time) ([]history.ExerciseSetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sets []history.ExerciseSetRecord
	for _, s := range m.sets[userID] {
		if s.ExerciseID == exerciseID && !s.CreatedAt.Before(since) {
			sets = append(sets, s)
		}
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt.Before(sets[j].CreatedAt)
	})
	return sets, nil
}

func (m *MemoryStore) GetExercise(_ context.Context, userID, exerciseID string) (*history.ExerciseSlot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.exercises[userID][exerciseID]
	if !ok {
		return nil, history.ErrExerciseNotFound
	}
	return &slot, nil
}

func (m *MemoryStore) UpsertFatigueLog(_ context.Context, entry fatigue.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fatigueLog[entry.UserID] == nil {
		m.fatigueLog[entry.UserID] = make(map[time.Time]fatigue.LogEntry)
	}
	entry.Date = history.Day(entry.Date)
	m.fatigueLog[entry.UserID][entry.Date] = entry
	return nil
}

func (m *MemoryStore) ListFatigueLog(_ context.Context, userID string, since time.Time) ([]fatigue.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sinceDay := history.Day(since)
	var entries []fatigue.LogEntry
	for day, e := range m.fatigueLog[userID] {
		if !day.Before(sinceDay) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (m *MemoryStore) activePeriod(userID string) (deload.Period, bool) {
	for _, p := range m.deloads {
		if p.UserID == userID && p.Active {
			return p, true
		}
	}
	return deload.Period{}, false
}

func (m *MemoryStore) GetActiveDeloadPeriod(_ context.Context, userID string) (*deload.Period, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.activePeriod(userID)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryStore) CreateDeloadPeriod(_ context.Context, period deload.Period) error {
	if err := period.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.activePeriod(period.UserID); ok {
		if existing.IsActive(period.StartDate) {
			return deload.ErrDeloadActive
		}
		endedAt := period.CreatedAt
		existing.Active = false
		existing.EndedAt = &endedAt
		m.deloads[existing.ID] = existing
	}

	period.StartDate = history.Day(period.StartDate)
	m.deloads[period.ID] = period
	return nil
}

func (m *MemoryStore) EndDeloadPeriod(_ context.Context, id uuid.UUID, endedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.deloads[id]
	if !ok {
		return deload.ErrDeloadNotFound
	}
	if !p.Active {
		return nil
	}
	p.Active = false
	p.EndedAt = &endedAt
	m.deloads[id] = p
	return nil
}

func (m *MemoryStore) CloseExpiredDeloadPeriods(_ context.Context, today time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var closed int64
	now := time.Now()
	for id, p := range m.deloads {
		if p.Active && !p.IsActive(today) {
			p.Active = false
			p.EndedAt = &now
			m.deloads[id] = p
			closed++
		}
	}
	return closed, nil
}
