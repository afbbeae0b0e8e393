package deload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=deload_test

type store interface {
	// GetActiveDeloadPeriod returns nil and no error when the user has no active period.
	GetActiveDeloadPeriod(ctx context.Context, userID string) (*Period, error)
	// CreateDeloadPeriod fails with ErrDeloadActive if the user already has an active period.
	CreateDeloadPeriod(ctx context.Context, period Period) error
	// EndDeloadPeriod fails with ErrDeloadNotFound for unknown ids, ending an ended period is a no-op.
	EndDeloadPeriod(ctx context.Context, id uuid.UUID, endedAt time.Time) error
}

type Manager struct {
	store store
	cfg   Config
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewManager(store store, cfg Config) *Manager {
	return &Manager{
		store: store,
		cfg:   cfg,
		Now:   time.Now,
	}
}

func (m *Manager) Config() Config {
	return m.cfg
}

func (m *Manager) Decide(current fatigue.Result, logEntries []fatigue.LogEntry) Decision {
	return Decide(current, logEntries, m.cfg)
}

// Active returns the user's active deload, or nil. A stored period whose days ran out
// is reported as inactive without touching the storage.
func (m *Manager) Active(ctx context.Context, userID string) (_ *ActiveDeload, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "deload.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	period, err := m.store.GetActiveDeloadPeriod(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active deload period: %w", err)
	}
	if period == nil {
		return nil, nil
	}

	today := history.Day(m.Now())
	if !period.IsActive(today) {
		log.Tracef("deload period [%s] of user [%s] expired on %s", period.ID, userID, period.EndDate().Format(time.DateOnly))
		return nil, nil
	}

	return &ActiveDeload{
		Period:        *period,
		DaysRemaining: period.DaysRemaining(today),
		EndDate:       period.EndDate(),
	}, nil
}

// Start creates a deload period for the user, starting today, from an approved decision.
func (m *Manager) Start(ctx context.Context, userID string, decision Decision) (_ *Period, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "deload.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := decision.validate(); err != nil {
		return nil, err
	}

	active, err := m.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("%w: period %s has %d days remaining", ErrDeloadActive, active.Period.ID, active.DaysRemaining)
	}

	now := m.Now()
	period := Period{
		ID:                uuid.New(),
		UserID:            userID,
		Type:              decision.Type,
		Reason:            decision.Reason,
		StartDate:         history.Day(now),
		DurationDays:      decision.DurationDays,
		VolumeModifier:    decision.VolumeModifier,
		IntensityModifier: decision.IntensityModifier,
		Active:            true,
		CreatedAt:         now,
	}
	// the storage keeps a single active row per user, a concurrent start loses here
	if err := m.store.CreateDeloadPeriod(ctx, period); err != nil {
		if errors.Is(err, ErrDeloadActive) {
			return nil, err
		}
		return nil, fmt.Errorf("create deload period: %w", err)
	}

	span.SetAttributes(attribute.String("deload.id", period.ID.String()))
	log.Debugf("deload [%s] started for user [%s]: %s, %d days", period.Type, userID, period.Reason, period.DurationDays)

	return &period, nil
}

func (m *Manager) StartManual(ctx context.Context, userID string, params ManualParams) (*Period, error) {
	return m.Start(ctx, userID, ManualDecision(params, m.cfg))
}

// End closes a period early. Ending an already ended period is not an error.
func (m *Manager) End(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "deload.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("deload.id", id.String()))

	if err := m.store.EndDeloadPeriod(ctx, id, m.Now()); err != nil {
		if errors.Is(err, ErrDeloadNotFound) {
			return err
		}
		return fmt.Errorf("end deload period: %w", err)
	}
	return nil
}

// EndActive ends the user's stored active period, if there is one, and returns it.
// Periods that already expired are closed as well.
func (m *Manager) EndActive(ctx context.Context, userID string) (*Period, error) {
	period, err := m.store.GetActiveDeloadPeriod(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active deload period: %w", err)
	}
	if period == nil {
		return nil, nil
	}
	if err := m.End(ctx, period.ID); err != nil {
		return nil, err
	}

	endedAt := m.Now()
	period.Active = false
	period.EndedAt = &endedAt
	return period, nil
}

// CurrentModifiers combines the active deload with the return-from-break reduction.
// A negative daysSinceLastSession means the user never trained.
func (m *Manager) CurrentModifiers(ctx context.Context, userID string, daysSinceLastSession int) (Modifiers, error) {
	active, err := m.Active(ctx, userID)
	if err != nil {
		return NoModifiers, err
	}
	return Combine(m.cfg.Combine, ModifiersFor(active), ReturnFromBreak(daysSinceLastSession, m.cfg)), nil
}
