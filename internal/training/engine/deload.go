package engine

import (
	"context"
	"fmt"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	triggerAuto   = "auto"
	triggerManual = "manual"
)

// DeloadCheck is the deload decision together with what it was based on.
type DeloadCheck struct {
	deload.Decision
	Fatigue fatigue.Result       `json:"fatigue"`
	Active  *deload.ActiveDeload `json:"active,omitempty"`
}

// CheckDeloadNeeded decides whether the user should start a deload now. It never writes.
// While a deload is active no new one is recommended.
func (e *Engine) CheckDeloadNeeded(ctx context.Context, userID string) (_ *DeloadCheck, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.checkDeloadNeeded")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.checkDeloadNeeded(ctx, userID)
}

func (e *Engine) checkDeloadNeeded(ctx context.Context, userID string) (*DeloadCheck, error) {
	current, err := e.computeFatigue(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	active, err := e.deloads.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return &DeloadCheck{
			Decision: deload.Decision{
				Reason:       fmt.Sprintf("deload already active, %d days remaining", active.DaysRemaining),
				TriggerScore: current.Score,
			},
			Fatigue: *current,
			Active:  active,
		}, nil
	}

	since := e.today().AddDate(0, 0, -e.cfg.Deload.LogHistoryDays)
	logEntries, err := e.store.ListFatigueLog(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list fatigue log: %w", err)
	}

	decision := e.deloads.Decide(*current, logEntries)
	if decision.ShouldDeload {
		log.Debugf("deload recommended for user [%s]: %s", userID, decision.Reason)
	}
	return &DeloadCheck{
		Decision: decision,
		Fatigue:  *current,
	}, nil
}

// StartDeload starts a deload for the user. With nil params the current decision is used when it
// calls for a deload, otherwise a default manual volume deload is started.
// Fails with deload.ErrDeloadActive while another period is active.
func (e *Engine) StartDeload(ctx context.Context, userID string, params *deload.ManualParams) (_ *deload.Period, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.startDeload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	decision := deload.ManualDecision(deload.ManualParams{}, e.cfg.Deload)
	trigger := triggerManual
	if params != nil {
		decision = deload.ManualDecision(*params, e.cfg.Deload)
	} else {
		check, err := e.checkDeloadNeeded(ctx, userID)
		if err != nil {
			return nil, err
		}
		if check.ShouldDeload {
			decision = check.Decision
			trigger = triggerAuto
		}
	}
	span.SetAttributes(attribute.String("deload.trigger", trigger))

	period, err := e.deloads.Start(ctx, userID, decision)
	if err != nil {
		return nil, err
	}

	e.metrics.CounterDeloadsStarted.WithLabelValues(string(period.Type), trigger).Inc()
	return period, nil
}

// GetActiveDeload returns the active deload of the user, or nil.
func (e *Engine) GetActiveDeload(ctx context.Context, userID string) (_ *deload.ActiveDeload, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.getActiveDeload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.deloads.Active(ctx, userID)
}

// EndDeload ends the user's deload early and returns the ended period, nil if there was none.
func (e *Engine) EndDeload(ctx context.Context, userID string) (_ *deload.Period, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.endDeload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.deloads.EndActive(ctx, userID)
}

// CurrentModifiers returns the volume and intensity multipliers to apply to the user's
// training today: the active deload combined with the return-from-break reduction.
func (e *Engine) CurrentModifiers(ctx context.Context, userID string) (_ *deload.Modifiers, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.currentModifiers")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	mods, err := e.currentModifiers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &mods, nil
}

func (e *Engine) currentModifiers(ctx context.Context, userID string) (deload.Modifiers, error) {
	daysSince, err := e.daysSinceLastSession(ctx, userID)
	if err != nil {
		return deload.NoModifiers, err
	}
	return e.deloads.CurrentModifiers(ctx, userID, daysSince)
}
