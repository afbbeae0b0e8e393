package engine

import (
	"context"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/progression"
	"github.com/2beens/gymcoach/internal/training/suggestion"

	"go.opentelemetry.io/otel/attribute"
)

// CheckProgressionGate checks, against the user's current fatigue, whether the exercise may increase load.
func (e *Engine) CheckProgressionGate(ctx context.Context, userID, exerciseID string) (_ *progression.GateResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.checkProgressionGate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	current, err := e.computeFatigue(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	res, err := e.progression.CheckGate(ctx, userID, exerciseID, *current)
	if err != nil {
		return nil, err
	}

	blockedBy := "none"
	if res.BlockedBy != nil {
		blockedBy = string(*res.BlockedBy)
	}
	e.metrics.CounterGateResults.WithLabelValues(blockedBy).Inc()

	return res, nil
}

// GetProgressionRecommendation advises the next load of the exercise. A load increase is only
// recommended when the progression gate passes for the user's current fatigue.
func (e *Engine) GetProgressionRecommendation(ctx context.Context, userID, exerciseID string) (_ *progression.Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.getProgressionRecommendation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	current, err := e.computeFatigue(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	rec, err := e.progression.Recommend(ctx, userID, exerciseID, *current)
	if err != nil {
		return nil, err
	}
	e.metrics.CounterRecommendations.WithLabelValues(string(rec.Status)).Inc()

	return rec, nil
}

// SuggestWeight prescribes the next session of the exercise: weight, reps, target RPE, sets and rest,
// with the user's current deload and break modifiers applied.
func (e *Engine) SuggestWeight(ctx context.Context, userID, exerciseID string) (_ *suggestion.WeightSuggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.suggestWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	slot, sessions, err := e.progression.ExerciseHistory(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	mods, err := e.currentModifiers(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := e.computeFatigue(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	in := suggestion.Input{
		Exercise:  *slot,
		Modifiers: mods,
		Step:      e.cfg.Progression.Step(slot.Equipment),
	}
	if len(sessions) > 0 {
		rec := e.progression.Advise(*slot, sessions, *current)
		in.Recommendation = &rec
		if top, ok := sessions[0].TopSet(); ok {
			in.LastTopSet = &top
		}
	}

	s := suggestion.Suggest(in, e.cfg.Suggestion)
	span.SetAttributes(attribute.Float64("suggestion.weight", s.Weight))
	return &s, nil
}
