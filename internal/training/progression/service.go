package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progression_test

type exerciseReader interface {
	GetExercise(ctx context.Context, userID, exerciseID string) (*history.ExerciseSlot, error)
	ListExerciseSets(ctx context.Context, userID, exerciseID string, since time.Time) ([]history.ExerciseSetRecord, error)
}

// Service reads an exercise's history and runs the progression gate and advisor on it.
type Service struct {
	reader exerciseReader
	cfg    Config
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewService(reader exerciseReader, cfg Config) *Service {
	return &Service{
		reader: reader,
		cfg:    cfg,
		Now:    time.Now,
	}
}

func (s *Service) Config() Config {
	return s.cfg
}

// ExerciseHistory returns the exercise slot and its working sets grouped per session, newest first.
func (s *Service) ExerciseHistory(ctx context.Context, userID, exerciseID string) (*history.ExerciseSlot, []history.SessionSets, error) {
	slot, err := s.reader.GetExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("get exercise [%s]: %w", exerciseID, err)
	}
	if slot == nil {
		return nil, nil, history.ErrExerciseNotFound
	}

	since := history.Day(s.Now()).AddDate(0, 0, -s.cfg.HistoryDays)
	sets, err := s.reader.ListExerciseSets(ctx, userID, exerciseID, since)
	if err != nil {
		return nil, nil, fmt.Errorf("list exercise sets [%s]: %w", exerciseID, err)
	}
	return slot, history.GroupBySession(sets), nil
}

func (s *Service) CheckGate(ctx context.Context, userID, exerciseID string, current fatigue.Result) (_ *GateResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.gate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	slot, sessions, err := s.ExerciseHistory(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	res := CheckGate(current, *slot, sessions, s.cfg)
	if !res.CanProgress {
		span.SetAttributes(attribute.String("gate.blocked_by", string(*res.BlockedBy)))
		log.Debugf("progression of [%s] for user [%s] blocked by %s: %s", exerciseID, userID, *res.BlockedBy, res.Reason)
	}
	return &res, nil
}

// Recommend runs the advisor on the exercise's history and holds a ready recommendation
// when the gate, evaluated against the current fatigue, does not allow progression.
func (s *Service) Recommend(ctx context.Context, userID, exerciseID string, current fatigue.Result) (_ *Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	slot, sessions, err := s.ExerciseHistory(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	rec := s.Advise(*slot, sessions, current)
	span.SetAttributes(attribute.String("progression.status", string(rec.Status)))
	if rec.BlockedBy != nil {
		span.SetAttributes(attribute.String("gate.blocked_by", string(*rec.BlockedBy)))
	}
	if rec.Status == StatusPlateau || rec.Status == StatusRegress {
		log.Debugf("exercise [%s] of user [%s]: %s at %.2f", exerciseID, userID, rec.Status, rec.CurrentWeight)
	}
	return &rec, nil
}

// Advise is the gated advice for already fetched history.
func (s *Service) Advise(slot history.ExerciseSlot, sessions []history.SessionSets, current fatigue.Result) Recommendation {
	gate := CheckGate(current, slot, sessions, s.cfg)
	return Gated(Advise(slot, sessions, s.cfg), gate)
}
