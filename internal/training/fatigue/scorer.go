package fatigue

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/history"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=fatigue_test

type historyReader interface {
	ListSessions(ctx context.Context, userID string, since time.Time) ([]history.TrainingSession, error)
	ListRecoveryCheckIns(ctx context.Context, userID string, since time.Time) ([]history.RecoveryCheckIn, error)
}

type Scorer struct {
	reader historyReader
	cfg    Config
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewScorer(reader historyReader, cfg Config) *Scorer {
	return &Scorer{
		reader: reader,
		cfg:    cfg,
		Now:    time.Now,
	}
}

func (s *Scorer) Config() Config {
	return s.cfg
}

// Compute reads the user's history and scores the fatigue over the last `days` days
// (the configured lookback when days <= 0). It never writes anything.
func (s *Scorer) Compute(ctx context.Context, userID string, days int) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fatigue.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if days <= 0 {
		days = s.cfg.LookbackDays
	}
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.Int("days", days))

	now := s.Now()
	today := history.Day(now)

	// the volume baseline needs the weeks before the current one
	sessionDays := max(days, (s.cfg.BaselineWeeks+1)*7, s.cfg.StreakDays)
	sessions, err := s.reader.ListSessions(ctx, userID, today.AddDate(0, 0, -(sessionDays-1)))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	checkIns, err := s.reader.ListRecoveryCheckIns(ctx, userID, today.AddDate(0, 0, -(days-1)))
	if err != nil {
		return nil, fmt.Errorf("list recovery check-ins: %w", err)
	}

	result := Score(Input{
		UserID:     userID,
		Now:        now,
		WindowDays: days,
		Sessions:   sessions,
		CheckIns:   checkIns,
	}, s.cfg)

	span.SetAttributes(attribute.Int("fatigue.score", result.Score))
	log.Tracef("fatigue for user [%s]: score %d (%s), factors %+v", userID, result.Score, result.Status.Level, result.Factors)

	return &result, nil
}
