package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/cache"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// MaxTrendDays bounds the fatigue trend window.
const MaxTrendDays = 365

func fatigueCacheKey(userID string, days int, day time.Time) string {
	return fmt.Sprintf("fatigue:%s:%d:%s", userID, days, day.Format(time.DateOnly))
}

// ComputeFatigue scores the user's fatigue over the last `days` days, or the configured
// lookback when days <= 0. Results are cached per user, window and day when a cache is set.
func (e *Engine) ComputeFatigue(ctx context.Context, userID string, days int) (_ *fatigue.Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.computeFatigue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return e.computeFatigue(ctx, userID, days)
}

func (e *Engine) computeFatigue(ctx context.Context, userID string, days int) (*fatigue.Result, error) {
	if days <= 0 {
		days = e.cfg.Fatigue.LookbackDays
	}

	key := fatigueCacheKey(userID, days, e.today())
	if cached, ok := e.cachedFatigue(ctx, key); ok {
		return cached, nil
	}

	result, err := e.scorer.Compute(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	e.metrics.CounterFatigueComputations.Inc()
	e.metrics.HistFatigueScore.Observe(float64(result.Score))
	e.cacheFatigue(ctx, key, result)

	return result, nil
}

func (e *Engine) fatigueCacheTTL() time.Duration {
	return time.Duration(e.cfg.FatigueCacheTTLSeconds) * time.Second
}

func (e *Engine) cachedFatigue(ctx context.Context, key string) (*fatigue.Result, bool) {
	if e.cache == nil || e.fatigueCacheTTL() <= 0 {
		return nil, false
	}

	data, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Errorf("get fatigue [%s] from cache: %s", key, err)
		}
		e.metrics.CounterFatigueCache.WithLabelValues("miss").Inc()
		return nil, false
	}

	var result fatigue.Result
	if err := json.Unmarshal(data, &result); err != nil {
		log.Errorf("unmarshal cached fatigue [%s]: %s", key, err)
		e.metrics.CounterFatigueCache.WithLabelValues("miss").Inc()
		return nil, false
	}

	e.metrics.CounterFatigueCache.WithLabelValues("hit").Inc()
	return &result, true
}

func (e *Engine) cacheFatigue(ctx context.Context, key string, result *fatigue.Result) {
	if e.cache == nil || e.fatigueCacheTTL() <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal fatigue [%s]: %s", key, err)
		return
	}
	if err := e.cache.Set(ctx, key, data, e.fatigueCacheTTL()); err != nil {
		log.Errorf("set fatigue [%s] to cache: %s", key, err)
	}
}

// LogFatigue computes the fatigue and persists it as today's log entry,
// replacing an earlier entry of the same day.
func (e *Engine) LogFatigue(ctx context.Context, userID string, days int) (_ *fatigue.LogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.logFatigue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	result, err := e.computeFatigue(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	entry := fatigue.NewLogEntry(*result)
	if err := e.store.UpsertFatigueLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("upsert fatigue log: %w", err)
	}
	log.Debugf("fatigue of user [%s] logged for %s: %d", userID, entry.Date.Format(time.DateOnly), entry.Score)

	return &entry, nil
}

// FatigueTrend returns the logged fatigue scores of the last `days` days, newest first.
func (e *Engine) FatigueTrend(ctx context.Context, userID string, days int) (_ []fatigue.LogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.fatigueTrend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if days <= 0 {
		days = e.cfg.Fatigue.LookbackDays
	}
	days = min(days, MaxTrendDays)

	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := e.store.ListFatigueLog(ctx, userID, e.today().AddDate(0, 0, -(days-1)))
	if err != nil {
		return nil, fmt.Errorf("list fatigue log: %w", err)
	}
	if entries == nil {
		entries = []fatigue.LogEntry{}
	}
	return entries, nil
}

// daysSinceLastSession returns -1 when the user never completed a session.
func (e *Engine) daysSinceLastSession(ctx context.Context, userID string) (int, error) {
	today := e.today()
	recent, err := e.store.ListSessions(ctx, userID, today.AddDate(0, 0, -e.cfg.Deload.LongBreakDays))
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}
	if last, ok := history.LastCompleted(recent); ok {
		return max(0, history.DaysBetween(last.Date, today)), nil
	}

	// nothing recent, a long break or no training at all
	all, err := e.store.ListSessions(ctx, userID, time.Time{})
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}
	if last, ok := history.LastCompleted(all); ok {
		return max(0, history.DaysBetween(last.Date, today)), nil
	}
	return -1, nil
}
