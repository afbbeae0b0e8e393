package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/cache"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"
	"github.com/2beens/gymcoach/internal/training/progression"
	"github.com/2beens/gymcoach/internal/training/suggestion"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Storage is everything the engine needs from the storage layer.
type Storage interface {
	history.Reader
	UpsertFatigueLog(ctx context.Context, entry fatigue.LogEntry) error
	ListFatigueLog(ctx context.Context, userID string, since time.Time) ([]fatigue.LogEntry, error)
	GetActiveDeloadPeriod(ctx context.Context, userID string) (*deload.Period, error)
	CreateDeloadPeriod(ctx context.Context, period deload.Period) error
	EndDeloadPeriod(ctx context.Context, id uuid.UUID, endedAt time.Time) error
}

type Config struct {
	Fatigue     fatigue.Config     `toml:"fatigue"`
	Deload      deload.Config      `toml:"deload"`
	Progression progression.Config `toml:"progression"`
	Suggestion  suggestion.Config  `toml:"suggestion"`
	// FatigueCacheTTLSeconds is how long a computed fatigue result is reused, 0 disables the cache.
	FatigueCacheTTLSeconds int `toml:"fatigue_cache_ttl_seconds"`
}

func DefaultConfig() Config {
	return Config{
		Fatigue:                fatigue.DefaultConfig(),
		Deload:                 deload.DefaultConfig(),
		Progression:            progression.DefaultConfig(),
		Suggestion:             suggestion.DefaultConfig(),
		FatigueCacheTTLSeconds: 300,
	}
}

func (c Config) Validate() error {
	err := multierr.Combine(
		c.Fatigue.Validate(),
		c.Deload.Validate(),
		c.Progression.Validate(),
		c.Suggestion.Validate(),
	)
	if c.FatigueCacheTTLSeconds < 0 {
		err = multierr.Append(err, errors.New("fatigue cache ttl cannot be negative"))
	}
	return err
}

type Params struct {
	Store  Storage
	Config Config
	// Metrics is optional, without it the engine counts into an unexported registry.
	Metrics *metrics.Manager
	// Cache is optional.
	Cache cache.Cache
}

// Engine is the entry point of the adaptive training logic. It holds no per user state,
// everything is recomputed from the storage on every call.
type Engine struct {
	store       Storage
	cfg         Config
	scorer      *fatigue.Scorer
	deloads     *deload.Manager
	progression *progression.Service
	cache       cache.Cache
	metrics     *metrics.Manager
	now         func() time.Time
}

func New(p Params) *Engine {
	if p.Metrics == nil {
		p.Metrics = metrics.NewDiscardManager()
	}
	e := &Engine{
		store:       p.Store,
		cfg:         p.Config,
		scorer:      fatigue.NewScorer(p.Store, p.Config.Fatigue),
		deloads:     deload.NewManager(p.Store, p.Config.Deload),
		progression: progression.NewService(p.Store, p.Config.Progression),
		cache:       p.Cache,
		metrics:     p.Metrics,
	}
	e.SetClock(time.Now)
	return e
}

// SetClock replaces the clock of the engine and of all its components.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.scorer.Now = now
	e.deloads.Now = now
	e.progression.Now = now
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) today() time.Time {
	return history.Day(e.now())
}

func (e *Engine) ensureUser(ctx context.Context, userID string) error {
	exists, err := e.store.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", history.ErrUserNotFound, userID)
	}
	return nil
}
