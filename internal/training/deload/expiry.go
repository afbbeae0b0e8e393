package deload

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymcoach/internal/training/history"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

type expiryStore interface {
	// CloseExpiredDeloadPeriods marks inactive every active period whose last day is before today.
	CloseExpiredDeloadPeriods(ctx context.Context, today time.Time) (int64, error)
}

// ExpiryJob periodically closes deload periods that ran out of days, so the stored
// active flags converge to what Manager.Active already reports.
type ExpiryJob struct {
	store   expiryStore
	cron    *cron.Cron
	timeout time.Duration
	closed  prometheus.Counter
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewExpiryJob(store expiryStore, schedule string, timeout time.Duration) (*ExpiryJob, error) {
	job := &ExpiryJob{
		store:   store,
		cron:    cron.New(),
		timeout: timeout,
		Now:     time.Now,
	}
	if err := job.cron.AddFunc(schedule, job.run); err != nil {
		return nil, fmt.Errorf("schedule deload expiry [%s]: %w", schedule, err)
	}
	return job, nil
}

// WithClosedCounter counts the periods closed by the job on the given counter.
func (j *ExpiryJob) WithClosedCounter(c prometheus.Counter) *ExpiryJob {
	j.closed = c
	return j
}

func (j *ExpiryJob) Start() {
	log.Debugf("deload expiry job started")
	j.cron.Start()
}

func (j *ExpiryJob) Stop() {
	j.cron.Stop()
	log.Debugf("deload expiry job stopped")
}

func (j *ExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if _, err := j.RunOnce(ctx); err != nil {
		log.Errorf("deload expiry: %s", err)
	}
}

func (j *ExpiryJob) RunOnce(ctx context.Context) (int64, error) {
	closed, err := j.store.CloseExpiredDeloadPeriods(ctx, history.Day(j.Now()))
	if err != nil {
		return 0, fmt.Errorf("close expired deload periods: %w", err)
	}
	if j.closed != nil {
		j.closed.Add(float64(closed))
	}
	if closed > 0 {
		log.Infof("deload expiry: closed %d expired periods", closed)
	}
	return closed, nil
}
