// Package scheduler wires up the cron job that periodically publishes a
// digest of the job listings.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobmate/jobs-service/internal/jobs"
)

// Counter counts jobs matching a filter. *jobs.Repository satisfies it.
type Counter interface {
	Count(ctx context.Context, f jobs.Filter) (int, error)
}

// Digest is the payload of EVENT_JOBS_DIGEST.
type Digest struct {
	Total      int `json:"total"`
	WithEquity int `json:"withEquity"`
}

// Scheduler wraps robfig/cron and manages the digest loop.
type Scheduler struct {
	cron    *cron.Cron
	counter Counter
	pub     jobs.Publisher
	log     *zap.Logger
	spec    string // cron spec, e.g. "@every 24h"
	wg      sync.WaitGroup
}

// New creates a Scheduler that fires every intervalHours hours.
func New(counter Counter, pub jobs.Publisher, log *zap.Logger, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		counter: counter,
		pub:     pub,
		log:     log,
		spec:    fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. One digest is published
// right away so subscribers don't wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runDigest(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("digest cron started", zap.String("spec", s.spec))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runDigest(ctx)
	}()

	return nil
}

// Stop halts the scheduler and waits for running digests to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("digest cron stopped")
}

// RunOnce computes and publishes a single digest.
func (s *Scheduler) RunOnce(ctx context.Context) (Digest, error) {
	total, err := s.counter.Count(ctx, jobs.Filter{})
	if err != nil {
		return Digest{}, fmt.Errorf("count jobs: %w", err)
	}
	withEquity, err := s.counter.Count(ctx, jobs.Filter{HasEquity: true})
	if err != nil {
		return Digest{}, fmt.Errorf("count jobs with equity: %w", err)
	}

	d := Digest{Total: total, WithEquity: withEquity}
	ev := jobs.Event{Type: jobs.EventJobsDigest, Data: d, At: time.Now().UTC()}
	if err := s.pub.Publish(ctx, ev); err != nil {
		return d, err
	}
	return d, nil
}

func (s *Scheduler) runDigest(ctx context.Context) {
	d, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Warn("digest failed", zap.Error(err))
		return
	}
	s.log.Info("digest published", zap.Int("total", d.Total), zap.Int("withEquity", d.WithEquity))
}
