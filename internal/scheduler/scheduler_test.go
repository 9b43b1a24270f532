package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jobmate/jobs-service/internal/jobs"
	"jobmate/jobs-service/internal/scheduler"
)

type fixedCounter struct {
	total, withEquity int
	err               error
}

func (c fixedCounter) Count(_ context.Context, f jobs.Filter) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if f.HasEquity {
		return c.withEquity, nil
	}
	return c.total, nil
}

type chanPublisher struct {
	mu     sync.Mutex
	events []jobs.Event
}

func (p *chanPublisher) Publish(_ context.Context, ev jobs.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *chanPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestRunOnce_PublishesDigest(t *testing.T) {
	pub := &chanPublisher{}
	s := scheduler.New(fixedCounter{total: 7, withEquity: 2}, pub, zaptest.NewLogger(t), 24)

	d, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scheduler.Digest{Total: 7, WithEquity: 2}, d)

	require.Len(t, pub.events, 1)
	assert.Equal(t, jobs.EventJobsDigest, pub.events[0].Type)
	assert.Equal(t, d, pub.events[0].Data)
}

func TestRunOnce_CountError(t *testing.T) {
	pub := &chanPublisher{}
	s := scheduler.New(fixedCounter{err: errors.New("db down")}, pub, zaptest.NewLogger(t), 24)

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, pub.count())
}

func TestStart_RunsImmediately(t *testing.T) {
	pub := &chanPublisher{}
	s := scheduler.New(fixedCounter{total: 1}, pub, zaptest.NewLogger(t), 6)

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return pub.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Stop()
}
