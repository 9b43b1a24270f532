package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis channels the service publishes on.
const (
	EventJobCreated = "EVENT_JOB_CREATED"
	EventJobUpdated = "EVENT_JOB_UPDATED"
	EventJobRemoved = "EVENT_JOB_REMOVED"
	EventJobsDigest = "EVENT_JOBS_DIGEST"
)

// Event is the JSON payload published on the channel named by Type.
type Event struct {
	Type          string    `json:"type"`
	JobID         int       `json:"jobId,omitempty"`
	CompanyHandle string    `json:"companyHandle,omitempty"`
	Data          any       `json:"data,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher publishes events with Redis PUBLISH.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a Publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type, err)
	}
	if err := p.rdb.Publish(ctx, ev.Type, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}
