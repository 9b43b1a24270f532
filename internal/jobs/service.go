package jobs

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jobmate/jobs-service/internal/metrics"
)

// Service decorates a Store with change events, metrics and tracing.
// It has no dependency on net/http and is shared by the REST and gRPC
// transports.
type Service struct {
	store  Store
	pub    Publisher
	log    *zap.Logger
	tracer trace.Tracer
}

// NewService returns a Service over store. pub may be nil, in which case no
// events are published.
func NewService(store Store, pub Publisher, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		pub:    pub,
		log:    log,
		tracer: otel.Tracer("jobmate/jobs-service/jobs"),
	}
}

// Create stores a job and publishes EVENT_JOB_CREATED.
func (s *Service) Create(ctx context.Context, data NewJob) (*Job, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Create",
		trace.WithAttributes(attribute.String("job.company_handle", data.CompanyHandle)))
	defer span.End()

	start := time.Now()
	job, err := s.store.Create(ctx, data)
	s.observe(span, "create", start, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventJobCreated, JobID: job.ID, CompanyHandle: job.CompanyHandle})
	return job, nil
}

// FindAll lists jobs matching f.
func (s *Service) FindAll(ctx context.Context, f Filter) ([]Job, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.FindAll")
	defer span.End()

	start := time.Now()
	list, err := s.store.FindAll(ctx, f)
	s.observe(span, "find_all", start, err)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("jobs.count", len(list)))
	return list, nil
}

// Get fetches one job.
func (s *Service) Get(ctx context.Context, id int) (*Job, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Get", trace.WithAttributes(attribute.Int("job.id", id)))
	defer span.End()

	start := time.Now()
	job, err := s.store.Get(ctx, id)
	s.observe(span, "get", start, err)
	return job, err
}

// Update partially updates a job and publishes EVENT_JOB_UPDATED.
func (s *Service) Update(ctx context.Context, id int, data JobUpdate) (*Job, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Update", trace.WithAttributes(attribute.Int("job.id", id)))
	defer span.End()

	start := time.Now()
	job, err := s.store.Update(ctx, id, data)
	s.observe(span, "update", start, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventJobUpdated, JobID: job.ID, CompanyHandle: job.CompanyHandle, Data: data})
	return job, nil
}

// Remove deletes a job and publishes EVENT_JOB_REMOVED.
func (s *Service) Remove(ctx context.Context, id int) error {
	ctx, span := s.tracer.Start(ctx, "jobs.Remove", trace.WithAttributes(attribute.Int("job.id", id)))
	defer span.End()

	start := time.Now()
	err := s.store.Remove(ctx, id)
	s.observe(span, "remove", start, err)
	if err != nil {
		return err
	}

	s.publish(ctx, Event{Type: EventJobRemoved, JobID: id})
	return nil
}

// publish is best effort: a failed event never fails the write it follows.
func (s *Service) publish(ctx context.Context, ev Event) {
	if s.pub == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := s.pub.Publish(ctx, ev); err != nil {
		metrics.EventsPublishFailedTotal.WithLabelValues(ev.Type).Inc()
		s.log.Warn("publish event failed", zap.String("type", ev.Type), zap.Int("jobId", ev.JobID), zap.Error(err))
	}
}

func (s *Service) observe(span trace.Span, op string, start time.Time, err error) {
	out := outcome(err)
	metrics.JobOperationsTotal.WithLabelValues(op, out).Inc()
	metrics.JobOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	span.SetAttributes(attribute.String("jobs.outcome", out))
	if out == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// outcome classifies err for metrics and spans.
func outcome(err error) string {
	var (
		ve *ValidationError
		ce *ConstraintError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &ve), errors.Is(err, ErrNoData):
		return "invalid"
	case errors.As(err, &ce):
		return "conflict"
	default:
		return "error"
	}
}
