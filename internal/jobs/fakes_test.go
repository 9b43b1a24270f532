package jobs_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"jobmate/jobs-service/internal/jobs"
)

// memStore is an in-memory jobs.Store used by service and handler tests.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	rows    map[int]jobs.Job
	handles map[string]bool
	err     error // returned by every call when set
}

func newMemStore(handles ...string) *memStore {
	s := &memStore{nextID: 1, rows: map[int]jobs.Job{}, handles: map[string]bool{}}
	for _, h := range handles {
		s.handles[h] = true
	}
	return s
}

func (s *memStore) Create(_ context.Context, data jobs.NewJob) (*jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if !s.handles[data.CompanyHandle] {
		return nil, &jobs.ConstraintError{Constraint: "jobs_company_handle_fkey", Msg: "referenced company does not exist"}
	}
	j := jobs.Job{ID: s.nextID, Title: data.Title, Salary: data.Salary, Equity: data.Equity, CompanyHandle: data.CompanyHandle}
	s.rows[j.ID] = j
	s.nextID++
	return &j, nil
}

func (s *memStore) FindAll(_ context.Context, f jobs.Filter) ([]jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]jobs.Job, 0)
	for _, j := range s.rows {
		if f.Title != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Title)) {
			continue
		}
		if f.MinSalary != nil && *f.MinSalary > 0 && (j.Salary == nil || *j.Salary < *f.MinSalary) {
			continue
		}
		if f.HasEquity && (j.Equity == nil || *j.Equity == "0") {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (s *memStore) Get(_ context.Context, id int) (*jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	j, ok := s.rows[id]
	if !ok {
		return nil, &jobs.NotFoundError{ID: id}
	}
	return &j, nil
}

func (s *memStore) Update(_ context.Context, id int, data jobs.JobUpdate) (*jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if len(data.Fields()) == 0 {
		return nil, jobs.ErrNoData
	}
	j, ok := s.rows[id]
	if !ok {
		return nil, &jobs.NotFoundError{ID: id}
	}
	if data.Title != nil {
		j.Title = *data.Title
	}
	if data.Salary != nil || data.ClearSalary {
		j.Salary = data.Salary
	}
	if data.Equity != nil || data.ClearEquity {
		j.Equity = data.Equity
	}
	s.rows[id] = j
	return &j, nil
}

func (s *memStore) Remove(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return &jobs.NotFoundError{ID: id}
	}
	delete(s.rows, id)
	return nil
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []jobs.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev jobs.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
