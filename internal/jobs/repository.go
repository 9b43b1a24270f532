package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"jobmate/jobs-service/internal/sqlutil"
)

// DBTX is the query capability the repository needs. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// jobProjection is the column list every read returns, in scanJob order.
const jobProjection = `id, title, salary, equity::text, company_handle`

// Repository runs one query per operation against db. It keeps no state and
// does not log.
type Repository struct {
	db DBTX
}

// NewRepository returns a Repository backed by db.
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// Create inserts a job and returns the stored row. A missing company yields
// a ConstraintError from the foreign key.
func (r *Repository) Create(ctx context.Context, data NewJob) (*Job, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobProjection,
		data.Title, data.Salary, data.Equity, data.CompanyHandle,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, translateError("create job", err)
	}
	return job, nil
}

// FindAllRaw validates raw filter keys before running FindAll. No query is
// issued when validation fails.
func (r *Repository) FindAllRaw(ctx context.Context, raw map[string]string) ([]Job, error) {
	f, err := ParseFilter(raw)
	if err != nil {
		return nil, err
	}
	return r.FindAll(ctx, f)
}

// FindAll returns the jobs matching f ordered by title, then id.
func (r *Repository) FindAll(ctx context.Context, f Filter) ([]Job, error) {
	query, args := findAllQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("findAll query: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("findAll scan: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("findAll rows: %w", err)
	}
	return jobs, nil
}

// Count returns how many jobs match f.
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	w := f.where()
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM jobs`+w.SQL(), w.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// Get returns the job with the given id or a NotFoundError.
func (r *Repository) Get(ctx context.Context, id int) (*Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobProjection+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Update applies a partial update and returns the stored row. Only the
// fields set in data are written.
func (r *Repository) Update(ctx context.Context, id int, data JobUpdate) (*Job, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	query, args, err := updateQuery(id, data)
	if err != nil {
		return nil, err
	}

	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, translateError("update job", err)
	}
	return job, nil
}

// Remove deletes the job with the given id or returns a NotFoundError.
func (r *Repository) Remove(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return translateError("remove job", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

func findAllQuery(f Filter) (string, []any) {
	w := f.where()
	return `SELECT ` + jobProjection + ` FROM jobs` + w.SQL() + ` ORDER BY title, id`, w.Args()
}

func updateQuery(id int, data JobUpdate) (string, []any, error) {
	setCols, values, err := sqlutil.BuildSetClause(data.Fields(), jobColumns)
	if err != nil {
		return "", nil, err
	}
	idIdx := sqlutil.Placeholder(len(values) + 1)

	query := `UPDATE jobs SET ` + setCols +
		` WHERE id = ` + idIdx +
		` RETURNING ` + jobProjection
	return query, append(values, id), nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	return &j, nil
}
