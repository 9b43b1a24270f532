package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"jobmate/jobs-service/internal/sqlutil"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("job not found")

// ErrNoData is returned by Update when no field is set.
var ErrNoData = sqlutil.ErrNoData

// NotFoundError reports a lookup, update or delete on a missing id.
type NotFoundError struct{ ID int }

func (e *NotFoundError) Error() string { return fmt.Sprintf("no job: %d", e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ConstraintError reports an integrity violation raised by PostgreSQL
// (SQLSTATE class 23).
type ConstraintError struct {
	Constraint string
	Msg        string
	Err        error
}

func (e *ConstraintError) Error() string { return e.Msg }

func (e *ConstraintError) Unwrap() error { return e.Err }

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// translateError turns integrity violations into ConstraintError and wraps
// everything else with op.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		msg := pgErr.Message
		switch pgErr.Code {
		case foreignKeyViolation:
			msg = "referenced company does not exist"
		case uniqueViolation:
			msg = "job already exists"
		}
		return &ConstraintError{Constraint: pgErr.ConstraintName, Msg: msg, Err: pgErr}
	}
	return fmt.Errorf("%s: %w", op, err)
}
