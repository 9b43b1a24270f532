// Package jobs implements storage and transport for the job listings resource.
//
// Repository talks to PostgreSQL, Service layers events, metrics and tracing
// on top of it, and Handler exposes the REST routes:
//
//	GET    /jobs          → list jobs (title, minSalary, hasEquity filters)
//	POST   /jobs          → create a job
//	GET    /jobs/{id}     → fetch one job
//	PATCH  /jobs/{id}     → partial update (title, salary, equity)
//	DELETE /jobs/{id}     → delete a job
package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"jobmate/jobs-service/internal/sqlutil"
)

// Job is the external shape of a row in the jobs table.
type Job struct {
	ID            int     `json:"id" yaml:"id"`
	Title         string  `json:"title" yaml:"title"`
	Salary        *int    `json:"salary" yaml:"salary"`
	Equity        *string `json:"equity" yaml:"equity"`
	CompanyHandle string  `json:"companyHandle" yaml:"companyHandle"`
}

// NewJob is the input of Create.
type NewJob struct {
	Title         string  `json:"title" yaml:"title"`
	Salary        *int    `json:"salary,omitempty" yaml:"salary"`
	Equity        *string `json:"equity,omitempty" yaml:"equity"`
	CompanyHandle string  `json:"companyHandle" yaml:"companyHandle"`
}

// JobUpdate carries the fields a partial update may change. A nil field is
// left untouched unless its Clear flag is set, which writes NULL. The id and
// company handle are deliberately absent.
type JobUpdate struct {
	Title  *string
	Salary *int
	Equity *string

	ClearSalary bool
	ClearEquity bool
}

// UnmarshalJSON decodes a PATCH body. An explicit null clears salary or
// equity; unknown fields are rejected.
func (u *JobUpdate) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out JobUpdate
	for name, v := range raw {
		null := bytes.Equal(bytes.TrimSpace(v), []byte("null"))
		var err error
		switch name {
		case "title":
			if null {
				return fmt.Errorf("title cannot be null")
			}
			err = json.Unmarshal(v, &out.Title)
		case "salary":
			out.ClearSalary = null
			if !null {
				err = json.Unmarshal(v, &out.Salary)
			}
		case "equity":
			out.ClearEquity = null
			if !null {
				err = json.Unmarshal(v, &out.Equity)
			}
		default:
			return fmt.Errorf("json: unknown field %q", name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	*u = out
	return nil
}

// MarshalJSON renders the fields the update writes, cleared ones as null.
func (u JobUpdate) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	for _, f := range u.Fields() {
		m[f.Name] = f.Value
	}
	return json.Marshal(m)
}

// Store is the set of job operations the transports depend on. Repository
// and Service both implement it.
type Store interface {
	Create(ctx context.Context, data NewJob) (*Job, error)
	FindAll(ctx context.Context, f Filter) ([]Job, error)
	Get(ctx context.Context, id int) (*Job, error)
	Update(ctx context.Context, id int, data JobUpdate) (*Job, error)
	Remove(ctx context.Context, id int) error
}

// jobColumns maps external field names to columns where they differ.
var jobColumns = map[string]string{
	"companyHandle": "company_handle",
}

// Fields lists the fields u writes in a fixed order. A cleared field carries
// a nil value.
func (u JobUpdate) Fields() []sqlutil.Field {
	var fields []sqlutil.Field
	if u.Title != nil {
		fields = append(fields, sqlutil.Field{Name: "title", Value: *u.Title})
	}
	switch {
	case u.Salary != nil:
		fields = append(fields, sqlutil.Field{Name: "salary", Value: *u.Salary})
	case u.ClearSalary:
		fields = append(fields, sqlutil.Field{Name: "salary", Value: nil})
	}
	switch {
	case u.Equity != nil:
		fields = append(fields, sqlutil.Field{Name: "equity", Value: *u.Equity})
	case u.ClearEquity:
		fields = append(fields, sqlutil.Field{Name: "equity", Value: nil})
	}
	return fields
}

// Validate checks the create input before it reaches the database.
func (n NewJob) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Msg: "title is required"}
	}
	if strings.TrimSpace(n.CompanyHandle) == "" {
		return &ValidationError{Msg: "companyHandle is required"}
	}
	return validateValues(n.Salary, n.Equity)
}

// Validate checks the values present in u. An empty update is valid here;
// the clause builder reports it as ErrNoData.
func (u JobUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return &ValidationError{Msg: "title must not be empty"}
	}
	return validateValues(u.Salary, u.Equity)
}

// maxSalary is the largest value the INTEGER salary column holds.
const maxSalary = math.MaxInt32

func validateValues(salary *int, equity *string) error {
	if salary != nil && (*salary < 0 || *salary > maxSalary) {
		return &ValidationError{Msg: fmt.Sprintf("salary must be an integer between 0 and %d", maxSalary)}
	}
	if equity != nil {
		if err := validateEquity(*equity); err != nil {
			return err
		}
	}
	return nil
}

// plainDecimal matches the decimal notation PostgreSQL NUMERIC accepts,
// without exponents or base prefixes.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// validateEquity accepts decimal strings in [0, 1]. The digits are compared
// directly, so values like "1.0000000000000001" are rejected.
func validateEquity(s string) error {
	if !plainDecimal.MatchString(s) {
		return &ValidationError{Msg: fmt.Sprintf("equity %q is not a decimal number", s)}
	}

	neg := strings.HasPrefix(s, "-")
	intPart, frac, _ := strings.Cut(strings.TrimLeft(s, "+-"), ".")
	intPart = strings.TrimLeft(intPart, "0")
	zeroFrac := strings.Trim(frac, "0") == ""

	switch {
	case neg && (intPart != "" || !zeroFrac),
		len(intPart) > 1, intPart > "1",
		intPart == "1" && !zeroFrac:
		return &ValidationError{Msg: fmt.Sprintf("equity %q must be between 0 and 1", s)}
	}
	return nil
}
