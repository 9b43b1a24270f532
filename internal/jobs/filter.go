package jobs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"jobmate/jobs-service/internal/sqlutil"
)

// Recognized filter keys. NoFilterKey is accepted and ignored.
const (
	FilterTitle     = "title"
	FilterMinSalary = "minSalary"
	FilterHasEquity = "hasEquity"
	NoFilterKey     = "noFilter"
)

var allowedFilters = map[string]bool{
	FilterTitle:     true,
	FilterMinSalary: true,
	FilterHasEquity: true,
	NoFilterKey:     true,
}

// Filter narrows FindAll. The zero value matches every job.
type Filter struct {
	Title     *string // case-insensitive substring of the title
	MinSalary *int    // inclusive lower bound on salary, ignored when 0
	HasEquity bool    // only jobs with equity > 0 when true
}

// ParseFilter validates raw filter arguments (query string or RPC payload)
// and converts them into a Filter. Unknown keys are rejected as a whole.
func ParseFilter(raw map[string]string) (Filter, error) {
	var invalid []string
	for k := range raw {
		if !allowedFilters[k] {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Filter{}, &ValidationError{Msg: "invalid filters: " + strings.Join(invalid, ", ")}
	}

	var f Filter
	if title, ok := raw[FilterTitle]; ok && title != "" {
		f.Title = &title
	}
	if s, ok := raw[FilterMinSalary]; ok && s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > maxSalary {
			return Filter{}, &ValidationError{Msg: fmt.Sprintf("minSalary must be an integer between 0 and %d, got %q", maxSalary, s)}
		}
		f.MinSalary = &v
	}
	if s, ok := raw[FilterHasEquity]; ok && s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Filter{}, &ValidationError{Msg: fmt.Sprintf("hasEquity must be a boolean, got %q", s)}
		}
		f.HasEquity = v
	}
	return f, nil
}

// where builds the predicate list for f in a fixed order: title, minSalary,
// hasEquity.
func (f Filter) where() *sqlutil.Where {
	w := &sqlutil.Where{}
	if f.Title != nil && *f.Title != "" {
		w.Add("title ILIKE %s", "%"+sqlutil.EscapeLike(*f.Title)+"%")
	}
	// A zero minimum does not filter, so jobs without a salary stay listed.
	if f.MinSalary != nil && *f.MinSalary > 0 {
		w.Add("salary >= %s", *f.MinSalary)
	}
	if f.HasEquity {
		w.Add("equity > 0")
	}
	return w
}
