package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobs-service/internal/jobs"
)

func TestParseFilter_Empty(t *testing.T) {
	f, err := jobs.ParseFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, jobs.Filter{}, f)

	f, err = jobs.ParseFilter(map[string]string{"noFilter": "true"})
	require.NoError(t, err)
	assert.Equal(t, jobs.Filter{}, f)
}

func TestParseFilter_AllKeys(t *testing.T) {
	f, err := jobs.ParseFilter(map[string]string{
		"title":     "eng",
		"minSalary": "50000",
		"hasEquity": "true",
	})
	require.NoError(t, err)
	require.NotNil(t, f.Title)
	require.NotNil(t, f.MinSalary)
	assert.Equal(t, "eng", *f.Title)
	assert.Equal(t, 50000, *f.MinSalary)
	assert.True(t, f.HasEquity)
}

func TestParseFilter_HasEquityFalseAddsNothing(t *testing.T) {
	f, err := jobs.ParseFilter(map[string]string{"hasEquity": "false"})
	require.NoError(t, err)
	assert.False(t, f.HasEquity)
}

func TestParseFilter_UnknownKeys(t *testing.T) {
	_, err := jobs.ParseFilter(map[string]string{"foo": "1", "bar": "2", "title": "x"})
	var ve *jobs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid filters: bar, foo", ve.Msg)
}

func TestParseFilter_MalformedValues(t *testing.T) {
	cases := []map[string]string{
		{"minSalary": "abc"},
		{"minSalary": "-5"},
		{"minSalary": "3000000000"},
		{"hasEquity": "maybe"},
	}
	for _, c := range cases {
		_, err := jobs.ParseFilter(c)
		var ve *jobs.ValidationError
		assert.ErrorAs(t, err, &ve, "input %v", c)
	}
}

func TestJobUpdateFields_FixedOrder(t *testing.T) {
	title, salary, equity := "t", 3, "0.1"
	fields := jobs.JobUpdate{Equity: &equity, Title: &title, Salary: &salary}.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "title", fields[0].Name)
	assert.Equal(t, "salary", fields[1].Name)
	assert.Equal(t, "equity", fields[2].Name)

	assert.Empty(t, jobs.JobUpdate{}.Fields())
}

func TestEquityValidation(t *testing.T) {
	valid := []string{"0", "1", "0.5", "1.0", "1.000", "0.000001", ".25", "+0.5", "-0", "00.7"}
	for _, s := range valid {
		s := s
		err := jobs.NewJob{Title: "t", CompanyHandle: "c", Equity: &s}.Validate()
		assert.NoError(t, err, "equity %q", s)
	}

	invalid := []string{"", "abc", "-0.1", "1.01", "2", "10", "01.5", "1.0000000000000001",
		"NaN", "Inf", "1e-1", "0x1p-2", "0b1", "1/2", " 0.5", "."}
	for _, s := range invalid {
		s := s
		err := jobs.NewJob{Title: "t", CompanyHandle: "c", Equity: &s}.Validate()
		var ve *jobs.ValidationError
		assert.ErrorAs(t, err, &ve, "equity %q", s)
	}
}

func TestParseFilter_ZeroMinSalary(t *testing.T) {
	f, err := jobs.ParseFilter(map[string]string{"minSalary": "0"})
	require.NoError(t, err)
	require.NotNil(t, f.MinSalary)
	assert.Equal(t, 0, *f.MinSalary)

	f, err = jobs.ParseFilter(map[string]string{"minSalary": "2147483647"})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, *f.MinSalary)
}

func TestSalaryValidation_Int4Range(t *testing.T) {
	for _, v := range []int{0, 1, 2147483647} {
		v := v
		assert.NoError(t, jobs.NewJob{Title: "t", CompanyHandle: "c", Salary: &v}.Validate(), "salary %d", v)
		assert.NoError(t, jobs.JobUpdate{Salary: &v}.Validate(), "salary %d", v)
	}
	for _, v := range []int{-1, 2147483648, 3000000000} {
		v := v
		var ve *jobs.ValidationError
		assert.ErrorAs(t, jobs.NewJob{Title: "t", CompanyHandle: "c", Salary: &v}.Validate(), &ve, "salary %d", v)
		assert.ErrorAs(t, jobs.JobUpdate{Salary: &v}.Validate(), &ve, "salary %d", v)
	}
}
