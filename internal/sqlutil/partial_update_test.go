package sqlutil_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobs-service/internal/sqlutil"
)

func TestBuildSetClause_MapsColumns(t *testing.T) {
	clause, values, err := sqlutil.BuildSetClause(
		[]sqlutil.Field{
			{Name: "numEmployees", Value: 5},
			{Name: "logoUrl", Value: "awesome"},
		},
		map[string]string{
			"numEmployees": "num_employees",
			"logoUrl":      "logo_url",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, `"num_employees"=$1, "logo_url"=$2`, clause)
	assert.Equal(t, []any{5, "awesome"}, values)
}

func TestBuildSetClause_UnmappedNamesPassThrough(t *testing.T) {
	clause, values, err := sqlutil.BuildSetClause(
		[]sqlutil.Field{
			{Name: "title", Value: "engineer"},
			{Name: "companyHandle", Value: "c1"},
		},
		map[string]string{"companyHandle": "company_handle"},
	)
	require.NoError(t, err)
	assert.Equal(t, `"title"=$1, "company_handle"=$2`, clause)
	assert.Equal(t, []any{"engineer", "c1"}, values)
}

func TestBuildSetClause_NilColumnMap(t *testing.T) {
	clause, values, err := sqlutil.BuildSetClause([]sqlutil.Field{{Name: "salary", Value: 10}}, nil)
	require.NoError(t, err)
	assert.Equal(t, `"salary"=$1`, clause)
	assert.Equal(t, []any{10}, values)
}

func TestBuildSetClause_Empty(t *testing.T) {
	maps := []map[string]string{
		nil,
		{},
		{"numEmployees": "num_employees"},
	}
	for _, m := range maps {
		_, _, err := sqlutil.BuildSetClause(nil, m)
		assert.ErrorIs(t, err, sqlutil.ErrNoData)

		_, _, err = sqlutil.BuildSetClause([]sqlutil.Field{}, m)
		assert.ErrorIs(t, err, sqlutil.ErrNoData)
	}
}

func TestBuildSetClause_PlaceholdersFollowFieldOrder(t *testing.T) {
	for n := 1; n <= 12; n++ {
		fields := make([]sqlutil.Field, n)
		for i := range fields {
			fields[i] = sqlutil.Field{Name: fmt.Sprintf("f%d", i), Value: i * 10}
		}

		clause, values, err := sqlutil.BuildSetClause(fields, nil)
		require.NoError(t, err)
		require.Len(t, values, n)

		parts := strings.Split(clause, ", ")
		require.Len(t, parts, n)
		for i, p := range parts {
			assert.Equal(t, fmt.Sprintf(`"f%d"=$%d`, i, i+1), p)
			assert.Equal(t, i*10, values[i])
		}
	}
}

func TestQuoteIdent_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `"we""ird"`, sqlutil.QuoteIdent(`we"ird`))
	assert.Equal(t, `"plain"`, sqlutil.QuoteIdent("plain"))
}

func TestColumn(t *testing.T) {
	m := map[string]string{"logoUrl": "logo_url"}
	assert.Equal(t, "logo_url", sqlutil.Column("logoUrl", m))
	assert.Equal(t, "name", sqlutil.Column("name", m))
}
