package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termsOfKind(p Predicate, kind TermKind) []Term {
	var out []Term
	for _, t := range p.Terms {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func TestBuildAlwaysCarriesTenant(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{name: "no params", params: map[string]string{}},
		{name: "unknown keys only", params: map[string]string{"evil": "x", "company_id": "999"}},
		{name: "everything", params: map[string]string{"status": "pending", "search": "jane", "date_from": "2026-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(42, tt.params, ApplicationSchema)
			assert.Equal(t, uint(42), p.TenantID)
		})
	}
}

func TestBuildEqualityTerms(t *testing.T) {
	p := Build(1, map[string]string{
		"status":  "pending",
		"stage":   "",        // empty: no constraint
		"city":    "  ",      // whitespace: no constraint
		"job_id":  "7",
		"unknown": "ignored", // not in the schema
	}, ApplicationSchema)

	terms := termsOfKind(p, TermEquality)
	require.Len(t, terms, 2)
	// Terms are emitted in sorted parameter order.
	assert.Equal(t, Term{Kind: TermEquality, Field: "job_id", Value: "7"}, terms[0])
	assert.Equal(t, Term{Kind: TermEquality, Field: "status", Value: "pending"}, terms[1])
}

func TestBuildSearchTerm(t *testing.T) {
	p := Build(1, map[string]string{"search": "o'hara"}, ApplicationSchema)

	terms := termsOfKind(p, TermSearch)
	require.Len(t, terms, 1)
	assert.Equal(t, "o'hara", terms[0].Needle)
	assert.Equal(t, []string{"full_name", "email", "phone_number"}, terms[0].SearchFields)
}

func TestBuildDateRange(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		p := Build(1, map[string]string{"date_from": "2026-01-01", "date_to": "2026-01-31"}, JobSchema)
		terms := termsOfKind(p, TermDateRange)
		require.Len(t, terms, 1)
		require.NotNil(t, terms[0].From)
		require.NotNil(t, terms[0].To)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *terms[0].From)
		// Upper bound is pushed to the end of the day, inclusive.
		assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999999999, time.UTC), *terms[0].To)
	})

	t.Run("lower bound only", func(t *testing.T) {
		p := Build(1, map[string]string{"date_from": "2026-01-01T12:00:00Z"}, JobSchema)
		terms := termsOfKind(p, TermDateRange)
		require.Len(t, terms, 1)
		require.NotNil(t, terms[0].From)
		assert.Nil(t, terms[0].To)
	})

	t.Run("garbage ignored", func(t *testing.T) {
		p := Build(1, map[string]string{"date_from": "yesterday-ish"}, JobSchema)
		assert.Empty(t, termsOfKind(p, TermDateRange))
	})
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\%`, `\%\_\\\%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, EscapeLike(tt.in))
	}
}

func TestBuildDeterministic(t *testing.T) {
	params := func() map[string]string {
		return map[string]string{"status": "pending", "stage": "offer", "city": "Rabat"}
	}
	assert.Equal(t, Build(1, params(), ApplicationSchema), Build(1, params(), ApplicationSchema))
}
