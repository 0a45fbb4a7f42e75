// Package query turns untrusted client list parameters into
// tenant-scoped gorm predicates, allow-listed sort orders and bounded
// pages. Nothing in here ever fails on bad input: unknown keys are
// dropped, malformed values degrade to "no constraint". The one thing
// that can never be dropped is the tenant clause.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TermKind tags the recognized filter kinds. Client input is validated
// into these once, at the boundary; everything downstream is typed.
type TermKind int

const (
	TermEquality TermKind = iota
	TermSearch
	TermDateRange
)

// Term is one validated filter clause.
type Term struct {
	Kind TermKind

	// Equality
	Field string
	Value string

	// Search
	Needle       string
	SearchFields []string

	// Date range (either bound may be nil)
	From *time.Time
	To   *time.Time
}

// Predicate is a tenant-scoped filter over one entity collection.
// TenantID is always applied first and cannot be overridden by any
// client-supplied term.
type Predicate struct {
	TenantID uint
	Terms    []Term
}

// Schema describes what a given entity lets clients filter and sort
// on. Column names live only here, never in client input.
type Schema struct {
	// Equality maps a query-parameter name to its column.
	Equality map[string]string
	// SearchColumns are OR-ed together for the free-text search param.
	SearchColumns []string
	// DateColumn takes the date_from / date_to bounds.
	DateColumn string
	// Sort maps an allowed sort key to its column.
	Sort map[string]string
}

// Applications expose the candidate-facing scalar fields.
var ApplicationSchema = Schema{
	Equality: map[string]string{
		"status":  "status",
		"stage":   "stage",
		"job_id":  "job_id",
		"source":  "source",
		"country": "country",
		"city":    "city",
	},
	SearchColumns: []string{"full_name", "email", "phone_number"},
	DateColumn:    "created_at",
	Sort: map[string]string{
		"full_name":    "full_name",
		"created_at":   "created_at",
		"phone_number": "phone_number",
		"applied_at":   "applied_at",
		"rating":       "rating",
		"ai_score":     "ai_score",
	},
}

var JobSchema = Schema{
	Equality: map[string]string{
		"status":        "status",
		"department_id": "department_id",
		"country":       "country",
		"city":          "city",
	},
	SearchColumns: []string{"title", "description"},
	DateColumn:    "created_at",
	Sort: map[string]string{
		"title":      "title",
		"status":     "status",
		"created_at": "created_at",
	},
}

var DepartmentSchema = Schema{
	Equality: map[string]string{
		"country": "country",
		"city":    "city",
	},
	SearchColumns: []string{"name", "description"},
	DateColumn:    "created_at",
	Sort: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
}

// Build validates raw client parameters against schema and returns the
// predicate. Unrecognized keys and unparseable values are silently
// ignored; absent fields impose no constraint.
func Build(tenantID uint, params map[string]string, schema Schema) Predicate {
	p := Predicate{TenantID: tenantID}

	names := make([]string, 0, len(schema.Equality))
	for name := range schema.Equality {
		names = append(names, name)
	}
	sort.Strings(names) // stable term order, stable SQL
	for _, name := range names {
		if v := strings.TrimSpace(params[name]); v != "" {
			p.Terms = append(p.Terms, Term{Kind: TermEquality, Field: schema.Equality[name], Value: v})
		}
	}

	if needle := strings.TrimSpace(params["search"]); needle != "" && len(schema.SearchColumns) > 0 {
		p.Terms = append(p.Terms, Term{
			Kind:         TermSearch,
			Needle:       needle,
			SearchFields: schema.SearchColumns,
		})
	}

	from := parseDate(params["date_from"], false)
	to := parseDate(params["date_to"], true)
	if (from != nil || to != nil) && schema.DateColumn != "" {
		p.Terms = append(p.Terms, Term{Kind: TermDateRange, Field: schema.DateColumn, From: from, To: to})
	}

	return p
}

// Scope applies the predicate to a gorm chain. The tenant clause goes
// first, unconditionally.
func (p Predicate) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("company_id = ?", p.TenantID)
		for _, t := range p.Terms {
			switch t.Kind {
			case TermEquality:
				db = db.Where(fmt.Sprintf("%s = ?", t.Field), t.Value)
			case TermSearch:
				conds := make([]string, 0, len(t.SearchFields))
				args := make([]any, 0, len(t.SearchFields))
				needle := "%" + EscapeLike(t.Needle) + "%"
				for _, col := range t.SearchFields {
					conds = append(conds, col+` ILIKE ? ESCAPE '\'`)
					args = append(args, needle)
				}
				db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
			case TermDateRange:
				if t.From != nil {
					db = db.Where(t.Field+" >= ?", *t.From)
				}
				if t.To != nil {
					db = db.Where(t.Field+" <= ?", *t.To)
				}
			}
		}
		return db
	}
}

// EscapeLike neutralizes LIKE/ILIKE metacharacters in user-supplied
// search input so it matches literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// parseDate accepts RFC 3339 or plain dates. A plain date used as an
// upper bound is pushed to the end of that day so the bound stays
// inclusive. Unparseable input reads as "no bound".
func parseDate(s string, upper bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if upper {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}
	return nil
}
