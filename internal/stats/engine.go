// Package stats is the aggregate engine behind the dashboard: totals
// with month-over-month movement, dense monthly histograms, and
// categorical / geographic / parent rollups. One engine serves every
// entity type; the entity is whatever the injected Source counts.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
	"github.com/recruitbase/recruitbase-api/internal/geo"
)

// Source is the narrow read contract the engine needs from storage.
// Every method is tenant-scoped. Time windows are half-open
// [from, to); a zero time means the bound is absent.
type Source interface {
	Count(ctx context.Context, tenantID uint, from, to time.Time) (int64, error)
	CountByMonth(ctx context.Context, tenantID uint, year int) (map[time.Month]int64, error)
	GroupCount(ctx context.Context, tenantID uint, column string, from, to time.Time) (map[string]int64, error)
}

// Parent is the bucket a foreign key resolves into.
type Parent struct {
	ID    string
	Label string
}

// ResolveParents maps child bucket keys (e.g. job ids) to a parent
// bucket (e.g. the job's department). Keys that cannot be resolved are
// simply absent from the result.
type ResolveParents func(ctx context.Context, tenantID uint, keys []string) (map[string]Parent, error)

type Engine struct {
	src Source
}

func New(src Source) *Engine {
	return &Engine{src: src}
}

// TotalWithMonthlyDiff counts everything the tenant owns and compares
// the current calendar month against the previous one.
func (e *Engine) TotalWithMonthlyDiff(ctx context.Context, tenantID uint, now time.Time) (dtos.TotalStats, error) {
	total, err := e.src.Count(ctx, tenantID, time.Time{}, time.Time{})
	if err != nil {
		return dtos.TotalStats{}, fmt.Errorf("total count: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)
	nextStart := monthStart.AddDate(0, 1, 0)

	current, err := e.src.Count(ctx, tenantID, monthStart, nextStart)
	if err != nil {
		return dtos.TotalStats{}, fmt.Errorf("current month count: %w", err)
	}
	previous, err := e.src.Count(ctx, tenantID, prevStart, monthStart)
	if err != nil {
		return dtos.TotalStats{}, fmt.Errorf("previous month count: %w", err)
	}

	return dtos.TotalStats{Total: total, Diff: ComputeDiff(current, previous)}, nil
}

// MonthlyHistogram partitions the tenant's records created in year by
// calendar month. The result always has exactly 12 entries, January
// first, zero-filled.
func (e *Engine) MonthlyHistogram(ctx context.Context, tenantID uint, year int) ([]int64, error) {
	byMonth, err := e.src.CountByMonth(ctx, tenantID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly histogram: %w", err)
	}
	out := make([]int64, 12)
	for m, n := range byMonth {
		if m >= time.January && m <= time.December {
			out[m-1] = n
		}
	}
	return out, nil
}

// RollupBy groups the tenant's records by column within [from, to) and
// substitutes human-readable labels where the map has one; unknown
// codes pass through raw. Output order is deterministic: count
// descending, then bucket id ascending.
func (e *Engine) RollupBy(ctx context.Context, tenantID uint, column string, labels map[string]string, from, to time.Time) ([]dtos.RollupEntry, error) {
	counts, err := e.src.GroupCount(ctx, tenantID, column, from, to)
	if err != nil {
		return nil, fmt.Errorf("rollup by %s: %w", column, err)
	}
	entries := make([]dtos.RollupEntry, 0, len(counts))
	for code, n := range counts {
		label := code
		if l, ok := labels[code]; ok {
			label = l
		}
		entries = append(entries, dtos.RollupEntry{ID: code, Label: label, Value: n})
	}
	sortEntries(entries)
	return entries, nil
}

// RollupByParent is the two-stage join rollup: group by a foreign-key
// column, resolve each key to its parent bucket, then regroup by the
// parent. Records whose key does not resolve are excluded from this
// rollup (they still count everywhere else).
func (e *Engine) RollupByParent(ctx context.Context, tenantID uint, column string, resolve ResolveParents, from, to time.Time) ([]dtos.RollupEntry, error) {
	counts, err := e.src.GroupCount(ctx, tenantID, column, from, to)
	if err != nil {
		return nil, fmt.Errorf("rollup by %s: %w", column, err)
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	parents, err := resolve(ctx, tenantID, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve parents for %s: %w", column, err)
	}

	grouped := make(map[string]int64)
	labels := make(map[string]string)
	for key, n := range counts {
		parent, ok := parents[key]
		if !ok {
			continue // dangling foreign key
		}
		grouped[parent.ID] += n
		labels[parent.ID] = parent.Label
	}

	entries := make([]dtos.RollupEntry, 0, len(grouped))
	for id, n := range grouped {
		entries = append(entries, dtos.RollupEntry{ID: id, Label: labels[id], Value: n})
	}
	sortEntries(entries)
	return entries, nil
}

// GeoRollup groups by raw country text for the year, resolves each
// entry to an ISO alpha-2 code and drops what cannot be resolved.
// Total still reflects every record in the window, resolved or not.
func (e *Engine) GeoRollup(ctx context.Context, tenantID uint, year int) (dtos.GeoRollup, error) {
	from, to := YearWindow(year)
	counts, err := e.src.GroupCount(ctx, tenantID, "country", from, to)
	if err != nil {
		return dtos.GeoRollup{}, fmt.Errorf("geo rollup: %w", err)
	}

	var total int64
	resolved := make(map[string]int64)
	for raw, n := range counts {
		total += n
		code, ok := geo.Resolve(raw)
		if !ok {
			continue // unresolved entries are skipped, not errors
		}
		resolved[code] += n
	}

	out := dtos.GeoRollup{Total: total, Countries: make([]dtos.GeoEntry, 0, len(resolved))}
	for code, n := range resolved {
		out.Countries = append(out.Countries, dtos.GeoEntry{ID: code, Value: n})
	}
	sort.Slice(out.Countries, func(i, j int) bool {
		if out.Countries[i].Value != out.Countries[j].Value {
			return out.Countries[i].Value > out.Countries[j].Value
		}
		return out.Countries[i].ID < out.Countries[j].ID
	})
	return out, nil
}

// YearWindow is the half-open window covering one calendar year, UTC.
func YearWindow(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func sortEntries(entries []dtos.RollupEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].ID < entries[j].ID
	})
}
