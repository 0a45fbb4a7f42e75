package query

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"gorm.io/gorm"

	"github.com/recruitbase/recruitbase-api/internal/dtos"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ClampPage normalizes client paging input: page floors at 1, page
// size defaults and is capped server-side.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate runs the predicate and sort against the store and returns
// one page plus the total match count.
func Paginate[T any](db *gorm.DB, p Predicate, s SortSpec, page, pageSize int) (dtos.PageResult[T], error) {
	page, pageSize = ClampPage(page, pageSize)
	result := dtos.PageResult[T]{Page: page, PageSize: pageSize, Items: []T{}}

	var model T
	if err := db.Model(&model).Scopes(p.Scope()).Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	err := db.Model(&model).
		Scopes(p.Scope()).
		Order(s.OrderClause()).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("fetch page: %w", err)
	}

	result.TotalPages = int((result.Total + int64(pageSize) - 1) / int64(pageSize))
	return result, nil
}

// Params flattens a ListQuery into the raw parameter map Build
// consumes. Reserved keys coming from the dedicated fields win over
// anything a client smuggled into Filters.
func Params(q dtos.ListQuery) map[string]string {
	p := make(map[string]string, len(q.Filters)+3)
	for k, v := range q.Filters {
		p[k] = v
	}
	p["search"] = q.Search
	p["date_from"] = q.DateFrom
	p["date_to"] = q.DateTo
	return p
}

// Hash fingerprints a list query for cache keys. encoding/json sorts
// map keys, so equal queries always hash equal.
func Hash(q dtos.ListQuery) string {
	b, _ := json.Marshal(q)
	h := fnv.New64a()
	h.Write(b)
	return fmt.Sprintf("%016x", h.Sum64())
}
