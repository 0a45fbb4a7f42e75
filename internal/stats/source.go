package stats

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GormSource implements Source for one gorm model. The column passed
// to GroupCount comes from engine callers inside this codebase, never
// from clients, so it is interpolated directly.
type GormSource[T any] struct {
	db *gorm.DB
}

func NewGormSource[T any](db *gorm.DB) *GormSource[T] {
	return &GormSource[T]{db: db}
}

func (s *GormSource[T]) scoped(ctx context.Context, tenantID uint, from, to time.Time) *gorm.DB {
	var model T
	q := s.db.WithContext(ctx).Model(&model).Where("company_id = ?", tenantID)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	return q
}

func (s *GormSource[T]) Count(ctx context.Context, tenantID uint, from, to time.Time) (int64, error) {
	var n int64
	if err := s.scoped(ctx, tenantID, from, to).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *GormSource[T]) CountByMonth(ctx context.Context, tenantID uint, year int) (map[time.Month]int64, error) {
	from, to := YearWindow(year)
	var rows []struct {
		Month int
		Count int64
	}
	err := s.scoped(ctx, tenantID, from, to).
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[time.Month]int64, len(rows))
	for _, r := range rows {
		out[time.Month(r.Month)] = r.Count
	}
	return out, nil
}

func (s *GormSource[T]) GroupCount(ctx context.Context, tenantID uint, column string, from, to time.Time) (map[string]int64, error) {
	var rows []struct {
		Bucket string
		Count  int64
	}
	err := s.scoped(ctx, tenantID, from, to).
		Select(fmt.Sprintf("COALESCE(%s::text, '') AS bucket, COUNT(*) AS count", column)).
		Group("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Bucket] = r.Count
	}
	return out, nil
}
