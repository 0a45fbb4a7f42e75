package services

import (
	"gorm.io/gorm"

	"github.com/recruitbase/recruitbase-api/internal/export"
	"github.com/recruitbase/recruitbase-api/internal/query"
)

const exportBatchSize = 500

// batchRows pulls matching records from the store in fixed-size
// batches and projects them one at a time, so an export never
// materializes the whole result set. A secondary "id ASC" keeps
// offset paging stable when the requested sort has ties.
func batchRows[T any](db *gorm.DB, p query.Predicate, s query.SortSpec, project func(T) []string) export.Rows {
	var batch []T
	offset := 0
	idx := 0
	exhausted := false

	return export.RowFunc(func() ([]string, bool, error) {
		if idx >= len(batch) {
			if exhausted {
				return nil, true, nil
			}
			var next []T
			var model T
			err := db.Model(&model).
				Scopes(p.Scope()).
				Order(s.OrderClause()).
				Order("id ASC").
				Offset(offset).
				Limit(exportBatchSize).
				Find(&next).Error
			if err != nil {
				return nil, false, err
			}
			offset += len(next)
			if len(next) < exportBatchSize {
				exhausted = true
			}
			if len(next) == 0 {
				return nil, true, nil
			}
			batch = next
			idx = 0
		}
		row := project(batch[idx])
		idx++
		return row, false, nil
	})
}
