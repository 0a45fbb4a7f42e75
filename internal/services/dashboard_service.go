package services

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/recruitbase/recruitbase-api/internal/cache"
	"github.com/recruitbase/recruitbase-api/internal/dtos"
	"github.com/recruitbase/recruitbase-api/internal/models"
	"github.com/recruitbase/recruitbase-api/internal/stats"
)

// DashboardService aggregates hiring activity for one tenant. Each
// section of the payload is an independent read of the same
// point-in-time data, so sections run concurrently; a section that
// fails reports its own error and leaves the rest intact.
type DashboardService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration
	Log   *slog.Logger

	apps  *stats.Engine
	jobs  *stats.Engine
	depts *stats.Engine
}

func NewDashboardService(db *gorm.DB, c cache.Store, ttl time.Duration, log *slog.Logger) *DashboardService {
	return &DashboardService{
		DB:    db,
		Cache: c,
		TTL:   ttl,
		Log:   log,
		apps:  stats.New(stats.NewGormSource[models.Application](db)),
		jobs:  stats.New(stats.NewGormSource[models.Job](db)),
		depts: stats.New(stats.NewGormSource[models.Department](db)),
	}
}

// Stats serves the dashboard payload for a calendar year, cached per
// (tenant, year). A payload with any failed section is returned to the
// caller but never cached.
func (s *DashboardService) Stats(ctx context.Context, tenantID uint, year int) (dtos.DashboardStats, error) {
	key := cache.StatsKey(tenantID, "dashboard", strconv.Itoa(year))
	if raw, ok := s.Cache.Get(key); ok {
		if v, ok := raw.(dtos.DashboardStats); ok {
			return v, nil
		}
	}

	out := s.compute(ctx, tenantID, year)
	if len(out.Errors) == 0 {
		s.Cache.Set(key, out, s.TTL)
	}
	return out, nil
}

func (s *DashboardService) compute(ctx context.Context, tenantID uint, year int) dtos.DashboardStats {
	var (
		mu  sync.Mutex
		out dtos.DashboardStats
	)
	fail := func(section string, err error) {
		s.Log.Warn("dashboard section failed", "section", section, "tenant", tenantID, "err", err)
		mu.Lock()
		defer mu.Unlock()
		if out.Errors == nil {
			out.Errors = make(map[string]string)
		}
		out.Errors[section] = err.Error()
	}
	store := func(section string, err error, assign func()) {
		if err != nil {
			fail(section, err)
			return
		}
		mu.Lock()
		assign()
		mu.Unlock()
	}

	now := time.Now()
	from, to := stats.YearWindow(year)

	var g errgroup.Group
	g.SetLimit(4)

	g.Go(func() error {
		v, err := s.apps.TotalWithMonthlyDiff(ctx, tenantID, now)
		store("applications", err, func() { out.Applications = &v })
		return nil
	})
	g.Go(func() error {
		v, err := s.jobs.TotalWithMonthlyDiff(ctx, tenantID, now)
		store("jobs", err, func() { out.Jobs = &v })
		return nil
	})
	g.Go(func() error {
		v, err := s.depts.TotalWithMonthlyDiff(ctx, tenantID, now)
		store("departments", err, func() { out.Departments = &v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.MonthlyHistogram(ctx, tenantID, year)
		store("monthly", err, func() { out.Monthly = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.RollupBy(ctx, tenantID, "status", models.StatusLabels, from, to)
		store("by_status", err, func() { out.ByStatus = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.RollupBy(ctx, tenantID, "stage", models.StageLabels, from, to)
		store("by_stage", err, func() { out.ByStage = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.RollupByParent(ctx, tenantID, "job_id", s.resolveJobs, from, to)
		store("by_job", err, func() { out.ByJob = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.RollupByParent(ctx, tenantID, "job_id", s.resolveDepartments, from, to)
		store("by_department", err, func() { out.ByDepartment = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.apps.GeoRollup(ctx, tenantID, year)
		store("geo", err, func() { out.Geo = &v })
		return nil
	})

	_ = g.Wait() // sections report through out.Errors
	return out
}

// resolveJobs maps job-id bucket keys to the job itself (title as
// label) for the per-job rollup.
func (s *DashboardService) resolveJobs(ctx context.Context, tenantID uint, keys []string) (map[string]stats.Parent, error) {
	ids := parseIDs(keys)
	out := make(map[string]stats.Parent, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		ID    uint
		Title string
	}
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Select("id, title").
		Where("company_id = ? AND id IN ?", tenantID, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		key := strconv.FormatUint(uint64(r.ID), 10)
		out[key] = stats.Parent{ID: key, Label: r.Title}
	}
	return out, nil
}

// resolveDepartments maps job-id bucket keys to the job's department,
// the second stage of the applications-by-department rollup. Jobs
// without a valid department resolve to nothing and drop out.
func (s *DashboardService) resolveDepartments(ctx context.Context, tenantID uint, keys []string) (map[string]stats.Parent, error) {
	ids := parseIDs(keys)
	out := make(map[string]stats.Parent, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		JobID  uint
		DeptID uint
		Name   string
	}
	err := s.DB.WithContext(ctx).Table("jobs").
		Select("jobs.id AS job_id, departments.id AS dept_id, departments.name AS name").
		Joins("JOIN departments ON departments.id = jobs.department_id AND departments.company_id = jobs.company_id").
		Where("jobs.company_id = ? AND jobs.id IN ? AND jobs.deleted_at IS NULL AND departments.deleted_at IS NULL", tenantID, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[strconv.FormatUint(uint64(r.JobID), 10)] = stats.Parent{
			ID:    strconv.FormatUint(uint64(r.DeptID), 10),
			Label: r.Name,
		}
	}
	return out, nil
}

func parseIDs(keys []string) []uint {
	out := make([]uint, 0, len(keys))
	for _, k := range keys {
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil || n == 0 {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}
