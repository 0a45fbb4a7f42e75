package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/recruitbase/recruitbase-api/internal/cache"
	"github.com/recruitbase/recruitbase-api/internal/dtos"
	"github.com/recruitbase/recruitbase-api/internal/export"
	"github.com/recruitbase/recruitbase-api/internal/models"
	"github.com/recruitbase/recruitbase-api/internal/query"
)

type JobService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration
	Log   *slog.Logger
}

func NewJobService(db *gorm.DB, c cache.Store, ttl time.Duration, log *slog.Logger) *JobService {
	return &JobService{DB: db, Cache: c, TTL: ttl, Log: log}
}

func (s *JobService) List(ctx context.Context, tenantID uint, q dtos.ListQuery) (dtos.PageResult[models.Job], error) {
	q.Page, q.PageSize = query.ClampPage(q.Page, q.PageSize)
	key := cache.ListKey(tenantID, ResourceJobs, query.Hash(q))
	return cache.GetOrCompute(s.Cache, key, s.TTL, func() (dtos.PageResult[models.Job], error) {
		pred := query.Build(tenantID, query.Params(q), query.JobSchema)
		order := query.BuildSort(q.SortBy, q.SortDir, query.JobSchema)
		return query.Paginate[models.Job](s.DB.WithContext(ctx), pred, order, q.Page, q.PageSize)
	})
}

func (s *JobService) Get(ctx context.Context, tenantID, id uint) (*models.Job, error) {
	key := cache.RecordKey(tenantID, ResourceJobs, id)
	job, err := cache.GetOrCompute(s.Cache, key, s.TTL, func() (models.Job, error) {
		return fetchOwned[models.Job](ctx, s.DB, tenantID, id)
	})
	if err != nil {
		return nil, err
	}
	if job.CompanyID != tenantID {
		return nil, ErrForbidden
	}
	return &job, nil
}

func (s *JobService) Create(ctx context.Context, tenantID uint, req *dtos.JobCreationRequest) (*models.Job, error) {
	if req.DepartmentID != 0 {
		if _, err := fetchOwned[models.Department](ctx, s.DB, tenantID, req.DepartmentID); err != nil {
			return nil, fmt.Errorf("department %d: %w", req.DepartmentID, err)
		}
	}

	job := &models.Job{
		CompanyID:    tenantID,
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Country:      req.Country,
		City:         req.City,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceJobs, job.ID)
	return job, nil
}

func (s *JobService) Update(ctx context.Context, tenantID, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := fetchOwned[models.Job](ctx, s.DB, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil && *req.DepartmentID != 0 {
		if _, err := fetchOwned[models.Department](ctx, s.DB, tenantID, *req.DepartmentID); err != nil {
			return nil, fmt.Errorf("department %d: %w", *req.DepartmentID, err)
		}
	}

	applyIf(&job.Title, req.Title)
	applyIf(&job.Description, req.Description)
	applyIf(&job.DepartmentID, req.DepartmentID)
	applyIf(&job.Status, req.Status)
	applyIf(&job.Country, req.Country)
	applyIf(&job.City, req.City)

	if err := s.DB.WithContext(ctx).Save(&job).Error; err != nil {
		return nil, err
	}
	// Broad on purpose: a job status flip changes the dashboard, so the
	// tenant's stats keys go too, not just this record.
	cache.InvalidateEntity(s.Cache, tenantID, ResourceJobs, id)
	return &job, nil
}

func (s *JobService) Delete(ctx context.Context, tenantID, id uint) error {
	if err := deleteOwned[models.Job](ctx, s.DB, tenantID, id); err != nil {
		return err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceJobs, id)
	return nil
}

func (s *JobService) Export(ctx context.Context, tenantID uint, q dtos.ListQuery, format export.Format, w io.Writer) error {
	pred := query.Build(tenantID, query.Params(q), query.JobSchema)
	order := query.BuildSort(q.SortBy, q.SortDir, query.JobSchema)
	rows := batchRows(s.DB.WithContext(ctx), pred, order, export.JobRow)
	return export.Stream(ctx, w, format, export.JobHeaders, rows)
}
