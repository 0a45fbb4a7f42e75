package services

import (
	"context"
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

type DepartmentService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration
	Log   *slog.Logger
}

func NewDepartmentService(db *gorm.DB, c cache.Store, ttl time.Duration, log *slog.Logger) *DepartmentService {
	return &DepartmentService{DB: db, Cache: c, TTL: ttl, Log: log}
}

func (s *DepartmentService) List(ctx context.Context, tenantID uint, q dtos.ListQuery) (dtos.PageResult[models.Department], error) {
	q.Page, q.PageSize = query.ClampPage(q.Page, q.PageSize)
	key := cache.ListKey(tenantID, ResourceDepartments, query.Hash(q))
	return cache.GetOrCompute(s.Cache, key, s.TTL, func() (dtos.PageResult[models.Department], error) {
		pred := query.Build(tenantID, query.Params(q), query.DepartmentSchema)
		order := query.BuildSort(q.SortBy, q.SortDir, query.DepartmentSchema)
		return query.Paginate[models.Department](s.DB.WithContext(ctx), pred, order, q.Page, q.PageSize)
	})
}

func (s *DepartmentService) Get(ctx context.Context, tenantID, id uint) (*models.Department, error) {
	key := cache.RecordKey(tenantID, ResourceDepartments, id)
	dept, err := cache.GetOrCompute(s.Cache, key, s.TTL, func() (models.Department, error) {
		return fetchOwned[models.Department](ctx, s.DB, tenantID, id)
	})
	if err != nil {
		return nil, err
	}
	if dept.CompanyID != tenantID {
		return nil, ErrForbidden
	}
	return &dept, nil
}

func (s *DepartmentService) Create(ctx context.Context, tenantID uint, req *dtos.DepartmentCreationRequest) (*models.Department, error) {
	dept := &models.Department{
		CompanyID:   tenantID,
		Name:        req.Name,
		Description: req.Description,
		Country:     req.Country,
		City:        req.City,
	}
	if err := s.DB.WithContext(ctx).Create(dept).Error; err != nil {
		return nil, err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceDepartments, dept.ID)
	return dept, nil
}

func (s *DepartmentService) Update(ctx context.Context, tenantID, id uint, req *dtos.DepartmentUpdateRequest) (*models.Department, error) {
	dept, err := fetchOwned[models.Department](ctx, s.DB, tenantID, id)
	if err != nil {
		return nil, err
	}

	applyIf(&dept.Name, req.Name)
	applyIf(&dept.Description, req.Description)
	applyIf(&dept.Country, req.Country)
	applyIf(&dept.City, req.City)

	if err := s.DB.WithContext(ctx).Save(&dept).Error; err != nil {
		return nil, err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceDepartments, id)
	return &dept, nil
}

func (s *DepartmentService) Delete(ctx context.Context, tenantID, id uint) error {
	if err := deleteOwned[models.Department](ctx, s.DB, tenantID, id); err != nil {
		return err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceDepartments, id)
	return nil
}

func (s *DepartmentService) Export(ctx context.Context, tenantID uint, q dtos.ListQuery, format export.Format, w io.Writer) error {
	pred := query.Build(tenantID, query.Params(q), query.DepartmentSchema)
	order := query.BuildSort(q.SortBy, q.SortDir, query.DepartmentSchema)
	rows := batchRows(s.DB.WithContext(ctx), pred, order, export.DepartmentRow)
	return export.Stream(ctx, w, format, export.DepartmentHeaders, rows)
}
