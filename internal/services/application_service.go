package services

import (
	"context"
	"errors"
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

type ApplicationService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration
	Log   *slog.Logger
}

func NewApplicationService(db *gorm.DB, c cache.Store, ttl time.Duration, log *slog.Logger) *ApplicationService {
	return &ApplicationService{DB: db, Cache: c, TTL: ttl, Log: log}
}

// List returns one tenant-scoped page, served from cache when a
// recent identical query is still warm.
func (s *ApplicationService) List(ctx context.Context, tenantID uint, q dtos.ListQuery) (dtos.PageResult[models.Application], error) {
	q.Page, q.PageSize = query.ClampPage(q.Page, q.PageSize)
	key := cache.ListKey(tenantID, ResourceApplications, query.Hash(q))
	return cache.GetOrCompute(s.Cache, key, s.TTL, func() (dtos.PageResult[models.Application], error) {
		pred := query.Build(tenantID, query.Params(q), query.ApplicationSchema)
		order := query.BuildSort(q.SortBy, q.SortDir, query.ApplicationSchema)
		return query.Paginate[models.Application](s.DB.WithContext(ctx), pred, order, q.Page, q.PageSize)
	})
}

// Get fetches one application through the cache. Tenant ownership is
// re-checked even on cache hits; a key collision must never leak a
// record across tenants.
func (s *ApplicationService) Get(ctx context.Context, tenantID, id uint) (*models.Application, error) {
	key := cache.RecordKey(tenantID, ResourceApplications, id)
	app, err := cache.GetOrCompute(s.Cache, key, s.TTL, func() (models.Application, error) {
		return fetchOwned[models.Application](ctx, s.DB, tenantID, id)
	})
	if err != nil {
		return nil, err
	}
	if app.CompanyID != tenantID {
		return nil, ErrForbidden
	}
	return &app, nil
}

func (s *ApplicationService) Create(ctx context.Context, tenantID uint, req *dtos.ApplicationCreationRequest) (*models.Application, error) {
	// The job must belong to the same tenant before we hang an
	// application off it.
	if _, err := fetchOwned[models.Job](ctx, s.DB, tenantID, req.JobID); err != nil {
		return nil, fmt.Errorf("job %d: %w", req.JobID, err)
	}

	app := &models.Application{
		CompanyID:   tenantID,
		JobID:       req.JobID,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		LinkedInURL: req.LinkedInURL,
		ResumeLink:  req.ResumeLink,
		Status:      req.Status,
		Stage:       req.Stage,
		Source:      req.Source,
		Country:     req.Country,
		City:        req.City,
		Rating:      req.Rating,
		AIScore:     req.AIScore,
		AppliedAt:   time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceApplications, app.ID)
	return app, nil
}

func (s *ApplicationService) Update(ctx context.Context, tenantID, id uint, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	app, err := fetchOwned[models.Application](ctx, s.DB, tenantID, id)
	if err != nil {
		return nil, err
	}

	applyIf(&app.FullName, req.FullName)
	applyIf(&app.Email, req.Email)
	applyIf(&app.PhoneNumber, req.PhoneNumber)
	applyIf(&app.LinkedInURL, req.LinkedInURL)
	applyIf(&app.ResumeLink, req.ResumeLink)
	applyIf(&app.Status, req.Status)
	applyIf(&app.Stage, req.Stage)
	applyIf(&app.Source, req.Source)
	applyIf(&app.Country, req.Country)
	applyIf(&app.City, req.City)
	applyIf(&app.Rating, req.Rating)
	applyIf(&app.AIScore, req.AIScore)

	if err := s.DB.WithContext(ctx).Save(&app).Error; err != nil {
		return nil, err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceApplications, id)
	return &app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, tenantID, id uint) error {
	if err := deleteOwned[models.Application](ctx, s.DB, tenantID, id); err != nil {
		return err
	}
	cache.InvalidateEntity(s.Cache, tenantID, ResourceApplications, id)
	return nil
}

// Export streams every matching application to w. Always bypasses the
// cache: a stale download is worse than a slow one.
func (s *ApplicationService) Export(ctx context.Context, tenantID uint, q dtos.ListQuery, format export.Format, w io.Writer) error {
	pred := query.Build(tenantID, query.Params(q), query.ApplicationSchema)
	order := query.BuildSort(q.SortBy, q.SortDir, query.ApplicationSchema)
	rows := batchRows(s.DB.WithContext(ctx), pred, order, export.ApplicationRow)
	return export.Stream(ctx, w, format, export.ApplicationHeaders, rows)
}

// fetchOwned loads one record by id within the tenant. A record that
// exists under another tenant reports ErrForbidden, never ErrNotFound.
func fetchOwned[T any](ctx context.Context, db *gorm.DB, tenantID, id uint) (T, error) {
	var rec T
	err := db.WithContext(ctx).Where("company_id = ?", tenantID).First(&rec, id).Error
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, err
	}
	var model T
	var n int64
	if err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Count(&n).Error; err != nil {
		return rec, err
	}
	if n > 0 {
		return rec, ErrForbidden
	}
	return rec, ErrNotFound
}

// deleteOwned hard-deletes one record by id within the tenant, keeping
// the forbidden / not-found distinction of fetchOwned. Deletes skip
// the soft-delete marker: the row and its cache entry both go away.
func deleteOwned[T any](ctx context.Context, db *gorm.DB, tenantID, id uint) error {
	if _, err := fetchOwned[T](ctx, db, tenantID, id); err != nil {
		return err
	}
	var model T
	return db.WithContext(ctx).Unscoped().Where("company_id = ?", tenantID).Delete(&model, id).Error
}

func applyIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
