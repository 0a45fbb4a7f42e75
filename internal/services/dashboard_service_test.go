package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitbase/recruitbase-api/internal/cache"
	"github.com/recruitbase/recruitbase-api/internal/stats"
)

// statsSource is a canned stats.Source; groupErr poisons only the
// grouped reads so totals and the histogram still succeed.
type statsSource struct {
	total    int64
	byMonth  map[time.Month]int64
	groups   map[string]map[string]int64
	groupErr error
}

func (f *statsSource) Count(context.Context, uint, time.Time, time.Time) (int64, error) {
	return f.total, nil
}

func (f *statsSource) CountByMonth(context.Context, uint, int) (map[time.Month]int64, error) {
	return f.byMonth, nil
}

func (f *statsSource) GroupCount(_ context.Context, _ uint, column string, _, _ time.Time) (map[string]int64, error) {
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return f.groups[column], nil
}

func newDashboard(src stats.Source) *DashboardService {
	c := cache.New(time.Minute, slog.Default())
	return &DashboardService{
		Cache: c,
		TTL:   time.Minute,
		Log:   slog.Default(),
		apps:  stats.New(src),
		jobs:  stats.New(src),
		depts: stats.New(src),
	}
}

func TestDashboardStatsAllSections(t *testing.T) {
	src := &statsSource{
		total:   12,
		byMonth: map[time.Month]int64{time.March: 4},
		groups: map[string]map[string]int64{
			"status":  {"pending": 7, "hired": 5},
			"stage":   {"applied": 12},
			"country": {"Morocco": 9, "Spain": 3},
			"job_id":  {},
		},
	}
	s := newDashboard(src)

	got, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)
	assert.Empty(t, got.Errors)

	require.NotNil(t, got.Applications)
	assert.Equal(t, int64(12), got.Applications.Total)
	require.Len(t, got.Monthly, 12)
	assert.Equal(t, int64(4), got.Monthly[2])
	require.Len(t, got.ByStatus, 2)
	assert.Equal(t, "Pending", got.ByStatus[0].Label)
	require.NotNil(t, got.Geo)
	assert.Equal(t, int64(12), got.Geo.Total)
	assert.Equal(t, "MA", got.Geo.Countries[0].ID)
}

func TestDashboardPartialFailureIsolated(t *testing.T) {
	src := &statsSource{
		total:    3,
		byMonth:  map[time.Month]int64{},
		groupErr: errors.New("storage down"),
	}
	s := newDashboard(src)

	got, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err, "per-section failures do not fail the request")

	// Grouped sections failed, each with its own error.
	for _, section := range []string{"by_status", "by_stage", "by_job", "by_department", "geo"} {
		assert.Contains(t, got.Errors, section)
	}
	// Count-based sections survived.
	require.NotNil(t, got.Applications)
	assert.Equal(t, int64(3), got.Applications.Total)
	assert.Len(t, got.Monthly, 12)
}

func TestDashboardPartialResultNotCached(t *testing.T) {
	src := &statsSource{groupErr: errors.New("storage down")}
	s := newDashboard(src)

	_, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)

	// After the source recovers the next call must recompute, not
	// serve the broken payload.
	src.groupErr = nil
	src.groups = map[string]map[string]int64{"status": {"pending": 1}}
	got, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)
	assert.Empty(t, got.Errors)
	require.Len(t, got.ByStatus, 1)
}

func TestDashboardCleanResultCached(t *testing.T) {
	src := &statsSource{total: 5, byMonth: map[time.Month]int64{}, groups: map[string]map[string]int64{}}
	s := newDashboard(src)

	first, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)

	src.total = 999 // cache must hide this until TTL or invalidation
	second, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)
	assert.Equal(t, first.Applications.Total, second.Applications.Total)

	cache.InvalidateEntity(s.Cache, 1, ResourceApplications, 0)
	third, err := s.Stats(context.Background(), 1, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(999), third.Applications.Total, "write invalidation reaches stats keys")
}
