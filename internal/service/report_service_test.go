package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type cacheRepoStub struct {
	store    map[string][]byte
	patterns []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{store: make(map[string][]byte)}
}

func (s *cacheRepoStub) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *cacheRepoStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(_ context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}

type occupancyRepoStub struct {
	byGroup map[string][]dto.OccupancyBreakdown
	calls   int
}

func (m *occupancyRepoStub) Occupancy(ctx context.Context, groupBy string) ([]dto.OccupancyBreakdown, error) {
	m.calls++
	return m.byGroup[groupBy], nil
}

func occupancyFixture() *occupancyRepoStub {
	return &occupancyRepoStub{byGroup: map[string][]dto.OccupancyBreakdown{
		"location": {
			{Key: "NORTH", Total: 10, Occupied: 5},
			{Key: "SOUTH", Total: 10, Occupied: 0},
		},
		"vehicle_type": {
			{Key: "CAR", Total: 15, Occupied: 4},
			{Key: "MOTORCYCLE", Total: 5, Occupied: 1},
		},
		"size": {
			{Key: "MEDIUM", Total: 20, Occupied: 5},
		},
	}}
}

func TestReportServiceOccupancy(t *testing.T) {
	repo := occupancyFixture()
	svc := NewReportService(repo, nil, nil, zap.NewNop())

	report, fromCache, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 20, report.TotalSlots)
	assert.Equal(t, 5, report.OccupiedSlots)
	assert.InDelta(t, 0.25, report.OccupancyRate, 0.001)
	require.Len(t, report.ByLocation, 2)
	assert.InDelta(t, 0.5, report.ByLocation[0].Rate, 0.001)
	assert.Zero(t, report.ByLocation[1].Rate)
}

func TestReportServiceOccupancyCached(t *testing.T) {
	repo := occupancyFixture()
	cacheSvc := NewCacheService(newCacheRepoStub(), nil, time.Minute, zap.NewNop(), true)
	svc := NewReportService(repo, cacheSvc, nil, zap.NewNop())

	_, fromCache, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 3, repo.calls)

	report, fromCache, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, 20, report.TotalSlots)
}

func TestReportServiceOccupancyCSV(t *testing.T) {
	repo := occupancyFixture()
	svc := NewReportService(repo, nil, nil, zap.NewNop())

	data, err := svc.OccupancyCSV(context.Background())
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "Grouping,Key,Total,Occupied,Rate"))
	assert.Contains(t, content, "Location,NORTH,10,5,50.0%")
	assert.Contains(t, content, "Vehicle Type,CAR,15,4,26.7%")
}

func TestReportServiceOccupancyPDF(t *testing.T) {
	repo := occupancyFixture()
	svc := NewReportService(repo, nil, nil, zap.NewNop())

	data, err := svc.OccupancyPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
