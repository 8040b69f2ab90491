package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
	"github.com/parkgrid/parkgrid-api/pkg/export"
)

// occupancyCacheKey lives under the slots prefix so inventory changes and
// approvals invalidate the report together with the slot listings.
const occupancyCacheKey = "slots:occupancy"

type occupancyRepository interface {
	Occupancy(ctx context.Context, groupBy string) ([]dto.OccupancyBreakdown, error)
}

// ReportService aggregates slot occupancy and renders export documents.
type ReportService struct {
	repo    occupancyRepository
	cache   *CacheService
	metrics *MetricsService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewReportService constructs a report service.
func NewReportService(repo occupancyRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// Occupancy returns the occupancy report grouped by location, vehicle type
// and size. The boolean indicates whether data originated from cache.
func (s *ReportService) Occupancy(ctx context.Context) (*dto.OccupancyReport, bool, error) {
	var cached dto.OccupancyReport
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, occupancyCacheKey, &cached); err != nil {
			s.logger.Warn("occupancy cache read failed", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	byLocation, err := s.repo.Occupancy(ctx, "location")
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate occupancy by location")
	}
	byVehicleType, err := s.repo.Occupancy(ctx, "vehicle_type")
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate occupancy by vehicle type")
	}
	bySize, err := s.repo.Occupancy(ctx, "size")
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate occupancy by size")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("slots_occupancy", time.Since(start))
	}

	report := &dto.OccupancyReport{
		GeneratedAt:   time.Now().UTC(),
		ByLocation:    fillRates(byLocation),
		ByVehicleType: fillRates(byVehicleType),
		BySize:        fillRates(bySize),
	}
	for _, row := range report.ByLocation {
		report.TotalSlots += row.Total
		report.OccupiedSlots += row.Occupied
	}
	if report.TotalSlots > 0 {
		report.OccupancyRate = float64(report.OccupiedSlots) / float64(report.TotalSlots)
	}

	if s.metrics != nil {
		s.metrics.SetSlotsOccupied(report.OccupiedSlots)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, occupancyCacheKey, report, 0); err != nil {
			s.logger.Warn("occupancy cache write failed", zap.Error(err))
		}
	}

	return report, false, nil
}

// OccupancyCSV renders the occupancy report as CSV bytes.
func (s *ReportService) OccupancyCSV(ctx context.Context) ([]byte, error) {
	report, _, err := s.Occupancy(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(occupancyDataset(report))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render occupancy csv")
	}
	return data, nil
}

// OccupancyPDF renders the occupancy report as a PDF document.
func (s *ReportService) OccupancyPDF(ctx context.Context) ([]byte, error) {
	report, _, err := s.Occupancy(ctx)
	if err != nil {
		return nil, err
	}
	subtitle := fmt.Sprintf("Generated %s | %d of %d slots occupied",
		report.GeneratedAt.Format("2006-01-02 15:04 MST"), report.OccupiedSlots, report.TotalSlots)
	data, err := s.pdf.Render(occupancyDataset(report), "Parking Occupancy Report", subtitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render occupancy pdf")
	}
	return data, nil
}

func occupancyDataset(report *dto.OccupancyReport) export.Dataset {
	dataset := export.Dataset{Headers: []string{"Grouping", "Key", "Total", "Occupied", "Rate"}}
	appendRows := func(grouping string, rows []dto.OccupancyBreakdown) {
		for _, row := range rows {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Grouping": grouping,
				"Key":      row.Key,
				"Total":    fmt.Sprintf("%d", row.Total),
				"Occupied": fmt.Sprintf("%d", row.Occupied),
				"Rate":     fmt.Sprintf("%.1f%%", row.Rate*100),
			})
		}
	}
	appendRows("Location", report.ByLocation)
	appendRows("Vehicle Type", report.ByVehicleType)
	appendRows("Size", report.BySize)
	return dataset
}

func fillRates(rows []dto.OccupancyBreakdown) []dto.OccupancyBreakdown {
	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Rate = float64(rows[i].Occupied) / float64(rows[i].Total)
		}
	}
	return rows
}
