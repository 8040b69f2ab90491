package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/middleware"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
	"github.com/parkgrid/parkgrid-api/pkg/response"
)

type reportService interface {
	Occupancy(ctx context.Context) (*dto.OccupancyReport, bool, error)
	OccupancyCSV(ctx context.Context) ([]byte, error)
	OccupancyPDF(ctx context.Context) ([]byte, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Occupancy godoc
// @Summary Parking occupancy report
// @Description Occupancy broken down by location, vehicle type and size
// @Tags Reports
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Output format: json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parking/reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	switch c.Query("format") {
	case "", "json":
		start := time.Now()
		report, cacheHit, err := h.service.Occupancy(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		middleware.SetCacheHit(c, cacheHit)
		meta := middleware.ExtractMeta(c)
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["processing_time_ms"] = time.Since(start).Milliseconds()
		response.JSON(c, http.StatusOK, report, nil, meta)
	case "csv":
		data, err := h.service.OccupancyCSV(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		h.sendFile(c, data, "text/csv", "csv")
	case "pdf":
		data, err := h.service.OccupancyPDF(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		h.sendFile(c, data, "application/pdf", "pdf")
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be json, csv or pdf"))
	}
}

func (h *ReportHandler) sendFile(c *gin.Context, data []byte, mimeType, ext string) {
	filename := fmt.Sprintf("occupancy-%s.%s", time.Now().UTC().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mimeType, data)
}
