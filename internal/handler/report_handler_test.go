package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/parkgrid/parkgrid-api/internal/dto"
)

type fakeReportSrv struct {
	report  *dto.OccupancyReport
	hit     bool
	err     error
	csvData []byte
	pdfData []byte
}

func (f *fakeReportSrv) Occupancy(context.Context) (*dto.OccupancyReport, bool, error) {
	return f.report, f.hit, f.err
}

func (f *fakeReportSrv) OccupancyCSV(context.Context) ([]byte, error) {
	return f.csvData, f.err
}

func (f *fakeReportSrv) OccupancyPDF(context.Context) ([]byte, error) {
	return f.pdfData, f.err
}

func newGinContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestReportHandlerOccupancyJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{
		report: &dto.OccupancyReport{GeneratedAt: time.Now().UTC(), TotalSlots: 40, OccupiedSlots: 10, OccupancyRate: 25},
		hit:    true,
	})

	c, w := newGinContext(http.MethodGet, "/parking/reports/occupancy")

	handler.Occupancy(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, true, envelope.Meta["cache_hit"])

	var report dto.OccupancyReport
	require.NoError(t, json.Unmarshal(envelope.Data, &report))
	require.Equal(t, 40, report.TotalSlots)
}

func TestReportHandlerOccupancyCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{csvData: []byte("key,total\nNORTH,10\n")})

	c, w := newGinContext(http.MethodGet, "/parking/reports/occupancy?format=csv")

	handler.Occupancy(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "occupancy-")
	require.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestReportHandlerOccupancyPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{pdfData: []byte("%PDF-1.4")})

	c, w := newGinContext(http.MethodGet, "/parking/reports/occupancy?format=pdf")

	handler.Occupancy(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
}

func TestReportHandlerOccupancyUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{})

	c, w := newGinContext(http.MethodGet, "/parking/reports/occupancy?format=xml")

	handler.Occupancy(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
