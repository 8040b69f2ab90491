package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/middleware"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type fakeSlotSrv struct {
	listSlots  []models.ParkingSlot
	listPage   *models.Pagination
	listHit    bool
	listErr    error
	lastFilter models.SlotFilter

	slot      *models.ParkingSlot
	getErr    error
	createErr error
	bulkResp  *dto.BulkCreateSlotsResponse
	deleteErr error
	lastID    string
}

func (f *fakeSlotSrv) List(_ context.Context, filter models.SlotFilter) ([]models.ParkingSlot, *models.Pagination, bool, error) {
	f.lastFilter = filter
	return f.listSlots, f.listPage, f.listHit, f.listErr
}

func (f *fakeSlotSrv) Get(_ context.Context, id string) (*models.ParkingSlot, error) {
	f.lastID = id
	return f.slot, f.getErr
}

func (f *fakeSlotSrv) Create(_ context.Context, _ dto.CreateSlotRequest, _ string, _ models.RequestMeta) (*models.ParkingSlot, error) {
	return f.slot, f.createErr
}

func (f *fakeSlotSrv) BulkCreate(_ context.Context, _ dto.BulkCreateSlotsRequest, _ string, _ models.RequestMeta) (*dto.BulkCreateSlotsResponse, error) {
	return f.bulkResp, nil
}

func (f *fakeSlotSrv) Update(_ context.Context, id string, _ dto.UpdateSlotRequest, _ string, _ models.RequestMeta) (*models.ParkingSlot, error) {
	f.lastID = id
	return f.slot, nil
}

func (f *fakeSlotSrv) Delete(_ context.Context, id string, _ string, _ models.RequestMeta) error {
	f.lastID = id
	return f.deleteErr
}

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Meta       map[string]interface{} `json:"meta"`
	Pagination map[string]interface{} `json:"pagination"`
}

func TestSlotHandlerListFilterAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeSlotSrv{
		listSlots: []models.ParkingSlot{{ID: "slot-1", SlotNumber: "N-001"}},
		listPage:  &models.Pagination{Page: 2, PageSize: 5, TotalCount: 11},
		listHit:   true,
	}
	handler := NewSlotHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/parking/slots?page=2&limit=5&location=NORTH&onlyAvailable=true", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, service.lastFilter.Page)
	assert.Equal(t, 5, service.lastFilter.PageSize)
	assert.True(t, service.lastFilter.OnlyAvailable)
	if assert.NotNil(t, service.lastFilter.Location) {
		assert.Equal(t, models.LocationNorth, *service.lastFilter.Location)
	}

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, float64(11), envelope.Pagination["total_count"])
}

func TestSlotHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotHandler(&fakeSlotSrv{getErr: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/parking/slots/slot-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "slot-9"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSlotHandlerCreateRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotHandler(&fakeSlotSrv{})

	body, _ := json.Marshal(dto.CreateSlotRequest{SlotNumber: "N-001"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/parking/slots", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSlotHandlerCreateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotHandler(&fakeSlotSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/parking/slots", bytes.NewReader([]byte("{")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlotHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeSlotSrv{}
	handler := NewSlotHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/parking/slots/slot-3", nil)
	c.Params = gin.Params{{Key: "id", Value: "slot-3"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.Delete(c)
	// The engine flushes gin's deferred status line after the handler chain;
	// invoking the handler directly leaves a body-less 204 unwritten, so
	// flush it the same way the engine does before reading rec.Code.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "slot-3", service.lastID)
}
