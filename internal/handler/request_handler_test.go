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
)

type fakeRequestSrv struct {
	created    *models.SlotRequest
	createErr  error
	items      []dto.SlotRequestItem
	pagination *models.Pagination
	item       *dto.SlotRequestItem
	lastFilter models.RequestFilter
	lastStatus struct {
		id       string
		payload  dto.UpdateRequestStatusPayload
		approver *models.JWTClaims
	}
}

func (f *fakeRequestSrv) Create(_ context.Context, _ dto.CreateSlotRequestPayload, _ *models.JWTClaims, _ models.RequestMeta) (*models.SlotRequest, error) {
	return f.created, f.createErr
}

func (f *fakeRequestSrv) List(_ context.Context, filter models.RequestFilter, _ *models.JWTClaims) ([]dto.SlotRequestItem, *models.Pagination, error) {
	f.lastFilter = filter
	return f.items, f.pagination, nil
}

func (f *fakeRequestSrv) Get(_ context.Context, _ string, _ *models.JWTClaims) (*dto.SlotRequestItem, error) {
	return f.item, nil
}

func (f *fakeRequestSrv) Update(_ context.Context, _ string, _ dto.UpdateSlotRequestPayload, _ *models.JWTClaims, _ models.RequestMeta) (*models.SlotRequest, error) {
	return f.created, nil
}

func (f *fakeRequestSrv) Delete(_ context.Context, _ string, _ *models.JWTClaims, _ models.RequestMeta) error {
	return nil
}

func (f *fakeRequestSrv) UpdateStatus(_ context.Context, id string, req dto.UpdateRequestStatusPayload, approver *models.JWTClaims, _ models.RequestMeta) (*dto.SlotRequestItem, error) {
	f.lastStatus.id = id
	f.lastStatus.payload = req
	f.lastStatus.approver = approver
	return f.item, nil
}

func TestRequestHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeRequestSrv{
		created: &models.SlotRequest{ID: "req-1", Status: models.RequestPending},
	}
	handler := NewRequestHandler(service)

	body, _ := json.Marshal(dto.CreateSlotRequestPayload{VehicleID: "veh-1"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/parking/requests", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequestHandlerCreateRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/parking/requests", bytes.NewReader(nil))

	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestHandlerListFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeRequestSrv{}
	handler := NewRequestHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/parking/requests?status=PENDING&vehicleId=veh-2&page=3&limit=10", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, service.lastFilter.Page)
	assert.Equal(t, 10, service.lastFilter.PageSize)
	assert.Equal(t, "veh-2", service.lastFilter.VehicleID)
	if assert.NotNil(t, service.lastFilter.Status) {
		assert.Equal(t, models.RequestPending, *service.lastFilter.Status)
	}
}

func TestRequestHandlerUpdateStatusApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeRequestSrv{
		item: &dto.SlotRequestItem{ID: "req-1", Status: models.RequestApproved},
	}
	handler := NewRequestHandler(service)

	body, _ := json.Marshal(dto.UpdateRequestStatusPayload{
		Status: models.RequestApproved,
		SlotID: ptr("slot-9"),
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/parking/requests/req-1/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", service.lastStatus.id)
	assert.Equal(t, models.RequestApproved, service.lastStatus.payload.Status)
	if assert.NotNil(t, service.lastStatus.payload.SlotID) {
		assert.Equal(t, "slot-9", *service.lastStatus.payload.SlotID)
	}
	assert.Equal(t, "admin-1", service.lastStatus.approver.UserID)
}

func TestRequestHandlerUpdateStatusRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/parking/requests/req-1/status", bytes.NewReader([]byte("{")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func ptr(s string) *string { return &s }
