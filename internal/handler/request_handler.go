package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
	"github.com/parkgrid/parkgrid-api/pkg/response"
)

type requestService interface {
	Create(ctx context.Context, req dto.CreateSlotRequestPayload, actor *models.JWTClaims, meta models.RequestMeta) (*models.SlotRequest, error)
	List(ctx context.Context, filter models.RequestFilter, actor *models.JWTClaims) ([]dto.SlotRequestItem, *models.Pagination, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*dto.SlotRequestItem, error)
	Update(ctx context.Context, id string, req dto.UpdateSlotRequestPayload, actor *models.JWTClaims, meta models.RequestMeta) (*models.SlotRequest, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims, meta models.RequestMeta) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateRequestStatusPayload, approver *models.JWTClaims, meta models.RequestMeta) (*dto.SlotRequestItem, error)
}

// RequestHandler handles slot request endpoints.
type RequestHandler struct {
	service requestService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(svc requestService) *RequestHandler {
	return &RequestHandler{service: svc}
}

// Create godoc
// @Summary Create slot request
// @Description Open a PENDING slot request for one of the caller's vehicles
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.CreateSlotRequestPayload true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateSlotRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	request, err := h.service.Create(c.Request.Context(), req, claims, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, request)
}

// List godoc
// @Summary List slot requests
// @Description List slot requests. Non-admin callers only see their own.
// @Tags Requests
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param vehicleId query string false "Vehicle filter"
// @Param userId query string false "User filter (admin only)"
// @Success 200 {object} response.Envelope
// @Router /parking/requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var filter models.RequestFilter

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	filter.VehicleID = c.Query("vehicleId")
	filter.UserID = c.Query("userId")

	if status := c.Query("status"); status != "" {
		typed := models.RequestStatus(status)
		filter.Status = &typed
	}

	requests, pagination, err := h.service.List(c.Request.Context(), filter, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, requests, pagination)
}

// Get godoc
// @Summary Get slot request
// @Description Get slot request detail. Non-admin callers only see their own.
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	item, err := h.service.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Update slot request
// @Description Edit a still-pending request, e.g. swap the vehicle
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.UpdateSlotRequestPayload true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/requests/{id} [put]
func (h *RequestHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateSlotRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	request, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claims, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, request, nil)
}

// Delete godoc
// @Summary Withdraw slot request
// @Description Delete a still-pending request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parking/requests/{id} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatus godoc
// @Summary Decide slot request
// @Description Approve or reject a pending request, binding a slot on approval
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.UpdateRequestStatusPayload true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /parking/requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateRequestStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	item, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req, claims, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, item, nil)
}
